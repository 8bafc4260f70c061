package middleware

import "himpunan-cms/models"

// Operation names every role- or ownership-gated call. The policy
// table below is the single place authorization rules live; handlers
// evaluate it before any mutating persistence call.
type Operation string

const (
	OpUserCreate         Operation = "users.create"
	OpUserFindAll        Operation = "users.findAll"
	OpUserFindOne        Operation = "users.findOne"
	OpUserUpdateInfo     Operation = "users.updateInfo"
	OpUserUpdatePassword Operation = "users.updatePassword"
	OpUserUpdateRole     Operation = "users.updateRole"
	OpUserDelete         Operation = "users.delete"

	OpArticleUpdate        Operation = "articles.update"
	OpArticleUpdatePublish Operation = "articles.updatePublish"
	OpArticleDelete        Operation = "articles.delete"

	OpCategoryCreate Operation = "categories.create"
	OpCategoryUpdate Operation = "categories.update"
	OpCategoryDelete Operation = "categories.delete"
)

// Target identifies what an operation acts on. UserID is the target
// account for user operations, OwnerID the author for article ones.
type Target struct {
	UserID  uint
	OwnerID uint
}

type Policy func(caller Claims, target Target) bool

func boardOnly(caller Claims, _ Target) bool {
	return caller.Role == models.RoleBoard
}

func selfOrBoard(caller Claims, target Target) bool {
	return caller.UserID == target.UserID || caller.Role == models.RoleBoard
}

func ownerOrBoard(caller Claims, target Target) bool {
	return caller.UserID == target.OwnerID || caller.Role == models.RoleBoard
}

var policies = map[Operation]Policy{
	OpUserCreate:         boardOnly,
	OpUserFindAll:        boardOnly,
	OpUserFindOne:        boardOnly,
	OpUserUpdateInfo:     selfOrBoard,
	OpUserUpdatePassword: selfOrBoard,
	OpUserUpdateRole:     boardOnly,
	OpUserDelete:         boardOnly,

	OpArticleUpdate:        ownerOrBoard,
	OpArticleUpdatePublish: ownerOrBoard,
	OpArticleDelete:        ownerOrBoard,

	OpCategoryCreate: boardOnly,
	OpCategoryUpdate: boardOnly,
	OpCategoryDelete: boardOnly,
}

// Allowed evaluates the policy table. Unknown operations are denied.
func Allowed(op Operation, caller Claims, target Target) bool {
	policy, ok := policies[op]
	if !ok {
		return false
	}

	return policy(caller, target)
}
