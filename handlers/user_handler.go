package handlers

import (
	"strconv"

	"himpunan-cms/helper"
	"himpunan-cms/middleware"
	"himpunan-cms/models"
	"himpunan-cms/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		Helper:      helper.NewHTTPHelper(),
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok || !middleware.Allowed(middleware.OpUserCreate, caller, middleware.Target{}) {
		h.Helper.SendUnauthorizedError(c, "you are not authorized to create a user")
		return
	}

	var req models.CreateUserRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	created, err := h.userService.Create(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, created)
}

func (h *UserHandler) FindAll(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok || !middleware.Allowed(middleware.OpUserFindAll, caller, middleware.Target{}) {
		h.Helper.SendUnauthorizedError(c, "you are not authorized to fetch all users")
		return
	}

	var query models.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	users, pagination, err := h.userService.List(query)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccessWithPagination(c, users, pagination)
}

func (h *UserHandler) FindMe(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "user not found in context")
		return
	}

	user, err := h.userService.FindOne(caller.UserID)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, user)
}

func (h *UserHandler) FindOne(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok || !middleware.Allowed(middleware.OpUserFindOne, caller, middleware.Target{}) {
		h.Helper.SendUnauthorizedError(c, "you are not authorized to fetch a user")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid user id")
		return
	}

	user, err := h.userService.FindOne(uint(id))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, user)
}

// targetUserID resolves the account an operation acts on: self, unless
// the caller holds the board role and names an explicit target.
func (h *UserHandler) targetUserID(c *gin.Context, caller middleware.Claims) uint {
	if caller.Role != models.RoleBoard {
		return caller.UserID
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return caller.UserID
	}

	return uint(id)
}

func (h *UserHandler) UpdateInfo(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "user not found in context")
		return
	}

	targetID := h.targetUserID(c, caller)
	if !middleware.Allowed(middleware.OpUserUpdateInfo, caller, middleware.Target{UserID: targetID}) {
		h.Helper.SendUnauthorizedError(c, "you are not authorized to update this user")
		return
	}

	var req models.UpdateUserRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateInfo(targetID, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, user)
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "user not found in context")
		return
	}

	targetID := h.targetUserID(c, caller)
	if !middleware.Allowed(middleware.OpUserUpdatePassword, caller, middleware.Target{UserID: targetID}) {
		h.Helper.SendUnauthorizedError(c, "you are not authorized to update this password")
		return
	}

	var req models.UpdatePasswordRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	if err := h.userService.UpdatePassword(targetID, req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, h.Helper.EmptyJSONMap())
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "user not found in context")
		return
	}

	targetID := h.targetUserID(c, caller)
	if !middleware.Allowed(middleware.OpUserUpdateRole, caller, middleware.Target{UserID: targetID}) {
		h.Helper.SendUnauthorizedError(c, "you are not authorized to update roles")
		return
	}

	var req models.UpdateRoleRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	role, err := h.userService.UpdateRole(targetID, req.Role)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, gin.H{"role": role})
}

func (h *UserHandler) Delete(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok || !middleware.Allowed(middleware.OpUserDelete, caller, middleware.Target{}) {
		h.Helper.SendUnauthorizedError(c, "you are not authorized to delete a user")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid user id")
		return
	}

	if err := h.userService.Remove(uint(id)); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, h.Helper.EmptyJSONMap())
}
