package services

import (
	"fmt"
	"testing"
	"time"

	"himpunan-cms/crypto"
	"himpunan-cms/models"
	"himpunan-cms/repositories"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UserServiceSuite struct {
	suite.Suite
	db        *gorm.DB
	crypto    *crypto.Service
	userRepo  repositories.UserRepository
	tokenRepo repositories.VerificationTokenRepository
	svc       UserService
}

func (s *UserServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.crypto = crypto.NewService("test-secret")
	s.userRepo = repositories.NewUserRepository(s.db)
	s.tokenRepo = repositories.NewVerificationTokenRepository(s.db)
	s.svc = NewUserService(s.userRepo, s.tokenRepo, s.crypto, 24*time.Hour)
}

func (s *UserServiceSuite) createUser(email, username string) *models.CreatedUser {
	created, err := s.svc.Create(models.CreateUserRequest{
		Name:            "Test User",
		Email:           email,
		Username:        username,
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	s.Require().NoError(err)
	return created
}

func (s *UserServiceSuite) TestCreateProducesInactiveUnverifiedUser() {
	created := s.createUser("a@x.com", "a")

	user, err := s.userRepo.GetByID(created.ID)
	s.Require().NoError(err)

	s.False(user.IsActive)
	s.Nil(user.EmailVerified)
	s.Equal(models.RoleMember, user.Role)
	s.NotEqual("password123", user.Password)

	// The token payload must point back at the created user.
	var payload struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}
	s.Require().NoError(s.crypto.DecryptJSON(created.Verification, &payload))
	s.Equal(created.ID, payload.ID)
	s.Equal("a@x.com", payload.Email)
	s.True(created.VerificationExpires.After(time.Now()))
}

func (s *UserServiceSuite) TestCreateDuplicateEmailConflicts() {
	s.createUser("a@x.com", "a")

	_, err := s.svc.Create(models.CreateUserRequest{
		Name:            "Other",
		Email:           "a@x.com",
		Username:        "b",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	s.Require().Error(err)
	s.IsType(models.ErrorConflict{}, err)
}

func (s *UserServiceSuite) TestCreateDuplicateUsernameConflicts() {
	s.createUser("a@x.com", "a")

	_, err := s.svc.Create(models.CreateUserRequest{
		Name:            "Other",
		Email:           "b@x.com",
		Username:        "a",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	s.Require().Error(err)
	s.IsType(models.ErrorConflict{}, err)
}

func (s *UserServiceSuite) TestVerifyEmailUnknownToken() {
	_, err := s.svc.VerifyEmail("no-such-token")
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *UserServiceSuite) TestVerifyEmailExpiredToken() {
	created := s.createUser("a@x.com", "a")

	s.Require().NoError(s.db.Model(&models.VerificationEmailToken{}).
		Where("token = ?", created.Verification).
		Update("expires", time.Now().Add(-time.Hour)).Error)

	_, err := s.svc.VerifyEmail(created.Verification)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *UserServiceSuite) TestVerifyEmailUndecryptableToken() {
	s.Require().NoError(s.db.Create(&models.VerificationEmailToken{
		Token:   "live-but-garbage",
		Email:   "a@x.com",
		Expires: time.Now().Add(time.Hour),
	}).Error)

	_, err := s.svc.VerifyEmail("live-but-garbage")
	s.IsType(models.ErrorBadRequest{}, err)
}

func (s *UserServiceSuite) TestVerifyEmailActivatesExactlyOnce() {
	created := s.createUser("a@x.com", "a")

	email, err := s.svc.VerifyEmail(created.Verification)
	s.Require().NoError(err)
	s.Equal("a@x.com", email)

	user, err := s.userRepo.GetByID(created.ID)
	s.Require().NoError(err)
	s.True(user.IsActive)
	s.NotNil(user.EmailVerified)

	_, err = s.svc.VerifyEmail(created.Verification)
	s.Require().Error(err)
	s.IsType(models.ErrorBadRequest{}, err)
	s.EqualError(err, "account has been verified")
}

func (s *UserServiceSuite) TestUpdateInfoRechecksUsername() {
	created := s.createUser("a@x.com", "a")
	s.createUser("b@x.com", "b")

	_, err := s.svc.UpdateInfo(created.ID, models.UpdateUserRequest{
		Name:     "Renamed",
		Username: "b",
	})
	s.IsType(models.ErrorConflict{}, err)

	// Keeping the own username is not a conflict.
	info, err := s.svc.UpdateInfo(created.ID, models.UpdateUserRequest{
		Name:     "Renamed",
		Username: "a",
	})
	s.Require().NoError(err)
	s.Equal("Renamed", info.Name)
}

func (s *UserServiceSuite) TestUpdateInfoMissingUser() {
	_, err := s.svc.UpdateInfo(999, models.UpdateUserRequest{Name: "X", Username: "x"})
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *UserServiceSuite) TestUpdatePasswordRequiresOldPassword() {
	created := s.createUser("a@x.com", "a")

	err := s.svc.UpdatePassword(created.ID, models.UpdatePasswordRequest{
		OldPassword: "wrong-old",
		NewPassword: "newpassword1",
	})
	s.Require().Error(err)
	s.IsType(models.ErrorBadRequest{}, err)
	s.EqualError(err, "old password is incorrect")

	s.Require().NoError(s.svc.UpdatePassword(created.ID, models.UpdatePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword1",
	}))

	user, err := s.userRepo.GetByID(created.ID)
	s.Require().NoError(err)
	s.True(s.crypto.CheckPassword("newpassword1", user.Password))
}

func (s *UserServiceSuite) TestUpdateRoleAndRemove() {
	created := s.createUser("a@x.com", "a")

	role, err := s.svc.UpdateRole(created.ID, models.RoleBoard)
	s.Require().NoError(err)
	s.Equal(models.RoleBoard, role)

	s.Require().NoError(s.svc.Remove(created.ID))

	err = s.svc.Remove(created.ID)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *UserServiceSuite) seedUsers(n int) {
	for i := 0; i < n; i++ {
		s.Require().NoError(s.db.Create(&models.User{
			Name:     fmt.Sprintf("Member %02d", i),
			Email:    fmt.Sprintf("member%02d@x.com", i),
			Username: fmt.Sprintf("member%02d", i),
			Password: "irrelevant-hash",
			IsActive: i%2 == 0,
		}).Error)
	}
}

func (s *UserServiceSuite) TestListPaginationEnvelope() {
	s.seedUsers(25)

	users, pagination, err := s.svc.List(models.PaginationQuery{Page: 0, Limit: 10})
	s.Require().NoError(err)
	s.Len(users, 10)
	s.Equal(int64(25), pagination.Total)
	s.Require().NotNil(pagination.Next)
	s.Equal(1, *pagination.Next)
	s.Nil(pagination.Prev)

	users, pagination, err = s.svc.List(models.PaginationQuery{Page: 2, Limit: 10})
	s.Require().NoError(err)
	s.Len(users, 5)
	s.Nil(pagination.Next)
	s.Require().NotNil(pagination.Prev)
	s.Equal(1, *pagination.Prev)
}

func (s *UserServiceSuite) TestListFiltersByNameAndStatus() {
	s.seedUsers(10)

	users, _, err := s.svc.List(models.PaginationQuery{Page: 0, Limit: 10, Filter: "Member 03"})
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal("Member 03", users[0].Name)

	active, pagination, err := s.svc.List(models.PaginationQuery{Page: 0, Limit: 10, Status: "active"})
	s.Require().NoError(err)
	s.Equal(int64(5), pagination.Total)
	for _, u := range active {
		s.True(u.IsActive)
	}
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}
