package services

import (
	"errors"
	"time"

	"himpunan-cms/crypto"
	"himpunan-cms/models"
	"himpunan-cms/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// verificationPayload is what gets sealed into an email-verification
// token. The expiry rides along inside the ciphertext, but the token
// row's expires column is what actually invalidates it.
type verificationPayload struct {
	ID      uint      `json:"id"`
	Email   string    `json:"email"`
	Expires time.Time `json:"expires"`
}

type UserService interface {
	Create(req models.CreateUserRequest) (*models.CreatedUser, error)
	VerifyEmail(token string) (string, error)
	UpdateInfo(id uint, req models.UpdateUserRequest) (*models.UserInfo, error)
	UpdatePassword(id uint, req models.UpdatePasswordRequest) error
	UpdateRole(id uint, role models.UserRole) (models.UserRole, error)
	Remove(id uint) error
	FindOne(id uint) (*models.UserInfo, error)
	List(query models.PaginationQuery) ([]models.UserInfo, models.Pagination, error)
}

type userService struct {
	userRepo     repositories.UserRepository
	tokenRepo    repositories.VerificationTokenRepository
	crypto       *crypto.Service
	verifyWindow time.Duration
}

func NewUserService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.VerificationTokenRepository,
	cryptoSvc *crypto.Service,
	verifyWindow time.Duration,
) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		crypto:       cryptoSvc,
		verifyWindow: verifyWindow,
	}
}

func (s *userService) Create(req models.CreateUserRequest) (*models.CreatedUser, error) {
	// Best-effort pre-checks. The unique constraints below remain the
	// authoritative guard against races.
	taken, err := s.userRepo.EmailTaken(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrorConflict{Message: "email already exists"}
	}

	taken, err = s.userRepo.UsernameTaken(req.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrorConflict{Message: "username already exists"}
	}

	hashed, err := s.crypto.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: hashed,
		Role:     role,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "email or username already exists"}
		}
		return nil, err
	}

	expires := time.Now().Add(s.verifyWindow)
	token, err := s.crypto.EncryptJSON(verificationPayload{
		ID:      user.ID,
		Email:   user.Email,
		Expires: expires,
	})
	if err != nil {
		return nil, err
	}

	verification := &models.VerificationEmailToken{
		Token:   token,
		Email:   user.Email,
		Expires: expires,
	}

	if err := s.tokenRepo.Create(verification); err != nil {
		return nil, err
	}

	zap.L().Info("user created", zap.Uint("user_id", user.ID))

	return &models.CreatedUser{
		ID:                  user.ID,
		Name:                user.Name,
		Verification:        verification.Token,
		VerificationExpires: verification.Expires,
	}, nil
}

func (s *userService) VerifyEmail(token string) (string, error) {
	if _, err := s.tokenRepo.FindLive(token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.ErrorNotFound{Message: "verification token not found"}
		}
		return "", err
	}

	var payload verificationPayload
	if err := s.crypto.DecryptJSON(token, &payload); err != nil {
		return "", models.ErrorBadRequest{Message: "invalid verification token"}
	}

	user, err := s.userRepo.GetByID(payload.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.ErrorNotFound{Message: "user not found"}
		}
		return "", err
	}

	if user.IsActive {
		return "", models.ErrorBadRequest{Message: "account has been verified"}
	}

	now := time.Now()
	user.IsActive = true
	user.EmailVerified = &now

	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}

	return user.Email, nil
}

func (s *userService) UpdateInfo(id uint, req models.UpdateUserRequest) (*models.UserInfo, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}

	// Re-check uniqueness excluding the target's own row.
	taken, err := s.userRepo.UsernameTaken(req.Username, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrorConflict{Message: "username already exists"}
	}

	user.Name = req.Name
	user.Username = req.Username

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "username already exists"}
		}
		return nil, err
	}

	info := user.Info()
	return &info, nil
}

func (s *userService) UpdatePassword(id uint, req models.UpdatePasswordRequest) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "user not found"}
		}
		return err
	}

	if !s.crypto.CheckPassword(req.OldPassword, user.Password) {
		return models.ErrorBadRequest{Message: "old password is incorrect"}
	}

	hashed, err := s.crypto.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(id, hashed)
}

func (s *userService) UpdateRole(id uint, role models.UserRole) (models.UserRole, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.ErrorNotFound{Message: "user not found"}
		}
		return "", err
	}

	user.Role = role

	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}

	return user.Role, nil
}

func (s *userService) Remove(id uint) error {
	if _, err := s.userRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "user not found"}
		}
		return err
	}

	return s.userRepo.Delete(id)
}

func (s *userService) FindOne(id uint) (*models.UserInfo, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}

	info := user.Info()
	return &info, nil
}

func (s *userService) List(query models.PaginationQuery) ([]models.UserInfo, models.Pagination, error) {
	users, total, err := s.userRepo.GetList(query)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	infos := make([]models.UserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, user.Info())
	}

	return infos, models.NewPagination(total, query.Page, query.Limit), nil
}
