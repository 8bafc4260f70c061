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

// recoveryPayload carries no expiry; the ForgotPassword row tracks it.
type recoveryPayload struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// RecoveryService drives the three-phase forgot-password flow:
// request issues a token, verify arms it (first-used), reset consumes
// it exactly once (final-used latch).
type RecoveryService interface {
	Request(req models.ForgotPasswordRequest) (string, error)
	Verify(token string, req models.VerifyForgotPasswordRequest) (string, error)
	Reset(token string, req models.ResetPasswordRequest) error
}

type recoveryService struct {
	userRepo     repositories.UserRepository
	forgotRepo   repositories.ForgotPasswordRepository
	crypto       *crypto.Service
	verifyWindow time.Duration
}

func NewRecoveryService(
	userRepo repositories.UserRepository,
	forgotRepo repositories.ForgotPasswordRepository,
	cryptoSvc *crypto.Service,
	verifyWindow time.Duration,
) RecoveryService {
	return &recoveryService{
		userRepo:     userRepo,
		forgotRepo:   forgotRepo,
		crypto:       cryptoSvc,
		verifyWindow: verifyWindow,
	}
}

func (s *recoveryService) Request(req models.ForgotPasswordRequest) (string, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.ErrorNotFound{Message: "user not found"}
		}
		return "", err
	}

	token, err := s.crypto.EncryptJSON(recoveryPayload{ID: user.ID, Email: user.Email})
	if err != nil {
		return "", err
	}

	record := &models.ForgotPassword{
		Token:          token,
		Email:          user.Email,
		Expires:        time.Now().Add(s.verifyWindow),
		IPRequest:      req.IPRequest,
		BrowserRequest: req.BrowserRequest,
		CountryRequest: req.CountryRequest,
	}

	if err := s.forgotRepo.Create(record); err != nil {
		return "", err
	}

	zap.L().Info("password recovery requested", zap.Uint("user_id", user.ID))

	return user.Email, nil
}

func (s *recoveryService) Verify(token string, req models.VerifyForgotPasswordRequest) (string, error) {
	if _, err := s.forgotRepo.FindLive(token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.ErrorNotFound{Message: "recovery token not found"}
		}
		return "", err
	}

	var payload recoveryPayload
	if err := s.crypto.DecryptJSON(token, &payload); err != nil {
		return "", models.ErrorBadRequest{Message: "invalid recovery token"}
	}

	user, err := s.userRepo.GetByID(payload.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.ErrorNotFound{Message: "user not found"}
		}
		return "", err
	}

	// The changed-context fields are recorded for later inspection,
	// a mismatch with the request context does not fail the flow.
	if err := s.forgotRepo.MarkFirstUsed(token, req); err != nil {
		return "", err
	}

	return user.Email, nil
}

func (s *recoveryService) Reset(token string, req models.ResetPasswordRequest) error {
	// One conditional update checks every precondition at once. The
	// collapsed error keeps token state unenumerable.
	if err := s.forgotRepo.Consume(token, req.Email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "the code was not found, has been used, or has expired"}
		}
		return err
	}

	hashed, err := s.crypto.HashPassword(req.Password)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePasswordByEmail(req.Email, hashed)
}
