package services

import (
	"errors"
	"time"

	"himpunan-cms/config"
	"himpunan-cms/crypto"
	"himpunan-cms/models"
	"himpunan-cms/repositories"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// loginAttemptThreshold is the number of failed attempts after which
// the account is marked blocked. There is no automatic unblock; a
// board member has to re-activate the account.
const loginAttemptThreshold = 5

type AuthService interface {
	Login(req models.LoginRequest) (*models.AuthResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
	crypto   *crypto.Service
	cfg      *config.Config
}

func NewAuthService(userRepo repositories.UserRepository, cryptoSvc *crypto.Service, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, crypto: cryptoSvc, cfg: cfg}
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password so nothing leaks
			// about whether the account exists.
			return nil, models.ErrorUnauthorized{Message: "wrong email or password"}
		}
		return nil, err
	}

	if user.EmailVerified == nil {
		return nil, models.ErrorUnauthorized{Message: "unverified email"}
	}

	if user.BlockExpires != nil {
		// Blocked accounts answer with the same generic error as a
		// failed attempt so the block state is not observable.
		return nil, models.ErrorUnauthorized{Message: "wrong email or password"}
	}

	if !user.IsActive {
		return nil, models.ErrorUnauthorized{Message: "account is no longer active"}
	}

	if !s.crypto.CheckPassword(req.Password, user.Password) {
		attempts, err := s.userRepo.RegisterFailedLogin(user.ID, loginAttemptThreshold)
		if err != nil {
			return nil, err
		}

		if attempts > loginAttemptThreshold {
			zap.L().Warn("account blocked after repeated failed logins",
				zap.Uint("user_id", user.ID),
				zap.Int("attempts", attempts))
		}

		return nil, models.ErrorUnauthorized{Message: "wrong email or password"}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  user.Info(),
	}, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(s.cfg.JWTExpiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.cfg.JWTSecret)
}
