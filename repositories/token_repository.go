package repositories

import (
	"time"

	"himpunan-cms/models"

	"gorm.io/gorm"
)

// VerificationTokenRepository handles email-verification tokens.
// It is deliberately separate from ForgotPasswordRepository so that a
// token from one flow can never be accepted by the other.
type VerificationTokenRepository interface {
	Create(token *models.VerificationEmailToken) error
	FindLive(token string) (*models.VerificationEmailToken, error)
}

type verificationTokenRepository struct {
	db *gorm.DB
}

func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

func (r *verificationTokenRepository) Create(token *models.VerificationEmailToken) error {
	return r.db.Create(token).Error
}

func (r *verificationTokenRepository) FindLive(token string) (*models.VerificationEmailToken, error) {
	var row models.VerificationEmailToken
	err := r.db.Where("token = ? AND expires > ?", token, time.Now()).First(&row).Error
	return &row, err
}

type ForgotPasswordRepository interface {
	Create(record *models.ForgotPassword) error
	FindLive(token string) (*models.ForgotPassword, error)
	MarkFirstUsed(token string, meta models.VerifyForgotPasswordRequest) error
	Consume(token, email string) error
}

type forgotPasswordRepository struct {
	db *gorm.DB
}

func NewForgotPasswordRepository(db *gorm.DB) ForgotPasswordRepository {
	return &forgotPasswordRepository{db: db}
}

func (r *forgotPasswordRepository) Create(record *models.ForgotPassword) error {
	return r.db.Create(record).Error
}

func (r *forgotPasswordRepository) FindLive(token string) (*models.ForgotPassword, error) {
	var row models.ForgotPassword
	err := r.db.
		Where("token = ? AND expires > ? AND final_used = ?", token, time.Now(), false).
		First(&row).Error
	return &row, err
}

func (r *forgotPasswordRepository) MarkFirstUsed(token string, meta models.VerifyForgotPasswordRequest) error {
	return r.db.Model(&models.ForgotPassword{}).
		Where("token = ?", token).
		Updates(map[string]interface{}{
			"first_used":      true,
			"ip_changed":      meta.IPChanged,
			"browser_changed": meta.BrowserChanged,
			"country_changed": meta.CountryChanged,
		}).Error
}

// Consume flips the final-used latch in a single conditional UPDATE.
// All reset preconditions live in the WHERE clause, so a token can
// pass here at most once even under concurrent calls.
func (r *forgotPasswordRepository) Consume(token, email string) error {
	res := r.db.Model(&models.ForgotPassword{}).
		Where("token = ? AND email = ? AND first_used = ? AND final_used = ? AND expires >= ?",
			token, email, true, false, time.Now()).
		Update("final_used", true)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
