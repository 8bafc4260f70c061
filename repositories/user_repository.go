package repositories

import (
	"time"

	"himpunan-cms/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UsernameTaken(username string, exceptID uint) (bool, error)
	EmailTaken(email string) (bool, error)
	Update(user *models.User) error
	UpdatePassword(id uint, hash string) error
	UpdatePasswordByEmail(email, hash string) error
	Delete(id uint) error
	GetList(query models.PaginationQuery) ([]models.User, int64, error)
	RegisterFailedLogin(id uint, threshold int) (int, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *userRepository) UsernameTaken(username string, exceptID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.User{}).Where("username = ?", username)
	if exceptID > 0 {
		query = query.Where("id <> ?", exceptID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *userRepository) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) UpdatePassword(id uint, hash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("password", hash).Error
}

func (r *userRepository) UpdatePasswordByEmail(email, hash string) error {
	return r.db.Model(&models.User{}).Where("email = ?", email).Update("password", hash).Error
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

func (r *userRepository) GetList(query models.PaginationQuery) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	q := r.db.Model(&models.User{})

	if query.Filter != "" {
		q = q.Where("name LIKE ?", "%"+query.Filter+"%")
	}

	if query.Status == "active" {
		q = q.Where("is_active = ?", true)
	} else if query.Status == "inactive" {
		q = q.Where("is_active = ?", false)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order(query.OrderClause("id", "name", "username", "email", "created_at")).
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&users).Error

	return users, total, err
}

// RegisterFailedLogin increments the attempt counter and, past the
// threshold, marks the account blocked. Both run in one transaction so
// concurrent failures cannot slip past the check, and the incremented
// count is read back inside the same transaction.
func (r *userRepository) RegisterFailedLogin(id uint, threshold int) (int, error) {
	var attempts int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", id).
			UpdateColumn("login_attempts", gorm.Expr("login_attempts + 1")).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.Select("login_attempts").First(&user, id).Error; err != nil {
			return err
		}
		attempts = user.LoginAttempts

		if attempts > threshold {
			now := time.Now()
			return tx.Model(&models.User{}).
				Where("id = ?", id).
				Update("block_expires", now).Error
		}

		return nil
	})

	return attempts, err
}
