package repositories

import (
	"himpunan-cms/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetBySlug(slug string) (*models.Article, error)
	GetSlugs() ([]string, error)
	GetList(query models.PaginationQuery) ([]models.Article, int64, error)
	Update(article *models.Article) error
	ReplaceCategories(article *models.Article, categories []models.Category) error
	Delete(id uint) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").Preload("Categories").First(&article, id).Error
	return &article, err
}

func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").Preload("Categories").
		Where("slug = ?", slug).
		First(&article).Error
	return &article, err
}

func (r *articleRepository) GetSlugs() ([]string, error) {
	var slugs []string
	err := r.db.Model(&models.Article{}).Pluck("slug", &slugs).Error
	return slugs, err
}

func (r *articleRepository) GetList(query models.PaginationQuery) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	q := r.db.Model(&models.Article{}).Preload("Author").Preload("Categories")

	if query.Filter != "" {
		q = q.Where("title LIKE ?", "%"+query.Filter+"%")
	}

	switch query.Status {
	case "publish":
		q = q.Where("publish = ?", models.PublishPublished)
	case "draft":
		q = q.Where("publish = ?", models.PublishDraft)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order(query.OrderClause("id", "title", "date_publish", "created_at")).
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Omit("Categories", "Author").Save(article).Error
}

func (r *articleRepository) ReplaceCategories(article *models.Article, categories []models.Category) error {
	return r.db.Model(article).Association("Categories").Replace(categories)
}

func (r *articleRepository) Delete(id uint) error {
	return r.db.Select("Categories").Delete(&models.Article{ID: id}).Error
}
