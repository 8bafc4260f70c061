package services

import (
	"errors"
	"strings"
	"time"

	"himpunan-cms/models"
	"himpunan-cms/repositories"

	"gorm.io/gorm"
)

type ArticleService interface {
	Create(authorID uint, req models.CreateArticleRequest) (*models.Article, error)
	Update(id uint, req models.UpdateArticleRequest) (*models.Article, error)
	UpdatePublish(id uint, publish models.Publish) (*models.PublishState, error)
	Delete(id uint) error
	GetByID(id uint) (*models.Article, error)
	GetBySlug(slug string) (*models.Article, error)
	Slugs() ([]string, error)
	List(query models.PaginationQuery) ([]models.Article, models.Pagination, error)
}

type articleService struct {
	articleRepo  repositories.ArticleRepository
	categoryRepo repositories.CategoryRepository
}

func NewArticleService(articleRepo repositories.ArticleRepository, categoryRepo repositories.CategoryRepository) ArticleService {
	return &articleService{articleRepo: articleRepo, categoryRepo: categoryRepo}
}

func slugify(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

func (s *articleService) resolveCategories(ids []uint) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	if len(categories) != len(ids) {
		return nil, models.ErrorNotFound{Message: "category not found"}
	}

	return categories, nil
}

func (s *articleService) Create(authorID uint, req models.CreateArticleRequest) (*models.Article, error) {
	categories, err := s.resolveCategories(req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	publish := req.Publish
	if publish == "" {
		publish = models.PublishDraft
	}

	article := &models.Article{
		Title:      req.Title,
		Slug:       slugify(req.Title),
		Content:    req.Content,
		Thumbnail:  req.Thumbnail,
		AuthorID:   authorID,
		Categories: categories,
		Publish:    publish,
	}

	if publish == models.PublishPublished {
		now := time.Now()
		article.DatePublish = &now
	}

	if err := s.articleRepo.Create(article); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "article title already exists"}
		}
		return nil, err
	}

	return s.articleRepo.GetByID(article.ID)
}

func (s *articleService) Update(id uint, req models.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "article not found"}
		}
		return nil, err
	}

	categories, err := s.resolveCategories(req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	article.Title = req.Title
	article.Slug = slugify(req.Title)
	article.Content = req.Content
	article.Thumbnail = req.Thumbnail

	if req.Publish != "" {
		article.Publish = req.Publish
	}

	// datePublish is set exactly once, on the first transition to
	// publish, and never rewritten afterwards.
	if article.Publish == models.PublishPublished && article.DatePublish == nil {
		now := time.Now()
		article.DatePublish = &now
	}

	if err := s.articleRepo.Update(article); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "article title already exists"}
		}
		return nil, err
	}

	if err := s.articleRepo.ReplaceCategories(article, categories); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(article.ID)
}

func (s *articleService) UpdatePublish(id uint, publish models.Publish) (*models.PublishState, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "article not found"}
		}
		return nil, err
	}

	article.Publish = publish

	if publish == models.PublishPublished && article.DatePublish == nil {
		now := time.Now()
		article.DatePublish = &now
	}

	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}

	return &models.PublishState{
		Title:       article.Title,
		Publish:     article.Publish,
		DatePublish: article.DatePublish,
	}, nil
}

func (s *articleService) Delete(id uint) error {
	if _, err := s.articleRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "article not found"}
		}
		return err
	}

	return s.articleRepo.Delete(id)
}

func (s *articleService) GetByID(id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "article not found"}
		}
		return nil, err
	}

	return article, nil
}

func (s *articleService) GetBySlug(slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "article not found"}
		}
		return nil, err
	}

	return article, nil
}

func (s *articleService) Slugs() ([]string, error) {
	return s.articleRepo.GetSlugs()
}

func (s *articleService) List(query models.PaginationQuery) ([]models.Article, models.Pagination, error) {
	articles, total, err := s.articleRepo.GetList(query)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return articles, models.NewPagination(total, query.Page, query.Limit), nil
}
