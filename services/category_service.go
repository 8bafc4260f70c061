package services

import (
	"errors"

	"himpunan-cms/models"
	"himpunan-cms/repositories"

	"gorm.io/gorm"
)

type CategoryService interface {
	Create(req models.CreateCategoryRequest) (*models.Category, error)
	Update(id uint, req models.CreateCategoryRequest) (*models.Category, error)
	Delete(id uint) error
	FindAll() ([]models.Category, error)
	FindOne(id uint) (*models.Category, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(req models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{Name: req.Name}

	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "category name already exists"}
		}
		return nil, err
	}

	return category, nil
}

func (s *categoryService) Update(id uint, req models.CreateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "category not found"}
		}
		return nil, err
	}

	category.Name = req.Name

	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "category name already exists"}
		}
		return nil, err
	}

	return category, nil
}

func (s *categoryService) Delete(id uint) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "category not found"}
		}
		return err
	}

	return s.categoryRepo.Delete(id)
}

func (s *categoryService) FindAll() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *categoryService) FindOne(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "category not found"}
		}
		return nil, err
	}

	return category, nil
}
