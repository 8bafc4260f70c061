package services

import (
	"fmt"
	"testing"
	"time"

	"himpunan-cms/models"
	"himpunan-cms/repositories"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ArticleServiceSuite struct {
	suite.Suite
	db       *gorm.DB
	svc      ArticleService
	author   *models.User
	category *models.Category
}

func (s *ArticleServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())

	articleRepo := repositories.NewArticleRepository(s.db)
	categoryRepo := repositories.NewCategoryRepository(s.db)
	s.svc = NewArticleService(articleRepo, categoryRepo)

	s.author = &models.User{
		Name:     "Author",
		Email:    "author@x.com",
		Username: "author",
		Password: "irrelevant-hash",
		IsActive: true,
	}
	s.Require().NoError(s.db.Create(s.author).Error)

	s.category = &models.Category{Name: "Tech"}
	s.Require().NoError(s.db.Create(s.category).Error)
}

func (s *ArticleServiceSuite) createDraft(title string) *models.Article {
	article, err := s.svc.Create(s.author.ID, models.CreateArticleRequest{
		Title:       title,
		Content:     "content",
		Thumbnail:   "thumb.png",
		CategoryIDs: []uint{s.category.ID},
	})
	s.Require().NoError(err)
	return article
}

func (s *ArticleServiceSuite) TestCreateDraft() {
	article := s.createDraft("Hello Go World")

	s.Equal("hello-go-world", article.Slug)
	s.Equal(models.PublishDraft, article.Publish)
	s.Nil(article.DatePublish)
	s.Equal(s.author.ID, article.AuthorID)
	s.Require().Len(article.Categories, 1)
	s.Equal("Tech", article.Categories[0].Name)
}

func (s *ArticleServiceSuite) TestCreatePublishedSetsDatePublish() {
	article, err := s.svc.Create(s.author.ID, models.CreateArticleRequest{
		Title:       "Straight To Publish",
		Content:     "content",
		CategoryIDs: []uint{s.category.ID},
		Publish:     models.PublishPublished,
	})
	s.Require().NoError(err)
	s.NotNil(article.DatePublish)
}

func (s *ArticleServiceSuite) TestCreateUnknownCategory() {
	_, err := s.svc.Create(s.author.ID, models.CreateArticleRequest{
		Title:       "No Category",
		Content:     "content",
		CategoryIDs: []uint{999},
	})
	s.Require().Error(err)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ArticleServiceSuite) TestCreateDuplicateTitle() {
	s.createDraft("Same Title")

	_, err := s.svc.Create(s.author.ID, models.CreateArticleRequest{
		Title:       "Same Title",
		Content:     "other content",
		CategoryIDs: []uint{s.category.ID},
	})
	s.Require().Error(err)
	s.IsType(models.ErrorConflict{}, err)
}

func (s *ArticleServiceSuite) TestPublishLatchIsIdempotent() {
	article := s.createDraft("Latch Article")
	s.Nil(article.DatePublish)

	state, err := s.svc.UpdatePublish(article.ID, models.PublishPublished)
	s.Require().NoError(err)
	s.Require().NotNil(state.DatePublish)
	first := *state.DatePublish

	time.Sleep(10 * time.Millisecond)

	// A second publish leaves the original timestamp untouched.
	state, err = s.svc.UpdatePublish(article.ID, models.PublishPublished)
	s.Require().NoError(err)
	s.Require().NotNil(state.DatePublish)
	s.True(first.Equal(*state.DatePublish))

	// Even a round trip through draft keeps the first publish date.
	_, err = s.svc.UpdatePublish(article.ID, models.PublishDraft)
	s.Require().NoError(err)

	state, err = s.svc.UpdatePublish(article.ID, models.PublishPublished)
	s.Require().NoError(err)
	s.True(first.Equal(*state.DatePublish))
}

func (s *ArticleServiceSuite) TestUpdateRederivesSlug() {
	article := s.createDraft("Original Title")

	updated, err := s.svc.Update(article.ID, models.UpdateArticleRequest{
		Title:       "Brand New Title",
		Content:     "updated",
		CategoryIDs: []uint{s.category.ID},
	})
	s.Require().NoError(err)
	s.Equal("brand-new-title", updated.Slug)
	s.Equal("updated", updated.Content)
}

func (s *ArticleServiceSuite) TestGetBySlugAndSlugs() {
	s.createDraft("First Post")
	s.createDraft("Second Post")

	article, err := s.svc.GetBySlug("first-post")
	s.Require().NoError(err)
	s.Equal("First Post", article.Title)

	slugs, err := s.svc.Slugs()
	s.Require().NoError(err)
	s.ElementsMatch([]string{"first-post", "second-post"}, slugs)

	_, err = s.svc.GetBySlug("missing-post")
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ArticleServiceSuite) TestDelete() {
	article := s.createDraft("Doomed")

	s.Require().NoError(s.svc.Delete(article.ID))

	err := s.svc.Delete(article.ID)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ArticleServiceSuite) TestListFiltersByStatusAndTitle() {
	for i := 0; i < 3; i++ {
		s.createDraft(fmt.Sprintf("Draft %d", i))
	}
	published, err := s.svc.Create(s.author.ID, models.CreateArticleRequest{
		Title:       "Published One",
		Content:     "content",
		CategoryIDs: []uint{s.category.ID},
		Publish:     models.PublishPublished,
	})
	s.Require().NoError(err)

	articles, pagination, err := s.svc.List(models.PaginationQuery{Page: 0, Limit: 10, Status: "publish"})
	s.Require().NoError(err)
	s.Equal(int64(1), pagination.Total)
	s.Require().Len(articles, 1)
	s.Equal(published.ID, articles[0].ID)

	articles, _, err = s.svc.List(models.PaginationQuery{Page: 0, Limit: 10, Filter: "Draft"})
	s.Require().NoError(err)
	s.Len(articles, 3)
}

func TestArticleServiceSuite(t *testing.T) {
	suite.Run(t, new(ArticleServiceSuite))
}

type CategoryServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc CategoryService
}

func (s *CategoryServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewCategoryService(repositories.NewCategoryRepository(s.db))
}

func (s *CategoryServiceSuite) TestCreateDuplicateName() {
	_, err := s.svc.Create(models.CreateCategoryRequest{Name: "Tech"})
	s.Require().NoError(err)

	_, err = s.svc.Create(models.CreateCategoryRequest{Name: "Tech"})
	s.Require().Error(err)
	s.IsType(models.ErrorConflict{}, err)
}

func (s *CategoryServiceSuite) TestUpdateAndFind() {
	created, err := s.svc.Create(models.CreateCategoryRequest{Name: "Tech"})
	s.Require().NoError(err)

	updated, err := s.svc.Update(created.ID, models.CreateCategoryRequest{Name: "Technology"})
	s.Require().NoError(err)
	s.Equal("Technology", updated.Name)

	found, err := s.svc.FindOne(created.ID)
	s.Require().NoError(err)
	s.Equal("Technology", found.Name)

	all, err := s.svc.FindAll()
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *CategoryServiceSuite) TestDeleteMissing() {
	err := s.svc.Delete(42)
	s.IsType(models.ErrorNotFound{}, err)
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceSuite))
}
