package handlers

import (
	"strconv"

	"himpunan-cms/helper"
	"himpunan-cms/middleware"
	"himpunan-cms/models"
	"himpunan-cms/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		Helper:         helper.NewHTTPHelper(),
	}
}

func (h *ArticleHandler) Create(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "user not found in context")
		return
	}

	var req models.CreateArticleRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	article, err := h.articleService.Create(caller.UserID, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, article)
}

// authorizeArticle loads the article and evaluates the ownership
// policy before the handler mutates anything.
func (h *ArticleHandler) authorizeArticle(c *gin.Context, op middleware.Operation) (uint, bool) {
	caller, ok := middleware.Caller(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "user not found in context")
		return 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid article id")
		return 0, false
	}

	article, err := h.articleService.GetByID(uint(id))
	if err != nil {
		h.Helper.SendError(c, err)
		return 0, false
	}

	if !middleware.Allowed(op, caller, middleware.Target{OwnerID: article.AuthorID}) {
		h.Helper.SendUnauthorizedError(c, "you are not authorized to modify this article")
		return 0, false
	}

	return uint(id), true
}

func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := h.authorizeArticle(c, middleware.OpArticleUpdate)
	if !ok {
		return
	}

	var req models.UpdateArticleRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	article, err := h.articleService.Update(id, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, article)
}

func (h *ArticleHandler) UpdatePublish(c *gin.Context) {
	id, ok := h.authorizeArticle(c, middleware.OpArticleUpdatePublish)
	if !ok {
		return
	}

	var req models.UpdatePublishRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	state, err := h.articleService.UpdatePublish(id, req.Publish)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, state)
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := h.authorizeArticle(c, middleware.OpArticleDelete)
	if !ok {
		return
	}

	if err := h.articleService.Delete(id); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, h.Helper.EmptyJSONMap())
}

func (h *ArticleHandler) GetAll(c *gin.Context) {
	var query models.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	articles, pagination, err := h.articleService.List(query)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccessWithPagination(c, articles, pagination)
}

func (h *ArticleHandler) GetAllSlug(c *gin.Context) {
	slugs, err := h.articleService.Slugs()
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, slugs)
}

func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.articleService.GetBySlug(c.Param("slug"))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, article)
}

func (h *ArticleHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid article id")
		return
	}

	article, err := h.articleService.GetByID(uint(id))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, article)
}
