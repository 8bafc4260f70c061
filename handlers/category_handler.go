package handlers

import (
	"strconv"

	"himpunan-cms/helper"
	"himpunan-cms/middleware"
	"himpunan-cms/models"
	"himpunan-cms/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService services.CategoryService
	Helper          *helper.HTTPHelper
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		Helper:          helper.NewHTTPHelper(),
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok || !middleware.Allowed(middleware.OpCategoryCreate, caller, middleware.Target{}) {
		h.Helper.SendUnauthorizedError(c, "you are not authorized to create a category")
		return
	}

	var req models.CreateCategoryRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok || !middleware.Allowed(middleware.OpCategoryUpdate, caller, middleware.Target{}) {
		h.Helper.SendUnauthorizedError(c, "you are not authorized to update a category")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid category id")
		return
	}

	var req models.CreateCategoryRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(uint(id), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok || !middleware.Allowed(middleware.OpCategoryDelete, caller, middleware.Target{}) {
		h.Helper.SendUnauthorizedError(c, "you are not authorized to delete a category")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid category id")
		return
	}

	if err := h.categoryService.Delete(uint(id)); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, h.Helper.EmptyJSONMap())
}

func (h *CategoryHandler) FindAll(c *gin.Context) {
	categories, err := h.categoryService.FindAll()
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, categories)
}

func (h *CategoryHandler) FindOne(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid category id")
		return
	}

	category, err := h.categoryService.FindOne(uint(id))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, category)
}
