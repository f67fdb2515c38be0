package handler

import (
	"net/http"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/auth"
	"github.com/fekuna/gesstock-service/internal/category"
	"github.com/fekuna/gesstock-service/internal/category/dto"
	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	uc     category.UseCase
	resp   *response.Responder
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, resp *response.Responder, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc: uc,
		resp: resp.WithMessages(map[error]string{
			apperror.ErrAlreadyExists: "CategoryExists",
			apperror.ErrNotFound:      "CategoryNotFound",
		}),
		logger: log,
	}
}

func (h *CategoryHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.POST("/categories", h.CreateCategory)
	rg.PUT("/categories/:id", h.UpdateCategory)
	rg.DELETE("/categories/:id", h.DeleteCategory)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	ownerID, ok := auth.OwnerFromGin(c)
	if !ok {
		h.resp.Error(c, apperror.ErrUnauthenticated)
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.InvalidBody(c, err)
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &dto.CreateCategoryInput{
		OwnerID: ownerID,
		Name:    req.Name,
	})
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  h.resp.Localize(c, "CategoryCreated", nil),
		"category": mapModelToResponse(cat),
	})
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	ownerID, ok := auth.OwnerFromGin(c)
	if !ok {
		h.resp.Error(c, apperror.ErrUnauthenticated)
		return
	}

	cats, err := h.uc.ListCategories(c.Request.Context(), ownerID)
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	out := make([]dto.CategoryResponse, len(cats))
	for i := range cats {
		out[i] = mapModelToResponse(&cats[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": out,
		"total":      len(out),
	})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	ownerID, ok := auth.OwnerFromGin(c)
	if !ok {
		h.resp.Error(c, apperror.ErrUnauthenticated)
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.InvalidBody(c, err)
		return
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &dto.UpdateCategoryInput{
		ID:      c.Param("id"),
		OwnerID: ownerID,
		Name:    req.Name,
	})
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  h.resp.Localize(c, "CategoryUpdated", nil),
		"category": mapModelToResponse(cat),
	})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	ownerID, ok := auth.OwnerFromGin(c)
	if !ok {
		h.resp.Error(c, apperror.ErrUnauthenticated)
		return
	}

	if err := h.uc.DeleteCategory(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Message(c, http.StatusOK, "CategoryDeleted", nil)
}

func mapModelToResponse(c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:      c.ID,
		Name:    c.Name,
		OwnerID: c.OwnerID,
	}
}
