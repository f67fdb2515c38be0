package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/auth"
	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/fekuna/gesstock-service/internal/money"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/pkg/response"
	"github.com/fekuna/gesstock-service/internal/product"
	"github.com/fekuna/gesstock-service/internal/product/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	resp   *response.Responder
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, resp *response.Responder, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc: uc,
		resp: resp.WithMessages(map[error]string{
			apperror.ErrNotFound: "ProductNotFound",
		}),
		logger: log,
	}
}

func (h *ProductHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.POST("/products", h.CreateProduct)
	rg.GET("/products/barcode/:code", h.ResolveBarcode)
	rg.PUT("/products/:id", h.UpdateProduct)
	rg.DELETE("/products/:id", h.DeleteProduct)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	ownerID, ok := auth.OwnerFromGin(c)
	if !ok {
		h.resp.Error(c, apperror.ErrUnauthenticated)
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.InvalidBody(c, err)
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), toInput(ownerID, &req))
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": h.resp.Localize(c, "ProductCreated", nil),
		"product": mapModelToResponse(p),
	})
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	ownerID, ok := auth.OwnerFromGin(c)
	if !ok {
		h.resp.Error(c, apperror.ErrUnauthenticated)
		return
	}

	products, err := h.uc.ListProducts(c.Request.Context(), ownerID)
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	out := make([]dto.ProductResponse, len(products))
	for i := range products {
		out[i] = mapModelToResponse(&products[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"products": out,
		"total":    len(out),
	})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	ownerID, ok := auth.OwnerFromGin(c)
	if !ok {
		h.resp.Error(c, apperror.ErrUnauthenticated)
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.InvalidBody(c, err)
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:                 c.Param("id"),
		CreateProductInput: *toInput(ownerID, &req),
	})
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": h.resp.Localize(c, "ProductUpdated", nil),
		"product": mapModelToResponse(p),
	})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	ownerID, ok := auth.OwnerFromGin(c)
	if !ok {
		h.resp.Error(c, apperror.ErrUnauthenticated)
		return
	}

	if err := h.uc.DeleteProduct(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		h.resp.Error(c, err)
		return
	}
	h.resp.Message(c, http.StatusOK, "ProductDeleted", nil)
}

// ResolveBarcode answers a miss with 404 and a prompt to scan again.
func (h *ProductHandler) ResolveBarcode(c *gin.Context) {
	ownerID, ok := auth.OwnerFromGin(c)
	if !ok {
		h.resp.Error(c, apperror.ErrUnauthenticated)
		return
	}

	code := c.Param("code")
	p, err := h.uc.ResolveBarcode(c.Request.Context(), ownerID, code)
	if errors.Is(err, product.ErrProductNotFound) {
		h.logger.Debug("scan miss", zap.String("owner_id", ownerID), zap.String("code", code))
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": h.resp.Localize(c, "ProductNotFound", nil),
			"action":  h.resp.Localize(c, "ScanAgain", nil),
		})
		return
	}
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": h.resp.Localize(c, "ProductFound", map[string]any{"Name": p.Name}),
		"product": mapModelToResponse(p),
	})
}

// toInput prefers price_cents; otherwise the free-form price text is parsed.
func toInput(ownerID string, req *dto.ProductRequest) *dto.CreateProductInput {
	var cents int64
	switch {
	case req.PriceCents != nil:
		cents = *req.PriceCents
	case req.Price != nil:
		cents = money.DisplayToCents(*req.Price)
	}
	return &dto.CreateProductInput{
		OwnerID:    ownerID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		PriceCents: cents,
		CategoryID: req.CategoryID,
	}
}

func mapModelToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Quantity:     p.Quantity,
		PriceCents:   p.PriceCents,
		PriceDisplay: money.CentsToDisplay(p.PriceCents),
		CategoryID:   p.CategoryID,
		OwnerID:      p.OwnerID,
	}
}
