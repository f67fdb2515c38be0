package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/auth"
	"github.com/fekuna/gesstock-service/internal/inventory"
	"github.com/fekuna/gesstock-service/internal/inventory/dto"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	resp   *response.Responder
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, resp *response.Responder, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		resp:   resp,
		logger: log,
	}
}

func (h *InventoryHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/stock", h.GetStock)
}

func (h *InventoryHandler) GetStock(c *gin.Context) {
	ownerID, ok := auth.OwnerFromGin(c)
	if !ok {
		h.resp.Error(c, apperror.ErrUnauthenticated)
		return
	}

	filter := &dto.StockFilter{OwnerID: ownerID}
	if raw := c.Query("low_stock"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.resp.Error(c, apperror.NewValidationError("low_stock", "must be an integer"))
			return
		}
		filter.LowStock = &n
	}

	view, err := h.uc.GetStock(c.Request.Context(), filter)
	if err != nil {
		h.resp.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
