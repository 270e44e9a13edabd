package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/products（管理者向け）のHTTP
type AdminProductHandler struct {
	uc *usecase.CatalogueUsecase
}

func NewAdminProductHandler(uc *usecase.CatalogueUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type AdminProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	//10進文字列（"1200.00"）
	BasePrice string `json:"base_price"`
	Status    string `json:"status"`
}

type AdminOptionRequest struct {
	SKU       string `json:"sku"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Stock     int64  `json:"stock"`
	Extra     string `json:"extra"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.POST("/:id/options", h.createOption)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AdminCreateProduct(c.Request().Context(), usecase.AdminProductInput{
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		BasePrice:   req.BasePrice,
		Status:      req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AdminUpdateProduct(c.Request().Context(), c.Param("id"), usecase.AdminProductInput{
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		BasePrice:   req.BasePrice,
		Status:      req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) createOption(c echo.Context) error {
	var req AdminOptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AdminCreateOption(c.Request().Context(), c.Param("id"), usecase.AdminOptionInput{
		SKU:       req.SKU,
		Attribute: req.Attribute,
		Value:     req.Value,
		Stock:     req.Stock,
		Extra:     req.Extra,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
