package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
)

// /checkoutのHTTP
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckoutRequest struct {
	//請求先と配送先のちょうど2件
	AddressIDs     []string `json:"address_ids"`
	IdempotencyKey string   `json:"idempotency_key"`
}

type CheckoutRejectedResponse struct {
	Violations []validator.Violation `json:"violations"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/checkout")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.checkout)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	result, err := h.uc.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{
		AddressIDs:     req.AddressIDs,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return writeError(c, err)
	}

	//拒否は違反一式を422で返す（途中で止めず全部入っている）
	if result.Rejected() {
		return c.JSON(http.StatusUnprocessableEntity, CheckoutRejectedResponse{Violations: result.Violations})
	}

	return c.JSON(http.StatusCreated, result.Order)
}
