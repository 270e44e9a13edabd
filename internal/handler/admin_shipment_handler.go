package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/shipments（管理者向け）のHTTP
type AdminShipmentHandler struct {
	uc *usecase.ShipmentUsecase
}

func NewAdminShipmentHandler(uc *usecase.ShipmentUsecase) *AdminShipmentHandler {
	return &AdminShipmentHandler{uc: uc}
}

type ShipmentTransitionRequest struct {
	To string `json:"to"`
}

type ShipmentDetailsRequest struct {
	Carrier        *string `json:"carrier"`
	TrackingNumber *string `json:"tracking_number"`
	//エポックミリ秒
	ETA *int64 `json:"eta"`
}

func (h *AdminShipmentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/shipments")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("/:id/transition", h.transition)
	g.PATCH("/:id", h.updateDetails)
}

func (h *AdminShipmentHandler) transition(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ShipmentTransitionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Transition(c.Request().Context(), actorID, c.Param("id"), model.ShipmentStatus(req.To))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminShipmentHandler) updateDetails(c echo.Context) error {
	var req ShipmentDetailsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateDetails(c.Request().Context(), c.Param("id"), usecase.ShipmentDetailsInput{
		Carrier:        req.Carrier,
		TrackingNumber: req.TrackingNumber,
		ETA:            req.ETA,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
