package handler

import (
	"net/http"
	"strconv"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/orders（管理者向け）のHTTP
type AdminOrderHandler struct {
	orderUC    *usecase.OrderUsecase
	shipmentUC *usecase.ShipmentUsecase
	invoiceUC  *usecase.InvoiceUsecase
}

func NewAdminOrderHandler(
	orderUC *usecase.OrderUsecase,
	shipmentUC *usecase.ShipmentUsecase,
	invoiceUC *usecase.InvoiceUsecase,
) *AdminOrderHandler {
	return &AdminOrderHandler{orderUC: orderUC, shipmentUC: shipmentUC, invoiceUC: invoiceUC}
}

type OrderTransitionRequest struct {
	To string `json:"to"`
	//読み取り時点のversion。別の遷移が先に入っていたら409
	Version int64 `json:"version"`
}

type OrderOverrideRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("/:id/transition", h.transition)
	g.POST("/:id/override", h.override)
	g.GET("/:id/shipment", h.shipment)
	g.GET("/:id/invoice", h.invoice)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	f := repo.AdminOrderListFilter{Page: 1, Limit: 20}

	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		f.Page = p
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		f.Limit = l
	}
	f.Status = c.QueryParam("status")
	if v := c.QueryParam("user_id"); v != "" {
		f.UserID = &v
	}
	//期間はエポックミリ秒で受ける
	if v := c.QueryParam("from"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		t := time.UnixMilli(ms)
		f.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		t := time.UnixMilli(ms)
		f.To = &t
	}

	out, err := h.orderUC.ListAdmin(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	out, err := h.orderUC.GetAdminOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) transition(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderTransitionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orderUC.Transition(c.Request().Context(), actorID, c.Param("id"), usecase.OrderTransitionInput{
		To:      model.OrderStatus(req.To),
		Version: req.Version,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) override(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderOverrideRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orderUC.OverrideStatus(c.Request().Context(), actorID, c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) shipment(c echo.Context) error {
	out, err := h.shipmentUC.GetForOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) invoice(c echo.Context) error {
	out, err := h.invoiceUC.GetForOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
