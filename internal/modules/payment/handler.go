package payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"karam/internal/middleware"
	"karam/internal/modules/cart"
	"karam/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/moyasar/init", h.InitPayment)
	rg.GET("/payments/moyasar/:invID", h.Status)
}

// RegisterPublicRoutes mounts the gateway redirect target; Moyasar lands
// the customer here, unauthenticated, after the hosted form completes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/payments/moyasar/callback", h.Callback)
}

func (h *Handler) InitPayment(c *gin.Context) {
	var req InitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ownerKey, _ := middleware.OwnerKey(c)
	resp, err := h.service.InitPayment(c.Request.Context(), ownerKey, middleware.UserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrEmptyCart), errors.Is(err, ErrEmptyCart):
			response.Error(c, http.StatusBadRequest, "EMPTY_CART", "The cart is empty")
		case errors.Is(err, cart.ErrInvalidDiscount):
			response.Error(c, http.StatusBadRequest, "INVALID_DISCOUNT", "Discount code is invalid or expired")
		case errors.Is(err, ErrNotConfigured):
			response.Error(c, http.StatusServiceUnavailable, "GATEWAY_UNAVAILABLE", "Payment gateway is not configured")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to initialize payment")
		}
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Callback(c *gin.Context) {
	invID, err := strconv.ParseInt(c.Query("inv_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid inv_id")
		return
	}
	gatewayID := c.Query("id")
	if gatewayID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing payment id")
		return
	}

	result, err := h.service.HandleCallback(c.Request.Context(), invID, gatewayID, c.Request.URL.RawQuery)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown invoice")
		case errors.Is(err, ErrAmountMismatch), errors.Is(err, ErrCurrencyMismatch):
			response.Error(c, http.StatusForbidden, "PAYMENT_REJECTED", "Payment verification failed")
		case errors.Is(err, ErrNotPaid):
			response.Error(c, http.StatusPaymentRequired, "NOT_PAID", "Payment was not completed")
		default:
			response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Payment verification unavailable")
		}
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Status(c *gin.Context) {
	invID, err := strconv.ParseInt(c.Param("invID"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid invoice id")
		return
	}
	p, err := h.service.Status(c.Request.Context(), invID, middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown invoice")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": p})
}
