package cart

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"karam/internal/domain"
	"karam/internal/middleware"
	"karam/internal/pkg/response"
)

type Handler struct {
	service  *Service
	loginURL string
}

func NewHandler(service *Service, loginURL string) *Handler {
	return &Handler{service: service, loginURL: loginURL}
}

// RegisterRoutes mounts the cart on a group carrying optional auth; the
// merge endpoint additionally demands a real login.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/cart", h.GetCart)
	rg.POST("/cart/items", h.AddItem)
	rg.DELETE("/cart/items/:id", h.RemoveItem)
	rg.DELETE("/cart", h.ClearCart)
	rg.POST("/cart/quote", h.QuoteCheckout)
	rg.POST("/cart/merge", auth, h.MergeCart)
}

func (h *Handler) GetCart(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	view, err := h.service.View(c.Request.Context(), ownerKey)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "PERSISTENCE_ERROR", "Failed to load cart")
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) AddItem(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	itemType := domain.CartItemType(strings.ToLower(req.Type))
	switch itemType {
	case domain.ItemFamily, domain.ItemProduct, domain.ItemBooking:
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown item type")
		return
	}

	item := domain.CartItem{
		ID:              req.ID,
		Type:            itemType,
		Name:            req.Name,
		Price:           req.Price,
		Image:           req.Image,
		City:            req.City,
		Category:        req.Category,
		GuestCount:      req.GuestCount,
		DiscountPercent: req.DiscountPercent,
	}
	if err := h.service.Add(c.Request.Context(), ownerKey, item); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateItem):
			response.Error(c, http.StatusConflict, "DUPLICATE_ITEM", "This item is already in the cart")
		default:
			response.Error(c, http.StatusBadGateway, "PERSISTENCE_ERROR", "Failed to save cart")
		}
		return
	}
	view, err := h.service.View(c.Request.Context(), ownerKey)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "PERSISTENCE_ERROR", "Failed to load cart")
		return
	}
	response.Success(c, http.StatusCreated, view)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item id")
		return
	}
	items, err := h.service.Remove(c.Request.Context(), ownerKey, id)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "PERSISTENCE_ERROR", "Failed to save cart")
		return
	}
	total := 0.0
	for _, it := range items {
		total += it.Price
	}
	response.Success(c, http.StatusOK, CartResponse{Items: items, Count: len(items), Total: round2(total)})
}

func (h *Handler) ClearCart(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	if err := h.service.Clear(c.Request.Context(), ownerKey); err != nil {
		response.Error(c, http.StatusBadGateway, "PERSISTENCE_ERROR", "Failed to clear cart")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

func (h *Handler) QuoteCheckout(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), ownerKey, middleware.UserID(c), req.DiscountCode)
	if err != nil {
		switch {
		case errors.Is(err, ErrAuthenticationRequired):
			response.ErrorWithRedirect(c, http.StatusUnauthorized, "AUTH_REQUIRED",
				"Log in to complete checkout", h.loginRedirect(c))
		case errors.Is(err, ErrEmptyCart):
			response.Error(c, http.StatusBadRequest, "EMPTY_CART", "The cart is empty")
		case errors.Is(err, ErrInvalidDiscount):
			response.Error(c, http.StatusBadRequest, "INVALID_DISCOUNT", "Discount code is invalid or expired")
		default:
			response.Error(c, http.StatusBadGateway, "PERSISTENCE_ERROR", "Failed to load cart")
		}
		return
	}
	response.Success(c, http.StatusOK, quote)
}

func (h *Handler) MergeCart(c *gin.Context) {
	var req struct {
		CartToken string `json:"cart_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	ownerKey, _ := middleware.OwnerKey(c)
	if err := h.service.Merge(c.Request.Context(), "anon:"+req.CartToken, ownerKey); err != nil {
		response.Error(c, http.StatusBadGateway, "PERSISTENCE_ERROR", "Failed to merge carts")
		return
	}
	view, err := h.service.View(c.Request.Context(), ownerKey)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "PERSISTENCE_ERROR", "Failed to load cart")
		return
	}
	response.Success(c, http.StatusOK, view)
}

// loginRedirect points at the login page with the current location attached,
// so the client lands back on checkout after authenticating.
func (h *Handler) loginRedirect(c *gin.Context) string {
	ret := c.Request.URL.RequestURI()
	if ref := c.GetHeader("Referer"); ref != "" {
		ret = ref
	}
	return h.loginURL + "?redirect=" + url.QueryEscape(ret)
}
