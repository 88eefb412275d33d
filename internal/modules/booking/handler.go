package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"karam/internal/middleware"
	"karam/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the session routes on a group that already carries
// optional auth, so both logged-in users and anonymous carts can book.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.POST("/bookings/session", h.StartSession)
	rg.GET("/bookings/session", h.GetSession)
	rg.DELETE("/bookings/session", h.CloseSession)
	rg.POST("/bookings/session/guests", h.AddGuest)
	rg.PATCH("/bookings/session/guests/:guestID", h.UpdateGuest)
	rg.POST("/bookings/session/guests/:guestID/communication", h.ToggleCommunication)
	rg.POST("/bookings/session/guests/:guestID/medical", h.ToggleMedical)
	rg.DELETE("/bookings/session/guests/:guestID", h.RemoveGuest)
	rg.PUT("/bookings/session/notes", h.SetNotes)
	rg.POST("/bookings/session/checkout", h.Checkout)
	rg.GET("/bookings", auth, h.MyBookings)
}

func (h *Handler) StartSession(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	view, err := h.service.Start(c.Request.Context(), ownerKey, req.FamilyID, req.PackageType)
	if err != nil {
		if errors.Is(err, ErrInvalidPackageType) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown package type")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start booking session")
		return
	}
	response.Success(c, http.StatusCreated, view)
}

func (h *Handler) GetSession(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	view, err := h.service.Session(ownerKey)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) CloseSession(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	h.service.Close(ownerKey)
	response.Success(c, http.StatusOK, gin.H{"closed": true})
}

func (h *Handler) AddGuest(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	view, err := h.service.AddGuest(ownerKey)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) UpdateGuest(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	var req UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	view, err := h.service.UpdateGuestField(ownerKey, c.Param("guestID"), req.Field, req.Value)
	if err != nil {
		if errors.Is(err, ErrInvalidGuestField) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown guest field")
			return
		}
		h.sessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) ToggleCommunication(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	var req ToggleCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	view, err := h.service.ToggleCommunication(ownerKey, c.Param("guestID"), req.Method, req.Enabled)
	if err != nil {
		if errors.Is(err, ErrValidationFailed) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown communication method")
			return
		}
		h.sessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) ToggleMedical(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	var req ToggleMedicalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	view, err := h.service.ToggleMedical(ownerKey, c.Param("guestID"), req.Condition, req.Enabled)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) RemoveGuest(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	view, err := h.service.RemoveGuest(ownerKey, c.Param("guestID"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) SetNotes(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	var req NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	view, err := h.service.SetNotes(ownerKey, req.Notes)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) Checkout(c *gin.Context) {
	ownerKey, ok := middleware.OwnerKey(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "MISSING_OWNER", "Provide a bearer token or X-Cart-Token header")
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.ProceedToPayment(c.Request.Context(), ownerKey, middleware.UserID(c), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoActiveSession):
			h.sessionError(c, err)
		case errors.Is(err, ErrValidationFailed):
			var invalid *InvalidBookingError
			if errors.As(err, &invalid) {
				response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Booking payload is not valid", invalid.Fields)
				break
			}
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Every guest needs a full name, phone number and at least one communication method")
		case errors.Is(err, ErrPersistenceFailed):
			response.Error(c, http.StatusBadGateway, "PERSISTENCE_ERROR", "Failed to save the booking, please try again")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to complete booking")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) MyBookings(c *gin.Context) {
	bookings, err := h.service.MyBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) sessionError(c *gin.Context, err error) {
	if errors.Is(err, ErrNoActiveSession) {
		response.Error(c, http.StatusNotFound, "NO_ACTIVE_SESSION", "No booking session in progress")
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Booking session error")
}
