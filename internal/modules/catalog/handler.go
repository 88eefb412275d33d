package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"karam/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/families", h.ListFamilies)
	rg.GET("/families/:id", h.GetFamily)
	rg.GET("/souvenirs", h.ListSouvenirs)
	rg.GET("/souvenirs/:id", h.GetSouvenir)
}

func (h *Handler) ListFamilies(c *gin.Context) {
	filter := FamilyFilter{
		Search:      c.Query("search"),
		City:        c.Query("city"),
		PackageType: c.Query("package"),
	}
	list, err := h.service.ListFamilies(c.Request.Context(), filter, SortCriterion(c.Query("sort")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load families")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetFamily(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid family id")
		return
	}
	f, err := h.service.GetFamily(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Family not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load family")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"family": f})
}

func (h *Handler) ListSouvenirs(c *gin.Context) {
	filter := ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	list, err := h.service.ListProducts(c.Request.Context(), filter, SortCriterion(c.Query("sort")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load souvenirs")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) GetSouvenir(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid souvenir id")
		return
	}
	p, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Souvenir not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load souvenir")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"souvenir": p})
}
