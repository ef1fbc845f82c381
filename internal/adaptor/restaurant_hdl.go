package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"resto-booking/internal/dto/request"
	"resto-booking/internal/usecase"
	"resto-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RestaurantHandler struct {
	service usecase.RestaurantService
	log     *zap.Logger
}

func NewRestaurantHandler(service usecase.RestaurantService, log *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		log:     log.With(zap.String("handler", "restaurant")),
	}
}

// ListRestaurants handles GET /api/restaurants (public)
func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	var featured *bool
	if raw := query.Get("featured"); raw != "" {
		val := raw == "true"
		featured = &val
	}

	restaurants, err := h.service.ListRestaurants(r.Context(), query.Get("cuisine"), featured, req)
	if err != nil {
		h.handleServiceError(w, err, "list restaurants")
		return
	}

	utils.ResponseSuccess(w, "success", restaurants)
}

// GetRestaurantByID handles GET /api/restaurants/{id} (public)
func (h *RestaurantHandler) GetRestaurantByID(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "id")
	if restaurantID == "" {
		utils.ResponseBadRequest(w, "Restaurant ID is required", nil)
		return
	}

	restaurant, err := h.service.GetRestaurantByID(r.Context(), restaurantID)
	if err != nil {
		h.handleServiceError(w, err, "get restaurant by ID")
		return
	}

	utils.ResponseSuccess(w, "success", restaurant)
}

// ==================== ADMIN METHODS ====================

// CreateRestaurant handles POST /api/admin/restaurants (admin only)
func (h *RestaurantHandler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	restaurant, err := h.service.CreateRestaurant(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create restaurant")
		return
	}

	utils.ResponseCreated(w, "success", restaurant)
}

// UpdateRestaurant handles PUT /api/admin/restaurants/{id} (admin only)
func (h *RestaurantHandler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "id")
	if restaurantID == "" {
		utils.ResponseBadRequest(w, "Restaurant ID is required", nil)
		return
	}

	var req request.UpdateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	restaurant, err := h.service.UpdateRestaurant(r.Context(), restaurantID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update restaurant")
		return
	}

	utils.ResponseSuccess(w, "success", restaurant)
}

// UpdateRestaurantStatus handles PUT /api/admin/restaurants/{id}/status (admin only)
func (h *RestaurantHandler) UpdateRestaurantStatus(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "id")
	if restaurantID == "" {
		utils.ResponseBadRequest(w, "Restaurant ID is required", nil)
		return
	}

	var req request.UpdateRestaurantStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateRestaurantStatus(r.Context(), restaurantID, &req); err != nil {
		h.handleServiceError(w, err, "update restaurant status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// SetFeatured handles PUT /api/admin/restaurants/{id}/featured (admin only)
func (h *RestaurantHandler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "id")
	if restaurantID == "" {
		utils.ResponseBadRequest(w, "Restaurant ID is required", nil)
		return
	}

	var req request.SetFeaturedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetFeatured(r.Context(), restaurantID, &req); err != nil {
		h.handleServiceError(w, err, "set restaurant featured")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListAllRestaurants handles GET /api/admin/restaurants (admin only)
func (h *RestaurantHandler) ListAllRestaurants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	restaurants, err := h.service.ListAllRestaurants(r.Context(), query.Get("status"), req)
	if err != nil {
		h.handleServiceError(w, err, "list all restaurants")
		return
	}

	utils.ResponseSuccess(w, "success", restaurants)
}

// handleServiceError handles errors for restaurant operations
func (h *RestaurantHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
