package wire

import (
	"resto-booking/internal/adaptor"
	"resto-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRestaurant(
	r chi.Router,
	restaurantHandler *adaptor.RestaurantHandler,
	reviewHandler *adaptor.ReviewHandler,
	verifier *middleware.ClerkVerifier,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/restaurants - Browse the catalog
	r.Get("/api/restaurants", restaurantHandler.ListRestaurants)

	// GET /api/restaurants/{id} - Restaurant details
	r.Get("/api/restaurants/{id}", restaurantHandler.GetRestaurantByID)

	// GET /api/restaurants/{id}/reviews - Reviews for a restaurant
	r.Get("/api/restaurants/{id}/reviews", reviewHandler.GetRestaurantReviews)

	// GET /api/restaurants/{id}/reviews/stats - Rating summary
	r.Get("/api/restaurants/{id}/reviews/stats", reviewHandler.GetRestaurantReviewStats)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthClerk(verifier, log))

		// POST /api/restaurants/{id}/reviews - Leave a review
		r.Post("/api/restaurants/{id}/reviews", reviewHandler.CreateReview)

		// PUT /api/reviews/{id} - Edit own review
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)

		// DELETE /api/reviews/{id} - Delete own review (admins may delete any)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/restaurants", func(r chi.Router) {
		r.Use(middleware.AuthClerk(verifier, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/restaurants - List all restaurants including inactive
		r.Get("/", restaurantHandler.ListAllRestaurants)

		// POST /api/admin/restaurants - Create restaurant
		r.Post("/", restaurantHandler.CreateRestaurant)

		// PUT /api/admin/restaurants/{id} - Update restaurant
		r.Put("/{id}", restaurantHandler.UpdateRestaurant)

		// PUT /api/admin/restaurants/{id}/status - Activate or deactivate
		r.Put("/{id}/status", restaurantHandler.UpdateRestaurantStatus)

		// PUT /api/admin/restaurants/{id}/featured - Toggle featured flag
		r.Put("/{id}/featured", restaurantHandler.SetFeatured)
	})
}
