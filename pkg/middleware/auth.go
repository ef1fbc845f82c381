package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"resto-booking/pkg/utils"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ClerkVerifier validates session tokens issued by Clerk against its JWKS endpoint.
// Identity lives entirely in Clerk; this service only verifies and extracts claims.
type ClerkVerifier struct {
	jwks   *keyfunc.JWKS
	issuer string
	log    *zap.Logger
}

func NewClerkVerifier(config utils.ClerkConfig, logger *zap.Logger) (*ClerkVerifier, error) {
	jwks, err := keyfunc.Get(config.JWKSURL, keyfunc.Options{
		Ctx:             context.Background(),
		RefreshInterval: time.Hour,
		RefreshTimeout:  10 * time.Second,
		RefreshErrorHandler: func(err error) {
			logger.Warn("JWKS refresh failed", zap.Error(err))
		},
	})
	if err != nil {
		return nil, err
	}

	return &ClerkVerifier{
		jwks:   jwks,
		issuer: config.Issuer,
		log:    logger.With(zap.String("middleware", "auth")),
	}, nil
}

// Verify parses and validates a raw session token, returning the subject and role claims
func (v *ClerkVerifier) Verify(tokenString string) (userID, role string, err error) {
	token, err := jwt.Parse(tokenString, v.jwks.Keyfunc,
		jwt.WithIssuer(v.issuer),
		jwt.WithValidMethods([]string{"RS256"}),
	)
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", "", jwt.ErrTokenInvalidSubject
	}

	// Role is an optional custom claim configured in the Clerk dashboard
	roleClaim, _ := claims["role"].(string)

	return sub, roleClaim, nil
}

// AuthClerk middleware validates the bearer token on protected routes
func AuthClerk(verifier *ClerkVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			userID, role, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Warn("Invalid or expired session token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin middleware checks the role claim set by AuthClerk
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != "admin" {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
