package api

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erazemk/foodcourt/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	foodsHandler := &FoodsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public.
	mux.HandleFunc("POST /api/user/login", authHandler.Login)
	mux.HandleFunc("GET /api/food/list", foodsHandler.List)
	mux.HandleFunc("GET /api/food/{id}/image", foodsHandler.GetImage)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Admin only.
	mux.Handle("POST /api/food/add", authMW(requireAdmin(http.HandlerFunc(foodsHandler.Add))))

	return LoggingMiddleware(mux)
}
