package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"CONVERSOR_BACK-END/internal/config"
	"CONVERSOR_BACK-END/internal/handlers"
	"CONVERSOR_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	profileHandler *handlers.ProfileHandler,
	preferenceHandler *handlers.PreferenceHandler,
	healthHandler *handlers.HealthHandler,
	jwtCfg *config.JWTConfig,
) {
	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Owner-scoped store routes (Bearer JWT required)
	http.HandleFunc("/api/profile", middleware.AuthMiddleware(profileHandler.Handle, jwtCfg))
	http.HandleFunc("/api/preferences", middleware.AuthMiddleware(preferenceHandler.Handle, jwtCfg))

	// Swagger UI
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Conversor preference store is running."))
}
