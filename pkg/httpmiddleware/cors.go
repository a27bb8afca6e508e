package httpmiddleware

import (
	"github.com/go-chi/cors"
)

// CORSConfig configures cross-origin access to the API.
type CORSConfig struct {
	// AllowOrigins lists origins permitted to make cross-origin requests.
	// Empty means all origins.
	AllowOrigins []string
	// AllowCredentials exposes responses to credentialed requests. When set,
	// origins must be listed explicitly.
	AllowCredentials bool
	// MaxAge is how long (in seconds) preflight results may be cached.
	MaxAge int
}

// CORS returns the CORS middleware for the storefront API.
func CORS(cfg CORSConfig) Middleware {
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
