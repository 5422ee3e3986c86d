package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	mergeHandler *MergeHandler,
	splitHandler *SplitHandler,
	convertHandler *ConvertHandler,
	clearHandler *ClearHandler,
	sessionMiddleware func(http.Handler) http.Handler,
	allowedOrigins []string,
) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint (no session required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-toolkit-server"}`))
	}).Methods("GET")

	// API prefix; every route below runs with a session attached
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(sessionMiddleware)

	// Merge tab
	api.HandleFunc("/merge/upload", mergeHandler.Upload).Methods("POST")
	api.HandleFunc("/merge/files", mergeHandler.Files).Methods("GET")
	api.HandleFunc("/merge/reorder", mergeHandler.Reorder).Methods("POST")
	api.HandleFunc("/merge/process", mergeHandler.Process).Methods("POST")
	api.HandleFunc("/merge/download", mergeHandler.Download).Methods("GET")

	// Split tab
	api.HandleFunc("/split/upload", splitHandler.Upload).Methods("POST")
	api.HandleFunc("/split/process", splitHandler.Process).Methods("POST")
	api.HandleFunc("/split/download/{index}", splitHandler.Download).Methods("GET")

	// Convert tab
	api.HandleFunc("/convert/upload", convertHandler.Upload).Methods("POST")
	api.HandleFunc("/convert/extract", convertHandler.Extract).Methods("POST")
	api.HandleFunc("/convert/text", convertHandler.UpdateText).Methods("POST")
	api.HandleFunc("/convert/download/{format}", convertHandler.Download).Methods("GET")

	// Section reset
	api.HandleFunc("/clear/{section}", clearHandler.Clear).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
