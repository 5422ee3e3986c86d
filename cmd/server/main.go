package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-toolkit-server/internal/config"
	"pdf-toolkit-server/internal/handler"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	// Expire idle sessions in the background
	stopJanitor := make(chan struct{})
	container.Sessions.StartJanitor(container.Config.GetSessionTTL(), time.Minute, stopJanitor)

	// Handlers
	mergeHandler := handler.NewMergeHandler(container.MergeService, container.Blobs, container.Config, container.Logger)
	splitHandler := handler.NewSplitHandler(container.SplitService, container.Blobs, container.Config, container.Logger)
	convertHandler := handler.NewConvertHandler(container.ConvertService, container.Config, container.Logger)
	clearHandler := handler.NewClearHandler(container.MergeService, container.SplitService, container.ConvertService, container.Logger)

	sessionMiddleware := handler.SessionMiddleware(container.Logger)

	// Router
	router := handler.NewRouter(
		mergeHandler,
		splitHandler,
		convertHandler,
		clearHandler,
		sessionMiddleware,
		container.Config.GetAllowedOrigins(),
	)

	// start server
	server := &http.Server{
		Addr:    ":" + container.Config.GetServerPort(),
		Handler: router,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	close(stopJanitor)
	_ = server.Close()

	container.Logger.Info("Server exited")
}
