package main

import (
	"context"
	"errors"
	"explorerhub/config"
	"explorerhub/handlers"
	"explorerhub/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// MongoDB
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")
	draftStore := services.NewMongoDraftStore(mongoClient.Database(cfg.MongoDatabase))
	if err := draftStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create trip draft indexes: %v", err)
	}

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	// Initialize services and handlers
	backend := services.NewBackendClient(cfg.BackendURL, cfg.BackendTimeout)
	tokens := services.NewTokenInspector(cfg.JWTSecret)
	sessions := services.NewSessionService(redisClient, tokens, cfg.SessionTTL)
	listingCache := services.NewListingCache(redisClient, cfg.ListingCacheTTL)

	authService := services.NewAuthService(backend, sessions)
	businessService := services.NewBusinessService(backend, listingCache, authService, cfg.ExploreFetchLimit)
	reviewService := services.NewReviewService(backend, listingCache)
	tripService := services.NewTripService(backend)
	draftService := services.NewDraftService(draftStore, tripService)

	router := handlers.Router{
		Auth:           handlers.NewAuthHandler(authService),
		Businesses:     handlers.NewBusinessHandler(businessService),
		Reviews:        handlers.NewReviewHandler(reviewService),
		Trips:          handlers.NewTripHandler(tripService),
		Drafts:         handlers.NewDraftHandler(draftService, authService),
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
	}.Build()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (backend %s)", cfg.Port, cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("Redis close failed: %v", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect failed: %v", err)
	}
}
