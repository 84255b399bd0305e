// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"go-storefront/config"
	"go-storefront/controllers"
	"go-storefront/routes"
	"go-storefront/storage"
	"go-storefront/utils"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWTSecret)

	// Open the key-value backend
	kv, err := storage.Open(context.Background(), storage.Options{
		Driver:          cfg.StorageDriver,
		SQLitePath:      cfg.SQLitePath,
		MongoURI:        cfg.MongoURI,
		MongoDatabase:   cfg.MongoDatabase,
		MongoCollection: cfg.MongoCollection,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()
	store := storage.NewShared(kv, storage.WithStrict(cfg.StrictStorage))

	if cfg.SeedFile != "" {
		seed, err := storage.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal(err)
		}
		if err := seed.Apply(context.Background(), store); err != nil {
			log.Fatal(err)
		}
	}

	// Initialize EmailService (nil when no provider is configured)
	emailService, err := utils.NewEmailService(utils.EmailConfig{
		Provider:         cfg.EmailProvider,
		PostmarkAPIToken: cfg.PostmarkAPIToken,
		SendgridAPIKey:   cfg.SendgridAPIKey,
		Sender:           cfg.EmailSender,
		NotifyTo:         cfg.OrderNotifyEmail,
	})
	if err != nil {
		log.Fatal(err)
	}
	if cfg.AdminPasswordHash == "" {
		log.Println("ADMIN_PASSWORD_HASH is not set; admin sign-in is disabled.")
	}

	// Initialize controllers
	productController := controllers.NewProductController(store)
	cartController := controllers.NewCartController(store)
	orderController := controllers.NewOrderController(store, emailService)
	settingsController := controllers.NewSettingsController(store)
	adminController := controllers.NewAdminController(store, cfg.AdminUsername, cfg.AdminPasswordHash)
	updatesController := controllers.NewUpdatesController(store, cfg.PollInterval)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, productController, cartController, orderController, settingsController, adminController, updatesController)

	fmt.Printf("Server is running on port %s (storage: %s)\n", cfg.Port, cfg.StorageDriver)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Printf("server stopped: %v", err)
	}
}
