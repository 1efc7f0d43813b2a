package main

import (
	"context"
	"log"
	"net/http"

	"stylehub/internal/cart"
	"stylehub/internal/client"
	"stylehub/internal/config"
	"stylehub/internal/logger"
	"stylehub/internal/store"
	"stylehub/internal/transport"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	api := client.New(cfg.CatalogAPIURL, cfg.FetchTimeout)
	catalogStore := store.New(api)
	ledger := cart.NewLedger()

	// Warm the catalog; a failure is recorded in the store and the client
	// can retry through POST /catalog/load.
	if err := catalogStore.Load(context.Background()); err != nil {
		log.Printf("initial catalog load failed: %v", err)
	}

	handler := transport.NewHandler(catalogStore, ledger, api)

	log.Printf("🛍️  storefront API running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, handler.Routes()))
}
