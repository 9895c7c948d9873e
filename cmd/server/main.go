package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rxscan/backend/config"
	"github.com/rxscan/backend/internal/barcode"
	httpDelivery "github.com/rxscan/backend/internal/delivery/http"
	"github.com/rxscan/backend/internal/infrastructure/cache"
	"github.com/rxscan/backend/internal/infrastructure/nadac"
	"github.com/rxscan/backend/internal/infrastructure/registry"
	"github.com/rxscan/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting RxScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Scan strictness: %s", cfg.Scan.Strictness)

	// Each resolver owns its own bounded cache; nothing here is ambient
	// global state.
	verifyCache := cache.NewBounded(cfg.Cache.VerifyCapacity)
	priceCache := cache.NewBounded(cfg.Cache.PriceCapacity)
	overrideCache := cache.NewBounded(cfg.Cache.OverrideCapacity)

	registryClient := registry.NewClient(cfg.Registry.APIKey, cfg.Registry.BaseURL, cfg.Registry.RequestsPerMinute)
	if cfg.Registry.APIKey != "" {
		log.Printf("Registry: %s (keyed)", cfg.Registry.BaseURL)
	} else {
		log.Printf("Registry: %s (anonymous; shared rate limit applies)", cfg.Registry.BaseURL)
	}

	pricingClient := nadac.NewClient(cfg.Pricing.BaseURL, cfg.Pricing.DatasetID, cfg.Pricing.RequestsPerMinute)
	log.Printf("Pricing: %s dataset %s", cfg.Pricing.BaseURL, cfg.Pricing.DatasetID)

	normalizer := barcode.NewNormalizer(barcode.Options{
		Strictness: barcode.Strictness(cfg.Scan.Strictness),
	})

	verifyService := usecase.NewVerifyService(registryClient, verifyCache)
	priceService := usecase.NewPriceService(pricingClient, priceCache)
	overrides := usecase.NewOverrides(overrideCache)
	scanService := usecase.NewScanService(normalizer, verifyService, priceService, overrides)

	handler := httpDelivery.NewHandler(scanService, verifyService, priceService, normalizer, overrides)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
