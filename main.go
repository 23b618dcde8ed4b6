package main

import (
	"log"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vitor-paiva/comanda-live/config"
	"github.com/vitor-paiva/comanda-live/controllers"
	"github.com/vitor-paiva/comanda-live/middleware"
	"github.com/vitor-paiva/comanda-live/services"
)

func main() {
	// Basic logging
	log.Println("Starting Comanda Live server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// All state lives in these two components for the lifetime of the
	// process; nothing is persisted across restarts.
	registry := services.NewTableRegistry(cfg.TableCount)
	ledger := services.NewOrderLedger(registry, cfg.StrictTransitions)
	hub := services.NewHub()
	log.Printf("Initialized %d tables", cfg.TableCount)
	if cfg.StrictTransitions {
		log.Println("Strict order status transitions enabled")
	}

	router := setupRouter(cfg, registry, ledger, hub)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires the websocket gateway, the API routes and the static
// entry document onto a Gin engine
func setupRouter(cfg *config.Config, registry *services.TableRegistry, ledger *services.OrderLedger, hub *services.Hub) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.IsTest() {
		gin.SetMode(gin.TestMode)
	}
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST"},
		AllowHeaders:    []string{"Origin", "Content-Type", middleware.RequestIDHeader},
	}))

	// Event gateway
	gateway := controllers.NewGateway(hub, ledger, registry)
	router.GET("/ws", gateway.Handle)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", controllers.HealthCheck)
		v1.GET("/summary", controllers.OrderSummary(ledger))
	}

	// Static entry document and assets
	router.StaticFile("/", filepath.Join(cfg.PublicDir, "index.html"))
	router.Static("/public", cfg.PublicDir)

	return router
}
