package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"boutiqueapi/config"
	"boutiqueapi/handlers"
	"boutiqueapi/middleware"
	"boutiqueapi/obs"
	"boutiqueapi/orders"
	"boutiqueapi/store"

	"github.com/gin-gonic/gin"
)

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendFirestore:
		if cfg.FirestoreProjectID == "" {
			return nil, errors.New("FIRESTORE_PROJECT_ID is required for the firestore backend")
		}
		return store.OpenFirestore(ctx, cfg.FirestoreProjectID)
	default:
		return nil, errors.New("unknown STORE_BACKEND: " + cfg.StoreBackend)
	}
}

func main() {
	obs.InitLogger()
	cfg := config.Load()

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	coord := orders.New(st, obs.Logger)
	app := handlers.NewApp(cfg, st, coord)
	secret := []byte(cfg.JWTSecret)

	// Create a new Gin router
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health-check", app.CheckConnection)

	// Public routes (no authentication required)
	r.POST("/register", app.RegisterUser)
	r.POST("/login", app.LoginUser)
	r.GET("/products", app.GetAllProducts)
	r.GET("/products/:id", app.GetProduct)
	r.POST("/orders", app.PlaceOrder)

	// Protected routes (authentication required)
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(secret))
	{
		// Chat routes
		auth.GET("/chat", app.GetMyMessages)
		auth.POST("/chat", app.PostMessage)
	}

	// Admin-only routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(secret), middleware.AdminRequired())
	{
		// Product management
		admin.POST("/products", app.CreateProduct)
		admin.PUT("/products/:id", app.UpdateProduct)
		admin.DELETE("/products/:id", app.DeleteProduct)

		// Order management
		admin.GET("/orders", app.GetAllOrders)
		admin.GET("/orders/:id", app.GetOrderDetails)
		admin.PUT("/orders/:id/status", app.UpdateOrderStatus)

		// Chat management
		admin.GET("/chats", app.ListChats)
		admin.GET("/chats/:id", app.GetChatMessages)
		admin.POST("/chats/:id", app.PostAdminMessage)
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	go func() {
		obs.Logger.Info("server starting", "addr", cfg.HTTPAddr, "backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	obs.Logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		obs.Logger.Error("shutdown", "err", err)
	}
}
