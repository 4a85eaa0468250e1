package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/frognance/frognance/internal/balance"
	"github.com/frognance/frognance/internal/category"
	"github.com/frognance/frognance/internal/config"
	"github.com/frognance/frognance/internal/database"
	"github.com/frognance/frognance/internal/export"
	"github.com/frognance/frognance/internal/group"
	"github.com/frognance/frognance/internal/invitation"
	"github.com/frognance/frognance/internal/transaction"
	"github.com/frognance/frognance/internal/user"
	mw "github.com/frognance/frognance/pkg/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, nil)))

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	slog.Info("connected to database")

	auth := mw.NewAuthenticator(cfg.JWTSecret, cfg.TokenTTL)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, auth)
	userHandler := user.NewHandler(userService, auth)

	// Category feature
	categoryRepo := category.NewRepository(db)
	categoryService := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categoryService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Transaction feature (category and membership checks injected)
	transactionRepo := transaction.NewRepository(db)
	transactionService := transaction.NewService(transactionRepo, categoryRepo, groupRepo)
	transactionHandler := transaction.NewHandler(transactionService)

	// Invitation feature
	invitationRepo := invitation.NewRepository(db)
	invitationService := invitation.NewService(invitationRepo)
	invitationHandler := invitation.NewHandler(invitationService)

	// Balance feature
	balanceRepo := balance.NewRepository(db)
	balanceService := balance.NewService(balanceRepo)
	balanceHandler := balance.NewHandler(balanceService)

	// Export feature
	exportService := export.NewService(balanceService)
	exportHandler := export.NewHandler(exportService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Register and login live inside the user router unauthenticated
		r.Mount("/users", userHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)
			r.Mount("/categories", categoryHandler.Routes())
			r.Mount("/transactions", transactionHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/invitations", invitationHandler.Routes())
			r.Mount("/balance", balanceHandler.Routes())
			r.Mount("/export", exportHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
