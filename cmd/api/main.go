package main

import (
	"context"
	"log"
	"os"

	"caribmenu/internal/auth"
	"caribmenu/internal/cart"
	"caribmenu/internal/catalog"
	"caribmenu/internal/db"
	"caribmenu/internal/expansion"
	"caribmenu/internal/router"
	"caribmenu/internal/storage"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── REPOS ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	itemRepo := catalog.NewPostgresRepository(pgDB)
	cartRepo := cart.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	optionLoader := catalog.NewLoader()
	authService := auth.NewService(userRepo)
	catalogService := catalog.NewService(itemRepo, optionLoader, r2Client)
	cartService := cart.NewService(cartRepo)

	// ───────────────────────── HANDLERS ─────────────────────────
	handlers := &router.Handlers{
		Auth:         auth.NewHandler(authService),
		Catalog:      catalog.NewHandler(catalogService),
		CatalogAdmin: catalog.NewAdminHandler(catalogService),
		Cart:         cart.NewHandler(cartService, catalogService, cartRepo),
		Session:      expansion.NewHandler(optionLoader, catalogService),
	}

	r := router.NewRouter(handlers)

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
