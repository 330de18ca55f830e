package router

import (
	"time"

	"caribmenu/internal/auth"
	"caribmenu/internal/cart"
	"caribmenu/internal/catalog"
	"caribmenu/internal/expansion"
	"caribmenu/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers carries everything the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	Catalog      *catalog.Handler
	CatalogAdmin *catalog.AdminHandler
	Cart         *cart.Handler
	Session      *expansion.Handler
}

func NewRouter(h *Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:1313"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	// ───────────────────────── CATALOG ─────────────────────────
	items := r.Group("/items")
	{
		items.GET("", h.Catalog.ListItems)
		items.GET("/:slug/options", h.Catalog.GetItemOptions)
	}

	// ───────────────────────── BROWSING ─────────────────────────
	sessions := r.Group("/session")
	{
		sessions.POST("", h.Session.CreateSession)
		sessions.GET("/:id", h.Session.GetState)
		sessions.DELETE("/:id", h.Session.EndSession)
		sessions.POST("/:id/cards/:card/click", h.Session.Click)
		sessions.POST("/:id/cards/:card/selection", h.Session.Mutate)
	}

	// ───────────────────────── CART ─────────────────────────
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.AuthMiddleware())
	{
		cartGroup.POST("/items", h.Cart.AddItem)
		cartGroup.GET("", h.Cart.GetCart)
		cartGroup.DELETE("/items/:id", h.Cart.RemoveEntry)
		cartGroup.DELETE("", h.Cart.ClearCart)
	}

	// ───────────────────────── ADMIN ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.POST("/items", h.CatalogAdmin.UpsertItem)
		admin.POST("/items/:slug/images", h.CatalogAdmin.UploadItemImage)
	}

	return r
}
