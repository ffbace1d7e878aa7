package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"stockroom/api/internal/config"
	"stockroom/api/internal/mail"
	"stockroom/api/internal/middleware"
	"stockroom/api/internal/repository"
	"stockroom/api/internal/service"
	"stockroom/api/internal/storage"
)

type HandlerSet struct {
	log            zerolog.Logger
	cfg            *config.AppConfig
	authService    *service.AuthService
	resetService   *service.ResetService
	productService *service.ProductService
	users          middleware.UserResolver
	db             *pgxpool.Pool
	cache          *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, mailer mail.Mailer, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewResetTokenRepository(db)
	productRepo := repository.NewProductRepository(db)

	auth := service.NewAuthService(userRepo, cfg, log)
	reset := service.NewResetService(userRepo, resetRepo, mailer, cfg, log)
	products := service.NewProductService(productRepo, store, cache, log)

	return HandlerSet{
		log:            log,
		cfg:            cfg,
		authService:    auth,
		resetService:   reset,
		productService: products,
		users:          userRepo,
		db:             db,
		cache:          cache,
	}
}

func (h HandlerSet) Mount(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	gate := middleware.Auth(h.cfg.Security.JWTSecret, h.users)

	users := router.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/logout", h.Logout)
		users.GET("/loggedin", h.LoginStatus)
		users.POST("/forgotpassword", h.ForgotPassword)
		users.PUT("/resetpassword/:resetToken", h.ResetPassword)

		protected := users.Group("")
		protected.Use(gate)
		protected.GET("/getuser", h.GetUser)
		protected.PATCH("/updateuser", h.UpdateUser)
		protected.PATCH("/changepassword", h.ChangePassword)
	}

	products := router.Group("/products")
	products.Use(gate)
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}
