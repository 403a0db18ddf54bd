package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/example/backoffice/pkg/config"
	"github.com/example/backoffice/pkg/service"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	auth     *service.AuthService
	orders   *service.OrderService
	clients  *service.ClientService
	products *service.ProductService
	images   *service.ProductImageService
	catalog  *service.CatalogService
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	auth *service.AuthService,
	orders *service.OrderService,
	clients *service.ClientService,
	products *service.ProductService,
	images *service.ProductImageService,
	catalog *service.CatalogService,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config:   cfg,
		logger:   logger,
		router:   router,
		auth:     auth,
		orders:   orders,
		clients:  clients,
		products: products,
		images:   images,
		catalog:  catalog,
	}
}

func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
			auth.POST("/refresh", s.authMiddleware(), s.refreshToken)
		}

		clients := v1.Group("/clients", s.authMiddleware())
		{
			clients.POST("", s.createClient)
			clients.GET("", s.listClients)
			clients.GET("/:id", s.getClient)
			clients.PUT("/:id", s.updateClient)
			clients.DELETE("/:id", s.requireAdmin(), s.deleteClient)
		}

		products := v1.Group("/products", s.authMiddleware())
		{
			products.POST("", s.createProduct)
			products.GET("", s.listProducts)
			products.GET("/:id", s.getProduct)
			products.PUT("/:id", s.updateProduct)
			products.DELETE("/:id", s.requireAdmin(), s.deleteProduct)
		}

		images := v1.Group("/product-images", s.authMiddleware())
		{
			images.POST("", s.createImage)
			images.GET("", s.listImages)
			images.GET("/:id", s.getImage)
			images.PUT("/:id", s.updateImage)
			images.DELETE("/:id", s.requireAdmin(), s.deleteImage)
		}

		categories := v1.Group("/categories", s.authMiddleware())
		{
			categories.POST("", s.createCategory)
			categories.GET("", s.listCategories)
			categories.GET("/:id", s.getCategory)
			categories.PUT("/:id", s.updateCategory)
			categories.DELETE("/:id", s.requireAdmin(), s.deleteCategory)
		}

		genders := v1.Group("/genders", s.authMiddleware())
		{
			genders.POST("", s.createGender)
			genders.GET("", s.listGenders)
			genders.GET("/:id", s.getGender)
			genders.PUT("/:id", s.updateGender)
			genders.DELETE("/:id", s.requireAdmin(), s.deleteGender)
		}

		sizes := v1.Group("/sizes", s.authMiddleware())
		{
			sizes.POST("", s.createSize)
			sizes.GET("", s.listSizes)
			sizes.GET("/:id", s.getSize)
			sizes.PUT("/:id", s.updateSize)
			sizes.DELETE("/:id", s.requireAdmin(), s.deleteSize)
		}

		orders := v1.Group("/orders", s.authMiddleware())
		{
			orders.POST("", s.createOrder)
			orders.GET("", s.listOrders)
			orders.GET("/:id", s.getOrder)
			orders.PUT("/:id", s.updateOrderStatus)
			orders.DELETE("/:id", s.requireAdmin(), s.deleteOrder)
			orders.GET("/:id/audit", s.requireAdmin(), s.getOrderAudit)
		}
	}

	// Swagger
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("API server starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
