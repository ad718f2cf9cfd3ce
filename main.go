package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"nambikkai-store/cache"
	"nambikkai-store/config"
	"nambikkai-store/controllers"
	"nambikkai-store/routes"
	"nambikkai-store/services"
	"nambikkai-store/store"
	"nambikkai-store/utils"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	if cfg.JwtSecret == "" {
		logger.Fatal().Msg("JWT_SECRET must be set")
	}
	utils.JwtKey = []byte(cfg.JwtSecret)

	// Pick the storage backend. Memory keeps everything in-process and
	// is meant for local runs without a database.
	var stores *store.Stores
	switch cfg.StoreDriver {
	case "memory":
		stores = store.NewMemoryStores()
		logger.Warn().Msg("using in-memory storage, data will not survive restarts")
	default:
		client, err := config.ConnectDB(cfg.MongoURI)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error().Err(err).Msg("error disconnecting from MongoDB")
			}
		}()
		stores = store.NewMongoStores(client, cfg.MongoName)
		logger.Info().Str("database", cfg.MongoName).Msg("connected to MongoDB")
	}

	// Optional product cache.
	var productCache *cache.ProductCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, product cache disabled")
		} else {
			productCache = cache.NewProductCache(rdb, 5*time.Minute, logger)
			logger.Info().Str("addr", cfg.RedisAddr).Msg("product cache enabled")
		}
		cancel()
	}

	emailService := utils.NewEmailService(cfg.SendgridKey, cfg.EmailFrom, logger)

	// Services
	userService := services.NewUserService(stores.Users)
	catalogService := services.NewCatalogService(stores.Products, productCache)
	cartService := services.NewCartService(stores.Carts, stores.Products)
	orderService := services.NewOrderService(stores, cartService, emailService, logger)
	adminService := services.NewAdminService(stores)

	// Controllers
	userController := controllers.NewUserController(userService)
	productController := controllers.NewProductController(catalogService, userService)
	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(orderService)
	adminController := controllers.NewAdminController(adminService, orderService)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, productController, cartController, orderController, adminController)

	logger.Info().Str("port", cfg.Port).Msg("server is running")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
