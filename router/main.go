package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paulaveiga/doceria-api/config"
	"github.com/paulaveiga/doceria-api/database"
	"github.com/paulaveiga/doceria-api/handlers"
	auth_handlers "github.com/paulaveiga/doceria-api/handlers/auth"
	cake_handlers "github.com/paulaveiga/doceria-api/handlers/cake"
	category_handlers "github.com/paulaveiga/doceria-api/handlers/category"
	instagram_handlers "github.com/paulaveiga/doceria-api/handlers/instagram"
	settings_handlers "github.com/paulaveiga/doceria-api/handlers/settings"
	stats_handlers "github.com/paulaveiga/doceria-api/handlers/stats"
	testimonial_handlers "github.com/paulaveiga/doceria-api/handlers/testimonial"
	upload_handlers "github.com/paulaveiga/doceria-api/handlers/upload"
	instagramsvc "github.com/paulaveiga/doceria-api/services/instagram"
	"github.com/paulaveiga/doceria-api/services/storage"
	"github.com/paulaveiga/doceria-api/utils/auth"
	"github.com/paulaveiga/doceria-api/utils/cache"
	"github.com/paulaveiga/doceria-api/utils/middleware"
)

// SetupRoutes wires every endpoint of the REST contract
func SetupRoutes(app *fiber.App, store *database.GORMStore, sync *instagramsvc.SyncService) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to read environment: ", err)
	}

	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "doceria-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: 24 * time.Hour,
		Issuer: jwtIssuer,
	})

	db := store.DB()

	// Redis is optional: without it login lockouts and the public
	// settings cache are simply disabled.
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Login lockout protection disabled.", err)
		}
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Uploads go to Spaces when a bucket is configured, otherwise they
	// come back as inline data URLs.
	var uploader storage.Uploader
	spacesConfig := storage.SpacesConfig{
		AccessKey: getEnv.SPACES_ACCESS_KEY,
		SecretKey: getEnv.SPACES_SECRET_KEY,
		Bucket:    getEnv.SPACES_BUCKET,
		Region:    getEnv.SPACES_REGION,
		Endpoint:  getEnv.SPACES_ENDPOINT,
		CDNURL:    getEnv.SPACES_CDN_URL,
	}
	if spacesConfig.Configured() {
		uploader, err = storage.NewSpacesStore(spacesConfig)
		if err != nil {
			log.Fatal("Failed to initialize Spaces storage: ", err)
		}
	} else {
		log.Println("Object storage not configured, uploads will be returned as data URLs")
		uploader = storage.NewInlineStore()
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	categoryHandler := category_handlers.NewCategoryHandler(db)
	cakeHandler := cake_handlers.NewCakeHandler(db)
	testimonialHandler := testimonial_handlers.NewTestimonialHandler(db)
	settingsHandler := settings_handlers.NewSettingsHandler(db, redisCache)
	uploadHandler := upload_handlers.NewUploadHandler(uploader)
	statsHandler := stats_handlers.NewStatsHandler(db)
	syncHandler := instagram_handlers.NewSyncHandler(sync)

	allowedOrigins := getEnv.ALLOWED_ORIGINS
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HealthCheck(store))

	api := app.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Categories: public reads, bearer writes
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.ListCategories)
	categories.Post("/", authMiddleware.Required(), categoryHandler.CreateCategory)
	categories.Delete("/:id", authMiddleware.Required(), categoryHandler.DeleteCategory)

	// Cakes: public reads (with filters), bearer writes
	cakes := api.Group("/cakes")
	cakes.Get("/", cakeHandler.ListCakes)
	cakes.Get("/:id", cakeHandler.GetCake)
	cakes.Post("/", authMiddleware.Required(), cakeHandler.CreateCake)
	cakes.Put("/:id", authMiddleware.Required(), cakeHandler.UpdateCake)
	cakes.Delete("/:id", authMiddleware.Required(), cakeHandler.DeleteCake)

	// Testimonials: public reads, bearer writes
	testimonials := api.Group("/testimonials")
	testimonials.Get("/", testimonialHandler.ListTestimonials)
	testimonials.Post("/", authMiddleware.Required(), testimonialHandler.CreateTestimonial)
	testimonials.Delete("/:id", authMiddleware.Required(), testimonialHandler.DeleteTestimonial)

	// Settings: public scope strips secrets, admin scope requires bearer
	api.Get("/settings", settingsHandler.GetPublicSettings)
	api.Get("/settings/admin", authMiddleware.Required(), settingsHandler.GetAdminSettings)
	api.Put("/settings", authMiddleware.Required(), settingsHandler.UpdateSettings)

	// Uploads, stats and the sync trigger are admin-only
	api.Post("/upload", authMiddleware.Required(), uploadHandler.Upload)
	api.Get("/stats", authMiddleware.Required(), statsHandler.GetStats)
	api.Post("/instagram/sync", authMiddleware.Required(), syncHandler.TriggerSync)
}
