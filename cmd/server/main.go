package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/Shubham-7300/Portfolio-Backend/internal/config"
	"github.com/Shubham-7300/Portfolio-Backend/internal/database"
	"github.com/Shubham-7300/Portfolio-Backend/internal/handlers"
	"github.com/Shubham-7300/Portfolio-Backend/internal/middleware"
	"github.com/Shubham-7300/Portfolio-Backend/internal/routes"
	"github.com/Shubham-7300/Portfolio-Backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.PortfolioUserID == "" {
		log.Println("⚠️  WARNING: PORTFOLIO_USER_ID not set. The public portfolio endpoint will return 404.")
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	if err := database.EnsureIndexes(context.Background()); err != nil {
		log.Fatal("Failed to ensure MongoDB indexes:", err)
	}
	log.Println("✅ MongoDB indexes ensured")

	// Initialize Cloudinary service
	media, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatal("Failed to initialize Cloudinary:", err)
	}
	log.Println("✅ Cloudinary service initialized")

	mail := services.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPMail, cfg.SMTPPassword)

	h := handlers.New(cfg, database.DB, media, mail)

	// Setup router
	r := chi.NewRouter()

	// Credentialed CORS: the portfolio and the dashboard live on different
	// origins and both send the session cookie.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Redis-backed rate limiting when a Redis URI is configured
	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis...")
		if err := database.ConnectRedis(cfg.RedisURI); err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer database.DisconnectRedis()
		r.Use(middleware.RateLimit)
	} else {
		log.Println("Warning: REDIS_URI not set. Rate limiting disabled.")
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, h)

	log.Printf("🚀 Portfolio backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
