package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	MongoURI            string
	RedisURI            string
	Port                string
	JWTSecret           string
	JWTExpires          time.Duration // session token lifetime
	CookieExpireDays    int           // session cookie lifetime in days
	PortfolioURL        string        // public portfolio frontend origin
	DashboardURL        string        // dashboard frontend origin; reset links point here
	PortfolioUserID     string        // user served on the public portfolio endpoint
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	SMTPHost            string
	SMTPPort            string
	SMTPMail            string
	SMTPPassword        string
}

func Load() *Config {
	return &Config{
		MongoURI:            getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/portfolio")),
		RedisURI:            getEnv("REDIS_URI", ""),
		Port:                getEnv("PORT", "4000"),
		JWTSecret:           getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
		JWTExpires:          getDuration("JWT_EXPIRES", 7*24*time.Hour),
		CookieExpireDays:    getInt("COOKIE_EXPIRE", 7),
		PortfolioURL:        getEnv("PORTFOLIO_URL", "http://localhost:5173"),
		DashboardURL:        getEnv("DASHBOARD_URL", "http://localhost:5174"),
		PortfolioUserID:     getEnv("PORTFOLIO_USER_ID", ""),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		SMTPHost:            getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:            getEnv("SMTP_PORT", "587"),
		SMTPMail:            getEnv("SMTP_MAIL", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
	}
}

// AllowedOrigins returns the CORS origin allowlist: the public portfolio and
// the dashboard. Both send credentialed requests to this backend.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, u := range []string{c.PortfolioURL, c.DashboardURL} {
		if u != "" {
			origins = append(origins, u)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
