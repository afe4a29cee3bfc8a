package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	JWTExpire   string
	FrontendURL string

	// Danger-zone engine
	ReportThreshold  int
	ZoneRadiusMeters float64

	// SOS dispatch
	PoliceContact string
	NotifyChannel string // "twilio" or "fcm"
	SendTimeout   time.Duration
	SweepInterval time.Duration

	TwilioSID       string
	TwilioAuthToken string
	TwilioPhone     string

	FirebaseServiceAccountPath string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	RateLimitPerMinute int
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "safezone"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		JWTExpire:   getEnv("JWT_EXPIRE_HOURS", "168"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		ReportThreshold:  getEnvInt("REPORT_THRESHOLD", 3),
		ZoneRadiusMeters: getEnvFloat("REDZONE_RADIUS_METERS", 50),

		PoliceContact: getEnv("POLICE_CONTACT", ""),
		NotifyChannel: getEnv("NOTIFY_CHANNEL", "twilio"),
		SendTimeout:   time.Duration(getEnvInt("SEND_TIMEOUT_SECONDS", 10)) * time.Second,
		SweepInterval: time.Duration(getEnvInt("SWEEP_INTERVAL_MINUTES", 5)) * time.Minute,

		TwilioSID:       getEnv("TWILIO_SID", ""),
		TwilioAuthToken: getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhone:     getEnv("TWILIO_PHONE", ""),

		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:       getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "safezone"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid value for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}
