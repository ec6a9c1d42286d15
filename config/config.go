package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	AccessTokenMinutes int // access token lifetime in minutes
	RefreshTokenHours  int // refresh token lifetime in hours

	// Cookie attributes. HttpOnly is not configurable: the transport always
	// sets it, so tokens stay out of reach of client-side script.
	AccessCookieName  string
	RefreshCookieName string
	AccessCookieAge   int // seconds
	RefreshCookieAge  int // seconds
	CookieSecure      bool
	CookieSameSite    string
	CookieDomain      string
	CookiePath        string

	SendGridKey string
	EmailSender string

	RegistrationWebhookURL string

	UploadDir string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	accessMinutes := getEnvInt("ACCESS_TOKEN_MINUTES", 15)
	refreshHours := getEnvInt("REFRESH_TOKEN_HOURS", 24)

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		AccessTokenMinutes: accessMinutes,
		RefreshTokenHours:  refreshHours,

		AccessCookieName:  getEnv("ACCESS_COOKIE_NAME", "access_token"),
		RefreshCookieName: getEnv("REFRESH_COOKIE_NAME", "refresh_token"),
		AccessCookieAge:   getEnvInt("ACCESS_COOKIE_MAX_AGE", accessMinutes*60),
		RefreshCookieAge:  getEnvInt("REFRESH_COOKIE_MAX_AGE", refreshHours*3600),
		CookieSecure:      getEnvBool("COOKIE_SECURE", false),
		CookieSameSite:    getEnv("COOKIE_SAMESITE", "Lax"),
		CookieDomain:      getEnv("COOKIE_DOMAIN", ""),
		CookiePath:        getEnv("COOKIE_PATH", "/"),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "no-reply@lms.local"),

		RegistrationWebhookURL: getEnv("REGISTRATION_WEBHOOK_URL", ""),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvBool retrieves an environment variable as a boolean or returns the default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
