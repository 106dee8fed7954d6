package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// TestRecipients is the fixed list used by the "test" bulk-email group.
	TestRecipients []string
}

type Config struct {
	ServerPort         int
	DB                 DB
	MinIO              MinIO
	SMTP               SMTP
	SessionSecret      string
	SessionDuration    time.Duration
	ResetTokenDuration time.Duration
	InviteDuration     time.Duration
	// BaseURL is the public origin used to build links in outgoing emails.
	BaseURL       string
	MaxUploadSize int64
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "owowclub"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "media"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadSMTP() SMTP {
	var testRecipients []string
	if raw := getEnv("SMTP_TEST_RECIPIENTS", ""); raw != "" {
		for _, addr := range strings.Split(raw, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				testRecipients = append(testRecipients, addr)
			}
		}
	}

	return SMTP{
		Host:           getEnv("SMTP_HOST", "localhost"),
		Port:           getEnvAsInt("SMTP_PORT", 587),
		Username:       getEnv("SMTP_USERNAME", ""),
		Password:       getEnv("SMTP_PASSWORD", ""),
		From:           getEnv("SMTP_FROM", "club@owowclub.com"),
		TestRecipients: testRecipients,
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:         getEnvAsInt("SERVER_PORT", 8080),
		DB:                 LoadDB(),
		MinIO:              LoadMinIO(),
		SMTP:               LoadSMTP(),
		SessionSecret:      getEnv("SESSION_SECRET", ""),
		SessionDuration:    parseDuration(getEnv("SESSION_DURATION", "168h"), 168*time.Hour),
		ResetTokenDuration: parseDuration(getEnv("RESET_TOKEN_DURATION", "1h"), time.Hour),
		InviteDuration:     parseDuration(getEnv("INVITE_DURATION", "48h"), 48*time.Hour),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		MaxUploadSize:      parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}
