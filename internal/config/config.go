package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string
	BaseURL    string

	SecretKey string

	AccessTokenMaxAge  int
	RefreshTokenMaxAge int
	ResetTokenMaxAge   int

	PostsPerPage int

	MailServer   string
	MailPort     string
	MailUsername string
	MailPassword string
	MailSender   string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	accessTokenMaxAge := intEnv("ACCESS_TOKEN_MAX_AGE", 900)
	refreshTokenMaxAge := intEnv("REFRESH_TOKEN_MAX_AGE", 2592000)
	resetTokenMaxAge := intEnv("RESET_TOKEN_MAX_AGE", 600)
	postsPerPage := intEnv("POSTS_PER_PAGE", 20)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + serverPort
	}

	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  sslMode,

		ServerPort: serverPort,
		BaseURL:    baseURL,

		SecretKey: os.Getenv("SECRET_KEY"),

		AccessTokenMaxAge:  accessTokenMaxAge,
		RefreshTokenMaxAge: refreshTokenMaxAge,
		ResetTokenMaxAge:   resetTokenMaxAge,

		PostsPerPage: postsPerPage,

		MailServer:   os.Getenv("MAIL_SERVER"),
		MailPort:     os.Getenv("MAIL_PORT"),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailSender:   os.Getenv("MAIL_SENDER"),
	}, nil
}

func intEnv(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
