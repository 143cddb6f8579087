package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug              bool   `envconfig:"debug"`
	Port               int    `envconfig:"port" default:"8080"`
	Env                string `envconfig:"env"`
	PostgresHost       string `envconfig:"postgres_host"`
	PostgresPort       int    `envconfig:"postgres_port"`
	PostgresUser       string `envconfig:"postgres_user"`
	PostgresPassword   string `envconfig:"postgres_password"`
	PostgresDB         string `envconfig:"postgres_db"`
	JWTSecret          string `envconfig:"jwt_secret"`
	GeminiApiKey       string `envconfig:"gemini_api_key"`
	GeminiModel        string `envconfig:"gemini_model" default:"gemini-1.5-flash"`
	RedisAddr          string `envconfig:"redis_addr" default:"localhost:6379"`
	AwsBucket          string `envconfig:"aws_bucket"`
	AwsRegion          string `envconfig:"aws_region" default:"us-east-1"`
	GoogleClientID     string `envconfig:"google_client_id"`
	GoogleClientSecret string `envconfig:"google_client_secret"`
	GoogleRedirectURL  string `envconfig:"google_redirect_url"`
	BaseUrl            string `envconfig:"base_url"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("wasteeasy", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
