package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr     string
	GinMode     string
	JWTSecret   string
	CORSOrigins []string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// Optional bootstrap account for the operator app.
	OperatorSeedEmployeeID string
	OperatorSeedName       string
	OperatorSeedPassword   string
}

func LoadEnv() Env {
	// Best-effort: a missing .env just means plain environment variables.
	_ = godotenv.Load()

	env := Env{
		AppAddr:                getenv("APP_ADDR", ":8080"),
		GinMode:                strings.TrimSpace(os.Getenv("GIN_MODE")),
		JWTSecret:              getenv("JWT_SECRET", "change-me-in-production"),
		DBUser:                 getenv("DB_USER", "root"),
		DBPass:                 strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost:                 getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:                 getenv("DB_NAME", "campus_bus"),
		OperatorSeedEmployeeID: strings.TrimSpace(os.Getenv("OPERATOR_SEED_EMPLOYEE_ID")),
		OperatorSeedName:       strings.TrimSpace(os.Getenv("OPERATOR_SEED_NAME")),
		OperatorSeedPassword:   os.Getenv("OPERATOR_SEED_PASSWORD"),
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	return env
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
