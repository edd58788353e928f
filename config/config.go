// Package config provides configuration management for the mercato application.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: all problems found during loading are returned
// together instead of one at a time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// MongoConfig holds connection settings for the document store.
type MongoConfig struct {
	URI    string // full MongoDB connection string
	DBName string // database holding utenti, carrelli and articoli
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret       string        // secret key for signing session tokens
	CookieSecret    string        // secret key for the cookie transport signature
	SessionDuration time.Duration // lifetime of an issued session token
	BcryptCost      int           // work factor for credential hashing
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port       string // port for the HTTP server
	CORSOrigin string // allowed CORS origin for browser clients
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Mongo  *MongoConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

// getRequiredEnv returns a required environment variable, appending to the
// errors slice when it is not set. Fail-fast for critical configuration.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv returns an environment variable or the given default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt returns an environment variable parsed as an int, falling
// back to defaultValue when unset. A set-but-unparsable value is an error.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration returns an environment variable parsed as a
// time.Duration ("1h", "30m"), falling back to defaultValue when unset.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampBcryptCost keeps the configured work factor inside the range bcrypt
// accepts (4..31). Values outside the range are clamped and reported.
func clampBcryptCost(cost int, errors *[]string) int {
	const minCost, maxCost = 4, 31
	if cost < minCost {
		*errors = append(*errors, fmt.Sprintf("BCRYPT_COST (%d) is less than minimum %d, clamping", cost, minCost))
		return minCost
	}
	if cost > maxCost {
		*errors = append(*errors, fmt.Sprintf("BCRYPT_COST (%d) is greater than maximum %d, clamping", cost, maxCost))
		return maxCost
	}
	return cost
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Document store configuration.
	mongoURI := getRequiredEnv("MONGO_URI", &errors)
	dbName := getRequiredEnv("DB_NAME", &errors)

	mongoConfig := &MongoConfig{
		URI:    mongoURI,
		DBName: dbName,
	}

	// Auth configuration. The two secrets are independent: JWT_SECRET signs
	// the token itself, COOKIE_SECRET signs the cookie that carries it.
	jwtSecret := getRequiredEnv("JWT_SECRET", &errors)
	cookieSecret := getRequiredEnv("COOKIE_SECRET", &errors)
	sessionDuration := getOptionalEnvDuration("SESSION_DURATION", time.Hour, &errors)
	bcryptCost := clampBcryptCost(getOptionalEnvInt("BCRYPT_COST", 10, &errors), &errors)

	authConfig := &AuthConfig{
		JWTSecret:       jwtSecret,
		CookieSecret:    cookieSecret,
		SessionDuration: sessionDuration,
		BcryptCost:      bcryptCost,
	}

	// Server configuration.
	serverConfig := &ServerConfig{
		Port:       getOptionalEnv("PORT", "8080"),
		CORSOrigin: getOptionalEnv("CORS_ORIGIN", "*"),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		Mongo:  mongoConfig,
		Auth:   authConfig,
		Server: serverConfig,
	}, nil
}
