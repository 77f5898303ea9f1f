package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type DatabaseType string

const (
	MongoDB DatabaseType = "mongodb"
	SQLite  DatabaseType = "sqlite"
)

const defaultProviderURL = "https://mc-api.marketcheck.com/v2"

// DefaultHistoryWindowMonths is the trailing window applied to provider
// history records during a refresh. Records last seen before the window are
// dropped before normalization.
const DefaultHistoryWindowMonths = 2

type Config struct {
	JwtKey       []byte
	DatabaseType DatabaseType
	// MongoDB config
	MongoURI string
	// SQLite config
	SQLitePath string
	// Provider config. An empty API key is not a boot failure; the refresh
	// path reports it as a configuration fault when a fetch is attempted.
	ProviderAPIKey      string
	ProviderBaseURL     string
	HistoryWindowMonths int
	// Common configs
	Port         string
	Username     string
	Password     string
	DatabaseName string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, err
	}

	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		return nil, fmt.Errorf("DATABASE_NAME is not set in .env file")
	}

	username := os.Getenv("LOGIN_USERNAME")
	password := os.Getenv("LOGIN_PASSWORD")
	if username == "" || password == "" {
		return nil, fmt.Errorf("LOGIN_USERNAME or LOGIN_PASSWORD is not set in .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is not set in .env file")
	}

	providerURL := os.Getenv("MARKETCHECK_API_URL")
	if providerURL == "" {
		providerURL = defaultProviderURL
	}

	windowMonths := DefaultHistoryWindowMonths
	if v := os.Getenv("HISTORY_WINDOW_MONTHS"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("HISTORY_WINDOW_MONTHS must be an integer: %w", err)
		}
		windowMonths = months
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	// Determine database type
	dbType := os.Getenv("DATABASE_TYPE")
	if dbType == "" {
		dbType = string(SQLite) // Default to SQLite
	}

	config := &Config{
		JwtKey:              []byte(jwtSecret),
		DatabaseType:        DatabaseType(dbType),
		ProviderAPIKey:      os.Getenv("MARKETCHECK_API_KEY"),
		ProviderBaseURL:     providerURL,
		HistoryWindowMonths: windowMonths,
		Port:                port,
		Username:            username,
		Password:            password,
		DatabaseName:        databaseName,
	}

	// Configure based on database type
	if config.DatabaseType == MongoDB {
		mongoURI := os.Getenv("MONGODB_URI")
		if mongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is not set in .env file")
		}
		config.MongoURI = mongoURI
	} else if config.DatabaseType == SQLite {
		sqlitePath := os.Getenv("SQLITE_PATH")
		if sqlitePath == "" {
			// Default to a data directory in the current directory
			sqlitePath = filepath.Join("data", fmt.Sprintf("%s.db", databaseName))
		}
		config.SQLitePath = sqlitePath
	} else {
		return nil, fmt.Errorf("unsupported DATABASE_TYPE: %s", dbType)
	}

	return config, nil
}
