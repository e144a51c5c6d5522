package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

type AppConfig struct {
	Port string
	// DB is nil when neither env group supplies a complete credential
	// set; the server then boots with persistence offline.
	DB *DBConfig
}

// Load resolves configuration once at startup. Manual DB_* variables
// take precedence over the platform-injected MYSQL_* set; the first
// complete group wins.
func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	cfg := AppConfig{
		Port: get("PORT", "8080"),
		DB:   resolveDB(),
	}
	if cfg.DB != nil {
		log.Printf("[cfg] port=%s db=%s@%s:%s/%s", cfg.Port, cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	} else {
		log.Printf("[cfg] port=%s db=unresolved (offline mode)", cfg.Port)
	}
	return cfg
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func resolveDB() *DBConfig {
	if c := group("DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", get("DB_PORT", get("MYSQL_PORT", "3306"))); c != nil {
		return c
	}
	return group("MYSQL_HOST", "MYSQL_USER", "MYSQL_PASSWORD", "MYSQL_DATABASE", get("MYSQL_PORT", "3306"))
}

// group is complete only when host, user, password and database name
// are all present; anything less resolves to nil.
func group(hostK, userK, passK, nameK, port string) *DBConfig {
	c := DBConfig{
		Host: os.Getenv(hostK),
		Port: port,
		User: os.Getenv(userK),
		Pass: os.Getenv(passK),
		Name: os.Getenv(nameK),
	}
	if c.Host == "" || c.User == "" || c.Pass == "" || c.Name == "" {
		return nil
	}
	return &c
}
