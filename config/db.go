package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func envOrDefault(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

// InitDB opens the configured database. DB_DRIVER=sqlite gives a local file
// database for development; default is MySQL from the usual env vars.
// TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey on both drivers.
func InitDB() (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := envOrDefault("DB_PATH", "bytserver.db")
		return gorm.Open(sqlite.Open(path), cfg)
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	name := envOrDefault("DB_NAME", "bytserver")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)

	return gorm.Open(mysql.Open(dsn), cfg)
}
