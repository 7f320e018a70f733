package config

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/viper"
)

// InitConfig loads the .env file and environment variables into viper.
func InitConfig() {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Environment-only deployments have no .env file.
		log.Printf("No config file loaded, relying on environment: %v", err)
	}
}

// NewDB connects to the managed Postgres store and returns the handle. The
// handle is passed into handlers explicitly; there is no package-level
// client.
func NewDB() (*sqlx.DB, error) {
	dsn := viper.GetString("DATABASE_URL")

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}

	maxOpenConns := viper.GetInt("DB_MAX_OPEN_CONNS")
	if maxOpenConns == 0 {
		maxOpenConns = 25
	}
	maxIdleConns := viper.GetInt("DB_MAX_IDLE_CONNS")
	if maxIdleConns == 0 {
		maxIdleConns = 10
	}
	connMaxLifetime := viper.GetDuration("DB_CONN_MAX_LIFETIME")
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Database connected (max_open=%d, max_idle=%d, max_lifetime=%s)",
		maxOpenConns, maxIdleConns, connMaxLifetime)
	return db, nil
}
