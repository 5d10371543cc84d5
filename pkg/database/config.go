package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"
)

type DBConfig struct {
	Scheme   string
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// GetDBConfig парсит строчку соединения типа [scheme:][//[userinfo@]host][/]path[?query][#fragment] и возвращает DBConfig
func GetDBConfig(connection string) (DBConfig, error) {
	u, err := url.Parse(connection)
	if err != nil {
		return DBConfig{}, fmt.Errorf("parse connection string: %w", err)
	}

	config := DBConfig{
		Scheme:   u.Scheme,
		Host:     u.Hostname(),
		Port:     u.Port(),
		User:     u.User.Username(),
		Database: strings.Trim(u.Path, "/"),
	}

	pass, exists := u.User.Password()
	if exists {
		config.Password = pass
	}

	return config, nil
}

// Validate проверяет конфигурацию перед подключением
func (c DBConfig) Validate() error {
	if c.Scheme != "postgres" && c.Scheme != "postgresql" {
		return fmt.Errorf("unsupported scheme %q", c.Scheme)
	}

	if c.Host == "" {
		return fmt.Errorf("host is empty")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is empty")
	}

	return nil
}

// NewPool создает пул соединений по строчке соединения
func NewPool(ctx context.Context, connection string) (*pgxpool.Pool, error) {
	config, err := GetDBConfig(connection)
	if err != nil {
		return nil, err
	}

	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}

	pool, err := pgxpool.Connect(ctx, connection)
	if err != nil {
		return nil, fmt.Errorf("connect to %s/%s: %w", config.Host, config.Database, err)
	}

	return pool, nil
}
