package config

import (
	"fmt"
	"net/http"
	"time"
)

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

type MongoConfig struct {
	URI      string
	Database string
}

type LockConfig struct {
	TTL  time.Duration
	Wait time.Duration
}

type ServiceConfig struct {
	Locks          LockConfig
	UserServiceAPI string
}
