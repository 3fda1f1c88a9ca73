package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config contient la configuration globale de l'application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Upload   UploadConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig contient la configuration du serveur web
type ServerConfig struct {
	Host            string        `env:"HOST"                    env-default:"0.0.0.0"`
	Port            string        `env:"PORT"                    env-default:"5001"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr renvoie l'adresse d'écoute host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// DatabaseConfig contient la configuration de la base de données
type DatabaseConfig struct {
	Host         string `env:"DB_HOST"           env-default:"localhost"`
	Port         string `env:"DB_PORT"           env-default:"5432"`
	User         string `env:"DB_USER"           env-default:"postgres"`
	Password     string `env:"DB_PASSWORD"`
	Name         string `env:"DB_NAME"           env-default:"candidatures"`
	SSLMode      string `env:"DB_SSLMODE"        env-default:"disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
}

// DSN construit la chaîne de connexion lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// AuthConfig contient la configuration des tokens
type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"    env-required:"true"`
	Issuer    string        `env:"JWT_ISSUER"    env-default:"jobtrack"`
	TokenTTL  time.Duration `env:"JWT_TOKEN_TTL" env-default:"168h"`
}

// UploadConfig contient la configuration du stockage des documents
type UploadConfig struct {
	Dir     string `env:"UPLOAD_DIR"      env-default:"uploads"`
	MaxSize int64  `env:"UPLOAD_MAX_SIZE" env-default:"5242880"`
}

// LogConfig contient la configuration des logs
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

// CORSConfig contient les origines autorisées pour le dashboard
type CORSConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// Load charge la configuration depuis les variables d'environnement
func Load() (*Config, error) {
	// .env optionnel
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("lecture de la configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration invalide: %w", err)
	}

	return &cfg, nil
}
