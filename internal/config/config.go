package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	timex "github.com/ferdiebergado/credkit/internal/pkg/time"
	"github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"
)

const maskChar = "*"

const (
	CodecGolangJWT = "golang-jwt"
	CodecJWX       = "jwx"

	HashArgon2 = "argon2"
	HashBcrypt = "bcrypt"
)

type App struct {
	Env      string `json:"-"`
	LogLevel string `json:"-"`
}

type Server struct {
	URL             string         `json:"url,omitempty"`
	Port            int            `json:"port,omitempty"`
	ReadTimeout     timex.Duration `json:"read_timeout,omitempty"`
	WriteTimeout    timex.Duration `json:"write_timeout,omitempty"`
	IdleTimeout     timex.Duration `json:"idle_timeout,omitempty"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout,omitempty"`
	MaxBodyBytes    int64          `json:"max_body_bytes,omitempty"`
}

// GRPC configures the gRPC listener. A zero port disables it.
type GRPC struct {
	Port int `json:"port,omitempty"`
}

type DB struct {
	Driver          string         `json:"driver,omitempty"`
	MaxOpenConns    int            `json:"max_open_conns,omitempty"`
	MaxIdleConns    int            `json:"max_idle_conns,omitempty"`
	ConnMaxIdleTime timex.Duration `json:"conn_max_idle_time,omitempty"`
	ConnMaxLifetime timex.Duration `json:"conn_max_lifetime,omitempty"`
	PingTimeout     timex.Duration `json:"ping_timeout,omitempty"`

	Host    string `json:"-"`
	Port    string `json:"-"`
	User    string `json:"-"`
	Pass    string `json:"-"`
	Name    string `json:"-"`
	SSLMode string `json:"-"`
}

func (d *DB) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("driver", d.Driver),
		slog.String("host", d.Host),
		slog.String("port", d.Port),
		slog.String("user", d.User),
		slog.String("pass", maskChar),
		slog.String("name", d.Name),
		slog.Int("max_open_conns", d.MaxOpenConns),
	)
}

type JWT struct {
	Codec  string         `json:"codec,omitempty"`
	TTL    timex.Duration `json:"ttl,omitempty"`
	Secret string         `json:"-"`
}

func (j *JWT) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("codec", j.Codec),
		slog.Duration("ttl", j.TTL.Duration),
		slog.String("secret", maskChar),
	)
}

type Argon2 struct {
	Memory     uint32 `json:"memory,omitempty"`
	Iterations uint32 `json:"iterations,omitempty"`
	Threads    uint8  `json:"threads,omitempty"`
	SaltLength uint32 `json:"salt_length,omitempty"`
	KeyLength  uint32 `json:"key_length,omitempty"`
}

type Hash struct {
	Algorithm  string  `json:"algorithm,omitempty"`
	BcryptCost int     `json:"bcrypt_cost,omitempty"`
	Argon2     *Argon2 `json:"argon2,omitempty"`
	Pepper     string  `json:"-"`
}

func (h *Hash) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("algorithm", h.Algorithm),
		slog.Int("bcrypt_cost", h.BcryptCost),
		slog.Any("argon2", h.Argon2),
		slog.String("pepper", maskChar),
	)
}

type Config struct {
	App    *App    `json:"-"`
	Server *Server `json:"server,omitempty"`
	GRPC   *GRPC   `json:"grpc,omitempty"`
	DB     *DB     `json:"db,omitempty"`
	JWT    *JWT    `json:"jwt,omitempty"`
	Hash   *Hash   `json:"hash,omitempty"`
}

func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("app", c.App),
		slog.Any("server", c.Server),
		slog.Any("grpc", c.GRPC),
		slog.Any("db", c.DB),
		slog.Any("jwt", c.JWT),
		slog.Any("hash", c.Hash),
	)
}

// Load reads the json config file, applies environment overrides and validates the result.
func Load(cfgFile string) (*Config, error) {
	slog.Info("Loading config...")
	cfg, err := parseCfgFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if err := overrideWithEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Info("Config loaded.", "config_file", cfgFile, slog.Any("config", cfg))
	return cfg, nil
}

func parseCfgFile(cfgFile string) (*Config, error) {
	cfgFile = filepath.Clean(cfgFile)
	configFile, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
	}

	cfg := &Config{
		App:    &App{},
		Server: &Server{},
		GRPC:   &GRPC{},
		DB:     &DB{},
		JWT:    &JWT{},
		Hash:   &Hash{Argon2: &Argon2{}},
	}
	if err := json.Unmarshal(configFile, cfg); err != nil {
		return nil, fmt.Errorf("decode json config %s: %w", cfgFile, err)
	}

	return cfg, nil
}

type envOverrides struct {
	Env           string        `envconfig:"ENV" default:"development"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	URL           string        `envconfig:"URL"`
	Port          int           `envconfig:"PORT"`
	GRPCPort      int           `envconfig:"GRPC_PORT"`
	JWTSecret     string        `envconfig:"JWT_SECRET"`
	JWTTTL        time.Duration `envconfig:"JWT_TTL"`
	JWTCodec      string        `envconfig:"JWT_CODEC"`
	HashAlgorithm string        `envconfig:"HASH_ALGORITHM"`
	HashPepper    string        `envconfig:"HASH_PEPPER"`
	DBHost        string        `envconfig:"DB_HOST"`
	DBPort        string        `envconfig:"DB_PORT"`
	DBUser        string        `envconfig:"DB_USER"`
	DBPass        string        `envconfig:"DB_PASS"`
	DBName        string        `envconfig:"DB_NAME"`
	DBSSLMode     string        `envconfig:"DB_SSLMODE" default:"disable"`
}

func overrideWithEnv(cfg *Config) error {
	var e envOverrides
	if err := envconfig.Process("", &e); err != nil {
		return fmt.Errorf("process env: %w", err)
	}

	cfg.App.Env = e.Env
	cfg.App.LogLevel = e.LogLevel
	cfg.JWT.Secret = e.JWTSecret
	cfg.Hash.Pepper = e.HashPepper

	cfg.DB.Host = e.DBHost
	cfg.DB.Port = e.DBPort
	cfg.DB.User = e.DBUser
	cfg.DB.Pass = e.DBPass
	cfg.DB.Name = e.DBName
	cfg.DB.SSLMode = e.DBSSLMode

	if e.URL != "" {
		cfg.Server.URL = e.URL
	}
	if e.Port != 0 {
		cfg.Server.Port = e.Port
	}
	if e.GRPCPort != 0 {
		cfg.GRPC.Port = e.GRPCPort
	}
	if e.JWTTTL != 0 {
		cfg.JWT.TTL.Duration = e.JWTTTL
	}
	if e.JWTCodec != "" {
		cfg.JWT.Codec = e.JWTCodec
	}
	if e.HashAlgorithm != "" {
		cfg.Hash.Algorithm = e.HashAlgorithm
	}

	return nil
}

var (
	ErrMissingSecret  = errors.New("config: JWT_SECRET is required")
	ErrInvalidTTL     = errors.New("config: jwt ttl must be at least 1s")
	ErrUnknownCodec   = errors.New("config: unknown jwt codec")
	ErrUnknownHash    = errors.New("config: unknown hash algorithm")
	ErrInvalidPort    = errors.New("config: invalid server port")
	ErrInvalidBodyCap = errors.New("config: max_body_bytes must be positive")
)

// Validate reports every invalid option at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port))
	}
	if c.Server.MaxBodyBytes <= 0 {
		result = multierror.Append(result, ErrInvalidBodyCap)
	}
	if c.JWT.Secret == "" {
		result = multierror.Append(result, ErrMissingSecret)
	}
	if c.JWT.TTL.Duration < time.Second {
		result = multierror.Append(result, fmt.Errorf("%w: got %s", ErrInvalidTTL, c.JWT.TTL.Duration))
	}
	if !slices.Contains([]string{CodecGolangJWT, CodecJWX}, c.JWT.Codec) {
		result = multierror.Append(result, fmt.Errorf("%w: %q", ErrUnknownCodec, c.JWT.Codec))
	}
	if !slices.Contains([]string{HashArgon2, HashBcrypt}, c.Hash.Algorithm) {
		result = multierror.Append(result, fmt.Errorf("%w: %q", ErrUnknownHash, c.Hash.Algorithm))
	}

	return result.ErrorOrNil()
}
