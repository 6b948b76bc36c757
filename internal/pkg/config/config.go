package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the API server configuration.
type Config struct {
	Port             string        `env:"PORT,              default=8080"`
	Env              string        `env:"ENV,               default=development"`
	JWTSecret        string        `env:"JWT_SECRET,        required"`
	LogLevel         string        `env:"LOG_LEVEL,         default=info"`
	TokenTTL         time.Duration `env:"TOKEN_TTL,         default=24h"`
	AggregateWorkers int           `env:"AGGREGATE_WORKERS, default=4"`
	CORSOrigins      []string      `env:"CORS_ORIGINS,      default=*"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=store_rating"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Session backends understood by the client.
const (
	SessionBackendFile  = "file"
	SessionBackendRedis = "redis"
)

// ClientConfig is the command-line client configuration.
type ClientConfig struct {
	APIURL         string        `env:"STORERATE_API_URL,         default=http://localhost:8080"`
	Timeout        time.Duration `env:"STORERATE_TIMEOUT,         default=10s"`
	SessionBackend string        `env:"STORERATE_SESSION_BACKEND, default=file"`
	SessionFile    string        `env:"STORERATE_SESSION_FILE"`
	SessionPrefix  string        `env:"STORERATE_SESSION_PREFIX,  default=storerate:session:"`
	LogLevel       string        `env:"LOG_LEVEL,                 default=warn"`

	Redis RedisConfig
}

// Load reads the server configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// LoadClient reads the client configuration. Unlike Load it returns the
// error so the CLI can print it.
func LoadClient(ctx context.Context) (*ClientConfig, error) {
	return loadClient(ctx, envconfig.OsLookuper())
}

func loadClient(ctx context.Context, l envconfig.Lookuper) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	switch cfg.SessionBackend {
	case SessionBackendFile, SessionBackendRedis:
	default:
		return nil, fmt.Errorf("config: unknown session backend %q", cfg.SessionBackend)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return &cfg, nil
}
