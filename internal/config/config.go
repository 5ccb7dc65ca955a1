package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	Log struct {
		Level  string
		Format string
		App    string
	}

	// Storage: DB_DSN tiene prioridad sobre REDIS_ADDR; sin ninguno => in-memory.
	DB struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	SessionTTL time.Duration

	Processing Processing
}

// Processing son los tiempos del paso "procesando" del wizard.
type Processing struct {
	ProgressInterval time.Duration
	ProgressStep     int
	StatusInterval   time.Duration
	GraceDelay       time.Duration
}

// Load lee .env (si existe), config.yaml opcional y variables de entorno.
// Las env pisan al archivo: LOG_LEVEL, DB_DSN, REDIS_ADDR, PROCESSING_GRACE_DELAY, etc.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	if p := strings.TrimSpace(os.Getenv("CONFIG_FILE")); p != "" {
		v.SetConfigFile(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("app.name", "pet-health-assessment")
	v.SetDefault("db.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("processing.progress_interval", "220ms")
	v.SetDefault("processing.progress_step", 5)
	v.SetDefault("processing.status_interval", "2s")
	v.SetDefault("processing.grace_delay", "450ms")
}

func fromViper(v *viper.Viper) (Config, error) {
	var c Config
	c.Port = strings.TrimPrefix(strings.TrimSpace(v.GetString("port")), ":")
	c.Log.Level = v.GetString("log.level")
	c.Log.Format = v.GetString("log.format")
	c.Log.App = v.GetString("app.name")
	c.DB.DSN = strings.TrimSpace(v.GetString("db.dsn"))
	c.Redis.Addr = strings.TrimSpace(v.GetString("redis.addr"))
	c.Redis.Password = v.GetString("redis.password")
	c.Redis.DB = v.GetInt("redis.db")
	c.SessionTTL = v.GetDuration("session.ttl")

	c.Processing = Processing{
		ProgressInterval: v.GetDuration("processing.progress_interval"),
		ProgressStep:     v.GetInt("processing.progress_step"),
		StatusInterval:   v.GetDuration("processing.status_interval"),
		GraceDelay:       v.GetDuration("processing.grace_delay"),
	}

	if err := c.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	p := c.Processing
	if p.ProgressInterval <= 0 || p.StatusInterval <= 0 || p.GraceDelay < 0 {
		return errors.New("processing intervals must be positive")
	}
	if p.ProgressStep <= 0 || p.ProgressStep > 100 {
		return errors.New("processing.progress_step must be in [1,100]")
	}
	if c.SessionTTL < 0 {
		return errors.New("session.ttl must not be negative")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
