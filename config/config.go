package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

// Supported record store backends
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	App     AppConfig
	Log     LogConfig
	DB      DBConfig
	Mongo   MongoConfig
	Metrics MetricsConfig
}

type AppConfig struct {
	Port       string
	Env        string
	CORSOrigin string
}

type LogConfig struct {
	Level string
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type MongoConfig struct {
	URI      string
	Database string
}

type MetricsConfig struct {
	Enabled bool
}

// IsDevelopment reports whether the app runs in the development environment
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// LoadConfig reads the given env file (if it exists) and the process environment.
// Environment variables take precedence over values from the file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "doctor_booking")
	v.SetDefault("METRICS_ENABLED", true)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			CORSOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Driver:   v.GetString("DB_DRIVER"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if config.DB.Driver != DriverPostgres && config.DB.Driver != DriverMongo {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", config.DB.Driver)
	}

	return config, nil
}
