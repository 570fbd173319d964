package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DB       DBConfig       `mapstructure:"db"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Server   ServerConfig   `mapstructure:"server"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	AppHost  string         `mapstructure:"host"`
}

type DBConfig struct {
	// Driver is one of postgres, sqlite or memory.
	Driver string `mapstructure:"driver"`
	Source string `mapstructure:"source"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SnapshotConfig points at the YAML hierarchy loaded by the memory driver.
type SnapshotConfig struct {
	Fixture string `mapstructure:"fixture"`
}

func Load() (*Config, error) {
	return LoadFrom(viper.New(), "./configs", "/configs")
}

func LoadFrom(v *viper.Viper, paths ...string) (*Config, error) {
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("storage.path", "./uploads")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("host", "localhost:8080")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
