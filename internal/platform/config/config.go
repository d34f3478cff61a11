package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "PETCARE"

	KeyAPIURL    = "api_url"
	KeyUserID    = "user_id"
	KeyToken     = "token"
	KeyTimeout   = "timeout"
	KeyCacheDir  = "cache_dir"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
)

// Config del cliente (CLI). El server dev se configura por env directo.
type Config struct {
	APIURL    string
	UserID    string
	Token     string
	Timeout   time.Duration
	CacheDir  string
	LogLevel  string
	LogFormat string
}

// New arma un viper con defaults, env PETCARE_* y búsqueda de .petcare.yaml
// en $PETCARE_CONFIG_PATH, ./ y el home.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyAPIURL, "http://localhost:8080")
	v.SetDefault(KeyTimeout, "10s")
	v.SetDefault(KeyCacheDir, "~/.petcare/cache")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")

	v.SetConfigName(".petcare") // .yaml es implícito
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(EnvPrefix + "_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	return v
}

// Load lee el archivo (si existe) y devuelve la config resuelta.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = New()
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}
	return FromViper(v)
}

func FromViper(v *viper.Viper) (Config, error) {
	timeout := v.GetDuration(KeyTimeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cacheDir, err := ExpandPath(v.GetString(KeyCacheDir))
	if err != nil {
		return Config{}, err
	}

	return Config{
		APIURL:    strings.TrimRight(strings.TrimSpace(v.GetString(KeyAPIURL)), "/"),
		UserID:    strings.TrimSpace(v.GetString(KeyUserID)),
		Token:     strings.TrimSpace(v.GetString(KeyToken)),
		Timeout:   timeout,
		CacheDir:  cacheDir,
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
	}, nil
}

// ExpandPath resuelve ~ y deja el path limpio. Vacío queda vacío.
func ExpandPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}
