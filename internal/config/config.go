// Package config loads runtime settings from an optional TOML file, PLZA_*
// environment variables and built-in defaults, in that order of precedence
// (env first).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/plza"
	envPrefix  = "PLZA"

	keyServerAddr          = "server.addr"
	keyServerMaxUpload     = "server.max_upload_bytes"
	keyServerReadTimeout   = "server.read_timeout"
	keyServerMaxConns      = "server.max_conns"
	keyWorkersSize         = "workers.size"
	keySessionsBackend     = "sessions.backend"
	keySessionsTTL         = "sessions.ttl"
	keySessionsMaxEntries  = "sessions.max_entries"
	keySessionsSweep       = "sessions.sweep_interval"
	keySessionsSnapshot    = "sessions.snapshot_codec"
	keySessionsBigcacheMax = "sessions.bigcache_max_mb"
	keyCatalogPath         = "catalog.path"
	keyLogLevel            = "log.level"
	keyLogFormat           = "log.format"
)

const (
	BackendMemory    = "memory"
	BackendRistretto = "ristretto"
	BackendBigcache  = "bigcache"
)

type Config struct {
	Server   ServerConfig
	Workers  WorkersConfig
	Sessions SessionsConfig
	Catalog  CatalogConfig
	Log      LogConfig

	// File is the config file that was read, empty when none was found.
	File string
}

type ServerConfig struct {
	Addr           string
	MaxUploadBytes int64
	ReadTimeout    time.Duration
	MaxConns       int
}

type WorkersConfig struct {
	Size int
}

type SessionsConfig struct {
	Backend       string
	TTL           time.Duration
	MaxEntries    int
	SweepInterval time.Duration
	SnapshotCodec string
	BigcacheMaxMB int
}

type CatalogConfig struct {
	Path string
}

type LogConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyServerAddr, ":8000")
	v.SetDefault(keyServerMaxUpload, int64(8<<20))
	v.SetDefault(keyServerReadTimeout, 30*time.Second)
	v.SetDefault(keyServerMaxConns, 256)
	v.SetDefault(keyWorkersSize, 10)
	v.SetDefault(keySessionsBackend, BackendMemory)
	v.SetDefault(keySessionsTTL, 2*time.Hour)
	v.SetDefault(keySessionsMaxEntries, 512)
	v.SetDefault(keySessionsSweep, time.Minute)
	v.SetDefault(keySessionsSnapshot, "cbor")
	v.SetDefault(keySessionsBigcacheMax, 256)
	v.SetDefault(keyCatalogPath, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "console")
}

// Load reads the configuration. An explicit path must exist; otherwise
// $HOME/.config/plza/config.toml is used when present.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, configDir))
		}

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:           v.GetString(keyServerAddr),
			MaxUploadBytes: v.GetInt64(keyServerMaxUpload),
			ReadTimeout:    v.GetDuration(keyServerReadTimeout),
			MaxConns:       v.GetInt(keyServerMaxConns),
		},
		Workers: WorkersConfig{Size: v.GetInt(keyWorkersSize)},
		Sessions: SessionsConfig{
			Backend:       strings.ToLower(strings.TrimSpace(v.GetString(keySessionsBackend))),
			TTL:           v.GetDuration(keySessionsTTL),
			MaxEntries:    v.GetInt(keySessionsMaxEntries),
			SweepInterval: v.GetDuration(keySessionsSweep),
			SnapshotCodec: strings.ToLower(strings.TrimSpace(v.GetString(keySessionsSnapshot))),
			BigcacheMaxMB: v.GetInt(keySessionsBigcacheMax),
		},
		Catalog: CatalogConfig{Path: v.GetString(keyCatalogPath)},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString(keyLogLevel)),
			Format: strings.ToLower(v.GetString(keyLogFormat)),
		},
		File: v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes))
	}
	if c.Workers.Size <= 0 {
		errs = append(errs, fmt.Errorf("workers.size must be positive, got %d", c.Workers.Size))
	}
	switch c.Sessions.Backend {
	case BackendMemory, BackendRistretto:
	case BackendBigcache:
		if c.Sessions.TTL <= 0 {
			errs = append(errs, errors.New("sessions.ttl must be positive for the bigcache backend"))
		}
		if c.Sessions.BigcacheMaxMB <= 0 {
			errs = append(errs, fmt.Errorf("sessions.bigcache_max_mb must be positive, got %d", c.Sessions.BigcacheMaxMB))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown sessions.backend %q", c.Sessions.Backend))
	}
	if c.Sessions.MaxEntries <= 0 {
		errs = append(errs, fmt.Errorf("sessions.max_entries must be positive, got %d", c.Sessions.MaxEntries))
	}
	switch c.Sessions.SnapshotCodec {
	case "cbor", "msgpack":
	default:
		errs = append(errs, fmt.Errorf("unknown sessions.snapshot_codec %q", c.Sessions.SnapshotCodec))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log.format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
