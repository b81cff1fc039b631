// Package config loads the process configuration: the embedded defaults, an
// optional TOML file, then MEDIACONSOLE_* environment overrides. The result is
// read-only and passed by value.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

const envPrefix = "MEDIACONSOLE_"

type Config struct {
	Server        Server        `toml:"server"`
	Log           Log           `toml:"log"`
	Auth          Auth          `toml:"auth"`
	Redis         RedisConfig   `toml:"redis"`
	Postgres      Postgres      `toml:"postgres"`
	Kafka         Kafka         `toml:"kafka"`
	ExternalApps  ExternalApps  `toml:"external_apps"`
	ExternalLinks ExternalLinks `toml:"external_links"`
	Client        Client        `toml:"client"`
	MediaServer   MediaServer   `toml:"media_server"`
	RateLimit     RateLimit     `toml:"rate_limit"`
}

type Server struct {
	Addr              string        `toml:"addr"`
	ReadHeaderTimeout time.Duration `toml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `toml:"shutdown_timeout"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Auth struct {
	JWTSigningKey string `toml:"jwt_signing_key"`
	Issuer        string `toml:"issuer"`
	Audience      string `toml:"audience"`
}

// RedisConfig configures the permissions cache. An empty URL disables Redis.
type RedisConfig struct {
	URL          string        `toml:"url"`
	PoolSize     int           `toml:"pool_size"`
	MinIdleConns int           `toml:"min_idle_conns"`
	DialTimeout  time.Duration `toml:"dial_timeout"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

type Postgres struct {
	DSN          string `toml:"dsn"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

type Kafka struct {
	Brokers           []string `toml:"brokers"`
	Topic             string   `toml:"topic"`
	Partitions        int32    `toml:"partitions"`
	ReplicationFactor int16    `toml:"replication_factor"`
	AsyncBuffer       int      `toml:"async_buffer"`
	// MemoryCapacity bounds the in-memory audit store used without brokers
	// and while Kafka is failing.
	MemoryCapacity    int      `toml:"memory_capacity"`
}

// RateLimit bounds how many API calls one partner member may make per
// window. Counters live in Redis when it is configured.
type RateLimit struct {
	Enabled           bool          `toml:"enabled"`
	RequestsPerWindow int           `toml:"requests_per_window"`
	Window            time.Duration `toml:"window"`
}

// ExternalApp is a static feature toggle for an embedded application.
type ExternalApp struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	URI     string `toml:"uri" json:"uri"`
}

type ExternalApps struct {
	ClipAndTrim    ExternalApp `toml:"clip_and_trim"`
	Advertisements ExternalApp `toml:"advertisements"`
}

type ExternalLinks struct {
	Uploads UploadLinks `toml:"uploads"`
}

type UploadLinks struct {
	HighSpeedUpload   string `toml:"high_speed_upload"`
	BulkUploadSamples string `toml:"bulk_upload_samples"`
}

// Client is the global configuration served to the console UI.
type Client struct {
	Production         bool        `toml:"production" json:"production"`
	AppVersion         string      `toml:"app_version" json:"appVersion"`
	UseSecuredProtocol bool        `toml:"use_secured_protocol" json:"useSecuredProtocol"`
	CountriesList      []string    `toml:"countries_list" json:"countriesList"`
	Views              ClientViews `toml:"views" json:"views"`
}

type ClientViews struct {
	Tables Tables `toml:"tables" json:"tables"`
}

// Tables bounds every paged list the console shows.
type Tables struct {
	MaxItems         int `toml:"max_items" json:"maxItems"`
	DefaultPageSize  int `toml:"default_page_size" json:"defaultPageSize"`
	DefaultSortOrder int `toml:"default_sort_order" json:"defaultSortOrder"`
}

// Page normalizes a 1-based page request. Non-positive values take the
// defaults and the requested page never reaches past MaxItems.
func (t Tables) Page(index, size int) (int, int) {
	if size <= 0 {
		size = t.DefaultPageSize
	}
	if t.MaxItems > 0 && size > t.MaxItems {
		size = t.MaxItems
	}
	if index <= 0 {
		index = 1
	}
	if size <= 0 {
		return index, 0
	}
	if t.MaxItems > 0 {
		if last := max(t.MaxItems/size, 1); index > last {
			index = last
		}
	}
	return index, size
}

type MediaServer struct {
	MaxUploadFileSizeMB  int   `toml:"max_upload_file_size_mb" json:"maxUploadFileSize"`
	MaxConcurrentUploads int   `toml:"max_concurrent_uploads" json:"maxConcurrentUploads"`
	LimitToPartnerID     int64 `toml:"limit_to_partner_id" json:"limitToPartnerId,omitempty"`
}

// Default returns the configuration embedded in the binary.
func Default() Config {
	var cfg Config
	if _, err := toml.Decode(string(exampleConf), &cfg); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return cfg
}

// Load returns the defaults overlaid with the TOML file at path (when path is
// non-empty) and then with the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv overlays MEDIACONSOLE_* variables read through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	str("ADDR", &cfg.Server.Addr)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("JWT_SIGNING_KEY", &cfg.Auth.JWTSigningKey)
	str("REDIS_URL", &cfg.Redis.URL)
	str("POSTGRES_DSN", &cfg.Postgres.DSN)
	str("KAFKA_TOPIC", &cfg.Kafka.Topic)
	str("CLIP_AND_TRIM_URI", &cfg.ExternalApps.ClipAndTrim.URI)

	if v, ok := lookup(envPrefix + "KAFKA_BROKERS"); ok && v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v, ok := lookup(envPrefix + "CLIP_AND_TRIM_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCLIP_AND_TRIM_ENABLED: %w", envPrefix, err)
		}
		cfg.ExternalApps.ClipAndTrim.Enabled = b
	}
	if v, ok := lookup(envPrefix + "PRODUCTION"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sPRODUCTION: %w", envPrefix, err)
		}
		cfg.Client.Production = b
	}
	if v, ok := lookup(envPrefix + "RATE_LIMIT_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT_ENABLED: %w", envPrefix, err)
		}
		cfg.RateLimit.Enabled = b
	}
	if v, ok := lookup(envPrefix + "LIMIT_TO_PARTNER_ID"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sLIMIT_TO_PARTNER_ID: %w", envPrefix, err)
		}
		cfg.MediaServer.LimitToPartnerID = n
	}
	return nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	t := c.Client.Views.Tables
	switch {
	case c.Server.Addr == "":
		return errors.New("server.addr is required")
	case t.DefaultPageSize <= 0:
		return errors.New("client.views.tables.default_page_size must be positive")
	case t.MaxItems < t.DefaultPageSize:
		return errors.New("client.views.tables.max_items must be at least default_page_size")
	case c.MediaServer.LimitToPartnerID < 0:
		return errors.New("media_server.limit_to_partner_id cannot be negative")
	case c.RateLimit.Enabled && (c.RateLimit.RequestsPerWindow <= 0 || c.RateLimit.Window <= 0):
		return errors.New("rate_limit.requests_per_window and rate_limit.window must be positive when enabled")
	case c.Client.Production && c.Auth.JWTSigningKey == Default().Auth.JWTSigningKey:
		return errors.New("auth.jwt_signing_key must be changed in production")
	}
	return nil
}

// CreateConfigFile writes the embedded example configuration to path,
// refusing to overwrite an existing file.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.WriteFile(path, exampleConf, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
