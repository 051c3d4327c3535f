package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "STOREFRONT_"

	defaultPort             = "8080"
	defaultReadTimeout      = 15 * time.Second
	defaultWriteTimeout     = 30 * time.Second
	defaultIdleTimeout      = 120 * time.Second
	defaultDataDir          = "data"
	defaultImagesDir        = "images"
	defaultVideosDir        = "videos"
	defaultStateDir         = ".state"
	defaultContactPhone     = "252614476099"
	defaultFollowPage       = "https://www.tiktok.com/@azadstore"
	defaultCountdownSeconds = 15
	defaultConfirmSeconds   = 2
	defaultLanguage         = "so"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server Server `json:"server" yaml:"server"`
	Data   Data   `json:"data" yaml:"data"`
	Media  Media  `json:"media" yaml:"media"`
	Store  Store  `json:"store" yaml:"store"`
	Client Client `json:"client" yaml:"client"`
}

// Server configures HTTP server parameters.
type Server struct {
	Port         string        `json:"port" yaml:"port"`
	ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	IdleTimeout  time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
}

// Data locates the flat JSON files backing each resource.
type Data struct {
	Dir         string `json:"dir" yaml:"dir"`
	CatalogFile string `json:"catalogFile" yaml:"catalogFile"`
	ReviewsFile string `json:"reviewsFile" yaml:"reviewsFile"`
	OrdersFile  string `json:"ordersFile" yaml:"ordersFile"`
	AdminFile   string `json:"adminFile" yaml:"adminFile"`
}

// Media locates the upload directories for product media.
type Media struct {
	ImagesDir string `json:"imagesDir" yaml:"imagesDir"`
	VideosDir string `json:"videosDir" yaml:"videosDir"`
}

// Store carries storefront behaviour settings shared by client and server.
type Store struct {
	ContactPhone     string   `json:"contactPhone" yaml:"contactPhone"`
	FollowPageURL    string   `json:"followPageUrl" yaml:"followPageUrl"`
	CountdownSeconds int      `json:"countdownSeconds" yaml:"countdownSeconds"`
	ConfirmSeconds   int      `json:"confirmSeconds" yaml:"confirmSeconds"`
	MainSlots        []string `json:"mainSlots" yaml:"mainSlots"`
	DefaultLanguage  string   `json:"defaultLanguage" yaml:"defaultLanguage"`
}

// Client configures the storefront client library.
type Client struct {
	BaseURL  string `json:"baseUrl" yaml:"baseUrl"`
	StateDir string `json:"stateDir" yaml:"stateDir"`
}

// Load reads config.yaml from the given search paths (falling back to the
// working directory), then applies STOREFRONT_* environment overrides, then
// fills defaults. A missing config file is not an error; env and defaults
// still apply.
func Load(searchPaths ...string) (*Config, error) {
	k := koanf.New(".")

	if path, ok := findConfigFile(searchPaths); ok {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// STOREFRONT_SERVER_PORT -> server.port
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func findConfigFile(searchPaths []string) (string, bool) {
	if len(searchPaths) == 0 {
		searchPaths = []string{".", "config"}
	}
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Port) == "" {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = defaultIdleTimeout
	}

	if strings.TrimSpace(cfg.Data.Dir) == "" {
		cfg.Data.Dir = defaultDataDir
	}
	if strings.TrimSpace(cfg.Data.CatalogFile) == "" {
		cfg.Data.CatalogFile = filepath.Join(cfg.Data.Dir, "id.json")
	}
	if strings.TrimSpace(cfg.Data.ReviewsFile) == "" {
		cfg.Data.ReviewsFile = filepath.Join(cfg.Data.Dir, "server_reviews.json")
	}
	if strings.TrimSpace(cfg.Data.OrdersFile) == "" {
		cfg.Data.OrdersFile = filepath.Join(cfg.Data.Dir, "server_orders.json")
	}
	if strings.TrimSpace(cfg.Data.AdminFile) == "" {
		cfg.Data.AdminFile = filepath.Join(cfg.Data.Dir, "admin_config.json")
	}

	if strings.TrimSpace(cfg.Media.ImagesDir) == "" {
		cfg.Media.ImagesDir = defaultImagesDir
	}
	if strings.TrimSpace(cfg.Media.VideosDir) == "" {
		cfg.Media.VideosDir = defaultVideosDir
	}

	if strings.TrimSpace(cfg.Store.ContactPhone) == "" {
		cfg.Store.ContactPhone = defaultContactPhone
	}
	if strings.TrimSpace(cfg.Store.FollowPageURL) == "" {
		cfg.Store.FollowPageURL = defaultFollowPage
	}
	if cfg.Store.CountdownSeconds <= 0 {
		cfg.Store.CountdownSeconds = defaultCountdownSeconds
	}
	if cfg.Store.ConfirmSeconds <= 0 {
		cfg.Store.ConfirmSeconds = defaultConfirmSeconds
	}
	if len(cfg.Store.MainSlots) == 0 {
		cfg.Store.MainSlots = []string{"253", "254", "305", "306"}
	}
	if strings.TrimSpace(cfg.Store.DefaultLanguage) == "" {
		cfg.Store.DefaultLanguage = defaultLanguage
	}

	if strings.TrimSpace(cfg.Client.BaseURL) == "" {
		cfg.Client.BaseURL = "http://localhost:" + cfg.Server.Port
	}
	if strings.TrimSpace(cfg.Client.StateDir) == "" {
		cfg.Client.StateDir = defaultStateDir
	}
}
