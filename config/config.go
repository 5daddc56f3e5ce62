package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
)

const (
	MediaLocal = "local"
	MediaS3    = "s3"
)

type Config struct {
	Database   pg.Options
	LogQueries bool
	App        struct {
		Host    string
		Port    int
		BaseURL string
	}
	Auth  Auth
	Media Media
}

type Auth struct {
	Secret       string
	CookieName   string
	SecureCookie bool
	SessionTTL   time.Duration
}

type Media struct {
	Backend string
	Root    string
	URL     string
	S3      S3
}

type S3 struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	PathStyle       bool
}

// Load decodes the TOML file at path and fills in defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	cfg.setDefaults()
	return cfg, cfg.validate()
}

func (c *Config) setDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 8000
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "sessionid"
	}
	if c.Media.Backend == "" {
		c.Media.Backend = MediaLocal
	}
	if c.Media.Backend == MediaLocal {
		if c.Media.Root == "" {
			c.Media.Root = "media"
		}
		if c.Media.URL == "" {
			c.Media.URL = "/media"
		}
	}
}

func (c *Config) validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required")
	}

	switch c.Media.Backend {
	case MediaLocal, MediaS3:
	default:
		return fmt.Errorf("unknown media backend %q", c.Media.Backend)
	}

	return nil
}

// DatabaseURL renders Database as a postgres connection string for the
// migration driver.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   c.Database.Addr,
		Path:   "/" + c.Database.Database,
	}
	if c.Database.Password != "" {
		u.User = url.UserPassword(c.Database.User, c.Database.Password)
	} else if c.Database.User != "" {
		u.User = url.User(c.Database.User)
	}

	if c.Database.TLSConfig == nil {
		u.RawQuery = "sslmode=disable"
	}

	return u.String()
}
