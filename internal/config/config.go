package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"url"`
		Host         string `yaml:"host"`
		Port         int    `yaml:"port"`
		User         string `yaml:"user"`
		Password     string `yaml:"password"`
		Name         string `yaml:"name"`
		MaxOpenConns int    `yaml:"max_open_conns"`
	} `yaml:"database"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Storage struct {
		Type          string `yaml:"type"`            // s3, local
		BasePath      string `yaml:"base_path"`       // local only
		Bucket        string `yaml:"bucket"`
		Region        string `yaml:"region"`
		AccessKey     string `yaml:"access_key"`
		SecretKey     string `yaml:"secret_key"`
		Endpoint      string `yaml:"endpoint"`        // custom S3-compatible endpoint
		PublicBaseURL string `yaml:"public_base_url"` // CDN or bucket website
	} `yaml:"storage"`

	Upload struct {
		MaxSize             int64 `yaml:"max_size"`
		ImageQuality        int   `yaml:"image_quality"`
		ProfileMaxDimension int   `yaml:"profile_max_dimension"`
	} `yaml:"upload"`

	Firebase struct {
		ServiceAccountKey  string `yaml:"service_account_key"`
		ServiceAccountPath string `yaml:"service_account_path"`
	} `yaml:"firebase"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Redis struct {
		Addr            string `yaml:"addr"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		RateLimitPerSec int    `yaml:"rate_limit_per_sec"`
	} `yaml:"redis"`

	Workers struct {
		SubscriptionIntervalMinutes int `yaml:"subscription_interval_minutes"`
	} `yaml:"workers"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads .env, the optional YAML file and the environment into AppConfig.
func LoadConfig() {
	LoadDotEnvUp(6)

	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load builds a Config from defaults, then the YAML file at path (if any), then env.
// An empty path falls back to config/config.yaml, which may be absent.
func Load(path string) (*Config, error) {
	cfg := defaults()

	explicit := path != ""
	if !explicit {
		path = "config/config.yaml"
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = cfg.BuildDSN()
	}
	return cfg, nil
}

func defaults() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 3001
	cfg.Server.Env = "development"

	cfg.Database.Host = "localhost"
	cfg.Database.Port = 3306
	cfg.Database.User = "root"
	cfg.Database.Name = "CineMarathi"
	cfg.Database.MaxOpenConns = 10

	cfg.JWT.Secret = "your_secret_key"
	cfg.JWT.TTLHours = 7 * 24

	cfg.Storage.Type = "s3"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.Region = "ap-south-1"

	cfg.Upload.MaxSize = 10 * 1024 * 1024
	cfg.Upload.ImageQuality = 85
	cfg.Upload.ProfileMaxDimension = 1024

	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "CineMarathi"

	cfg.Redis.RateLimitPerSec = 20
	cfg.Workers.SubscriptionIntervalMinutes = 60
	return &cfg
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Env, "SERVER_ENV")
	setInt(&cfg.Server.Port, "PORT")

	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USERNAME")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")

	setString(&cfg.JWT.Secret, "JWT_SECRET")

	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.Region, "AWS_REGION", "S3_REGION")
	setString(&cfg.Storage.Bucket, "AWS_S3_BUCKET", "S3_BUCKET_NAME")
	setString(&cfg.Storage.AccessKey, "AWS_ACCESS_KEY_ID", "S3_ACCESS_KEY_ID")
	setString(&cfg.Storage.SecretKey, "AWS_SECRET_ACCESS_KEY", "S3_SECRET_ACCESS_KEY")
	setString(&cfg.Storage.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Storage.PublicBaseURL, "S3_PUBLIC_BASE_URL")

	setString(&cfg.Firebase.ServiceAccountKey, "FIREBASE_SERVICE_ACCOUNT_KEY")
	setString(&cfg.Firebase.ServiceAccountPath, "FIREBASE_SERVICE_ACCOUNT_PATH")

	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "SMTP_FROM")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.RateLimitPerSec, "RATE_LIMIT_PER_SEC")

	setString(&cfg.FirstAdminEmail, "FIRST_ADMIN_EMAIL")
	setString(&cfg.FirstAdminPassword, "FIRST_ADMIN_PASSWORD")

	if cfg.Database.DSN != "" {
		cfg.Database.DSN = normalizeDSN(cfg.Database.DSN)
	}
}

// setString applies the env keys in order; later keys win.
func setString(dst *string, keys ...string) {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			*dst = v
		}
	}
}

func setInt(dst *int, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: ignoring non-numeric %s=%q", key, v)
		return
	}
	*dst = n
}

// BuildDSN assembles a go-sql-driver DSN from the discrete database fields.
func (c *Config) BuildDSN() string {
	mc := mysql.NewConfig()
	mc.User = c.Database.User
	mc.Passwd = c.Database.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port))
	mc.DBName = c.Database.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// MigrateURL returns the database URL in the form golang-migrate's mysql driver expects.
func (c *Config) MigrateURL() string {
	mc, err := mysql.ParseDSN(c.Database.DSN)
	if err != nil {
		return "mysql://" + c.Database.DSN
	}
	mc.MultiStatements = true
	return "mysql://" + mc.FormatDSN()
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// normalizeDSN accepts both driver DSNs and mysql:// URLs.
func normalizeDSN(raw string) string {
	if !strings.HasPrefix(raw, "mysql://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	mc := mysql.NewConfig()
	mc.User = u.User.Username()
	mc.Passwd, _ = u.User.Password()
	mc.Net = "tcp"
	mc.Addr = u.Host
	if u.Port() == "" {
		mc.Addr = net.JoinHostPort(u.Hostname(), "3306")
	}
	mc.DBName = strings.TrimPrefix(u.Path, "/")
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}
