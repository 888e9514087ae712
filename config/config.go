package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "FORM_INTAKE"
	EnvLocal  = "local"
	EnvDev    = "dev"
	EnvProd   = "prod"

	redacted = "********"
)

// KnownForms lists the built-in forms that accept per-form settings from the environment
var KnownForms = []string{"comments", "feedback", "schedule", "techrequest", "message"}

// Config is the effective service configuration, loaded once at start
type Config struct {
	Env     string                `mapstructure:"env" yaml:"env"`
	Version string                `mapstructure:"version" yaml:"version"`
	Server  ServerConfig          `mapstructure:"server" yaml:"server"`
	Store   StoreConfig           `mapstructure:"store" yaml:"store"`
	Mail    MailConfig            `mapstructure:"mail" yaml:"mail"`
	Admin   AdminConfig           `mapstructure:"admin" yaml:"admin"`
	Digest  DigestConfig          `mapstructure:"digest" yaml:"digest"`
	Forms   map[string]FormConfig `mapstructure:"forms" yaml:"forms"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type MailConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	From     string `mapstructure:"from" yaml:"from"`
	FromName string `mapstructure:"from_name" yaml:"from_name"`
}

// AdminConfig enables token checks for destructive actions when Issuer is set
type AdminConfig struct {
	Issuer   string `mapstructure:"issuer" yaml:"issuer"`
	ClientID string `mapstructure:"client_id" yaml:"client_id"`
}

type DigestConfig struct {
	ConfigURL string `mapstructure:"config_url" yaml:"config_url"`
}

// FormConfig holds the notification targets of one form
type FormConfig struct {
	Email              EmailTarget   `mapstructure:"email" yaml:"email"`
	Webhook            WebhookTarget `mapstructure:"webhook" yaml:"webhook"`
	AllowClientTargets bool          `mapstructure:"allow_client_targets" yaml:"allow_client_targets"`
}

type EmailTarget struct {
	Recipients []string `mapstructure:"recipients" yaml:"recipients"`
	Subject    string   `mapstructure:"subject" yaml:"subject"`
}

type WebhookTarget struct {
	URL    string `mapstructure:"url" yaml:"url"`
	Method string `mapstructure:"method" yaml:"method"`
}

// Form returns the settings of the named form, or zero settings
func (c *Config) Form(name string) FormConfig {
	return c.Forms[strings.ToLower(name)]
}

// Redacted returns a copy of the configuration with secrets masked
func (c *Config) Redacted() Config {
	out := *c
	if out.Mail.Password != "" {
		out.Mail.Password = redacted
	}
	out.Forms = make(map[string]FormConfig, len(c.Forms))
	for name, form := range c.Forms {
		form.Email.Recipients = append([]string(nil), form.Email.Recipients...)
		out.Forms[name] = form
	}
	return out
}

// Load reads configuration from an optional .env file, an optional YAML file
// at path, and FORM_INTAKE_ prefixed environment variables, in increasing
// order of precedence over the defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		slog.Debug("No .env file found, relying on environment variables")
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvProd)
	v.SetDefault("version", "1.0.0")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("store.path", "./data/form_intake.db")
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.from_name", "Form Intake")
	v.SetDefault("admin.issuer", "")
	v.SetDefault("admin.client_id", "")
	v.SetDefault("digest.config_url", "")

	for _, form := range KnownForms {
		prefix := "forms." + form + "."
		v.SetDefault(prefix+"email.recipients", []string{})
		v.SetDefault(prefix+"email.subject", "")
		v.SetDefault(prefix+"webhook.url", "")
		v.SetDefault(prefix+"webhook.method", "POST")
		v.SetDefault(prefix+"allow_client_targets", false)
	}
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("invalid env %q: must be one of %s, %s, %s", c.Env, EnvLocal, EnvDev, EnvProd)
	}

	if c.Store.Path == "" {
		return errors.New("store.path is required")
	}

	if c.Admin.Issuer != "" && c.Admin.ClientID == "" {
		return errors.New("admin.client_id is required when admin.issuer is set")
	}

	return nil
}
