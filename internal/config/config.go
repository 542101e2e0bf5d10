package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting the server reads from the environment.
// Clients (Mongo, Firebase, Mailgun) are constructed once in cmd/server from
// these values and injected into the services that need them.
type Config struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`

	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DB" envDefault:"artconecta"`

	// Firebase is optional: without a project ID the server runs in
	// local-auth mode (HS256 session tokens) and skips public-profile
	// mirroring to Firestore.
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsJSON string `env:"FIREBASE_CREDENTIALS_JSON,unset"`

	JWTSecret     string        `env:"JWT_SECRET"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`

	RecaptchaSecret  string `env:"RECAPTCHA_SECRET"`
	MailgunDomain    string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey    string `env:"MAILGUN_API_KEY,unset"`
	ContactFromEmail string `env:"CONTACT_FROM_EMAIL"`
	ContactToEmail   string `env:"CONTACT_TO_EMAIL" envDefault:"contato@artconecta.com.br"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the process environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// FirebaseEnabled reports whether enough Firebase settings are present to
// build the Auth and Firestore clients.
func (c *Config) FirebaseEnabled() bool {
	return c.FirebaseProjectID != ""
}

// LocalAuthEnabled reports whether first-party HS256 sessions are configured.
func (c *Config) LocalAuthEnabled() bool {
	return c.JWTSecret != ""
}
