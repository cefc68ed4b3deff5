package config

import (
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	errNotRSAKey = errors.New("saml key is not an RSA key")
)

// Path is the config file location; main overrides it from the -config flag.
type Path string

// New reads the YAML file at path on top of Default, then applies the
// environment (including a .env file when present) and validates the result.
// A missing file is not an error.
func New(path Path) (*Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.readFile(string(path)); err != nil {
		return nil, err
	}
	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set("SERVER_ADDR", &c.Server.Addr)
	set("ADMIN_USERNAME", &c.Admin.Username)
	set("ADMIN_PASSWORD", &c.Admin.Password)
	set("ADMIN_PASSWORD_HASH", &c.Admin.PasswordHash)
	set("ADMIN_SESSION_SECRET", &c.Admin.SessionSecret)
	set("MOBILE_JWT_SECRET", &c.Mobile.JWTSecret)
	set("DATABASE_DRIVER", &c.Database.Driver)
	set("DATABASE_DSN", &c.Database.DSN)

	if v, ok := lookup("APP_ENV"); ok && strings.EqualFold(v, "production") {
		c.Server.Production = true
	}
}

// KeyPair parses the PEM encoded SAML service provider key and certificate.
func (s SAML) KeyPair() (*rsa.PrivateKey, *x509.Certificate, error) {
	keyPair, err := tls.X509KeyPair([]byte(s.Cert), []byte(s.Key))
	if err != nil {
		return nil, nil, err
	}
	keyPair.Leaf, err = x509.ParseCertificate(keyPair.Certificate[0])
	if err != nil {
		return nil, nil, err
	}

	key, ok := keyPair.PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return nil, nil, errNotRSAKey
	}
	return key, keyPair.Leaf, nil
}
