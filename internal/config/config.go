package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Admin    Admin    `yaml:"admin"`
	Mobile   Mobile   `yaml:"mobile"`
	Database Database `yaml:"database"`
	SAML     SAML     `yaml:"saml"`
}

type Server struct {
	Addr           string   `yaml:"addr"`
	Production     bool     `yaml:"production"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Admin struct {
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	PasswordHash       string `yaml:"password_hash"`
	SessionSecret      string `yaml:"session_secret"`
	RedirectAfterLogin string `yaml:"redirect_after_login"`
}

type Mobile struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	Issuer    string        `yaml:"issuer"`
}

type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type SAML struct {
	Enabled           bool     `yaml:"enabled"`
	RootURL           string   `yaml:"root_url"`
	EntityID          string   `yaml:"entity_id"`
	IDPMetadataPath   string   `yaml:"idp_metadata_path"`
	AllowIDPInitiated bool     `yaml:"allow_idp_initiated"`
	AllowedSubjects   []string `yaml:"allowed_subjects"`

	// Key and Cert hold PEM text, not file names.
	Key  string `yaml:"key"`
	Cert string `yaml:"cert"`
}

func Default() *Config {
	return &Config{
		Server: Server{
			Addr: "localhost:8080",
			AllowedOrigins: []string{
				"http://localhost:3000",
			},
		},
		Admin: Admin{
			RedirectAfterLogin: "/",
		},
		Mobile: Mobile{
			TokenTTL: 30 * 24 * time.Hour,
			Issuer:   "cdt",
		},
		Database: Database{
			Driver: DriverSQLite,
			DSN:    "file:data/cdt.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)",
		},
		SAML: SAML{
			RootURL:  "http://localhost:8080",
			EntityID: "cdt-admin",
		},
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.Admin.Username == "" {
		errs = append(errs, errors.New("admin.username is required"))
	}
	// the session token payload is "username:expiry"
	if strings.Contains(c.Admin.Username, ":") {
		errs = append(errs, errors.New("admin.username must not contain ':'"))
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		errs = append(errs, errors.New("admin.password or admin.password_hash is required"))
	}
	if c.Admin.SessionSecret == "" {
		errs = append(errs, errors.New("admin.session_secret is required"))
	}
	if c.Mobile.JWTSecret == "" {
		errs = append(errs, errors.New("mobile.jwt_secret is required"))
	}
	if c.Mobile.TokenTTL <= 0 {
		errs = append(errs, errors.New("mobile.token_ttl must be positive"))
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.SAML.Enabled {
		if c.SAML.Key == "" || c.SAML.Cert == "" {
			errs = append(errs, errors.New("saml.key and saml.cert are required when saml is enabled"))
		}
		if c.SAML.IDPMetadataPath == "" {
			errs = append(errs, errors.New("saml.idp_metadata_path is required when saml is enabled"))
		}
	}

	return errors.Join(errs...)
}
