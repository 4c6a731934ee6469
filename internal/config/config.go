package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/locvowork/hrms_gateway/internal/domain"
)

var DefaultEnvConfig *EnvConfig

// Endpoints holds one base address per backend domain, each of the form
// http://<host>:<port>/api/v1.
type Endpoints struct {
	Employee     string `yaml:"employee" validate:"required,url"`
	Attendance   string `yaml:"attendance" validate:"required,url"`
	Leave        string `yaml:"leave" validate:"required,url"`
	User         string `yaml:"user" validate:"required,url"`
	Audit        string `yaml:"audit" validate:"required,url"`
	Notification string `yaml:"notification" validate:"required,url"`
	Compliance   string `yaml:"compliance" validate:"required,url"`
}

// For returns the base address configured for d.
func (e Endpoints) For(d domain.Domain) (string, error) {
	switch d {
	case domain.DomainEmployee:
		return e.Employee, nil
	case domain.DomainAttendance:
		return e.Attendance, nil
	case domain.DomainLeave:
		return e.Leave, nil
	case domain.DomainUser:
		return e.User, nil
	case domain.DomainAudit:
		return e.Audit, nil
	case domain.DomainNotification:
		return e.Notification, nil
	case domain.DomainCompliance:
		return e.Compliance, nil
	}
	return "", fmt.Errorf("unknown domain %q", d)
}

// DefaultEndpoints matches a local deployment with one port per backend.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Employee:     "http://localhost:8001/api/v1",
		Attendance:   "http://localhost:8002/api/v1",
		Leave:        "http://localhost:8003/api/v1",
		User:         "http://localhost:8004/api/v1",
		Audit:        "http://localhost:8005/api/v1",
		Notification: "http://localhost:8006/api/v1",
		Compliance:   "http://localhost:8007/api/v1",
	}
}

type EnvConfig struct {
	// backend endpoints
	Endpoints    Endpoints
	HTTP_TIMEOUT time.Duration
	// gateway config
	APP_PORT string `validate:"required,numeric"`
	// credential store config
	CREDENTIAL_STORE  string `validate:"oneof=file postgres datastore"`
	CREDENTIAL_FILE   string
	DATASTORE_PROJECT string
	// database config
	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int
	// audit archive config
	ELASTIC_URL         string
	AUDIT_ARCHIVE_INDEX string
	// export config
	EXPORT_PAGE_SIZE int `validate:"gt=0"`
	EXPORT_WORKERS   int `validate:"gt=0"`
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
}

// endpointsFile is the optional YAML overlay pointed to by HRMS_CONFIG_FILE.
type endpointsFile struct {
	Endpoints Endpoints `yaml:"endpoints"`
}

// LoadEnvConfig reads .env (if present), the optional YAML endpoints file and
// the process environment, validates the result and stores it in DefaultEnvConfig.
func LoadEnvConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := FromEnv()
	if err != nil {
		return err
	}
	DefaultEnvConfig = cfg
	return nil
}

// FromEnv builds a validated config from the current environment.
func FromEnv() (*EnvConfig, error) {
	endpoints := DefaultEndpoints()
	if path := getEnvString("HRMS_CONFIG_FILE", ""); path != "" {
		fileEndpoints, err := LoadEndpointsFile(path)
		if err != nil {
			return nil, err
		}
		endpoints = mergeEndpoints(endpoints, fileEndpoints)
	}

	endpoints = Endpoints{
		Employee:     getEnvString("EMPLOYEE_API_URL", endpoints.Employee),
		Attendance:   getEnvString("ATTENDANCE_API_URL", endpoints.Attendance),
		Leave:        getEnvString("LEAVE_API_URL", endpoints.Leave),
		User:         getEnvString("USER_API_URL", endpoints.User),
		Audit:        getEnvString("AUDIT_API_URL", endpoints.Audit),
		Notification: getEnvString("NOTIFICATION_API_URL", endpoints.Notification),
		Compliance:   getEnvString("COMPLIANCE_API_URL", endpoints.Compliance),
	}

	cfg := &EnvConfig{
		Endpoints:            endpoints,
		HTTP_TIMEOUT:         getEnvDuration("HTTP_TIMEOUT", 15*time.Second),
		APP_PORT:             getEnvString("APP_PORT", "8080"),
		CREDENTIAL_STORE:     getEnvString("CREDENTIAL_STORE", "file"),
		CREDENTIAL_FILE:      getEnvString("CREDENTIAL_FILE", defaultCredentialFile()),
		DATASTORE_PROJECT:    getEnvString("DATASTORE_PROJECT", ""),
		DB_HOST:              getEnvString("DB_HOST", "localhost"),
		DB_PORT:              getEnvInt("DB_PORT", 5432),
		DB_USER:              getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:          getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:              getEnvString("DB_NAME", "postgres"),
		DB_SSL_MODE:          getEnvString("DB_SSL_MODE", "disable"),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 2),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 5),
		ELASTIC_URL:          getEnvString("ELASTIC_URL", "http://localhost:9200"),
		AUDIT_ARCHIVE_INDEX:  getEnvString("AUDIT_ARCHIVE_INDEX", "audit-logs"),
		EXPORT_PAGE_SIZE:     getEnvInt("EXPORT_PAGE_SIZE", 100),
		EXPORT_WORKERS:       getEnvInt("EXPORT_WORKERS", 4),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:            getEnvString("LOG_LEVEL", "info"),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the whole config once at startup.
func Validate(cfg *EnvConfig) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.CREDENTIAL_STORE == "datastore" && cfg.DATASTORE_PROJECT == "" {
		return errors.New("invalid configuration: DATASTORE_PROJECT is required for the datastore credential store")
	}
	return nil
}

// LoadEndpointsFile reads the endpoints section of a YAML file. Missing
// entries are left empty and filled from defaults by the caller.
func LoadEndpointsFile(path string) (Endpoints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Endpoints{}, fmt.Errorf("read config file: %w", err)
	}
	var f endpointsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Endpoints{}, fmt.Errorf("decode config file: %w", err)
	}
	return f.Endpoints, nil
}

func mergeEndpoints(base, override Endpoints) Endpoints {
	pick := func(a, b string) string {
		if b != "" {
			return b
		}
		return a
	}
	return Endpoints{
		Employee:     pick(base.Employee, override.Employee),
		Attendance:   pick(base.Attendance, override.Attendance),
		Leave:        pick(base.Leave, override.Leave),
		User:         pick(base.User, override.User),
		Audit:        pick(base.Audit, override.Audit),
		Notification: pick(base.Notification, override.Notification),
		Compliance:   pick(base.Compliance, override.Compliance),
	}
}

func defaultCredentialFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".hrms_credentials.json"
	}
	return filepath.Join(dir, "hrms", "credentials.json")
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
