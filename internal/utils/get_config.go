package utils

import (
	"os"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v2"
)

const DefaultConfigPath = "config.yaml"

type Config struct {
	// Server configuration
	AppPort     string `yaml:"APP_PORT"`
	AppURL      string `yaml:"APP_URL"`
	LogFile     string `yaml:"LOG_FILE"`
	CORSOrigins string `yaml:"CORS_ORIGINS"`
	RateLimit   int    `yaml:"RATE_LIMIT_MAX"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	// Identity configuration
	JWTSecret           string `yaml:"JWT_SECRET"`
	JWTTTLMinutes       int    `yaml:"JWT_TTL_MINUTES"`
	AllowIdentityHeader bool   `yaml:"ALLOW_IDENTITY_HEADER"`
	BcryptCost          int    `yaml:"BCRYPT_COST"`

	// Root administrator account
	RootAdminEmail    string `yaml:"ROOT_ADMIN_EMAIL"`
	RootAdminUsername string `yaml:"ROOT_ADMIN_USERNAME"`
	RootAdminPassword string `yaml:"ROOT_ADMIN_PASSWORD"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var (
	config   = defaultConfig()
	configMu sync.RWMutex
)

func defaultConfig() Config {
	return Config{
		AppPort:           "8080",
		LogFile:           "./logs/app.log",
		CORSOrigins:       "http://localhost:3000,http://localhost:3001",
		RateLimit:         20,
		DBDriver:          "postgres",
		DBPort:            "5432",
		DBPath:            "dishcovery.db",
		JWTTTLMinutes:     120,
		BcryptCost:        10,
		RootAdminEmail:    "admin@dishcovery.com",
		RootAdminUsername: "admin",
		AWSS3Region:       "ap-southeast-1",
	}
}

// LoadConfig reads the YAML file at path and applies environment overrides.
// A missing file is not an error; defaults and the environment still apply.
func LoadConfig(path string) error {
	cfg := defaultConfig()

	file, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if err == nil {
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			log.Errorf("Error parsing YAML file: %s", err)
			return err
		}
	} else {
		log.Warnf("config file %s not found, using defaults and environment", path)
	}

	applyEnv(&cfg)

	configMu.Lock()
	config = cfg
	configMu.Unlock()
	return nil
}

// SetConfig replaces the active configuration.
func SetConfig(cfg Config) {
	configMu.Lock()
	config = cfg
	configMu.Unlock()
}

func CurrentConfig() Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return config
}

func applyEnv(cfg *Config) {
	envString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	envInt := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	envBool := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(key); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	envString("APP_PORT", &cfg.AppPort)
	envString("APP_URL", &cfg.AppURL)
	envString("LOG_FILE", &cfg.LogFile)
	envString("CORS_ORIGINS", &cfg.CORSOrigins)
	envInt("RATE_LIMIT_MAX", &cfg.RateLimit)
	envString("DB_DRIVER", &cfg.DBDriver)
	envString("DB_USER", &cfg.DBUser)
	envString("DB_NAME", &cfg.DBName)
	envString("DB_PASSWORD", &cfg.DBPassword)
	envString("DB_PORT", &cfg.DBPort)
	envString("DB_HOST", &cfg.DBHost)
	envString("DB_PATH", &cfg.DBPath)
	envString("JWT_SECRET", &cfg.JWTSecret)
	envInt("JWT_TTL_MINUTES", &cfg.JWTTTLMinutes)
	envBool("ALLOW_IDENTITY_HEADER", &cfg.AllowIdentityHeader)
	envInt("BCRYPT_COST", &cfg.BcryptCost)
	envString("ROOT_ADMIN_EMAIL", &cfg.RootAdminEmail)
	envString("ROOT_ADMIN_USERNAME", &cfg.RootAdminUsername)
	envString("ROOT_ADMIN_PASSWORD", &cfg.RootAdminPassword)
	envString("SMTP_HOST", &cfg.SMTPHost)
	envString("SMTP_PORT", &cfg.SMTPPort)
	envString("SMTP_SENDER_NAME", &cfg.SMTPSenderName)
	envString("SMTP_AUTH_EMAIL", &cfg.SMTPAuthEmail)
	envString("SMTP_AUTH_PASSWORD", &cfg.SMTPAuthPassword)
	envString("AWS_S3_BUCKET", &cfg.AWSS3Bucket)
	envString("AWS_S3_REGION", &cfg.AWSS3Region)
	envString("AWS_ACCESS_KEY", &cfg.AWSAccessKey)
	envString("AWS_SECRET_KEY", &cfg.AWSSecretKey)
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func GetConfig(key string) string {
	cfg := CurrentConfig()
	switch key {
	case "APP_PORT":
		return cfg.AppPort
	case "APP_URL":
		return cfg.AppURL
	case "LOG_FILE":
		return cfg.LogFile
	case "CORS_ORIGINS":
		return cfg.CORSOrigins
	case "RATE_LIMIT_MAX":
		return strconv.Itoa(cfg.RateLimit)
	case "DB_DRIVER":
		return cfg.DBDriver
	case "DB_USER":
		return cfg.DBUser
	case "DB_NAME":
		return cfg.DBName
	case "DB_PASSWORD":
		return cfg.DBPassword
	case "DB_PORT":
		return cfg.DBPort
	case "DB_HOST":
		return cfg.DBHost
	case "DB_PATH":
		return cfg.DBPath
	case "JWT_SECRET":
		return cfg.JWTSecret
	case "JWT_TTL_MINUTES":
		return strconv.Itoa(cfg.JWTTTLMinutes)
	case "ALLOW_IDENTITY_HEADER":
		return getBoolString(cfg.AllowIdentityHeader)
	case "BCRYPT_COST":
		return strconv.Itoa(cfg.BcryptCost)
	case "ROOT_ADMIN_EMAIL":
		return cfg.RootAdminEmail
	case "ROOT_ADMIN_USERNAME":
		return cfg.RootAdminUsername
	case "ROOT_ADMIN_PASSWORD":
		return cfg.RootAdminPassword
	case "SMTP_HOST":
		return cfg.SMTPHost
	case "SMTP_PORT":
		return cfg.SMTPPort
	case "SMTP_SENDER_NAME":
		return cfg.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return cfg.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return cfg.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return cfg.AWSS3Bucket
	case "AWS_S3_REGION":
		return cfg.AWSS3Region
	case "AWS_ACCESS_KEY":
		return cfg.AWSAccessKey
	case "AWS_SECRET_KEY":
		return cfg.AWSSecretKey
	default:
		return ""
	}
}

// SQLiteDSN turns a file path into a DSN with foreign keys enforced.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
