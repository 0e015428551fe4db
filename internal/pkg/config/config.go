package config

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	App      AppConfig      `mapstructure:"app"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	OSS      OSSConfig      `mapstructure:"oss"`
	Momo     MomoConfig     `mapstructure:"momo"`
	ZaloPay  ZaloPayConfig  `mapstructure:"zalopay"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	AccessSecret  string `mapstructure:"access_secret"`
	RefreshSecret string `mapstructure:"refresh_secret"`
	AccessExpire  int64  `mapstructure:"access_expire"`  // minutes
	RefreshExpire int64  `mapstructure:"refresh_expire"` // hours
}

type AppConfig struct {
	Env        string `mapstructure:"env"`
	Debug      bool   `mapstructure:"debug"`
	ServerSite string `mapstructure:"server_site"` // public base URL, used for payment callbacks
	ClientSite string `mapstructure:"client_site"` // front-end origin, used for CORS and mail links
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
}

type MomoConfig struct {
	PartnerCode string `mapstructure:"partner_code"`
	AccessKey   string `mapstructure:"access_key"`
	SecretKey   string `mapstructure:"secret_key"`
	Endpoint    string `mapstructure:"endpoint"`       // create endpoint
	QueryURL    string `mapstructure:"query_url"`      // status query endpoint
	RedirectURL string `mapstructure:"redirect_url"`   // browser return URL
	RequestType string `mapstructure:"request_type"`   // e.g. captureWallet
	Language    string `mapstructure:"language"`       // vi / en
	AutoCapture bool   `mapstructure:"auto_capture"`
}

type ZaloPayConfig struct {
	AppID       int    `mapstructure:"app_id"`
	Key1        string `mapstructure:"key1"`
	Key2        string `mapstructure:"key2"`
	Endpoint    string `mapstructure:"endpoint"`  // create endpoint
	QueryURL    string `mapstructure:"query_url"` // status query endpoint
	AppUser     string `mapstructure:"app_user"`
	RedirectURL string `mapstructure:"redirect_url"`
}

var GlobalConfig Config

// Validate rejects configurations that cannot serve production traffic.
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return errors.New("JWT access and refresh secrets are required")
	}
	if len(c.JWT.AccessSecret) < 32 || len(c.JWT.RefreshSecret) < 32 {
		return errors.New("JWT secrets should be at least 32 characters")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("JWT access and refresh secrets must differ")
	}
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("database configuration is incomplete")
	}
	if c.Redis.Addr == "" {
		return errors.New("redis address is required")
	}
	return nil
}

// LoadConfig reads config.yaml (or config.<env>.yaml) plus env overrides.
func LoadConfig() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	configName := "config"
	if env != "" && env != "dev" {
		configName = "config." + env
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("jwt.access_expire", 30)
	viper.SetDefault("jwt.refresh_expire", 720)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("momo.endpoint", "https://test-payment.momo.vn/v2/gateway/api/create")
	viper.SetDefault("momo.query_url", "https://test-payment.momo.vn/v2/gateway/api/query")
	viper.SetDefault("momo.request_type", "captureWallet")
	viper.SetDefault("momo.language", "vi")
	viper.SetDefault("momo.auto_capture", true)
	viper.SetDefault("zalopay.endpoint", "https://sb-openapi.zalopay.vn/v2/create")
	viper.SetDefault("zalopay.query_url", "https://sb-openapi.zalopay.vn/v2/query")
	viper.SetDefault("zalopay.app_user", "demo")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Config file not found, using defaults or env vars: %v", err)
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	// Explicit env overrides for values viper cannot always map.
	if host := os.Getenv("DB_HOST"); host != "" {
		GlobalConfig.Database.Host = host
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		GlobalConfig.Redis.Addr = redisAddr
	}
	if secret := os.Getenv("JWT_ACCESS_SECRET"); secret != "" {
		GlobalConfig.JWT.AccessSecret = secret
	}
	if secret := os.Getenv("JWT_REFRESH_SECRET"); secret != "" {
		GlobalConfig.JWT.RefreshSecret = secret
	}

	if err := GlobalConfig.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	log.Printf("Configuration loaded and validated successfully. Environment: %s", GlobalConfig.App.Env)
}
