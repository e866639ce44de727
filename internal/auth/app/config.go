package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/staffdesk/internal/auth/mail"
	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
)

const (
	MailDriverLog  = "log"
	MailDriverSMTP = "smtp"
)

type Config struct {
	Issuer         string `env:"AUTH_ISSUER" envDefault:"staffdesk-auth"`
	BootstrapToken string `env:"BOOTSTRAP_TOKEN"` // empty disables /v1/bootstrap

	Algorithm string `env:"AUTH_ALGORITHM" envDefault:"EdDSA"` // EdDSA or ES256
	NumKeys   int    `env:"AUTH_NUM_KEYS" envDefault:"3"`      // clamped to 1..10

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`
	PepperFile   string `env:"AUTH_PEPPER_FILE" envDefault:"pepper"`

	AccessTTL  time.Duration `env:"AUTH_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"AUTH_REFRESH_TTL" envDefault:"168h"`
	OTPTTL     time.Duration `env:"AUTH_OTP_TTL" envDefault:"15m"`
	OTPLength  int           `env:"AUTH_OTP_LENGTH" envDefault:"7"`

	FrontendURL      string `env:"AUTH_FRONTEND_URL" envDefault:"http://localhost:3000"`
	DebugResetLinks  bool   `env:"AUTH_DEBUG_RESET_LINKS"`
	MailDriver       string `env:"MAIL_DRIVER" envDefault:"log"`
	MailFrom         string `env:"MAIL_FROM" envDefault:"staffdesk <no-reply@staffdesk.local>"`
	SMTP             SMTPConfig
	CORSAllowOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	RateLimits httpx.RateLimitProfiles `envPrefix:"RATELIMIT_"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
}

// LoadConfig reads Config from the environment. Rate limit profiles start
// from httpx.DefaultRateLimits and any RATELIMIT_* variable overrides a
// single field.
func LoadConfig() (Config, error) {
	cfg := Config{RateLimits: httpx.DefaultRateLimits()}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.MailDriver {
	case MailDriverLog:
	case MailDriverSMTP:
		if c.SMTP.Host == "" {
			return fmt.Errorf("config: SMTP_HOST is required when MAIL_DRIVER=smtp")
		}
	default:
		return fmt.Errorf("config: unknown MAIL_DRIVER %q (supported: log, smtp)", c.MailDriver)
	}

	for name, rl := range map[string]httpx.RateLimitConfig{
		"STRICT":   c.RateLimits.Strict,
		"MODERATE": c.RateLimits.Moderate,
		"LENIENT":  c.RateLimits.Lenient,
		"PUBLIC":   c.RateLimits.Public,
	} {
		if !rl.Valid() {
			return fmt.Errorf("config: RATELIMIT_%s_* values must be positive", name)
		}
	}

	if c.OTPLength < 4 {
		return fmt.Errorf("config: AUTH_OTP_LENGTH must be at least 4")
	}
	if c.Env == "prod" && c.DebugResetLinks {
		return fmt.Errorf("config: AUTH_DEBUG_RESET_LINKS must not be enabled in prod")
	}
	return nil
}

func (c Config) smtp() mail.SMTPConfig {
	return mail.SMTPConfig{
		Host:     c.SMTP.Host,
		Port:     c.SMTP.Port,
		Username: c.SMTP.Username,
		Password: c.SMTP.Password,
		From:     c.MailFrom,
	}
}
