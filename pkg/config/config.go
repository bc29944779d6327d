package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Bootstrap     BootstrapConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAMPUS_APP_ENV" required:"true"`
	Port         string `envconfig:"CAMPUS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CAMPUS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAMPUS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CAMPUS_DB_DSN"`

	Host     string `envconfig:"CAMPUS_DB_HOST"`
	Port     int    `envconfig:"CAMPUS_DB_PORT" default:"5432"`
	User     string `envconfig:"CAMPUS_DB_USER"`
	Password string `envconfig:"CAMPUS_DB_PASSWORD"`
	Name     string `envconfig:"CAMPUS_DB_NAME"`
	SSLMode  string `envconfig:"CAMPUS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CAMPUS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CAMPUS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CAMPUS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CAMPUS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: when neither URL nor Address is set, the API runs
// without auth rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"CAMPUS_REDIS_URL"`
	Address      string        `envconfig:"CAMPUS_REDIS_ADDR"`
	Password     string        `envconfig:"CAMPUS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CAMPUS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CAMPUS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CAMPUS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CAMPUS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CAMPUS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CAMPUS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"CAMPUS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CAMPUS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CAMPUS_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CAMPUS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CAMPUS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CAMPUS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CAMPUS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CAMPUS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"CAMPUS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"CAMPUS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"CAMPUS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"CAMPUS_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"CAMPUS_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"CAMPUS_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

// BootstrapConfig seeds the first super admin on a fresh database. Without it
// no account exists that can mint admin tokens.
type BootstrapConfig struct {
	SuperAdminEmail    string `envconfig:"CAMPUS_BOOTSTRAP_SUPER_ADMIN_EMAIL"`
	SuperAdminPassword string `envconfig:"CAMPUS_BOOTSTRAP_SUPER_ADMIN_PASSWORD"`
	SuperAdminName     string `envconfig:"CAMPUS_BOOTSTRAP_SUPER_ADMIN_NAME" default:"Super Admin"`
	SuperAdminPhone    string `envconfig:"CAMPUS_BOOTSTRAP_SUPER_ADMIN_PHONE"`
}

// Enabled reports whether bootstrap credentials were provided.
func (b BootstrapConfig) Enabled() bool {
	return b.SuperAdminEmail != "" && b.SuperAdminPassword != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CAMPUS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
