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
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Mail          MailConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Eventing      EventingConfig
	Donor         DonorConfig
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
	Env          string `envconfig:"DOEVIDA_APP_ENV" required:"true"`
	Port         string `envconfig:"DOEVIDA_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"DOEVIDA_APP_BASE_URL" default:"http://localhost:8080"`
	LogLevel     string `envconfig:"DOEVIDA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DOEVIDA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"DOEVIDA_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"DOEVIDA_DB_DSN"`
	Driver string `envconfig:"DOEVIDA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DOEVIDA_DB_HOST"`
	LegacyPort     int    `envconfig:"DOEVIDA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DOEVIDA_DB_USER"`
	LegacyPassword string `envconfig:"DOEVIDA_DB_PASSWORD"`
	LegacyName     string `envconfig:"DOEVIDA_DB_NAME"`
	LegacySSLMode  string `envconfig:"DOEVIDA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DOEVIDA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DOEVIDA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DOEVIDA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DOEVIDA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver was selected (dev installs and tests).
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"DOEVIDA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DOEVIDA_REDIS_ADDR"`
	Password     string        `envconfig:"DOEVIDA_REDIS_PASSWORD"`
	DB           int           `envconfig:"DOEVIDA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DOEVIDA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DOEVIDA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DOEVIDA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DOEVIDA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DOEVIDA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"DOEVIDA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"DOEVIDA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"DOEVIDA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"DOEVIDA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DOEVIDA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DOEVIDA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DOEVIDA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DOEVIDA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DOEVIDA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"DOEVIDA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"DOEVIDA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"DOEVIDA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"DOEVIDA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"DOEVIDA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"DOEVIDA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
	RecoverWindow      time.Duration `envconfig:"DOEVIDA_AUTH_RATE_LIMIT_RECOVER_WINDOW" default:"5m"`
	RecoverEmailLimit  int           `envconfig:"DOEVIDA_AUTH_RATE_LIMIT_RECOVER_EMAIL_LIMIT" default:"3"`
	RecoverIPLimit     int           `envconfig:"DOEVIDA_AUTH_RATE_LIMIT_RECOVER_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DOEVIDA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DOEVIDA_AUTO_MIGRATE" default:"false"`
}

type MailConfig struct {
	Host        string `envconfig:"DOEVIDA_MAIL_HOST"`
	Port        int    `envconfig:"DOEVIDA_MAIL_PORT" default:"587"`
	Username    string `envconfig:"DOEVIDA_MAIL_USERNAME"`
	Password    string `envconfig:"DOEVIDA_MAIL_PASSWORD"`
	FromName    string `envconfig:"DOEVIDA_MAIL_FROM_NAME" default:"Suporte DoeVida"`
	FromAddress string `envconfig:"DOEVIDA_MAIL_FROM_ADDRESS"`
	UseTLS      bool   `envconfig:"DOEVIDA_MAIL_USE_TLS" default:"true"`
}

// Enabled reports whether outbound mail is configured at all.
func (m MailConfig) Enabled() bool {
	return strings.TrimSpace(m.Host) != ""
}

type GCPConfig struct {
	ProjectID              string `envconfig:"DOEVIDA_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"DOEVIDA_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"DOEVIDA_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	ParticipationTopic        string `envconfig:"DOEVIDA_PUBSUB_PARTICIPATION_TOPIC" default:"dv-participation-events"`
	ParticipationSubscription string `envconfig:"DOEVIDA_PUBSUB_PARTICIPATION_SUBSCRIPTION"`
}

type EventingConfig struct {
	IdempotencyTTL time.Duration `envconfig:"DOEVIDA_EVENTING_IDEMPOTENCY_TTL" default:"720h"`
}

// DonorConfig drives the donor-facing participation client (cmd/donorctl).
type DonorConfig struct {
	BaseURL        string        `envconfig:"DOEVIDA_DONOR_BASE_URL" default:"http://localhost:8080"`
	RequestTimeout time.Duration `envconfig:"DOEVIDA_DONOR_REQUEST_TIMEOUT" default:"10s"`
	ProbeSession   bool          `envconfig:"DOEVIDA_DONOR_PROBE_SESSION" default:"true"`
	StrictStates   bool          `envconfig:"DOEVIDA_DONOR_STRICT_STATES" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:doevida.db?_pragma=foreign_keys(1)"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
