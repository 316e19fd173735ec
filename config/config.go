package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"exposure/internal/domain/constants"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Scheduler SchedulerConfig `json:"scheduler" yaml:"scheduler"`

	Delivery DeliveryConfig `json:"delivery" yaml:"delivery"`

	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot"`

	Storage StorageConfig `json:"storage" yaml:"storage"`

	Postgres *PostgresConfig `json:"postgres" yaml:"postgres"`

	// PubSub configuration for the event sink
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// SchedulerConfig controls evaluation cycles.
type SchedulerConfig struct {
	// Interval between periodic cycles, zero disables the timer and leaves only explicit triggers
	Interval time.Duration `json:"interval" yaml:"interval"`

	// CycleTimeout bounds the synchronous part of one cycle (sweep, snapshot, matching)
	CycleTimeout time.Duration `json:"cycleTimeout" yaml:"cycleTimeout"`
}

// DeliveryConfig controls webhook delivery and retries.
type DeliveryConfig struct {
	RequestTimeout      time.Duration `json:"requestTimeout" yaml:"requestTimeout"`
	MaxAttempts         int           `json:"maxAttempts" yaml:"maxAttempts"`
	InitialInterval     time.Duration `json:"initialInterval" yaml:"initialInterval"`
	MaxInterval         time.Duration `json:"maxInterval" yaml:"maxInterval"`
	Multiplier          float64       `json:"multiplier" yaml:"multiplier"`
	RandomizationFactor float64       `json:"randomizationFactor" yaml:"randomizationFactor"`

	// MaxInFlight caps concurrent webhook requests across all subscribers
	MaxInFlight int `json:"maxInFlight" yaml:"maxInFlight"`

	// MaxInFlightPerSubscription caps concurrent requests of a single subscription so a
	// hanging endpoint cannot hold every MaxInFlight slot. Defaults to a quarter of MaxInFlight.
	MaxInFlightPerSubscription int `json:"maxInFlightPerSubscription" yaml:"maxInFlightPerSubscription"`

	// MaxPending caps outstanding delivery attempts, including those waiting on backoff
	MaxPending int `json:"maxPending" yaml:"maxPending"`

	// DedupWindow is how long a resolved event ID is remembered
	DedupWindow time.Duration `json:"dedupWindow" yaml:"dedupWindow"`
}

// SnapshotConfig points at the mobile network emulator.
type SnapshotConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Driver is "memory" or "postgres"
	Driver string `json:"driver" yaml:"driver"`

	// EventLogSize bounds the in-memory event log
	EventLogSize int `json:"eventLogSize" yaml:"eventLogSize"`
}

// PostgresConfig defines the database connection.
type PostgresConfig struct {
	Host            string        `json:"host" yaml:"host"`
	Port            string        `json:"port" yaml:"port"`
	UserName        string        `json:"userName" yaml:"userName"`
	Password        string        `json:"password" yaml:"password"`
	Database        string        `json:"database" yaml:"database"`
	SSLMode         string        `json:"sslMode" yaml:"sslMode"`
	TimeZone        string        `json:"timeZone" yaml:"timeZone"`
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`
	AutoMigrate     bool          `json:"autoMigrate" yaml:"autoMigrate"`

	// SlowQueryThreshold is how long a statement may take before it is logged as slow
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
}

// DSN renders the connection string understood by the pgx driver.
func (c *PostgresConfig) DSN() string {
	parts := []string{
		"host=" + c.Host,
		"port=" + c.Port,
		"user=" + c.UserName,
		"password=" + c.Password,
		"dbname=" + c.Database,
	}
	if c.SSLMode != "" {
		parts = append(parts, "sslmode="+c.SSLMode)
	}
	if c.TimeZone != "" {
		parts = append(parts, "TimeZone="+c.TimeZone)
	}

	return strings.Join(parts, " ")
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// AuthConfig guards the 3GPP monitoring API with bearer tokens.
type AuthConfig struct {
	Enabled  bool          `json:"enabled" yaml:"enabled"`
	Secret   string        `json:"secret" yaml:"secret"`
	TokenTTL time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
	Clients  []AuthClient  `json:"clients" yaml:"clients"`

	// BcryptCost is used for hashes produced by the hash-password command
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

// AuthClient is an application allowed to request access tokens.
type AuthClient struct {
	Username     string `json:"username" yaml:"username"`
	PasswordHash string `json:"passwordHash" yaml:"passwordHash"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Env.ServiceName == "" {
		cfg.Env.ServiceName = "exposure"
	}

	if cfg.Scheduler.CycleTimeout <= 0 {
		cfg.Scheduler.CycleTimeout = 10 * time.Second
	}

	d := &cfg.Delivery
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 5 * time.Second
	}
	if d.MaxAttempts <= 0 {
		d.MaxAttempts = 5
	}
	if d.InitialInterval <= 0 {
		d.InitialInterval = 500 * time.Millisecond
	}
	if d.MaxInterval <= 0 {
		d.MaxInterval = 30 * time.Second
	}
	if d.Multiplier < 1 {
		d.Multiplier = 2
	}
	if d.RandomizationFactor < 0 || d.RandomizationFactor >= 1 {
		d.RandomizationFactor = 0.5
	}
	if d.MaxInFlight <= 0 {
		d.MaxInFlight = 64
	}
	if d.MaxInFlightPerSubscription <= 0 || d.MaxInFlightPerSubscription > d.MaxInFlight {
		d.MaxInFlightPerSubscription = max(d.MaxInFlight/4, 1)
	}
	if d.MaxPending <= 0 {
		d.MaxPending = 10000
	}
	if d.DedupWindow <= 0 {
		d.DedupWindow = 10 * time.Minute
	}

	if cfg.Snapshot.Timeout <= 0 {
		cfg.Snapshot.Timeout = 5 * time.Second
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = constants.StorageDriverMemory
	}
	if cfg.Storage.EventLogSize <= 0 {
		cfg.Storage.EventLogSize = 5000
	}

	if cfg.Auth != nil && cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = time.Hour
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
