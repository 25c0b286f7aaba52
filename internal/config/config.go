package config

// Version information, set at build time

var Version = "development"
var CommitHash = "development"
var BuildTimestamp = "0000-00-00T00:00:00Z"

// Environment variable prefix used by the env loader

var DefaultNamePrefix = "TINYOAUTH_"

// Protocol constants

const (
	ResponseTypeCode           = "code"
	GrantTypeAuthorizationCode = "authorization_code"
	TokenTypeBearer            = "Bearer"
)

// Main app config

type Config struct {
	AppURL         string         `description:"The base URL where the server is reachable." yaml:"appUrl"`
	DatabasePath   string         `description:"The path to the SQLite database file." yaml:"databasePath"`
	TrustedProxies []string       `description:"Comma-separated list of trusted proxy addresses." yaml:"trustedProxies"`
	ConfigFile     string         `description:"Path to a YAML/TOML configuration file." yaml:"-"`
	Server         ServerConfig   `description:"Server configuration." yaml:"server"`
	OAuth          OAuthConfig    `description:"OAuth protocol configuration." yaml:"oauth"`
	Auth           AuthConfig     `description:"Interactive identity configuration." yaml:"auth"`
	Database       DatabaseConfig `description:"Database maintenance configuration." yaml:"database"`
	Metrics        MetricsConfig  `description:"Prometheus metrics configuration." yaml:"metrics"`
	Log            LogConfig      `description:"Logging configuration." yaml:"log"`
}

type ServerConfig struct {
	Port       int    `description:"The port on which the server listens." yaml:"port"`
	Address    string `description:"The address on which the server listens." yaml:"address"`
	SocketPath string `description:"The path to the Unix socket." yaml:"socketPath"`
}

type OAuthConfig struct {
	TokenExpiryDays    int `description:"Access token lifetime in days." yaml:"tokenExpiryDays"`
	CodeExpiry         int `description:"Authorization code lifetime in seconds." yaml:"codeExpiry"`
	MaxClientsPerOwner int `description:"Maximum number of clients a single owner may register (negative for unlimited)." yaml:"maxClientsPerOwner"`
}

type AuthConfig struct {
	Users     []string `description:"Comma-separated list of users (id:username:hashed_password[:email])." yaml:"users"`
	UsersFile string   `description:"Path to the users file." yaml:"usersFile"`
}

type DatabaseConfig struct {
	CleanupInterval int `description:"Minutes between expired code/token cleanups (0 disables)." yaml:"cleanupInterval"`
}

type MetricsConfig struct {
	Enabled bool   `description:"Expose Prometheus metrics." yaml:"enabled"`
	Path    string `description:"Path of the metrics endpoint." yaml:"path"`
}

type LogConfig struct {
	Level   string     `description:"Log level (trace, debug, info, warn, error)." yaml:"level"`
	Json    bool       `description:"Enable JSON formatted logs." yaml:"json"`
	Streams LogStreams `description:"Configuration for specific log streams." yaml:"streams"`
}

type LogStreams struct {
	HTTP  LogStreamConfig `description:"HTTP request logging." yaml:"http"`
	App   LogStreamConfig `description:"Application logging." yaml:"app"`
	Audit LogStreamConfig `description:"Audit logging." yaml:"audit"`
}

type LogStreamConfig struct {
	Enabled bool   `description:"Enable this log stream." yaml:"enabled"`
	Level   string `description:"Log level for this stream. Use global if empty." yaml:"level"`
}

func NewDefaultConfiguration() *Config {
	return &Config{
		DatabasePath: "./tinyoauth.db",
		Server: ServerConfig{
			Port:    3000,
			Address: "0.0.0.0",
		},
		OAuth: OAuthConfig{
			TokenExpiryDays:    30,
			CodeExpiry:         600,
			MaxClientsPerOwner: -1,
		},
		Database: DatabaseConfig{
			CleanupInterval: 30,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level: "info",
			Json:  false,
			Streams: LogStreams{
				HTTP:  LogStreamConfig{Enabled: true},
				App:   LogStreamConfig{Enabled: true},
				Audit: LogStreamConfig{Enabled: false},
			},
		},
	}
}

// Identity related stuff

type User struct {
	ID       int64
	Username string
	Password string
	Email    string
}

type UserContext struct {
	ID         int64
	Username   string
	Email      string
	IsLoggedIn bool
}

// API queries

type AuthorizeRedirectQuery struct {
	Code  string `url:"code"`
	State string `url:"state,omitempty"`
}
