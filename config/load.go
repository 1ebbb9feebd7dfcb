package config

import (
	"context"

	auth "github.com/goliatone/go-bookquotes-auth"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// EnvPrefix scopes the environment provider. Nested keys use a double
	// underscore: BOOKQUOTES_JWT__SIGNING_KEY sets jwt.signing_key.
	EnvPrefix = "BOOKQUOTES_"
	// DefaultConfigPath is read when present and no --config flag is given
	DefaultConfigPath = "config/app.json"

	envDelimiter = "__"
)

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"addr":         "server.address",
	"api-prefix":   "server.prefix",
	"db-driver":    "database.driver",
	"db-dsn":       "database.dsn",
	"jwt-key":      "jwt.signing_key",
	"jwt-kid":      "jwt.key_id",
	"jwt-issuer":   "jwt.issuer",
	"jwt-audience": "jwt.audience",
	"jwt-expire":   "jwt.expire_minutes",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

// NewFlagSet declares the command-line flags understood by Load
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("bookquotes", pflag.ContinueOnError)
	fs.String("config", DefaultConfigPath, "path to a JSON config file")
	fs.String("addr", "", "address and port to run server")
	fs.String("api-prefix", "", "second mount point for the API")
	fs.String("db-driver", "", "database driver: sqlite or postgres")
	fs.String("db-dsn", "", "database DSN")
	fs.String("jwt-key", "", "JWT HMAC signing key")
	fs.String("jwt-kid", "", "key id written to the token header")
	fs.String("jwt-issuer", "", "JWT issuer")
	fs.String("jwt-audience", "", "JWT audience")
	fs.Int("jwt-expire", 0, "token lifetime in minutes")
	fs.String("log-level", "", "log level")
	fs.String("log-format", "", "log format: json or text")
	return fs
}

// Load resolves the configuration. Sources are applied in increasing
// precedence: defaults, the JSON file, the environment, then flags.
// The result is validated before it is returned.
func Load(ctx context.Context, args []string, logger auth.Logger) (*Config, error) {
	fs := NewFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.LoadDefaults()

	container := gconfig.New(cfg).
		WithProvider(
			fileProvider(fs),
			gconfig.EnvProvider[*Config](EnvPrefix, envDelimiter),
			flagsProvider(fs),
		)

	if logger != nil {
		container.WithLogger(logger)
	}

	if err := container.Load(ctx); err != nil {
		return nil, err
	}

	return container.Raw(), nil
}

// fileProvider only tolerates a missing file when the default path is used
func fileProvider(fs *pflag.FlagSet) gconfig.ProviderBuilder[*Config] {
	path, _ := fs.GetString("config")
	if fs.Changed("config") {
		return gconfig.FileProvider[*Config](path)
	}
	return gconfig.OptionalProvider(gconfig.FileProvider[*Config](path))
}

func flagsProvider(fs *pflag.FlagSet) gconfig.ProviderBuilder[*Config] {
	return func(*gconfig.Container[*Config]) (gconfig.Provider, error) {
		return &flagLoader{fs: fs}, nil
	}
}

// flagLoader feeds explicitly set flags into the container. The values are
// merged like the file and env sources so a typed flag can override a
// string taken from the environment.
type flagLoader struct {
	fs *pflag.FlagSet
}

var _ gconfig.Provider = (*flagLoader)(nil)

func (l *flagLoader) Type() gconfig.ProviderType { return gconfig.ProviderTypeFlag }
func (l *flagLoader) Priority() int              { return int(gconfig.PriorityFlags) }
func (l *flagLoader) Validate() error            { return nil }

func (l *flagLoader) Load(_ context.Context, k *koanf.Koanf) error {
	prv := posflag.ProviderWithFlag(l.fs, gconfig.DefaultDelimiter, k, func(f *pflag.Flag) (string, any) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed {
			return "", nil
		}
		return key, posflag.FlagVal(l.fs, f)
	})
	return k.Load(prv, nil, koanf.WithMergeFunc(gconfig.MergeWithBooleanPrecedence))
}
