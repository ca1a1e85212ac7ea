// Package config turns flags, environment and an optional config file into a
// service definition and installer configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/axondata/metsysd"
)

// EnvPrefix prefixes every environment variable read by metsysd
const EnvPrefix = "METSYSD"

// Config keys, shared by flags, environment and config files
const (
	KeyName         = "name"
	KeyCommand      = "command"
	KeyDescription  = "description"
	KeyAfter        = "after"
	KeyWantedBy     = "wanted_by"
	KeyServiceType  = "service_type"
	KeyRestart      = "restart"
	KeyUser         = "user"
	KeyGroup        = "group"
	KeyIsUser       = "is_user"
	KeyInstallDir   = "install_dir"
	KeyDaemonReload = "daemon_reload"
	KeyWaitReload   = "wait_reload"
	KeySystemctl    = "systemctl"
	KeyDryRun       = "dry_run"
)

// Keys lists every config key
var Keys = []string{
	KeyName, KeyCommand, KeyDescription, KeyAfter, KeyWantedBy,
	KeyServiceType, KeyRestart, KeyUser, KeyGroup,
	KeyIsUser, KeyInstallDir, KeyDaemonReload, KeyWaitReload, KeySystemctl, KeyDryRun,
}

// Config is the decoded configuration of one metsysd invocation
type Config struct {
	Name        string                `mapstructure:"name"`
	Command     string                `mapstructure:"command"`
	Description string                `mapstructure:"description"`
	After       string                `mapstructure:"after"`
	WantedBy    string                `mapstructure:"wanted_by"`
	ServiceType metsysd.ServiceType   `mapstructure:"service_type"`
	Restart     metsysd.RestartPolicy `mapstructure:"restart"`
	User        string                `mapstructure:"user"`
	Group       string                `mapstructure:"group"`

	IsUser       bool   `mapstructure:"is_user"`
	InstallDir   string `mapstructure:"install_dir"`
	DaemonReload bool   `mapstructure:"daemon_reload"`
	WaitReload   bool   `mapstructure:"wait_reload"`
	Systemctl    string `mapstructure:"systemctl"`
	DryRun       bool   `mapstructure:"dry_run"`
}

// SetDefaults registers the defaults of every key that has one
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyServiceType, metsysd.ServiceTypeSimple.String())
	v.SetDefault(KeyRestart, metsysd.RestartNo.String())
	v.SetDefault(KeyDaemonReload, true)
	v.SetDefault(KeySystemctl, metsysd.DefaultSystemctlPath)
}

// New returns a viper instance reading METSYSD_* environment variables, with
// defaults registered
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for _, key := range Keys {
		// Unmarshal only sees keys viper knows about.
		_ = v.BindEnv(key)
	}
	SetDefaults(v)
	return v
}

// ReadFile merges the config file at path into v. A missing file named
// explicitly is an error.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("config file %s not found: %w", path, err)
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	logrus.WithField("file", v.ConfigFileUsed()).Debug("loaded config file")
	return nil
}

// Load decodes v into a Config
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Definition converts the configuration into a ServiceDefinition, applying
// defaults to every unset field
func (c *Config) Definition() (metsysd.ServiceDefinition, error) {
	return metsysd.NewServiceDefinition(
		metsysd.WithName(c.Name),
		metsysd.WithExecStart(c.Command),
		metsysd.WithDescription(c.Description),
		metsysd.WithAfter(c.After),
		metsysd.WithWantedBy(c.WantedBy),
		metsysd.WithServiceType(c.ServiceType),
		metsysd.WithRestartPolicy(c.Restart),
		metsysd.WithUser(c.User),
		metsysd.WithGroup(c.Group),
	)
}

// Scope returns the scope selected by IsUser
func (c *Config) Scope() metsysd.Scope {
	if c.IsUser {
		return metsysd.ScopeUser
	}
	return metsysd.ScopeSystem
}

// ManagerConfig converts the configuration into a validated ManagerConfig.
// Extra options are applied last.
func (c *Config) ManagerConfig(extra ...metsysd.ManagerOption) (metsysd.ManagerConfig, error) {
	opts := []metsysd.ManagerOption{
		metsysd.WithScope(c.Scope()),
		metsysd.WithInstallDir(c.InstallDir),
		metsysd.WithDaemonReload(c.DaemonReload),
		metsysd.WithSystemctlPath(c.Systemctl),
	}
	return metsysd.NewManagerConfig(append(opts, extra...)...)
}
