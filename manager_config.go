package metsysd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// ManagerConfig is the validated, immutable configuration of a Manager.
// Build it with NewManagerConfig.
type ManagerConfig struct {
	scope         Scope
	installDir    Optional[string]
	reload        bool
	systemctlPath string
	homeDir       func() (string, error)
	reloader      Reloader
	logger        logrus.FieldLogger
}

// ManagerOption configures a ManagerConfig
type ManagerOption func(*ManagerConfig)

// WithScope selects system or user scope
func WithScope(scope Scope) ManagerOption {
	return func(c *ManagerConfig) {
		c.scope = scope
	}
}

// WithInstallDir overrides the install directory in any scope.
// An empty dir means no override.
func WithInstallDir(dir string) ManagerOption {
	return func(c *ManagerConfig) {
		if dir == "" {
			c.installDir = None[string]()
			return
		}
		c.installDir = Some(dir)
	}
}

// WithDaemonReload enables or disables the reload after install
func WithDaemonReload(enabled bool) ManagerOption {
	return func(c *ManagerConfig) {
		c.reload = enabled
	}
}

// WithSystemctlPath sets the systemctl binary used for reloads
func WithSystemctlPath(path string) ManagerOption {
	return func(c *ManagerConfig) {
		c.systemctlPath = path
	}
}

// WithHomeDirFunc replaces os.UserHomeDir for user scope resolution
func WithHomeDirFunc(fn func() (string, error)) ManagerOption {
	return func(c *ManagerConfig) {
		c.homeDir = fn
	}
}

// WithReloader replaces the systemctl reloader
func WithReloader(r Reloader) ManagerOption {
	return func(c *ManagerConfig) {
		c.reloader = r
	}
}

// WithLogger sets the logger used by the Manager
func WithLogger(l logrus.FieldLogger) ManagerOption {
	return func(c *ManagerConfig) {
		c.logger = l
	}
}

// NewManagerConfig creates a ManagerConfig with default settings
func NewManagerConfig(opts ...ManagerOption) (ManagerConfig, error) {
	c := ManagerConfig{
		scope:         ScopeSystem,
		reload:        true,
		systemctlPath: DefaultSystemctlPath,
		homeDir:       os.UserHomeDir,
		logger:        logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(&c)
	}

	if c.scope != ScopeSystem && c.scope != ScopeUser {
		return ManagerConfig{}, fmt.Errorf("%w: unknown %s", ErrInvalidConfig, c.scope)
	}
	if c.homeDir == nil {
		return ManagerConfig{}, fmt.Errorf("%w: home directory resolver is nil", ErrInvalidConfig)
	}
	if c.reload && c.reloader == nil && c.systemctlPath == "" {
		return ManagerConfig{}, fmt.Errorf("%w: daemon reload enabled without a systemctl path", ErrInvalidConfig)
	}
	if c.logger == nil {
		c.logger = logrus.StandardLogger()
	}

	return c, nil
}

// Scope returns the configured scope
func (c ManagerConfig) Scope() Scope { return c.scope }

// InstallDir returns the install directory override, if any
func (c ManagerConfig) InstallDir() Optional[string] { return c.installDir }

// DaemonReload reports whether a reload follows a successful install
func (c ManagerConfig) DaemonReload() bool { return c.reload }

// SystemctlPath returns the systemctl binary used for reloads
func (c ManagerConfig) SystemctlPath() string { return c.systemctlPath }
