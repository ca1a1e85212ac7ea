package metsysd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"
)

// createHint is attached to unit file create failures
const createHint = "use --install-dir to specify a custom path"

// Manager installs rendered service definitions into a unit directory.
// The directory is resolved once, when the Manager is built. A Manager holds
// no mutable state and may be reused for several definitions.
type Manager struct {
	scope    Scope
	dir      string
	mkdir    bool
	reload   bool
	reloader Reloader
	log      logrus.FieldLogger
}

// NewManager resolves the install directory for cfg and returns a Manager.
// It fails with ErrHomeDirectoryNotFound when user scope needs the home
// directory and it cannot be determined.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.homeDir == nil {
		return nil, fmt.Errorf("%w: use NewManagerConfig", ErrInvalidConfig)
	}

	dir, isDefaultUserDir, err := resolveInstallDir(cfg)
	if err != nil {
		return nil, err
	}

	reloader := cfg.reloader
	if reloader == nil {
		reloader = NewSystemctlReloader(cfg.systemctlPath)
	}

	logger := cfg.logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Manager{
		scope:    cfg.scope,
		dir:      dir,
		mkdir:    isDefaultUserDir,
		reload:   cfg.reload,
		reloader: reloader,
		log:      logger.WithField("scope", cfg.scope.String()),
	}, nil
}

// resolveInstallDir applies override > system default > user default and
// reports whether the result is the computed default user directory.
func resolveInstallDir(cfg ManagerConfig) (string, bool, error) {
	if dir, ok := cfg.installDir.Get(); ok {
		return dir, false, nil
	}

	switch cfg.scope {
	case ScopeUser:
		dir, err := UserUnitDir(cfg.homeDir)
		if err != nil {
			return "", false, err
		}
		return dir, true, nil
	default:
		return SystemUnitDir, false, nil
	}
}

// UserUnitDir returns <home>/.config/systemd/user using homeDir to find the
// home directory
func UserUnitDir(homeDir func() (string, error)) (string, error) {
	home, err := homeDir()
	if err == nil && home == "" {
		err = errors.New("empty home directory")
	}
	if err != nil {
		return "", &OpError{Op: OpResolve, Path: UserUnitSubdir, Kind: ErrHomeDirectoryNotFound, Err: err}
	}
	return filepath.Join(home, UserUnitSubdir), nil
}

// Dir returns the resolved install directory
func (m *Manager) Dir() string { return m.dir }

// Scope returns the scope the Manager installs for
func (m *Manager) Scope() Scope { return m.scope }

// ReloadEnabled reports whether Create spawns a daemon reload
func (m *Manager) ReloadEnabled() bool { return m.reload }

// Plan describes what Create would do for a definition
type Plan struct {
	// Dir is the resolved install directory
	Dir string
	// Path is the unit file that will be written
	Path string
	// Content is the rendered unit file
	Content string
	// CreateDir is true when Dir is the default user directory and will be created
	CreateDir bool
	// ReloadArgs is the reload command line, nil when reload is disabled
	ReloadArgs []string
}

// Plan computes the install plan for def without touching the filesystem
func (m *Manager) Plan(def ServiceDefinition) Plan {
	p := Plan{
		Dir:       m.dir,
		Path:      m.UnitPath(def),
		Content:   def.Render(),
		CreateDir: m.mkdir,
	}
	if m.reload {
		p.ReloadArgs = append([]string{"systemctl"}, ReloadArgs(m.scope)...)
		if r, ok := m.reloader.(*SystemctlReloader); ok {
			p.ReloadArgs[0] = r.SystemctlPath
		}
	}
	return p
}

// UnitPath returns the path def is installed to
func (m *Manager) UnitPath(def ServiceDefinition) string {
	return filepath.Join(m.dir, def.UnitName())
}

// Create writes def into the install directory, replacing any existing unit
// of the same name, then spawns a daemon reload if enabled. The reload is
// not waited for; the returned process (nil when reload is disabled) lets the
// caller Wait deliberately.
func (m *Manager) Create(ctx context.Context, def ServiceDefinition) (*ReloadProcess, error) {
	log := m.log.WithField("service", def.Name())
	log.Debug("creating service")

	if m.mkdir {
		log.WithField("dir", m.dir).Debug("creating user unit directory")
		if err := os.MkdirAll(m.dir, DirMode); err != nil {
			return nil, &OpError{Op: OpMkdir, Path: m.dir, Kind: ErrFileCreate, Err: err, Hint: createHint}
		}
	}

	path := m.UnitPath(def)
	if err := renameio.WriteFile(path, []byte(def.Render()), FileMode); err != nil {
		log.WithField("dir", m.dir).Errorf("couldn't write to %q, are you sure it exists?", m.dir)
		return nil, &OpError{Op: OpCreate, Path: m.dir, Kind: ErrFileCreate, Err: err, Hint: createHint}
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	log.WithField("path", path).Info("service has been installed")

	if !m.reload {
		return nil, nil
	}

	log.Debug("reloading service manager")
	proc, err := m.reloader.Spawn(ctx, m.scope)
	if err != nil {
		log.WithError(err).Error("couldn't reload service manager")
		return nil, err
	}
	return proc, nil
}
