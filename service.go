package metsysd

import (
	"fmt"
	"os"
	"strings"
)

// Optional holds a value that may be absent
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value is present
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrElse returns the value if present, otherwise def
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// ExecutionContext describes how systemd runs the service process
type ExecutionContext struct {
	execStart   string
	serviceType ServiceType
	restart     RestartPolicy
	user        Optional[string]
	group       Optional[string]
}

// ExecStart returns the command line, passed through verbatim
func (e ExecutionContext) ExecStart() string { return e.execStart }

// ServiceType returns the systemd Type=
func (e ExecutionContext) ServiceType() ServiceType { return e.serviceType }

// Restart returns the systemd Restart=
func (e ExecutionContext) Restart() RestartPolicy { return e.restart }

// User returns the account the service runs as, if set
func (e ExecutionContext) User() Optional[string] { return e.user }

// Group returns the group the service runs as, if set
func (e ExecutionContext) Group() Optional[string] { return e.group }

// InstallContext describes how the unit is hooked into boot targets
type InstallContext struct {
	wantedBy string
}

// WantedBy returns the target that wants this unit
func (i InstallContext) WantedBy() string { return i.wantedBy }

// ServiceDefinition is an immutable description of one systemd service.
// Build it with NewServiceDefinition; the zero value is not valid.
type ServiceDefinition struct {
	name        string
	description string
	after       string
	exec        ExecutionContext
	install     InstallContext
}

// DefinitionOption configures a ServiceDefinition under construction
type DefinitionOption func(*ServiceDefinition)

// WithName sets the service name, used verbatim as the unit file name
func WithName(name string) DefinitionOption {
	return func(d *ServiceDefinition) {
		d.name = name
	}
}

// WithDescription sets the [Unit] Description=
func WithDescription(description string) DefinitionOption {
	return func(d *ServiceDefinition) {
		d.description = description
	}
}

// WithAfter sets the [Unit] After= ordering target
func WithAfter(after string) DefinitionOption {
	return func(d *ServiceDefinition) {
		d.after = after
	}
}

// WithExecStart sets the command systemd executes
func WithExecStart(cmd string) DefinitionOption {
	return func(d *ServiceDefinition) {
		d.exec.execStart = cmd
	}
}

// WithServiceType sets the systemd Type=
func WithServiceType(t ServiceType) DefinitionOption {
	return func(d *ServiceDefinition) {
		d.exec.serviceType = t
	}
}

// WithRestartPolicy sets the systemd Restart=
func WithRestartPolicy(p RestartPolicy) DefinitionOption {
	return func(d *ServiceDefinition) {
		d.exec.restart = p
	}
}

// WithUser sets User=. An empty user leaves the field unset.
func WithUser(user string) DefinitionOption {
	return func(d *ServiceDefinition) {
		if user == "" {
			d.exec.user = None[string]()
			return
		}
		d.exec.user = Some(user)
	}
}

// WithGroup sets Group=. An empty group leaves the field unset.
func WithGroup(group string) DefinitionOption {
	return func(d *ServiceDefinition) {
		if group == "" {
			d.exec.group = None[string]()
			return
		}
		d.exec.group = Some(group)
	}
}

// WithWantedBy sets the [Install] WantedBy= target
func WithWantedBy(target string) DefinitionOption {
	return func(d *ServiceDefinition) {
		d.install.wantedBy = target
	}
}

// NewServiceDefinition builds a ServiceDefinition, filling every unset field
// with its default. It fails only when the resulting name cannot be used as a
// file name.
func NewServiceDefinition(opts ...DefinitionOption) (ServiceDefinition, error) {
	d := ServiceDefinition{}
	for _, opt := range opts {
		opt(&d)
	}

	d.name = orDefault(d.name, DefaultName)
	d.description = orDefault(d.description, DefaultDescription)
	d.after = orDefault(d.after, DefaultAfter)
	d.exec.execStart = orDefault(d.exec.execStart, DefaultExecStart)
	d.install.wantedBy = orDefault(d.install.wantedBy, DefaultWantedBy)

	if err := validateName(d.name); err != nil {
		return ServiceDefinition{}, err
	}
	if err := validateEnums(d.exec); err != nil {
		return ServiceDefinition{}, err
	}

	return d, nil
}

// Name returns the service name
func (d ServiceDefinition) Name() string { return d.name }

// Description returns the [Unit] Description=
func (d ServiceDefinition) Description() string { return d.description }

// After returns the [Unit] After= target
func (d ServiceDefinition) After() string { return d.after }

// Exec returns the execution context
func (d ServiceDefinition) Exec() ExecutionContext { return d.exec }

// Install returns the install context
func (d ServiceDefinition) Install() InstallContext { return d.install }

// UnitName returns the unit file name, <name>.service
func (d ServiceDefinition) UnitName() string {
	return d.name + UnitSuffix
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func validateName(name string) error {
	switch {
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.ContainsAny(name, "\x00\n"):
		return fmt.Errorf("%w: %q contains a control character", ErrInvalidName, name)
	}
	return nil
}

func validateEnums(e ExecutionContext) error {
	if e.serviceType < ServiceTypeSimple || e.serviceType > ServiceTypeIdle {
		return fmt.Errorf("unknown %s", e.serviceType)
	}
	if e.restart < RestartNo || e.restart > RestartOnSuccess {
		return fmt.Errorf("unknown %s", e.restart)
	}
	return nil
}
