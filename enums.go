package metsysd

import (
	"fmt"
	"strings"
)

// ServiceType is the systemd Type= of the service
type ServiceType int

const (
	// ServiceTypeSimple starts ExecStart as the main process (default)
	ServiceTypeSimple ServiceType = iota
	// ServiceTypeForking expects ExecStart to fork and the parent to exit
	ServiceTypeForking
	// ServiceTypeOneshot runs ExecStart to completion
	ServiceTypeOneshot
	// ServiceTypeIdle delays ExecStart until all active jobs are dispatched
	ServiceTypeIdle
)

// ServiceType string constants
const (
	serviceTypeSimpleStr  = "simple"
	serviceTypeForkingStr = "forking"
	serviceTypeOneshotStr = "oneshot"
	serviceTypeIdleStr    = "idle"
)

// ServiceTypes lists every ServiceType in declaration order
var ServiceTypes = []ServiceType{
	ServiceTypeSimple,
	ServiceTypeForking,
	ServiceTypeOneshot,
	ServiceTypeIdle,
}

// String returns the unit file token for the service type
func (t ServiceType) String() string {
	switch t {
	case ServiceTypeSimple:
		return serviceTypeSimpleStr
	case ServiceTypeForking:
		return serviceTypeForkingStr
	case ServiceTypeOneshot:
		return serviceTypeOneshotStr
	case ServiceTypeIdle:
		return serviceTypeIdleStr
	default:
		return fmt.Sprintf("ServiceType(%d)", int(t))
	}
}

// ParseServiceType maps a unit file token back to its ServiceType
func ParseServiceType(s string) (ServiceType, error) {
	for _, t := range ServiceTypes {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return ServiceTypeSimple, fmt.Errorf("invalid service type %q (want one of %s)", s, joinTokens(ServiceTypes))
}

// Set implements pflag.Value
func (t *ServiceType) Set(s string) error {
	v, err := ParseServiceType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Type implements pflag.Value
func (t *ServiceType) Type() string {
	return "service-type"
}

// MarshalText implements encoding.TextMarshaler
func (t ServiceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ServiceType) UnmarshalText(b []byte) error {
	return t.Set(string(b))
}

// RestartPolicy is the systemd Restart= of the service
type RestartPolicy int

const (
	// RestartNo never restarts the service (default)
	RestartNo RestartPolicy = iota
	// RestartAlways restarts regardless of exit status
	RestartAlways
	// RestartOnFailure restarts on unclean exit
	RestartOnFailure
	// RestartOnSuccess restarts only on clean exit
	RestartOnSuccess
)

// RestartPolicy string constants
const (
	restartNoStr        = "no"
	restartAlwaysStr    = "always"
	restartOnFailureStr = "on-failure"
	restartOnSuccessStr = "on-success"
)

// RestartPolicies lists every RestartPolicy
var RestartPolicies = []RestartPolicy{
	RestartAlways,
	RestartOnFailure,
	RestartOnSuccess,
	RestartNo,
}

// String returns the unit file token for the restart policy
func (p RestartPolicy) String() string {
	switch p {
	case RestartNo:
		return restartNoStr
	case RestartAlways:
		return restartAlwaysStr
	case RestartOnFailure:
		return restartOnFailureStr
	case RestartOnSuccess:
		return restartOnSuccessStr
	default:
		return fmt.Sprintf("RestartPolicy(%d)", int(p))
	}
}

// ParseRestartPolicy maps a unit file token back to its RestartPolicy
func ParseRestartPolicy(s string) (RestartPolicy, error) {
	for _, p := range RestartPolicies {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return RestartNo, fmt.Errorf("invalid restart policy %q (want one of %s)", s, joinTokens(RestartPolicies))
}

// Set implements pflag.Value
func (p *RestartPolicy) Set(s string) error {
	v, err := ParseRestartPolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Type implements pflag.Value
func (p *RestartPolicy) Type() string {
	return "restart-policy"
}

// MarshalText implements encoding.TextMarshaler
func (p RestartPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *RestartPolicy) UnmarshalText(b []byte) error {
	return p.Set(string(b))
}

// Scope selects between the system-wide and the per-user service manager
type Scope int

const (
	// ScopeSystem targets the system instance of systemd (default)
	ScopeSystem Scope = iota
	// ScopeUser targets the calling user's systemd instance
	ScopeUser
)

// Scope string constants
const (
	scopeSystemStr = "system"
	scopeUserStr   = "user"
)

// String returns the string representation of a Scope
func (s Scope) String() string {
	switch s {
	case ScopeSystem:
		return scopeSystemStr
	case ScopeUser:
		return scopeUserStr
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// ParseScope parses "system" or "user"
func ParseScope(str string) (Scope, error) {
	switch strings.ToLower(str) {
	case scopeSystemStr:
		return ScopeSystem, nil
	case scopeUserStr:
		return ScopeUser, nil
	default:
		return ScopeSystem, fmt.Errorf("invalid scope %q (want system or user)", str)
	}
}

// Set implements pflag.Value
func (s *Scope) Set(str string) error {
	v, err := ParseScope(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Type implements pflag.Value
func (s *Scope) Type() string {
	return "scope"
}

// MarshalText implements encoding.TextMarshaler
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Scope) UnmarshalText(b []byte) error {
	return s.Set(string(b))
}

func joinTokens[T fmt.Stringer](values []T) string {
	tokens := make([]string, len(values))
	for i, v := range values {
		tokens[i] = v.String()
	}
	return strings.Join(tokens, ", ")
}
