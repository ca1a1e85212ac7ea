package metsysd

// Unit file locations
const (
	// SystemUnitDir is where system-scope units are installed
	SystemUnitDir = "/etc/systemd/system"

	// UserUnitSubdir is the user-scope unit directory relative to the home directory
	UserUnitSubdir = ".config/systemd/user"

	// UnitSuffix is appended to the service name to form the unit file name
	UnitSuffix = ".service"
)

// Binary paths with defaults that can be overridden
const (
	// DefaultSystemctlPath is the default path to the systemctl binary
	DefaultSystemctlPath = "systemctl"
)

// File modes
const (
	// DirMode is the mode for the auto-created user unit directory
	DirMode = 0o755

	// FileMode is the mode for written unit files
	FileMode = 0o644
)

// Definition defaults applied to every unset field
const (
	DefaultName        = "metsysd-42"
	DefaultDescription = "This service has been generated with metsysd"
	DefaultAfter       = "network.target"
	DefaultExecStart   = "echo 'Hello World'"
	DefaultWantedBy    = "multi-user.target"
)

// Operation identifies the installer step that produced an error
type Operation int

const (
	// OpUnknown represents an unknown operation
	OpUnknown Operation = iota
	// OpResolve resolves the install directory
	OpResolve
	// OpMkdir creates the default user unit directory
	OpMkdir
	// OpCreate writes the unit file
	OpCreate
	// OpReload spawns the supervisor reload
	OpReload
)

// Operation string constants
const (
	opUnknownStr = "unknown"
	opResolveStr = "resolve"
	opMkdirStr   = "mkdir"
	opCreateStr  = "create"
	opReloadStr  = "reload"
)

// String returns the string representation of an Operation
func (op Operation) String() string {
	switch op {
	case OpResolve:
		return opResolveStr
	case OpMkdir:
		return opMkdirStr
	case OpCreate:
		return opCreateStr
	case OpReload:
		return opReloadStr
	default:
		return opUnknownStr
	}
}
