package metsysd

// Version is the current version of metsysd
const Version = "1.0.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version
	Version string
	// UnitFormat is the supervisor unit format produced
	UnitFormat string
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version:    Version,
		UnitFormat: "systemd.service",
	}
}
