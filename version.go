package runlevel

// Version is the current version of the go-runlevel library
const Version = "1.0.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version
	Version string
	// Layout is the registry layout supported
	Layout string
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version: Version,
		Layout:  "openrc",
	}
}
