package app

// Build-time injected version information.
var (
	Version   string = "1.2.0"
	GitTag    string = "2000.01.01.release"
	BuildTime string = "2000-01-01T00:00:00+0800"
)

const (
	// Name is the application name.
	Name = "Cloud Vault Service"
)

// VersionInfo is the version payload reported by the API.
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}
