package version

import "fmt"

// Build variables set via ldflags:
// -X 'github.com/mattwilkinsonn/wasmcloud-config/pkg/version.Version=v0.1.0'
// -X 'github.com/mattwilkinsonn/wasmcloud-config/pkg/version.CommitHash=abc123'
// -X 'github.com/mattwilkinsonn/wasmcloud-config/pkg/version.BuildDate=2024-01-01T00:00:00Z'
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Info is the build information of the running binary.
type Info struct {
	Version    string `json:"version"     yaml:"version"`
	CommitHash string `json:"commit_hash" yaml:"commit_hash"`
	BuildDate  string `json:"build_date"  yaml:"build_date"`
}

func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildDate:  BuildDate,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildDate)
}
