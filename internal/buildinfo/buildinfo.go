// Package buildinfo carries release metadata stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/aidanlsb/navport/internal/buildinfo.Version=v0.3.0"
//
// Local builds leave them empty and rely on debug.ReadBuildInfo instead.
package buildinfo

var (
	Version string
	Commit  string
	Date    string
)
