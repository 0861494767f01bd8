// Package buildinfo carries the version stamp baked in at build time.
//
// Release builds override the defaults with ldflags, e.g.:
//
//	go build -ldflags "-X github.com/matzehuels/pinboard/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/pinboard/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/pinboard/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// A plain `go build` reports "dev", which is how local builds identify
// themselves in the health endpoint and `pinboard --version`.
package buildinfo

import "fmt"

var (
	// Version is the semantic version of this build.
	Version = "dev"

	// Commit is the git revision this build was cut from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String formats the stamp for logs and the health endpoint.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template, so `pinboard --version` prints the
// full stamp rather than the bare version string.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
