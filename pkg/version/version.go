// Package version provides the claimaudit tool version.
package version

// Version is the claimaudit tool version.
// Can be overridden at build time with:
//   go build -ldflags "-X github.com/ingo-eichhorst/claim-integrity-engine/pkg/version.Version=2.0.1"
var Version = "dev"
