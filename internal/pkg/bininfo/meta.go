// Package bininfo carries build metadata injected with -ldflags "-X".
// Keep the variable names stable; the build scripts reference them.
package bininfo

var (
	// Version is the SemVer of the binary, optionally suffixed with +<commit>.
	Version = "v0.0.0"

	// BuildTime is an RFC3339 timestamp.
	BuildTime = "1970-01-01T00:00:00Z"
)
