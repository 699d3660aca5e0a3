// Package version holds build-time identification, overridden at
// link time with -ldflags.
package version

var (
	APP        = "boids3d"
	VERSION    = "dev"
	BuildStamp = "unknown"
	REPOSITORY = "github.com/lao-tseu-is-alive/go-boids3d"
)
