package version

// Values set via ldflags at build time
var (
	Version     = "dev"
	GitHash     = "n/a"
	GoBuildEnv  = "n/a"
	GoBuildTime = "n/a"
)
