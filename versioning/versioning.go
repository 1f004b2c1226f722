package versioning

// Embedded by --ldflags on build time
// Versioning should follow the SemVer guidelines
// https://semver.org/
var (
	// Version is the main version at the moment.
	Version   = "v0.1.0-dev" // the main version at the moment
	Commit    string         // the git commit that the binary was built on
	BuildTime string         // the timestamp of the build
)

// ShortCommit returns the first 8 characters of Commit
func ShortCommit() string {
	if len(Commit) > 8 {
		return Commit[:8]
	}

	return Commit
}
