package circuit

import "github.com/blang/semver/v4"

// versionString follows the module's own semantic-versioning convention.
const versionString = "0.1.0"

// Version is the parsed, comparable form of versionString.
var Version = semver.MustParse(versionString)

// CompatibleWith reports whether a snapshot produced by the given module
// version can be consumed by this build, using semver's same-major-version
// compatibility rule.
func CompatibleWith(other semver.Version) bool {
	return Version.Major == other.Major
}
