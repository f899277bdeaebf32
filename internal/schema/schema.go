// Package schema tags the shape of a Graph's JSON projection with a
// semver-validated version string, so a consumer that persists or
// transmits an exported graph (see cmd/analyse-control's jsonGraph) can
// detect an incompatible future revision of that shape before trying to
// parse it.
package schema

import "golang.org/x/mod/semver"

// Version is the current shape of the exported graph document
// (cmd/analyse-control's jsonGraph). Bump on any incompatible change to the
// event/edge JSON shape.
const Version = "v1.0.0"

func init() {
	if !semver.IsValid(Version) {
		panic("schema: Version is not a valid semantic version: " + Version)
	}
}

// Valid reports whether v is a well-formed semantic version.
func Valid(v string) bool { return semver.IsValid(v) }

// Compatible reports whether a document tagged with v can be read by code
// built against Version: same major version, same-or-older minor/patch.
func Compatible(v string) bool {
	if !semver.IsValid(v) {
		return false
	}
	if semver.Major(v) != semver.Major(Version) {
		return false
	}
	return semver.Compare(v, Version) <= 0
}
