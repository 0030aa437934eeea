// Package version holds the build version and commit, set via ldflags:
//
//	-ldflags "-X github.com/menezmethod/vitrina/internal/version.Version=1.2.0 -X github.com/menezmethod/vitrina/internal/version.Commit=abc123"
package version

// Version is the semantic version of the build.
var Version = "dev"

// Commit is the git commit the build was made from.
var Commit = ""
