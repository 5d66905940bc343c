// Package build describes the running binary.
package build

import (
	"fmt"
	"runtime/debug"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the build of this binary, set with ldflags or taken from the
// BuildInfo when "go install"ed. Supported values are "dev" and any semver,
// with or without the leading 'v'. Anything else becomes "invalid (BAD_VERSION)".
var Version = "dev"

// Revision is the vcs revision this binary was built from.
var Revision string

// Modified is true if the working tree had local changes at build time.
var Modified bool

// ModificationTime is the RFC3339 commit time of Revision.
var ModificationTime string

// Info is a snapshot of the build variables.
type Info struct {
	Version  string `json:"version"`
	Revision string `json:"revision,omitempty"`
	Time     string `json:"time,omitempty"`
	Modified bool   `json:"modified,omitempty"`
}

// Current returns the build information of the running binary.
func Current() Info {
	return Info{
		Version:  Version,
		Revision: Revision,
		Time:     ModificationTime,
		Modified: Modified,
	}
}

// buildInfoFunc matches debug.ReadBuildInfo.
type buildInfoFunc func() (*debug.BuildInfo, bool)

// readBuildInfo is swapped out by tests.
var readBuildInfo buildInfoFunc = debug.ReadBuildInfo

// setVersion normalizes Version and fills the vcs variables. Only init and tests call it.
func setVersion() {
	if Version == "dev" {
		if buildInfo, ok := readBuildInfo(); ok {
			if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
				Version = buildInfo.Main.Version
			}
			for _, kv := range buildInfo.Settings {
				switch kv.Key {
				case "vcs.modified":
					Modified = kv.Value == "true"
				case "vcs.time":
					ModificationTime = kv.Value
				case "vcs.revision":
					Revision = kv.Value
				}
			}
		}
	}

	if Version != "dev" {
		origVersion := Version
		if !strings.HasPrefix(Version, "v") {
			Version = "v" + Version
		}
		if !semver.IsValid(Version) {
			Version = fmt.Sprintf("invalid (%s)", origVersion)
		}
	}
}

func init() {
	setVersion()
}
