package build

import (
	"runtime/debug"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetVersion(t *testing.T) {
	tests := []struct {
		name          string
		versionFunc   func()
		buildInfoFunc buildInfoFunc
		exp           string
	}{
		{
			name: "default",
			exp:  "dev",
		},
		{
			name:        "no v prefix",
			versionFunc: func() { Version = "1.2.0" },
			exp:         "v1.2.0",
		},
		{
			name:        "v prefix",
			versionFunc: func() { Version = "v0.4.1" },
			exp:         "v0.4.1",
		},
		{
			name:          "non-ok BuildInfo",
			buildInfoFunc: func() (*debug.BuildInfo, bool) { return nil, false },
			exp:           "dev",
		},
		{
			name:        "ldflags version wins over BuildInfo",
			versionFunc: func() { Version = "2.0.0" },
			buildInfoFunc: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: "v9.9.9"}}, true
			},
			exp: "v2.0.0",
		},
		{
			name: "go install version",
			buildInfoFunc: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: "v9.9.9"}}, true
			},
			exp: "v9.9.9",
		},
		{
			name: "devel build keeps dev",
			buildInfoFunc: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
			},
			exp: "dev",
		},
		{
			name:        "invalid version",
			versionFunc: func() { Version = "bad.version" },
			exp:         "invalid (bad.version)",
		},
		{
			name: "invalid version from BuildInfo",
			buildInfoFunc: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: "BAD_BUILD"}}, true
			},
			exp: "invalid (BAD_BUILD)",
		},
	}

	origReadBuildInfo := readBuildInfo
	origVersion := Version
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() {
				readBuildInfo = origReadBuildInfo
				Version = origVersion
			})
			Version = "dev"
			readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
			if tt.buildInfoFunc != nil {
				readBuildInfo = tt.buildInfoFunc
			}
			if tt.versionFunc != nil {
				tt.versionFunc()
			}
			setVersion()

			if d := cmp.Diff(tt.exp, Version); d != "" {
				t.Error("Version differed (-want, +got):", d)
			}
		})
	}
}

func TestSetVersion_VCSSettings(t *testing.T) {
	origReadBuildInfo := readBuildInfo
	origVersion, origRevision, origTime, origModified := Version, Revision, ModificationTime, Modified
	t.Cleanup(func() {
		readBuildInfo = origReadBuildInfo
		Version, Revision, ModificationTime, Modified = origVersion, origRevision, origTime, origModified
	})

	Version = "dev"
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "d34db33f"},
			{Key: "vcs.time", Value: "2025-03-07T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		}}, true
	}
	setVersion()

	exp := Info{Version: "dev", Revision: "d34db33f", Time: "2025-03-07T10:00:00Z", Modified: true}
	if d := cmp.Diff(exp, Current()); d != "" {
		t.Error("Info differed (-want, +got):", d)
	}
}
