package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name                string
		version, commit     string
		bi                  debug.BuildInfo
		wantVersion, wantCo string
	}{
		{
			name:    "fills unset values",
			version: "dev", commit: "none",
			bi: debug.BuildInfo{
				Main:     debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			},
			wantVersion: "v0.3.1", wantCo: "abc123",
		},
		{
			name:    "ldflags win",
			version: "v1.0.0", commit: "deadbeef",
			bi: debug.BuildInfo{
				Main:     debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			},
			wantVersion: "v1.0.0", wantCo: "deadbeef",
		},
		{
			name:    "devel build keeps dev",
			version: "dev", commit: "none",
			bi:          debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantVersion: "dev", wantCo: "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldV, oldC := Version, Commit
			t.Cleanup(func() { Version, Commit = oldV, oldC })
			Version, Commit = tt.version, tt.commit

			fromBuildInfo(&tt.bi)
			if Version != tt.wantVersion || Commit != tt.wantCo {
				t.Errorf("got %s/%s, want %s/%s", Version, Commit, tt.wantVersion, tt.wantCo)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
