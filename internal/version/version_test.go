package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromSettings(t *testing.T) {
	savedVersion, savedCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = savedVersion, savedCommit })

	Version, Commit = "", ""
	fromSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2025-03-14T09:26:53Z"},
	})

	if Commit != "0123456-dirty" {
		t.Errorf("Commit = %q, want 0123456-dirty", Commit)
	}
	if Version != "dev-20250314" {
		t.Errorf("Version = %q, want dev-20250314", Version)
	}
}

func TestFromSettings_KeepsLdflags(t *testing.T) {
	savedVersion, savedCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = savedVersion, savedCommit })

	Version, Commit = "v1.2.3", "abc1234"
	fromSettings([]debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffff"}})

	if Version != "v1.2.3" || Commit != "abc1234" {
		t.Errorf("got %q/%q, want ldflags values kept", Version, Commit)
	}
	if Full() != "v1.2.3 (commit: abc1234)" {
		t.Errorf("Full() = %q", Full())
	}
	if !strings.HasPrefix(UserAgent(), "research-agent/v1.2.3") {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}
