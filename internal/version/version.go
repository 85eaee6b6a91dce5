package version

import (
	"fmt"
	"runtime/debug"
)

// Заполняются при сборке:
//
//	go build -ldflags "-X gridsim/internal/version.Version=v0.3.0 -X gridsim/internal/version.Commit=abc123"
var (
	Version string
	Commit  string
)

// VersionInfo describes the build metadata in structured form.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	Modified  bool   `json:"modified"`
}

// buildInfo подменяется в тестах.
var buildInfo = debug.ReadBuildInfo

// Info returns structured version information.
// Пустые ldflags добираются из debug.BuildInfo (go install, vcs-метки).
func Info() VersionInfo {
	info := VersionInfo{
		Version: Version,
		Commit:  Commit,
	}

	bi, ok := buildInfo()
	if !ok {
		return info
	}

	info.GoVersion = bi.GoVersion
	if info.Version == "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String returns a human-readable build string.
func String() string {
	info := Info()

	s := fmt.Sprintf("gridsim %s commit[%s]", coalesce(info.Version, "dev"), coalesce(shortCommit(info.Commit), "unknown"))
	if info.Modified {
		s += " (modified)"
	}
	return s
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
