package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// ModulePath is the import path looked up in the build info of the binary
// that links the engine.
const ModulePath = "github.com/kbukum/lazyseq"

// Set at build time with -ldflags. They take precedence over build info.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info describes the engine build.
type Info struct {
	Version   string    `json:"version"`
	Commit    string    `json:"commit,omitempty"`
	Dirty     bool      `json:"dirty,omitempty"`
	BuildTime time.Time `json:"build_time,omitempty"`
	GoVersion string    `json:"go_version,omitempty"`
}

// Get returns the build info of the engine.
func Get() Info {
	return resolve(Version, Commit, BuildTime, debug.ReadBuildInfo)
}

// Short returns the short version of the engine build.
func Short() string {
	return Get().Short()
}

func resolve(ver, commit, built string, read func() (*debug.BuildInfo, bool)) Info {
	info := Info{Version: ver, Commit: commit}
	if t, err := time.Parse(time.RFC3339, built); err == nil {
		info.BuildTime = t
	}

	bi, ok := read()
	if !ok || bi == nil {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" {
		if v := moduleVersion(bi); v != "" {
			info.Version = v
		}
	}

	// vcs settings describe the main module only.
	if bi.Main.Path != ModulePath {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		case "vcs.time":
			if info.BuildTime.IsZero() {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuildTime = t
				}
			}
		}
	}
	if len(info.Commit) > 7 {
		info.Commit = info.Commit[:7]
	}
	return info
}

// moduleVersion finds the engine module among the main module and the
// dependencies of the running binary.
func moduleVersion(bi *debug.BuildInfo) string {
	if bi.Main.Path == ModulePath {
		return released(bi.Main.Version)
	}
	for _, dep := range bi.Deps {
		if dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return released(dep.Replace.Version)
		}
		return released(dep.Version)
	}
	return ""
}

func released(v string) string {
	if v == "(devel)" {
		return ""
	}
	return v
}

// Release reports whether the build is a clean tagged version.
func (i Info) Release() bool {
	return i.Version != "dev" && !i.Dirty && !strings.Contains(i.Version, "dirty")
}

// Short returns the version followed by the short commit and a dirty
// marker when known.
func (i Info) Short() string {
	parts := []string{i.Version}
	if i.Commit != "" {
		parts = append(parts, i.Commit)
	}
	if i.Dirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

func (i Info) String() string {
	s := "lazyseq " + i.Short()
	var extra []string
	if i.GoVersion != "" {
		extra = append(extra, i.GoVersion)
	}
	if !i.BuildTime.IsZero() {
		extra = append(extra, "built "+i.BuildTime.UTC().Format(time.RFC3339))
	}
	if len(extra) > 0 {
		s += fmt.Sprintf(" (%s)", strings.Join(extra, ", "))
	}
	return s
}
