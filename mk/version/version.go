// Package version records nulterm version information.
package version

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"time"
)

// Variables replaced via -ldflags -X.
var (
	commit string
	date   string
	dirty  string
)

// Version records nulterm version information.
type Version struct {
	Version string    `json:"version"`
	Commit  string    `json:"commit"`
	Date    time.Time `json:"date"`
	Dirty   bool      `json:"dirty"`
}

func (v Version) String() string {
	return v.Version
}

// Get returns version information.
// It prefers values set via -ldflags, then VCS stamps embedded by the Go toolchain.
func Get() (v Version) {
	if dt, e := strconv.ParseInt(date, 10, 64); e == nil && len(commit) == 40 {
		return makeVersion(commit, time.Unix(dt, 0), dirty != "")
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		bs := map[string]string{}
		for _, kv := range bi.Settings {
			bs[kv.Key] = kv.Value
		}
		dt, e := time.Parse(time.RFC3339, bs["vcs.time"])
		if bs["vcs"] == "git" && len(bs["vcs.revision"]) == 40 && e == nil {
			return makeVersion(bs["vcs.revision"], dt, bs["vcs.modified"] == "true")
		}
	}

	return Version{
		Version: "development",
		Commit:  "unknown",
		Date:    time.Now(),
		Dirty:   true,
	}
}

func makeVersion(commit string, dt time.Time, dirty bool) (v Version) {
	v.Commit, v.Date, v.Dirty = commit, dt, dirty
	dirtySuffix := ""
	if v.Dirty {
		dirtySuffix = "-dirty"
	}
	v.Version = fmt.Sprintf("v0.0.0-%s-%s%s", v.Date.UTC().Format("20060102150405"), commit[:12], dirtySuffix)
	return v
}
