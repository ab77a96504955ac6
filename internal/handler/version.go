package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/moniyo/financequest/internal/handler.Version=..."
var (
	Version   = ""
	BuildTime = ""
	GitCommit = ""
)

const unknownVersion = "dev"

type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	Storage   string `json:"storage,omitempty"`
}

// HandleVersion reports what binary is running and which store it uses
// @Summary Build info
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(storage string) http.HandlerFunc {
	info := buildVersionInfo(debug.ReadBuildInfo)
	info.Storage = storage
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

// buildVersionInfo prefers ldflags values, then $VERSION, then the VCS
// stamp the go toolchain embeds in the binary
func buildVersionInfo(readBuildInfo func() (*debug.BuildInfo, bool)) VersionInfo {
	info := VersionInfo{
		Version:   firstNonEmpty(Version, os.Getenv("VERSION")),
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}

	if bi, ok := readBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.GitCommit = firstNonEmpty(info.GitCommit, s.Value)
			case "vcs.time":
				info.BuildTime = firstNonEmpty(info.BuildTime, s.Value)
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = firstNonEmpty(info.Version, v)
		}
	}

	info.Version = firstNonEmpty(info.Version, unknownVersion)
	return info
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
