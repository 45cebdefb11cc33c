package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"tactics-sim/internal/infrastructure/storage"
	"tactics-sim/internal/scenario"
)

// Переопределяются через -ldflags "-X tactics-sim/internal/version.BuildCommit=...".
// Если пусто, берутся из VCS-меток, которые go build зашивает в бинарник.
var (
	BuildCommit string
	BuildDate   string
)

// Подменяется в тестах
var readBuildInfo = debug.ReadBuildInfo

// VersionInfo describes the build and the file formats this binary understands.
type VersionInfo struct {
	Module     string `json:"module,omitempty"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified,omitempty"`

	// Реплей, который пишет и читает этот бинарник
	ReplayFormat string `json:"replay_format"`
	// Максимальная поддерживаемая версия файла сценария
	ScenarioSchema int `json:"scenario_schema"`
}

// Info returns structured version information.
// Safe to call at any time.
func Info() VersionInfo {
	info := VersionInfo{
		Version:        "(devel)",
		GoVersion:      runtime.Version(),
		Commit:         BuildCommit,
		CommitTime:     BuildDate,
		ReplayFormat:   fmt.Sprintf("%s v%d", storage.MagicHeader, storage.Version1),
		ScenarioSchema: scenario.SchemaVersion,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.Module = bi.Main.Path
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	if bi.Main.Version != "" {
		info.Version = bi.Main.Version
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.CommitTime == "" {
				info.CommitTime = s.Value
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

	commit := coalesce(shortCommit(info.Commit), "unknown")
	if info.Modified {
		commit += "-dirty"
	}

	return fmt.Sprintf(
		"battlesim %s commit[%s] %s replay[%s] scenario[v%d]",
		info.Version,
		commit,
		info.GoVersion,
		info.ReplayFormat,
		info.ScenarioSchema,
	)
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
