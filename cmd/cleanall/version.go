package main

import "runtime/debug"

// version may be set at link time with -ldflags "-X main.version=v1.2.3".
var version = ""

func resolveVersion() string {
	if version != "" {
		return version
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	// Installed with `go install module@vX.Y.Z`.
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	revision := settings["vcs.revision"]
	if revision == "" {
		return "dev"
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if settings["vcs.modified"] == "true" {
		revision += "-dirty"
	}
	return revision
}
