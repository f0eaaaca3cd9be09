package main

import (
	"time"

	"harnesscheck/pkg/config"
	"harnesscheck/pkg/utils"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Harness.BaseURL: {
		Name:        "base-url",
		Description: "Base URL of the harness; case paths are appended to it",
		Short:       utils.Ptr("u"),
	},
	&config.Suite.Path: {
		Name:        "suite",
		Description: "YAML suite file to run instead of the built-in suite",
		Short:       utils.Ptr("s"),
	},
	&config.Stub.Addr: {
		Name:        "stub-addr",
		Description: "Listen address of the fake harness started by 'stub'",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.NoColor: {
		Name:        "no-color",
		Description: "Disable colored result glyphs",
	},
	&config.Stub.InCombat: {
		Name:        "stub-in-combat",
		Description: "Start the fake harness in combat mode",
		Hidden:      true,
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       utils.Ptr("v"),
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Harness.Timeout: {
		Name:        "timeout",
		Description: "Per-request timeout",
		Short:       utils.Ptr("t"),
	},
}
