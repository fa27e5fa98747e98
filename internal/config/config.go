// Package config materializes the fingerprinting inputs supplied by the CI
// plugin runtime.
package config

import (
	"os"
	"strings"

	"github.com/containerd/containerd/platforms"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/cachetag/cachetag/pkg/fingerprint"
)

// Load builds a BuildSpec from the PLUGIN_* environment variables a CI runner
// injects, with defaults matching a plain single-stage build in the current
// directory. List-valued settings use the comma-separated plugin convention;
// entry order is preserved because it is part of the tag.
//
// A .env file in the working directory is honored so the plugin can be
// exercised outside CI the same way it runs inside it.
func Load() (fingerprint.BuildSpec, error) {
	// Absence of a .env file is the normal case in CI.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("dockerfile", "Dockerfile")
	v.SetDefault("context", ".")
	v.SetDefault("arch", platforms.DefaultSpec().Architecture)

	v.SetEnvPrefix("PLUGIN")
	v.AutomaticEnv()

	v.BindEnv("dockerfile", "PLUGIN_DOCKERFILE")
	v.BindEnv("target", "PLUGIN_TARGET")
	v.BindEnv("arch", "PLUGIN_ARCH")
	v.BindEnv("build_args", "PLUGIN_BUILD_ARGS")
	v.BindEnv("additional_args", "PLUGIN_ADDITIONAL_ARGS")
	v.BindEnv("cache_on", "PLUGIN_CACHE_ON")
	v.BindEnv("context", "PLUGIN_CONTEXT")

	spec := fingerprint.BuildSpec{
		Dockerfile:     v.GetString("dockerfile"),
		Target:         v.GetString("target"),
		Architecture:   v.GetString("arch"),
		BuildArgs:      splitList(v.GetString("build_args")),
		AdditionalArgs: v.GetString("additional_args"),
		CacheOn:        splitList(v.GetString("cache_on")),
		ContextDir:     v.GetString("context"),
	}

	if spec.Dockerfile == "" {
		return fingerprint.BuildSpec{}, &fingerprint.Error{
			Kind:    fingerprint.KindConfig,
			Message: "a dockerfile path is required",
		}
	}

	return spec, nil
}

// Snapshot captures the process environment as the read-only map handed to
// the fingerprinter. The fingerprinting core never reads ambient process
// state itself.
func Snapshot() fingerprint.Env {
	environ := os.Environ()
	env := make(fingerprint.Env, len(environ))
	for _, kv := range environ {
		if k, val, ok := strings.Cut(kv, "="); ok {
			env[k] = val
		}
	}
	return env
}

// splitList parses the comma-separated list convention CI plugins use for
// repeated settings. Empty entries are dropped, order is kept.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
