package environment

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	LogNoColorsKey = "AYON_LOG_NO_COLORS"
	RenderJobKey   = "AYON_RENDER_JOB"
	BundleNameKey  = "AYON_BUNDLE_NAME"
)

// RenderJobEnv returns the variables every render job needs regardless of profile.
// The bundle name is copied from baseEnv when present.
func RenderJobEnv(baseEnv map[string]string) map[string]string {
	env := map[string]string{
		LogNoColorsKey: "1",
		RenderJobKey:   "1",
	}
	if bundle, ok := baseEnv[BundleNameKey]; ok {
		env[BundleNameKey] = bundle
	}
	return env
}

// MergeJobEnvs merges the context job env with the instance job env. Instance values win.
func MergeJobEnvs(contextEnv, instanceEnv map[string]string) map[string]string {
	env := make(map[string]string, len(contextEnv)+len(instanceEnv))
	for _, src := range []map[string]string{contextEnv, instanceEnv} {
		for k, v := range src {
			env[k] = v
		}
	}
	return env
}

// SortedKeys returns the keys of env in lexical order, for stable output.
func SortedKeys(env map[string]string) []string {
	keys := maps.Keys(env)
	slices.Sort(keys)
	return keys
}
