package environment

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

func TestCompose(t *testing.T) {
	baseEnv := map[string]string{
		"OCIO":         "/mnt/studio/ocio/config.ocio",
		"PROJECT_ROOT": "/mnt/studio/projects",
		"HOME":         "/home/artist",
		"EMPTY":        "",
	}
	tests := map[string]struct {
		allowedKeys []string
		rules       []profile.EnvRule
		expected    map[string]string
	}{
		"nothing allowed": {
			allowedKeys: nil,
			expected:    map[string]string{},
		},
		"missing keys are skipped": {
			allowedKeys: []string{"OCIO", "NOT_SET"},
			expected:    map[string]string{"OCIO": "/mnt/studio/ocio/config.ocio"},
		},
		"empty values are kept": {
			allowedKeys: []string{"EMPTY"},
			expected:    map[string]string{"EMPTY": ""},
		},
		"rule remaps mount": {
			allowedKeys: []string{"OCIO", "PROJECT_ROOT"},
			rules:       []profile.EnvRule{{Name: "/mnt/studio", Value: "P:"}},
			expected: map[string]string{
				"OCIO":         "P:/ocio/config.ocio",
				"PROJECT_ROOT": "P:/projects",
			},
		},
		"rules chain": {
			allowedKeys: []string{"OCIO"},
			rules: []profile.EnvRule{
				{Name: "/mnt/studio", Value: "/net/studio"},
				{Name: "/net", Value: "//fileserver"},
			},
			expected: map[string]string{"OCIO": "//fileserver/studio/ocio/config.ocio"},
		},
		"rules only touch allowed keys": {
			allowedKeys: []string{"HOME"},
			rules:       []profile.EnvRule{{Name: "/mnt/studio", Value: "P:"}},
			expected:    map[string]string{"HOME": "/home/artist"},
		},
		"empty rule name is a no-op": {
			allowedKeys: []string{"HOME"},
			rules:       []profile.EnvRule{{Name: "", Value: "x"}},
			expected:    map[string]string{"HOME": "/home/artist"},
		},
		"rule without occurrences leaves value": {
			allowedKeys: []string{"PROJECT_ROOT"},
			rules:       []profile.EnvRule{{Name: "//", Value: "/"}},
			expected:    map[string]string{"PROJECT_ROOT": "/mnt/studio/projects"},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			env, err := Compose(baseEnv, tc.allowedKeys, tc.rules)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, env)
		})
	}
}

func TestCompose_SequentialRules(t *testing.T) {
	rules := []profile.EnvRule{{Name: "A", Value: "B"}, {Name: "B", Value: "C"}}
	env, err := Compose(map[string]string{"X": "A"}, []string{"X"}, rules)
	require.NoError(t, err)
	assert.Equal(t, "C", env["X"])

	// Reversed order: "A" becomes "B" only after the B rule already ran.
	reversed := []profile.EnvRule{{Name: "B", Value: "C"}, {Name: "A", Value: "B"}}
	env, err = Compose(map[string]string{"X": "A"}, []string{"X"}, reversed)
	require.NoError(t, err)
	assert.Equal(t, "B", env["X"])
}

func TestCompose_RepeatedReplacement(t *testing.T) {
	// Collapsing "aa" into "a" needs several passes over "aaaa".
	value, err := NewComposer([]profile.EnvRule{{Name: "aa", Value: "a"}}).SubstituteValue("aaaa")
	require.NoError(t, err)
	assert.Equal(t, "a", value)
}

func TestCompose_RuleExpansion(t *testing.T) {
	tests := map[string]profile.EnvRule{
		"replacement contains search text": {Name: "A", Value: "AA"},
		"replacement wraps search text":    {Name: "/mnt", Value: "/mnt/x"},
	}
	for name, rule := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Compose(map[string]string{"X": rule.Name}, []string{"X"}, []profile.EnvRule{rule})
			var e *farmerrors.ErrRuleExpansion
			if assert.True(t, errors.As(err, &e)) {
				assert.Equal(t, rule.Name, e.RuleName)
				assert.Equal(t, DefaultMaxReplacements, e.Iterations)
			}
		})
	}
}

func TestComposer_WithMaxReplacements(t *testing.T) {
	// "aaaaaaaa" needs three passes of the collapsing rule.
	c := NewComposer([]profile.EnvRule{{Name: "aa", Value: "a"}}).WithMaxReplacements(2)
	_, err := c.SubstituteValue("aaaaaaaa")
	assert.Error(t, err)

	c = NewComposer([]profile.EnvRule{{Name: "aa", Value: "a"}}).WithMaxReplacements(3)
	value, err := c.SubstituteValue("aaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "a", value)

	c = NewComposer(nil).WithMaxReplacements(0)
	assert.Equal(t, DefaultMaxReplacements, c.maxReplacements)
}

func TestCompose_NoRulesIsAllowListedSubset(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("compose without rules returns the allow-listed subset unmodified", prop.ForAll(
		func(keys []string, values []string, allowed []string) bool {
			baseEnv := make(map[string]string)
			for i := 0; i < len(keys) && i < len(values); i++ {
				baseEnv[keys[i]] = values[i]
			}
			env, err := Compose(baseEnv, allowed, nil)
			if err != nil {
				return false
			}
			for k, v := range env {
				if baseEnv[k] != v {
					return false
				}
			}
			for _, k := range allowed {
				if _, inBase := baseEnv[k]; inBase {
					if _, inEnv := env[k]; !inEnv {
						return false
					}
				} else if _, inEnv := env[k]; inEnv {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AnyString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func TestRenderJobEnv(t *testing.T) {
	assert.Equal(t,
		map[string]string{LogNoColorsKey: "1", RenderJobKey: "1"},
		RenderJobEnv(map[string]string{}))
	assert.Equal(t,
		map[string]string{LogNoColorsKey: "1", RenderJobKey: "1", BundleNameKey: "prod-2024"},
		RenderJobEnv(map[string]string{BundleNameKey: "prod-2024", "HOME": "/root"}))
}

func TestMergeJobEnvs(t *testing.T) {
	merged := MergeJobEnvs(
		map[string]string{"A": "context", "B": "context"},
		map[string]string{"B": "instance", "C": "instance"},
	)
	assert.Equal(t, map[string]string{"A": "context", "B": "instance", "C": "instance"}, merged)
	assert.Empty(t, MergeJobEnvs(nil, nil))
	assert.Equal(t, []string{"A", "B", "C"}, SortedKeys(merged))
}
