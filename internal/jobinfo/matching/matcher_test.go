package matching

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

func withPriority(p profile.Profile, priority int) *profile.Profile {
	p.Priority = priority
	return &p
}

func TestSelect(t *testing.T) {
	maya := withPriority(profile.Profile{HostNames: []string{"maya"}}, 40)
	wildcard := withPriority(profile.Profile{}, 50)
	mayaLighting := withPriority(profile.Profile{
		HostNames: []string{"maya"},
		TaskTypes: []string{"lighting"},
	}, 60)
	lgt01 := withPriority(profile.Profile{TaskNames: []string{"lgt01"}}, 70)
	nukeOnly := withPriority(profile.Profile{HostNames: []string{"nuke", "hiero"}}, 80)

	lighting := profile.JobContext{HostName: "maya", TaskType: "lighting", TaskName: "lgt01"}
	comp := profile.JobContext{HostName: "nuke", TaskType: "compositing", TaskName: "comp"}

	tests := map[string]struct {
		profiles []*profile.Profile
		ctx      profile.JobContext
		expected *profile.Profile
	}{
		"no profiles": {
			profiles: nil,
			ctx:      lighting,
			expected: nil,
		},
		"one specific axis beats wildcard": {
			profiles: []*profile.Profile{maya, wildcard},
			ctx:      lighting,
			expected: maya,
		},
		"one specific axis beats wildcard listed first": {
			profiles: []*profile.Profile{wildcard, maya},
			ctx:      lighting,
			expected: maya,
		},
		"all wildcard profile matches any host": {
			profiles: []*profile.Profile{maya, wildcard},
			ctx:      comp,
			expected: wildcard,
		},
		"two axes beat one": {
			profiles: []*profile.Profile{maya, mayaLighting},
			ctx:      lighting,
			expected: mayaLighting,
		},
		"equal specificity goes to first listed": {
			profiles: []*profile.Profile{lgt01, maya},
			ctx:      lighting,
			expected: lgt01,
		},
		"equal specificity goes to first listed reversed": {
			profiles: []*profile.Profile{maya, lgt01},
			ctx:      lighting,
			expected: maya,
		},
		"non matching host is not a candidate": {
			profiles: []*profile.Profile{nukeOnly},
			ctx:      lighting,
			expected: nil,
		},
		"host set membership": {
			profiles: []*profile.Profile{wildcard, nukeOnly},
			ctx:      profile.JobContext{HostName: "hiero"},
			expected: nukeOnly,
		},
		"all axes must match": {
			profiles: []*profile.Profile{mayaLighting},
			ctx:      profile.JobContext{HostName: "maya", TaskType: "animation", TaskName: "lgt01"},
			expected: nil,
		},
		"empty context value only matches wildcard axes": {
			profiles: []*profile.Profile{lgt01, wildcard},
			ctx:      profile.JobContext{HostName: "maya"},
			expected: wildcard,
		},
		"nil entries are skipped": {
			profiles: []*profile.Profile{nil, maya},
			ctx:      lighting,
			expected: maya,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			selected, ok := Select(tc.profiles, tc.ctx)
			if tc.expected == nil {
				assert.False(t, ok)
				assert.Nil(t, selected)
				assert.Equal(t, NoMatch, SelectIndex(tc.profiles, tc.ctx))
				return
			}
			assert.True(t, ok)
			assert.Same(t, tc.expected, selected)
		})
	}
}

func TestSelect_Scenario(t *testing.T) {
	profiles := []*profile.Profile{
		withPriority(profile.Profile{HostNames: []string{"maya"}}, 40),
		withPriority(profile.Profile{}, 50),
	}

	assert.Equal(t, 0, SelectIndex(profiles, profile.JobContext{HostName: "maya", TaskType: "lighting", TaskName: "lgt01"}))

	// Empty axes are wildcards, so the second profile applies to nuke.
	i := SelectIndex(profiles, profile.JobContext{HostName: "nuke", TaskType: "compositing", TaskName: "comp01"})
	assert.Equal(t, 1, i)
	assert.Equal(t, 50, profiles[i].Priority)
}

// genProfile generates a profile constraining a random subset of axes to values that match matchingCtx.
func genProfile() gopter.Gen {
	return gopter.CombineGens(gen.Bool(), gen.Bool(), gen.Bool(), gen.IntRange(0, 100)).Map(
		func(values []interface{}) *profile.Profile {
			p := &profile.Profile{}
			if values[0].(bool) {
				p.HostNames = []string{"maya"}
			}
			if values[1].(bool) {
				p.TaskTypes = []string{"lighting"}
			}
			if values[2].(bool) {
				p.TaskNames = []string{"lgt01"}
			}
			p.Priority = values[3].(int)
			return p
		})
}

var matchingCtx = profile.JobContext{HostName: "maya", TaskType: "lighting", TaskName: "lgt01"}

func TestSelect_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("selection is deterministic", prop.ForAll(
		func(profiles []*profile.Profile) bool {
			return SelectIndex(profiles, matchingCtx) == SelectIndex(profiles, matchingCtx)
		},
		gen.SliceOf(genProfile()),
	))

	properties.Property("selected profile is the most specific and first among equals", prop.ForAll(
		func(profiles []*profile.Profile) bool {
			i := SelectIndex(profiles, matchingCtx)
			if len(profiles) == 0 {
				return i == NoMatch
			}
			selected := profiles[i]
			for j, p := range profiles {
				if p.Specificity() > selected.Specificity() {
					return false
				}
				if j < i && p.Specificity() == selected.Specificity() {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genProfile()),
	))

	properties.Property("fully specific profile wins regardless of position", prop.ForAll(
		func(profiles []*profile.Profile, position int) bool {
			specific := &profile.Profile{
				HostNames: []string{"maya"},
				TaskTypes: []string{"lighting"},
				TaskNames: []string{"lgt01"},
			}
			position = position % (len(profiles) + 1)
			withSpecific := make([]*profile.Profile, 0, len(profiles)+1)
			withSpecific = append(withSpecific, profiles[:position]...)
			withSpecific = append(withSpecific, specific)
			withSpecific = append(withSpecific, profiles[position:]...)
			selected, ok := Select(withSpecific, matchingCtx)
			return ok && selected.Specificity() == 3 &&
				SelectIndex(withSpecific, matchingCtx) <= position
		},
		gen.SliceOf(genProfile()),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
