// Package matching selects the job-info profile that applies to a publish.
//
// A profile is a candidate when every one of its three axes (host name, task type, task name) is
// either empty, which matches anything, or contains the publish's value. Among candidates the one
// constraining the most axes wins; ties go to the profile listed first, so administrators control
// priority through list order.
package matching

import (
	"golang.org/x/exp/slices"

	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// NoMatch is the index returned by SelectIndex when no profile applies.
const NoMatch = -1

// Matches reports whether p applies to ctx.
func Matches(p *profile.Profile, ctx profile.JobContext) bool {
	return axisMatches(p.HostNames, ctx.HostName) &&
		axisMatches(p.TaskTypes, ctx.TaskType) &&
		axisMatches(p.TaskNames, ctx.TaskName)
}

func axisMatches(values []string, value string) bool {
	return len(values) == 0 || slices.Contains(values, value)
}

// SelectIndex returns the index of the profile that applies to ctx, or NoMatch.
func SelectIndex(profiles []*profile.Profile, ctx profile.JobContext) int {
	best := NoMatch
	bestSpecificity := -1
	for i, p := range profiles {
		if p == nil || !Matches(p, ctx) {
			continue
		}
		// Strictly greater keeps the earliest profile among equally specific candidates.
		if s := p.Specificity(); s > bestSpecificity {
			best = i
			bestSpecificity = s
		}
	}
	return best
}

// Select returns the profile that applies to ctx. The second return value is false if none does,
// in which case callers fall back to the system defaults.
func Select(profiles []*profile.Profile, ctx profile.JobContext) (*profile.Profile, bool) {
	i := SelectIndex(profiles, ctx)
	if i == NoMatch {
		return nil, false
	}
	return profiles[i], true
}
