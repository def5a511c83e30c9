package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/renderfarm/jobinfo/internal/jobinfo/environment"
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// Polarity says whether a machine list allows or denies the listed machines.
type Polarity string

const (
	PolarityAllow Polarity = "allow"
	PolarityDeny  Polarity = "deny"
)

// MachineList is the set of farm workers a job is restricted to, or excluded from.
type MachineList struct {
	Polarity Polarity `json:"polarity"`
	Machines []string `json:"machines"`
}

// ResolvedJobInfo is the job info for a single publish.
type ResolvedJobInfo struct {
	Priority    int      `json:"priority"`
	ChunkSize   int      `json:"chunkSize"`
	Group       string   `json:"group"`
	LimitGroups []string `json:"limitGroups"`

	// Pools are empty when explicitly unset.
	PrimaryPool   string `json:"primaryPool"`
	SecondaryPool string `json:"secondaryPool"`

	MachineLimit    int              `json:"machineLimit"`
	MachineList     MachineList      `json:"machineList"`
	ConcurrentTasks int              `json:"concurrentTasks"`
	Department      string           `json:"department"`
	JobDelay        profile.JobDelay `json:"jobDelay"`

	UseGpu                bool `json:"useGpu"`
	UsePublished          bool `json:"usePublished"`
	UseAssetDependencies  bool `json:"useAssetDependencies"`
	UseWorkfileDependency bool `json:"useWorkfileDependency"`
	Multiprocess          bool `json:"multiprocess"`

	Environment map[string]string `json:"environment"`

	// Passed through to the submitter without being parsed.
	AdditionalJobInfo    string `json:"additionalJobInfo,omitempty"`
	AdditionalPluginInfo string `json:"additionalPluginInfo,omitempty"`

	ProfileMatched   bool                  `json:"profileMatched"`
	AppliedOverrides []profile.OverrideKey `json:"appliedOverrides,omitempty"`
	IgnoredOverrides []profile.OverrideKey `json:"ignoredOverrides,omitempty"`

	// Settings generation the job info was resolved against. Zero outside a resolver.
	Generation uint64 `json:"generation,omitempty"`
}

// Fields flattens the job info into Deadline JobInfo keys.
// Optional keys are left out when empty; environment variables are numbered in key order.
func (j *ResolvedJobInfo) Fields() map[string]string {
	fields := map[string]string{
		"Priority":        strconv.Itoa(j.Priority),
		"ChunkSize":       strconv.Itoa(j.ChunkSize),
		"MachineLimit":    strconv.Itoa(j.MachineLimit),
		"ConcurrentTasks": strconv.Itoa(j.ConcurrentTasks),
	}
	setIfNotEmpty := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}
	setIfNotEmpty("Group", j.Group)
	setIfNotEmpty("Department", j.Department)
	setIfNotEmpty("Pool", j.PrimaryPool)
	setIfNotEmpty("SecondaryPool", j.SecondaryPool)
	setIfNotEmpty("LimitGroups", strings.Join(j.LimitGroups, ","))
	if !j.JobDelay.IsZero() {
		fields["JobDelay"] = j.JobDelay.String()
	}
	if len(j.MachineList.Machines) > 0 {
		key := "Whitelist"
		if j.MachineList.Polarity == PolarityDeny {
			key = "Blacklist"
		}
		fields[key] = strings.Join(j.MachineList.Machines, ",")
	}
	for i, key := range environment.SortedKeys(j.Environment) {
		fields[fmt.Sprintf("EnvironmentKeyValue%d", i)] = fmt.Sprintf("%s=%s", key, j.Environment[key])
	}
	return fields
}
