// Package profile defines the administrator-authored job-info profiles and the per-publish context
// they are matched against.
package profile

import (
	"golang.org/x/exp/slices"
)

// EnvRule replaces every occurrence of Name with Value in an environment value.
type EnvRule struct {
	Name  string `json:"name" mapstructure:"name"`
	Value string `json:"value" mapstructure:"value"`
}

func (r EnvRule) GetName() string {
	return r.Name
}

// JobParameters are the farm submission values a profile (or the system defaults) provides.
type JobParameters struct {
	ChunkSize       int      `json:"chunkSize"`
	Priority        int      `json:"priority"`
	Group           string   `json:"group"`
	LimitGroups     []string `json:"limitGroups"`
	PrimaryPool     string   `json:"primaryPool"`
	SecondaryPool   string   `json:"secondaryPool"`
	MachineLimit    int      `json:"machineLimit"`
	MachineList     []string `json:"machineList"`
	MachineListDeny bool     `json:"machineListDeny"`
	ConcurrentTasks int      `json:"concurrentTasks"`
	Department      string   `json:"department"`
	JobDelay        JobDelay `json:"jobDelay"`

	UseGpu                bool `json:"useGpu"`
	UsePublished          bool `json:"usePublished"`
	UseAssetDependencies  bool `json:"useAssetDependencies"`
	UseWorkfileDependency bool `json:"useWorkfileDependency"`
	Multiprocess          bool `json:"multiprocess"`

	EnvAllowedKeys         []string  `json:"envAllowedKeys"`
	EnvSearchReplaceValues []EnvRule `json:"envSearchReplaceValues"`

	// Opaque JSON text merged into the submission by the farm submitter.
	AdditionalJobInfo    string `json:"additionalJobInfo"`
	AdditionalPluginInfo string `json:"additionalPluginInfo"`
}

// Clone returns a copy of p that shares no slices with it.
func (p JobParameters) Clone() JobParameters {
	p.LimitGroups = slices.Clone(p.LimitGroups)
	p.MachineList = slices.Clone(p.MachineList)
	p.EnvAllowedKeys = slices.Clone(p.EnvAllowedKeys)
	p.EnvSearchReplaceValues = slices.Clone(p.EnvSearchReplaceValues)
	return p
}

// Profile maps a host/task pattern onto job parameters.
// An empty HostNames, TaskTypes or TaskNames matches any value for that axis.
type Profile struct {
	HostNames []string `json:"hostNames"`
	TaskTypes []string `json:"taskTypes"`
	TaskNames []string `json:"taskNames"`

	JobParameters

	Overrides OverrideSet `json:"-"`
}

// Specificity is the number of axes the profile constrains.
func (p *Profile) Specificity() int {
	n := 0
	for _, axis := range [][]string{p.HostNames, p.TaskTypes, p.TaskNames} {
		if len(axis) > 0 {
			n++
		}
	}
	return n
}

// JobContext holds the facts of a single publish.
type JobContext struct {
	HostName    string
	TaskType    string
	TaskName    string
	ProductType string

	// Overrides the calling host is able to show to the artist. Nil means every canonical override.
	ExposedOverrides OverrideSet

	// Job environment injected by the publish pipeline; instance values win over context values.
	ContextJobEnv  map[string]string
	InstanceJobEnv map[string]string
}

// Exposed returns the overrides the host supports, defaulting to all canonical keys.
func (c JobContext) Exposed() OverrideSet {
	if c.ExposedOverrides == nil {
		return AllOverrides()
	}
	return c.ExposedOverrides
}

// FarmProductTypes are the product types that may be rendered on the farm.
var FarmProductTypes = []string{
	"render", "render.farm", "render.frames_farm",
	"prerender", "prerender.farm", "prerender.frames_farm",
	"renderlayer", "imagesequence", "image",
	"vrayscene", "maxrender",
	"arnold_rop", "mantra_rop",
	"karma_rop", "vray_rop", "redshift_rop",
	"renderFarm", "usdrender", "publish.hou",
}

// IsFarmProductType reports whether productType may be submitted to the farm.
func IsFarmProductType(productType string) bool {
	return slices.Contains(FarmProductTypes, productType)
}
