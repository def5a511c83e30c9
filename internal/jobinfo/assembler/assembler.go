// Package assembler builds the job info submitted to the farm from the matched profile, the artist's
// overrides, the system defaults and the environment of the submitting process.
package assembler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/renderfarm/jobinfo/internal/jobinfo/configuration"
	"github.com/renderfarm/jobinfo/internal/jobinfo/environment"
	"github.com/renderfarm/jobinfo/internal/jobinfo/overrides"
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

const (
	// UnsetPool explicitly submits a job without a pool.
	UnsetPool = "-"
	// NonePool is the farm's name for the pool of jobs that did not choose one.
	NonePool = "none"
)

// Assembler resolves job info against a fixed set of defaults.
type Assembler struct {
	defaults        configuration.Defaults
	maxReplacements int
}

func NewAssembler(defaults configuration.Defaults) *Assembler {
	return &Assembler{
		defaults:        defaults,
		maxReplacements: environment.DefaultMaxReplacements,
	}
}

// WithMaxReplacements sets the per-rule replacement cap used when composing the environment.
func (a *Assembler) WithMaxReplacements(n int) *Assembler {
	if n > 0 {
		a.maxReplacements = n
	}
	return a
}

// Defaults returns the defaults used when no profile matched.
func (a *Assembler) Defaults() configuration.Defaults {
	return a.defaults
}

// Assemble resolves the job info for a single publish. p is the matched profile, or nil if none matched.
// Each field takes the artist value if the field is exposed for this publish, then the profile value,
// then the default. Values for fields that are not exposed are ignored.
func (a *Assembler) Assemble(
	p *profile.Profile,
	ctx profile.JobContext,
	applied overrides.Values,
	baseEnv map[string]string,
) (*ResolvedJobInfo, error) {
	params := a.baseParameters(p)

	exposed := overrides.Project(p, ctx.Exposed())
	result, err := overrides.Apply(&params, applied, exposed)
	if err != nil {
		return nil, err
	}
	for _, key := range result.Ignored {
		log.WithFields(log.Fields{
			"override": key,
			"host":     ctx.HostName,
			"task":     ctx.TaskName,
		}).Debug("Ignoring override that is not exposed for this publish")
	}

	env, err := a.environment(params, ctx, baseEnv)
	if err != nil {
		return nil, err
	}

	return &ResolvedJobInfo{
		Priority:      params.Priority,
		ChunkSize:     params.ChunkSize,
		Group:         params.Group,
		LimitGroups:   nonNil(params.LimitGroups),
		PrimaryPool:   resolvePool(params.PrimaryPool),
		SecondaryPool: resolvePool(params.SecondaryPool),
		MachineLimit:  params.MachineLimit,
		MachineList: MachineList{
			Polarity: polarity(params.MachineListDeny),
			Machines: nonNil(params.MachineList),
		},
		ConcurrentTasks:       params.ConcurrentTasks,
		Department:            params.Department,
		JobDelay:              params.JobDelay,
		UseGpu:                params.UseGpu,
		UsePublished:          params.UsePublished,
		UseAssetDependencies:  params.UseAssetDependencies,
		UseWorkfileDependency: params.UseWorkfileDependency,
		Multiprocess:          params.Multiprocess,
		Environment:           env,
		AdditionalJobInfo:     params.AdditionalJobInfo,
		AdditionalPluginInfo:  params.AdditionalPluginInfo,
		ProfileMatched:        p != nil,
		AppliedOverrides:      result.Applied,
		IgnoredOverrides:      result.Ignored,
	}, nil
}

// baseParameters returns the profile's parameters, with empty text fields taken from the defaults,
// or the defaults themselves when no profile matched.
func (a *Assembler) baseParameters(p *profile.Profile) profile.JobParameters {
	defaults := a.defaults.JobParameters.Clone()
	if p == nil {
		return defaults
	}
	params := p.JobParameters.Clone()
	for _, field := range []struct {
		value    *string
		fallback string
	}{
		{&params.Group, defaults.Group},
		{&params.Department, defaults.Department},
		{&params.PrimaryPool, defaults.PrimaryPool},
		{&params.SecondaryPool, defaults.SecondaryPool},
	} {
		if *field.value == "" {
			*field.value = field.fallback
		}
	}
	return params
}

// environment composes the allow-listed variables, adds the job env injected by the publish pipeline
// and finally the variables every render job needs. Substitution rules apply to the first two only.
func (a *Assembler) environment(
	params profile.JobParameters,
	ctx profile.JobContext,
	baseEnv map[string]string,
) (map[string]string, error) {
	composer := environment.NewComposer(params.EnvSearchReplaceValues).WithMaxReplacements(a.maxReplacements)
	env, err := composer.Compose(baseEnv, params.EnvAllowedKeys)
	if err != nil {
		return nil, errors.WithMessage(err, "composing allowed environment")
	}
	jobEnv, err := composer.Substitute(environment.MergeJobEnvs(ctx.ContextJobEnv, ctx.InstanceJobEnv))
	if err != nil {
		return nil, errors.WithMessage(err, "substituting job environment")
	}
	for k, v := range jobEnv {
		env[k] = v
	}
	for k, v := range environment.RenderJobEnv(baseEnv) {
		env[k] = v
	}
	return env, nil
}

func resolvePool(pool string) string {
	switch pool {
	case UnsetPool:
		return ""
	case "":
		return NonePool
	default:
		return pool
	}
}

func polarity(deny bool) Polarity {
	if deny {
		return PolarityDeny
	}
	return PolarityAllow
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
