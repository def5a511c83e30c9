package configuration

import (
	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// Defaults are the job parameters used when no profile matches a publish.
// Version is the settings document version the defaults were taken from.
type Defaults struct {
	Version string
	profile.JobParameters
}

// SystemDefaults returns the built-in job parameters with the pools taken from pools.
func SystemDefaults(version string, pools PoolSettings) Defaults {
	return Defaults{
		Version: version,
		JobParameters: profile.JobParameters{
			ChunkSize:             999,
			Priority:              50,
			PrimaryPool:           pools.PrimaryPool,
			SecondaryPool:         pools.SecondaryPool,
			ConcurrentTasks:       1,
			UsePublished:          true,
			UseAssetDependencies:  true,
			UseWorkfileDependency: true,
			LimitGroups:           []string{},
			MachineList:           []string{},
			EnvAllowedKeys:        []string{},
		},
	}
}

// Config is a validated settings document ready for resolution.
type Config struct {
	Version *semver.Version
	// Whether job-info profiles are applied at all. When false every publish gets the defaults.
	Enabled  bool
	Profiles []*profile.Profile
	Defaults Defaults
	Settings Settings
}

// Convert validates s and turns it into a Config.
func Convert(s Settings) (*Config, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	version, err := semver.NewVersion(s.Version)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	profiles := make([]*profile.Profile, len(s.Publish.CollectJobInfo.Profiles))
	for i, p := range s.Publish.CollectJobInfo.Profiles {
		converted, err := convertProfile(p)
		if err != nil {
			return nil, errors.WithMessagef(err, "profile %d", i)
		}
		profiles[i] = converted
	}
	return &Config{
		Version:  version,
		Enabled:  s.Publish.CollectJobInfo.Enabled,
		Profiles: profiles,
		Defaults: SystemDefaults(s.Version, s.Publish.CollectDeadlinePools),
		Settings: s,
	}, nil
}

func convertProfile(p ProfileSettings) (*profile.Profile, error) {
	overrides, err := profile.ParseOverrideSet(p.Overrides)
	if err != nil {
		return nil, err
	}
	return &profile.Profile{
		HostNames: nonNil(p.HostNames),
		TaskTypes: nonNil(p.TaskTypes),
		TaskNames: nonNil(p.TaskNames),
		JobParameters: profile.JobParameters{
			ChunkSize:              p.ChunkSize,
			Priority:               p.Priority,
			Group:                  p.Group,
			LimitGroups:            nonNil(p.LimitGroups),
			PrimaryPool:            p.PrimaryPool,
			SecondaryPool:          p.SecondaryPool,
			MachineLimit:           p.MachineLimit,
			MachineList:            nonNil(p.MachineList),
			MachineListDeny:        p.MachineListDeny,
			ConcurrentTasks:        p.ConcurrentTasks,
			Department:             p.Department,
			JobDelay:               p.JobDelay,
			UseGpu:                 p.UseGpu,
			UsePublished:           p.UsePublished,
			UseAssetDependencies:   p.UseAssetDependencies,
			UseWorkfileDependency:  p.UseWorkfileDependency,
			Multiprocess:           p.Multiprocess,
			EnvAllowedKeys:         nonNil(p.EnvAllowedKeys),
			EnvSearchReplaceValues: slices.Clone(p.EnvSearchReplaceValues),
			AdditionalJobInfo:      p.AdditionalJobInfo,
			AdditionalPluginInfo:   p.AdditionalPluginInfo,
		},
		Overrides: overrides,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
