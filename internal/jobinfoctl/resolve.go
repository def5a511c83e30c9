package jobinfoctl

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/renderfarm/jobinfo/internal/jobinfo/assembler"
	"github.com/renderfarm/jobinfo/internal/jobinfo/matching"
	"github.com/renderfarm/jobinfo/internal/jobinfo/overrides"
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
	"github.com/renderfarm/jobinfo/internal/jobinfo/resolver"
)

// PublishArgs describe a single publish on the command line.
type PublishArgs struct {
	HostName    string
	TaskType    string
	TaskName    string
	ProductType string
	// Override keys the host can show. Nil means every key.
	Exposed []string
	// Artist values as key=value.
	Set []string
	// Job environment as KEY=VALUE, instance values winning over context values.
	ContextEnv  []string
	InstanceEnv []string
	// Whether to start the environment from the current process environment.
	InheritEnv bool
	// Print Deadline job info keys instead of the structured result.
	Fields bool
}

func (p PublishArgs) request() (resolver.Request, error) {
	exposed, err := exposedOverrides(p.Exposed)
	if err != nil {
		return resolver.Request{}, err
	}
	values, err := overrides.ParseValues(p.Set)
	if err != nil {
		return resolver.Request{}, err
	}
	var baseEnv map[string]string
	if p.InheritEnv {
		baseEnv = parseEnv(os.Environ())
	}
	return resolver.Request{
		Context: profile.JobContext{
			HostName:         p.HostName,
			TaskType:         p.TaskType,
			TaskName:         p.TaskName,
			ProductType:      p.ProductType,
			ExposedOverrides: exposed,
			ContextJobEnv:    parseEnv(p.ContextEnv),
			InstanceJobEnv:   parseEnv(p.InstanceEnv),
		},
		Overrides: values,
		BaseEnv:   baseEnv,
	}, nil
}

func parseEnv(assignments []string) map[string]string {
	env := make(map[string]string, len(assignments))
	for _, assignment := range assignments {
		if key, value, ok := strings.Cut(assignment, "="); ok && key != "" {
			env[key] = value
		}
	}
	return env
}

// Resolve prints the job info the settings produce for a publish.
func (a *App) Resolve(args PublishArgs) error {
	cfg, err := a.loadSettings()
	if err != nil {
		return err
	}
	req, err := args.request()
	if err != nil {
		return err
	}
	service, err := resolver.NewService(cfg, nil, resolver.DefaultMatchCacheSize)
	if err != nil {
		return err
	}
	info, err := service.Resolve(req)
	if err != nil {
		return err
	}
	return a.printJobInfo(info, args.Fields)
}

func (a *App) printJobInfo(info *assembler.ResolvedJobInfo, fields bool) error {
	if !fields {
		return a.print(info)
	}
	kv := info.Fields()
	keys := maps.Keys(kv)
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(a.Out, "%s=%s\n", key, kv[key])
	}
	return nil
}

type overridesResult struct {
	Profile     *int                            `json:"profile"`
	Definitions []overrides.AttributeDefinition `json:"definitions"`
}

// Overrides prints the fields the artist may edit for a publish.
func (a *App) Overrides(args PublishArgs) error {
	cfg, err := a.loadSettings()
	if err != nil {
		return err
	}
	req, err := args.request()
	if err != nil {
		return err
	}
	service, err := resolver.NewService(cfg, nil, resolver.DefaultMatchCacheSize)
	if err != nil {
		return err
	}
	result := overridesResult{Definitions: service.AttributeDefinitions(req.Context)}
	if m := service.Match(req.Context); m.Index != matching.NoMatch {
		result.Profile = &m.Index
	}
	return a.print(result)
}
