package jobinfoctl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"github.com/renderfarm/jobinfo/internal/common/config"
	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
	"github.com/renderfarm/jobinfo/internal/jobinfo/configuration"
	"github.com/renderfarm/jobinfo/internal/jobinfo/enums"
	"github.com/renderfarm/jobinfo/internal/jobinfo/profile"
)

// Validate loads the settings and reports a summary if they are valid.
// Every problem found is logged; the returned error only counts them.
func (a *App) Validate() error {
	if err := a.validateParams(); err != nil {
		return err
	}
	cfg, err := configuration.Load(a.Params.SettingsFiles...)
	if err != nil {
		config.LogValidationErrors(err)
		return errors.WithStack(&farmerrors.ErrInvalidConfiguration{
			Source: strings.Join(a.Params.SettingsFiles, ","),
			Err:    errors.Errorf("%d problem(s) found", problemCount(err)),
		})
	}
	enabled := "enabled"
	if !cfg.Enabled {
		enabled = "disabled"
	}
	fmt.Fprintf(a.Out, "Settings %s are valid: version %s, %d profile(s), profiles %s\n",
		strings.Join(a.Params.SettingsFiles, ", "), cfg.Version, len(cfg.Profiles), enabled)
	return nil
}

func problemCount(err error) int {
	var problems *multierror.Error
	if errors.As(err, &problems) {
		return len(problems.Errors)
	}
	return 1
}

// Profiles prints the profiles of the settings in matching order.
func (a *App) Profiles() error {
	cfg, err := a.loadSettings()
	if err != nil {
		return err
	}
	printProfiles(a, cfg)
	return nil
}

// Defaults prints the job parameters used when no profile matches.
func (a *App) Defaults() error {
	cfg, err := a.loadSettings()
	if err != nil {
		return err
	}
	return a.print(cfg.Defaults)
}

func printProfiles(a *App, cfg *configuration.Config) {
	tw := table.NewWriter()
	tw.SetOutputMirror(a.Out)
	tw.AppendHeader(table.Row{"#", "Hosts", "Task types", "Task names", "Priority", "Chunk size", "Pool", "Overrides"})
	for i, p := range cfg.Profiles {
		tw.AppendRow(table.Row{
			i,
			axis(p.HostNames),
			axis(p.TaskTypes),
			axis(p.TaskNames),
			p.Priority,
			p.ChunkSize,
			p.PrimaryPool,
			strings.Join(p.Overrides.Strings(), ","),
		})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "", "", strconv.Itoa(len(cfg.Profiles)) + " profile(s)"})
	tw.Render()
}

func axis(values []string) string {
	if len(values) == 0 {
		return "*"
	}
	return strings.Join(values, ",")
}

// Enums prints the choices of field, or the fields that have choices if field is empty.
func (a *App) Enums(field string) error {
	taskTypes := a.Params.TaskTypes
	if len(taskTypes) == 0 {
		taskTypes = enums.DefaultTaskTypes
	}
	registry := enums.NewRegistry(taskTypes)
	if field == "" {
		for _, f := range registry.Fields() {
			fmt.Fprintln(a.Out, f)
		}
		return nil
	}
	choices, err := registry.Choices(field)
	if err != nil {
		return errors.WithMessage(err, "[jobinfoctl.Enums]")
	}
	return a.print(choices)
}

// exposedOverrides parses the override keys a host supports. Nil means every key.
func exposedOverrides(keys []string) (profile.OverrideSet, error) {
	if keys == nil {
		return nil, nil
	}
	return profile.ParseOverrideSet(keys)
}
