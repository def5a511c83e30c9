package jobinfoctl

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
	"github.com/renderfarm/jobinfo/internal/common/logging"
	"github.com/renderfarm/jobinfo/internal/common/validation"
	"github.com/renderfarm/jobinfo/internal/jobinfo/configuration"
)

const (
	OutputYaml = "yaml"
	OutputJson = "json"
)

// App is the jobinfoctl application.
type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is used to write the output. Defaults to standard out,
	// but can be overridden in tests to make assertions on the applications's output.
	Out io.Writer
}

// Params struct holds all user-customizable parameters.
// Using a single struct for all CLI commands ensures that all flags are distinct
// and that they can be provided either dynamically on a command line, or
// statically in a config file that's reused between command runs.
type Params struct {
	// Settings documents, later ones overriding earlier ones.
	SettingsFiles []string `mapstructure:"settings"`
	// Output format of structured results, yaml or json.
	Output string `mapstructure:"output"`
	// Task types offered for the task_types field.
	TaskTypes []string       `mapstructure:"taskTypes"`
	Logging   logging.Config `mapstructure:"logging"`
}

// New instantiates an App with default parameters, including standard output.
func New() *App {
	return &App{
		Params: &Params{
			Output:  OutputYaml,
			Logging: logging.DefaultConfig(),
		},
		Out: os.Stdout,
	}
}

var paramsValidator = validation.NewCompoundValidator[*Params](
	validation.ValidatorFunc[*Params](validateSettingsFiles),
	validation.ValidatorFunc[*Params](validateOutput),
)

func (a *App) validateParams() error {
	return paramsValidator.Validate(a.Params)
}

func validateSettingsFiles(p *Params) error {
	if len(p.SettingsFiles) == 0 {
		return errors.WithStack(&farmerrors.ErrInvalidArgument{
			Name:    "settings",
			Value:   p.SettingsFiles,
			Message: "at least one settings file is required",
		})
	}
	return nil
}

func validateOutput(p *Params) error {
	if p.Output != OutputYaml && p.Output != OutputJson {
		return errors.WithStack(&farmerrors.ErrInvalidArgument{
			Name:    "output",
			Value:   p.Output,
			Message: "must be yaml or json",
		})
	}
	return nil
}

// loadSettings validates the parameters and loads the settings documents they name.
func (a *App) loadSettings() (*configuration.Config, error) {
	if err := a.validateParams(); err != nil {
		return nil, err
	}
	return configuration.Load(a.Params.SettingsFiles...)
}

// print writes v to the app output in the selected output format.
func (a *App) print(v interface{}) error {
	var b []byte
	var err error
	if a.Params.Output == OutputJson {
		b, err = json.MarshalIndent(v, "", "  ")
		b = append(b, '\n')
	} else {
		b, err = yaml.Marshal(v)
	}
	if err != nil {
		return errors.Errorf("[jobinfoctl.print] error marshalling output: %s", err)
	}
	_, err = fmt.Fprint(a.Out, string(b))
	return errors.WithStack(err)
}
