package cmd

import (
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/renderfarm/jobinfo/internal/common/config"
	"github.com/renderfarm/jobinfo/internal/jobinfoctl"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobinfoctl",
		Short: "jobinfoctl resolves the farm job info of publishes against job-info settings.",
		Long: `jobinfoctl resolves the farm job info of publishes against job-info settings.

Persistent config can be saved in a config file so it doesn't have to be specified every command.

Example structure:
settings:
  - /studio/settings/deadline.yaml
  - /projects/alpha/settings/deadline.yaml
output: yaml

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.jobinfoctl.yaml is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.jobinfoctl.yaml)")
	cmd.PersistentFlags().StringSliceP("settings", "s", nil, "settings file, later files override earlier ones (repeatable)")
	cmd.PersistentFlags().StringP("output", "o", jobinfoctl.OutputYaml, "output format, yaml or json")
	cmd.PersistentFlags().StringSlice("taskTypes", nil, "task types offered for the task_types field")
	viper.BindPFlag("settings", cmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("output", cmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("taskTypes", cmd.PersistentFlags().Lookup("taskTypes"))

	cmd.AddCommand(
		validateCmd(),
		profilesCmd(),
		defaultsCmd(),
		resolveCmd(),
		overridesCmd(),
		enumsCmd(),
		watchCmd(),
		versionCmd(),
	)

	return cmd
}

// initParams reads the config file and fills params from it and the command line flags.
func initParams(cmd *cobra.Command, params *jobinfoctl.Params) error {
	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return errors.WithStack(err)
	}
	if err := loadConfigFile(cfgFile); err != nil {
		return err
	}
	if err := viper.Unmarshal(params, config.CustomHooks...); err != nil {
		return errors.Errorf("[initParams] error reading parameters: %s", err)
	}
	return nil
}

func loadConfigFile(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Errorf("[loadConfigFile] error getting user home directory: %s", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".jobinfoctl")
	}

	if err := viper.MergeInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// Users don't have to create a config file.
		default:
			return errors.Errorf("[loadConfigFile] error reading config file %s: %s", viper.ConfigFileUsed(), err)
		}
	}
	return nil
}
