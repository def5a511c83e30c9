package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/renderfarm/jobinfo/internal/common/app"
	"github.com/renderfarm/jobinfo/internal/jobinfoctl"
)

// addPublishFlags registers the flags describing a publish on cmd.
func addPublishFlags(cmd *cobra.Command, args *jobinfoctl.PublishArgs) {
	cmd.Flags().StringVar(&args.HostName, "host", "", "host application, e.g. maya")
	cmd.Flags().StringVar(&args.TaskType, "task-type", "", "task type, e.g. Lighting")
	cmd.Flags().StringVar(&args.TaskName, "task", "", "task name")
	cmd.Flags().StringVar(&args.ProductType, "product-type", "", "product type of the published instance, e.g. render")
	cmd.Flags().StringSliceVar(&args.Set, "set", nil, "artist value as key=value (repeatable)")
	cmd.Flags().StringSliceVar(&args.ContextEnv, "context-env", nil, "context job environment as KEY=VALUE (repeatable)")
	cmd.Flags().StringSliceVar(&args.InstanceEnv, "instance-env", nil, "instance job environment as KEY=VALUE (repeatable)")
	cmd.Flags().BoolVar(&args.InheritEnv, "inherit-env", true, "start from the environment of this process")
	cmd.Flags().StringSlice("exposed", nil, "override keys the host can show (default all)")
}

// exposedFlag returns the --exposed keys, or nil if the flag was not given.
func exposedFlag(cmd *cobra.Command) ([]string, error) {
	if !cmd.Flags().Changed("exposed") {
		return nil, nil
	}
	exposed, err := cmd.Flags().GetStringSlice("exposed")
	if err != nil {
		return nil, err
	}
	if exposed == nil {
		exposed = []string{}
	}
	return exposed, nil
}

func resolveCmd() *cobra.Command {
	a := jobinfoctl.New()
	publish := jobinfoctl.PublishArgs{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the job info of a publish",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			exposed, err := exposedFlag(cmd)
			if err != nil {
				return err
			}
			publish.Exposed = exposed
			return a.Resolve(publish)
		},
	}
	addPublishFlags(cmd, &publish)
	cmd.Flags().BoolVar(&publish.Fields, "fields", false, "print Deadline job info keys")
	return cmd
}

func overridesCmd() *cobra.Command {
	a := jobinfoctl.New()
	publish := jobinfoctl.PublishArgs{}
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Print the fields an artist may edit for a publish",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			exposed, err := exposedFlag(cmd)
			if err != nil {
				return err
			}
			publish.Exposed = exposed
			return a.Overrides(publish)
		},
	}
	addPublishFlags(cmd, &publish)
	return cmd
}

func watchCmd() *cobra.Command {
	a := jobinfoctl.New()
	publish := jobinfoctl.PublishArgs{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the settings files on change, resolving a publish after every reload",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			exposed, err := exposedFlag(cmd)
			if err != nil {
				return err
			}
			publish.Exposed = exposed
			return a.Watch(app.CreateContextWithShutdown(), publish)
		},
	}
	addPublishFlags(cmd, &publish)
	cmd.Flags().BoolVar(&publish.Fields, "fields", false, "print Deadline job info keys")
	cmd.Flags().String("logLevel", "info", "log level")
	cmd.Flags().String("logFormat", "text", "log format, text or json")
	viper.BindPFlag("logging.level", cmd.Flags().Lookup("logLevel"))
	viper.BindPFlag("logging.format", cmd.Flags().Lookup("logFormat"))
	return cmd
}
