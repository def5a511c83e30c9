package cmd

import (
	"github.com/spf13/cobra"

	"github.com/renderfarm/jobinfo/internal/jobinfoctl"
)

func validateCmd() *cobra.Command {
	a := jobinfoctl.New()
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the settings files load and are valid",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Validate()
		},
	}
	return cmd
}

func profilesCmd() *cobra.Command {
	a := jobinfoctl.New()
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the job-info profiles in matching order",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Profiles()
		},
	}
	return cmd
}

func defaultsCmd() *cobra.Command {
	a := jobinfoctl.New()
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the job parameters used when no profile matches",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Defaults()
		},
	}
	return cmd
}

func enumsCmd() *cobra.Command {
	a := jobinfoctl.New()
	cmd := &cobra.Command{
		Use:   "enums [field]",
		Short: "Print the choices of an enumerated settings field, or list the fields",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			field := ""
			if len(args) > 0 {
				field = args[0]
			}
			return a.Enums(field)
		},
	}
	return cmd
}

func versionCmd() *cobra.Command {
	a := jobinfoctl.New()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print client version information",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Version()
		},
	}
	return cmd
}
