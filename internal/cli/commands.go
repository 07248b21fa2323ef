package cli

import (
	"github.com/spf13/cobra"

	"github.com/specialistvlad/caregrid/internal/app"
)

// NewSynthCommand creates the synth command.
func NewSynthCommand(rootOpts *RootOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write the deployment descriptor",
		Long: `Assemble the platform topology and write its deployment descriptor.

The descriptor lists every resource in dependency order with its attributes
and explicit dependencies. Output is byte-for-byte reproducible.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.config(func(c *app.Config) {
				c.Format = format
				c.OutPath = out
			})
			if err != nil {
				return err
			}
			rootOpts.started = true
			return app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg).Synth(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", app.DefaultConfig().Format, "descriptor format (json|hcl|yaml|dot|mermaid)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	return cmd
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the topology against the requirement table",
		Long: `Assemble the platform topology and check that every required dependency
edge exists, the graph is acyclic and every reference is sequenced.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.config(nil)
			if err != nil {
				return err
			}
			rootOpts.started = true
			return app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg).Validate(cmd.Context())
		},
	}
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "plan",
		Short:         "Print the realization waves",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.config(nil)
			if err != nil {
				return err
			}
			rootOpts.started = true
			return app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg).Plan(cmd.Context())
		},
	}
}

// NewContainersCommand creates the containers command.
func NewContainersCommand(rootOpts *RootOptions) *cobra.Command {
	var values string

	cmd := &cobra.Command{
		Use:   "containers",
		Short: "Render workloads as container create options",
		Long: `Render every workload as container create options for a local run.

References to databases and secrets are resolved from the --values file,
a YAML mapping such as:

  database.auth-service-db.endpoint_port: 5432`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.config(func(c *app.Config) {
				c.ValuesPath = values
			})
			if err != nil {
				return err
			}
			rootOpts.started = true
			return app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg).Containers(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&values, "values", "", "file of materialized attribute values")

	return cmd
}
