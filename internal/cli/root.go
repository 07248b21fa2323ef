package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/caregrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const (
	exitFailure = 1
	exitUsage   = 2
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel        string
	LogFormat       string
	BrokerBootstrap string
	DiscoveryDomain string

	// started is set once a command's RunE is entered. Errors returned
	// before that are usage errors.
	started bool
}

// config builds and validates the app configuration for one command.
func (o *RootOptions) config(mutate func(*app.Config)) (*app.Config, error) {
	cfg := app.DefaultConfig()
	cfg.LogLevel = o.LogLevel
	cfg.LogFormat = o.LogFormat
	cfg.BrokerBootstrap = o.BrokerBootstrap
	cfg.DiscoveryDomain = o.DiscoveryDomain
	if mutate != nil {
		mutate(&cfg)
	}
	return app.NewConfig(cfg)
}

// NewRootCommand creates the root command for the caregrid CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	return newRootCommand(opts)
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	defaults := app.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "caregrid",
		Short: "caregrid - patient management platform topology",
		Long: `Synthesizes the deployment topology of the patient management platform:
networks, databases, probes, the event broker, services and the gateway,
in dependency order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := opts.config(nil)
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", defaults.LogLevel, "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", defaults.LogFormat, "log format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.BrokerBootstrap, "broker-bootstrap", defaults.BrokerBootstrap, "comma separated broker bootstrap endpoints")
	cmd.PersistentFlags().StringVar(&opts.DiscoveryDomain, "discovery-domain", defaults.DiscoveryDomain, "private DNS domain used for service discovery")

	cmd.AddCommand(NewSynthCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewContainersCommand(opts))

	return cmd
}

// Execute runs the command tree with args. Results are written to outW,
// logs and errors to errW. The returned error, if any, is an *ExitError.
func Execute(args []string, outW, errW io.Writer) error {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(outW)
	cmd.SetErr(errW)

	err := cmd.Execute()
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	code := exitFailure
	if !opts.started {
		code = exitUsage
	}
	return &ExitError{Code: code, Message: err.Error()}
}
