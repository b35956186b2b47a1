package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Station-Manager/scaffold/demo"
	"github.com/Station-Manager/scaffold/logging"
	"github.com/Station-Manager/scaffold/version"
)

const (
	appShort = "Run the logging and error annotation demonstration"
	appLong  = `Run the logging and error annotation demonstration.

	The demonstration divides 10 by 0, logs the failure and the annotated
	error to logs/log_<YYYY-MM-DD>.log under the working directory.
	The failure does not change the exit status unless --strict is set.

	Logging can also be configured with SCAFFOLD_LOG_* environment
	variables; flags take precedence.`

	divideCmdUse   = "divide <dividend> <divisor>"
	divideCmdShort = "Divide two numbers and log the outcome"
	divideExample  = `# Print 2.5 and log the operation
	mlops-scaffold divide 10 4`

	versionCmdName  = "version"
	versionCmdShort = "Display the application version"

	logLevelFlagName      = "log-level"
	logLevelShortFlagName = "v"
	logDirFlagName        = "log-dir"
	workDirFlagName       = "work-dir"
	consoleFlagName       = "console"
	strictFlagName        = "strict"

	mainLoggerName = "__main__"
)

var (
	allLogLevels      = []string{"trace", "debug", "info", "warn", "error"}
	logLevelFlagUsage = "set the logging level (possible values: " + strings.Join(allLogLevels, ", ") + ")"
)

// rootFlags holds the persistent flags shared across the command tree.
type rootFlags struct {
	logLevel string
	logDir   string
	workDir  string
	console  bool
	strict   bool
}

// addFlags registers the persistent CLI flags on cmd.
func (f *rootFlags) addFlags(cmd *cobra.Command) {
	defaults := logging.DefaultConfig()
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.logLevel, logLevelFlagName, logLevelShortFlagName, defaults.Level, logLevelFlagUsage)
	flags.StringVar(&f.logDir, logDirFlagName, defaults.RelLogFileDir, "log directory, relative to the working directory")
	flags.StringVar(&f.workDir, workDirFlagName, "", "working directory (defaults to the current directory)")
	flags.BoolVar(&f.console, consoleFlagName, defaults.ConsoleLogging, "also write log lines to stderr")
	flags.BoolVar(&f.strict, strictFlagName, false, "exit with a non-zero status when the operation fails")
}

// loggingConfig reads the environment and applies the flags explicitly set on cmd.
func (f *rootFlags) loggingConfig(cmd *cobra.Command) (logging.Config, error) {
	cfg, err := logging.LoadConfig()
	if err != nil {
		return logging.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed(logLevelFlagName) {
		cfg.Level = strings.ToLower(f.logLevel)
	}
	if flags.Changed(logDirFlagName) {
		cfg.RelLogFileDir = f.logDir
	}
	if flags.Changed(consoleFlagName) {
		cfg.ConsoleLogging = f.console
	}
	return cfg, nil
}

// withLogging initializes a logging service for the duration of fn and
// stores a named logger in the context passed to it.
func withLogging(cmd *cobra.Command, f *rootFlags, fn func(ctx context.Context) error) (err error) {
	cfg, err := f.loggingConfig(cmd)
	if err != nil {
		cmd.PrintErrln(err)
		return err
	}

	svc := &logging.Service{WorkingDir: f.workDir, LoggingConfig: &cfg}
	if err := svc.Initialize(); err != nil {
		cmd.PrintErrln(err)
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	svc.Dump("Effective logging configuration", cfg)

	ctx := logging.WithContext(cmd.Context(), svc.Named(mainLoggerName))
	return fn(ctx)
}

// outcome decides whether a failed operation is reported to the caller.
func (f *rootFlags) outcome(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	cmd.PrintErrln(err)
	if f.strict {
		return err
	}
	return nil
}

func main() {
	cmd := rootCmd()

	exitCode := 0
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		exitCode = 1
	}

	os.Exit(exitCode)
}

// rootCmd constructs the root Cobra command running the demonstration.
func rootCmd() *cobra.Command {
	flag := &rootFlags{}

	cmd := &cobra.Command{
		Use:   version.AppName,
		Short: heredoc.Doc(appShort),
		Long:  heredoc.Doc(appLong),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              reportArgs(cobra.NoArgs),
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLogging(cmd, flag, func(ctx context.Context) error {
				return flag.outcome(cmd, demo.Run(logging.FromContext(ctx)))
			})
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flag.addFlags(cmd)
	cmd.AddCommand(
		divideCmd(flag),
		versionCmd(),
	)

	return cmd
}

// reportArgs prints argument errors, which SilenceErrors would otherwise hide.
func reportArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			cmd.PrintErrln(err)
			return err
		}
		return nil
	}
}

// divideCmd constructs the command dividing two numbers from its arguments.
func divideCmd(flag *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     divideCmdUse,
		Short:   heredoc.Doc(divideCmdShort),
		Example: heredoc.Doc(divideExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              reportArgs(cobra.ExactArgs(2)),
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parseOperands(args)
			if err != nil {
				cmd.PrintErrln(err)
				return err
			}

			return withLogging(cmd, flag, func(ctx context.Context) error {
				q, err := demo.Divide(logging.FromContext(ctx), a, b)
				if err != nil {
					return flag.outcome(cmd, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(q, 'g', -1, 64))
				return nil
			})
		},
	}
}

func parseOperands(args []string) (float64, float64, error) {
	a, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dividend %q: %w", args[0], err)
	}
	b, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid divisor %q: %w", args[1], err)
	}
	return a, b, nil
}

// versionCmd constructs the Cobra command that prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   versionCmdName,
		Short: heredoc.Doc(versionCmdShort),

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.AppName+" "+version.ServiceVersionInformation())
		},
	}
}
