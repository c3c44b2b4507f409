package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	rootLongDescription = `tasksai is a command-line tool that uses a text-generation API to help developers
streamline their workflow: generate technical plans, analyze code for bugs and
performance issues, and add documentation to source files.

Environment Variables:
  API_KEY            Credential for the Gemini API (required for the gemini provider)
  TASKSAI_PROVIDER   gemini (default) or bedrock
  TASKSAI_MODEL      Model ID override
  TASKSAI_ENDPOINT   Gemini API base URL override
  TASKSAI_THEME      Color theme (default, matrix, solarized, gruvbox, dracula, nord)
  TASKSAI_SETTINGS   Settings file path (default: ~/.tasksai/settings.yaml)

A .env file in the current directory is loaded before the environment is read.`

	planLongDescription = `Generate a detailed, actionable technical plan that includes objectives,
implementation steps, and a file manifest. Reference files or directories in the
task description using '@<path>'; their contents are sent along with the task.
The generated plan is written to the file given with --output.`

	planExample = `  # Plan a feature using two source files as context
  tasksai plan "Add rate limiting to @src/server.go and @src/config.go" -o plan.md

  # Ask for confirmation first and render the plan afterwards
  tasksai plan "Migrate @internal/store to SQLite" -i --preview -o plan.md`

	checkLongDescription = `Perform static analysis on one or more files or directories to identify
potential bugs and security vulnerabilities. The output is a numbered list of
detected issues; no file is modified.`

	perfLongDescription = `Perform static analysis on one or more files or directories to identify
potential performance bottlenecks. The output is a numbered list of suggested
improvements; no file is modified.`

	docsLongDescription = `Generate documentation comments for a code file and write them directly into
the file. The file is overwritten in place without a backup.`
)

// cli holds process-wide state for one invocation
type cli struct {
	verbose bool

	stdin  io.Reader
	stdout io.Writer
	stderr *os.File

	styles *Styles
	logger *zap.Logger
	app    *App

	loadSettings func() (*Settings, error)
	newProvider  func(context.Context, *ProviderConfig) (LLMProvider, error)
	confirm      func(prompt string) (bool, error)
}

func newCLI() *cli {
	return &cli{
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		styles:       NewStyles("default"),
		loadSettings: LoadSettings,
		newProvider:  NewProvider,
	}
}

// execute runs the command line given by args
func (c *cli) execute(ctx context.Context, args []string) error {
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(c.stdout)
	return root.ExecuteContext(ctx)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "tasksai",
		Short:             "Generate technical plans, analyze code for bugs and performance, and add documentation",
		Long:              rootLongDescription,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.SetVersionTemplate("tasksai {{.Version}} (built " + BuildDate + ")\n")
	root.PersistentFlags().BoolVar(&c.verbose, "verbose", false, "enable debug logging on stderr")

	root.AddCommand(c.planCmd(), c.checkCmd(), c.perfCmd(), c.docsCmd())
	return root
}

// setup loads configuration and builds the provider before any command runs.
// A missing credential fails here.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	settings, err := c.loadSettings()
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(settings)
	if err != nil {
		return err
	}
	c.styles = NewStyles(cfg.Theme)

	if err := cfg.Validate(); err != nil {
		return err
	}

	c.logger, err = newLogger(c.verbose)
	if err != nil {
		return err
	}

	provider, err := c.newProvider(cmd.Context(), cfg.ProviderConfig(c.logger))
	if err != nil {
		return err
	}
	c.logger.Debug("provider ready",
		zap.String("command", cmd.Name()),
		zap.String("provider", provider.Name()),
		zap.String("model", provider.Model()),
	)

	c.app = NewApp(provider, c.logger, c.styles, c.stdout)
	c.app.confirm = c.confirm
	if c.app.confirm == nil {
		c.app.confirm = func(prompt string) (bool, error) {
			return Confirm(prompt, c.styles, c.stdin, c.stdout)
		}
	}
	c.app.progress = func(message string) Progress {
		return NewSpinner(message, c.styles, c.stderr)
	}
	return nil
}

func (c *cli) planCmd() *cobra.Command {
	var opts PlanOptions

	cmd := &cobra.Command{
		Use:     "plan <task>",
		Short:   "Generate a detailed technical plan",
		Long:    planLongDescription,
		Example: planExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Task = args[0]
			return c.app.RunPlan(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "ask for confirmation before processing")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "file the generated plan is written to")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "render the plan in the terminal after writing it")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Analyze code for bugs and vulnerabilities",
		Long:  checkLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RunAnalysis(cmd.Context(), OpCheck, args)
		},
	}
}

func (c *cli) perfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "perf <path>...",
		Short: "Analyze code for performance issues",
		Long:  perfLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RunAnalysis(cmd.Context(), OpPerf, args)
		},
	}
}

func (c *cli) docsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs <path>",
		Short: "Generate and insert documentation into a code file",
		Long:  docsLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RunDocs(cmd.Context(), args[0])
		},
	}
}
