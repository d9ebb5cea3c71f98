package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rfielding/kripke-tableau/config"
	"github.com/rfielding/kripke-tableau/internal/ctxlog"
	"github.com/rfielding/kripke-tableau/internal/logging"
	"github.com/rfielding/kripke-tableau/kripke"
	"github.com/rfielding/kripke-tableau/prover"
	"github.com/rfielding/kripke-tableau/render"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitIO     = 1
	ExitConfig = 2
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

func configError(format string, args ...any) error {
	return &ExitError{Code: ExitConfig, Message: fmt.Sprintf(format, args...)}
}

type options struct {
	configPath string
	logic      string
	format     string
	maxSteps   int
	maxWorlds  int
	loopCheck  bool
	logLevel   string
	logFormat  string
	metrics    bool
}

// NewRootCmd builds the command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "tableau",
		Short: "Semantic tableau prover for modal propositional logic",
		Long: `tableau decides whether a set of modal formulas is satisfiable.

Input files hold one formula per line. Blank lines and lines starting with
# are ignored. Connectives: ¬ ⋀ ⋁ ⊃ ◻ ◇, or the ASCII forms ~ & | -> [] <>.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return configError("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	pf.StringVarP(&opts.logic, "logic", "l", "", "Modal logic preset ("+strings.Join(kripke.LogicNames(), ", ")+")")
	pf.StringVarP(&opts.format, "format", "f", "", "Output format: "+strings.Join(config.OutputFormats, ", "))
	pf.IntVar(&opts.maxSteps, "max-steps", 0, "Maximum rule applications, 0 for no limit")
	pf.IntVar(&opts.maxWorlds, "max-worlds", 0, "Maximum number of worlds, 0 for no limit")
	pf.BoolVar(&opts.loopCheck, "loop-check", true, "Reuse existing witness worlds for ◇ formulas")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	pf.BoolVar(&opts.metrics, "metrics", false, "Print a metrics table after the result")

	root.AddCommand(newProveCmd(opts), newActiveCmd(opts), newLogicsCmd())
	return root
}

// exactlyOneFile rejects anything but a single input path.
func exactlyOneFile(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return configError("expected exactly one input file, got %d arguments", len(args))
	}
	return nil
}

func newProveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "prove FILE",
		Short: "Run the tableau and print a countermodel or the verdict",
		Example: `  tableau prove premises.txt
  tableau prove --logic K --format dot premises.txt | dot -Tsvg > model.svg`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProve(cmd, opts, args[0])
		},
	}
}

func newActiveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "active FILE",
		Short: "Print the active nodes of the initial tableau without expanding it",
		Args:  exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := resolveConfig(cmd, opts); err != nil {
				return err
			}
			formulas, err := loadInput(args[0])
			if err != nil {
				return err
			}
			p := prover.New(formulas, prover.Options{})
			return render.ActiveNodes(cmd.OutOrStdout(), p.Tableau(), p.ActiveNodes())
		},
	}
}

func newLogicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logics",
		Short: "List the modal logic presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range kripke.LogicNames() {
				marker := " "
				if name == kripke.DefaultLogic {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-3s %s\n", marker, name, kripke.Logics[name])
			}
			return nil
		},
	}
}

// resolveConfig layers the config file and changed flags over the
// defaults.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, configError("config %s: %v", opts.configPath, err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("logic") {
		cfg.Logic = opts.logic
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("max-steps") {
		cfg.Limits.MaxSteps = opts.maxSteps
	}
	if flags.Changed("max-worlds") {
		cfg.Limits.MaxWorlds = opts.maxWorlds
	}
	if flags.Changed("loop-check") {
		cfg.Limits.LoopCheck = opts.loopCheck
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, configError("%v", err)
	}
	return cfg, nil
}

func loadInput(path string) ([]string, error) {
	formulas, err := prover.LoadFile(path)
	if err != nil {
		return nil, &ExitError{Code: ExitIO, Message: fmt.Sprintf("cannot read input file %s: %v", path, err)}
	}
	return formulas, nil
}

func runProve(cmd *cobra.Command, opts *options, path string) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return configError("%v", err)
	}
	frame, err := cfg.ResolveFrame()
	if err != nil {
		return configError("%v", err)
	}

	formulas, err := loadInput(path)
	if err != nil {
		return err
	}
	logger.Debug("Input loaded.", "file", path, "formulas", len(formulas))

	var metrics *prover.Metrics
	if opts.metrics {
		metrics = prover.NewMetrics()
	}
	p := prover.New(formulas, prover.Options{
		Frame:     frame,
		MaxSteps:  cfg.Limits.MaxSteps,
		MaxWorlds: cfg.Limits.MaxWorlds,
		LoopCheck: cfg.Limits.LoopCheck,
		Metrics:   metrics,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := p.Run(ctxlog.WithLogger(ctx, logger))
	if err != nil {
		return &ExitError{Code: ExitIO, Message: fmt.Sprintf("%s: %v", path, err)}
	}

	out := cmd.OutOrStdout()
	if err := render.Write(out, res, cfg.Output.Format); err != nil {
		return err
	}
	if metrics != nil {
		table, err := metrics.GenerateMetricsTable()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s", table)
	}
	return nil
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(stderr, "Error:", exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return ExitIO
	}
	return ExitOK
}

// Execute runs the CLI on the process arguments.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}
