package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/eqsolve/internal/cliconfig"
	"github.com/bft-labs/eqsolve/internal/domain"
	"github.com/bft-labs/eqsolve/internal/solver"
	"github.com/bft-labs/eqsolve/internal/watch"
	"github.com/bft-labs/eqsolve/pkg/log"
	"github.com/bft-labs/eqsolve/pkg/symbolic"
)

const helpBanner = `
                       _           
   ___  __ _ ___  ___ | |_   _____ 
  / _ \/ _' / __|/ _ \| \ \ / / _ \
 |  __/ (_| \__ \ (_) | |\ V /  __/
  \___|\__, |___/\___/|_| \_/ \___|
          |_|                      
`

const helpDescription = `
Solve an equation symbolically for one unknown.

With no arguments eqsolve solves the production completion-time equation

  goal - (producedQ + r1*(a*T - t0) + (r1 + dr)*(1 - a)*T) = 0

for T and prints the closed form.

Highlights:
  - Exact rational arithmetic; bind any parameter to a number or expression.
  - Degenerate equations (no unique solution) exit with status 2.
  - --start places the solved run on the calendar: the rate switch at a*T,
    the finish at T, and the finish had the rate never switched.
  - Configure via file, env, or flags; --watch re-solves when the file changes.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  eqsolve
  eqsolve --set goal=100 --set producedQ=20 --set r1=2 --set a=0.5 --set t0=5 --set dr=1
  eqsolve --equation "v = d/t" --for t --format latex
  eqsolve --set goal=100 --set producedQ=20 --set r1=2 --set a=0.5 --set dr=1 --elapsed 5h --start 2024-03-01T00:00:00Z --tz Europe/Berlin
  eqsolve --config $HOME/.eqsolve/config.toml --watch
`)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitDegenerate = 2
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrDegenerateEquation):
		return exitDegenerate
	default:
		return exitError
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var setFlags map[string]string

	root := &cobra.Command{
		Use:           "eqsolve",
		Short:         "Solve an equation symbolically for one unknown",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s (symbolic %s) %s/%s", getVersion(), symbolic.Version, runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			} else if !cliconfig.FileExists(cfgFile) {
				return fmt.Errorf("%w: config file %s not found", domain.ErrInvalidConfig, cfgFile)
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			load := func() (cliconfig.Config, error) {
				return loadConfig(cfg, cfgFile, changed, setFlags)
			}
			active, err := load()
			if err != nil {
				return err
			}

			color.NoColor = active.NoColor || !isTerminal(stderr)
			logger := cliconfig.Logger(active.LogLevel)
			logger.Debug().Interface("config", active).Str("config_file", cfgFile).Msg("configuration")

			s := solver.New(solver.WithLogger(log.NewZerologAdapterWithLogger(logger)))
			ctx := cmd.Context()

			if !active.Watch {
				return solveAndPrint(ctx, s, active, stdout)
			}
			if cfgFile == "" {
				return fmt.Errorf("%w: --watch needs a config file", domain.ErrInvalidConfig)
			}
			return watchAndSolve(ctx, s, cfgFile, load, logger, stdout, stderr)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.eqsolve/config.toml)")
	root.Flags().StringVar(&cfg.Equation, "equation", cfg.Equation, `equation to solve, "lhs = rhs" or an expression equal to zero (default: the production equation)`)
	root.Flags().StringVar(&cfg.Target, "for", cfg.Target, "symbol to solve for")
	root.Flags().StringToStringVar(&setFlags, "set", nil, "bind a parameter to a number or expression, name=value (repeatable)")
	root.Flags().StringVar(&cfg.Format, "format", cfg.Format, "output format: text, json or latex")
	root.Flags().BoolVar(&cfg.Verify, "verify", cfg.Verify, "substitute the solution back and check the equation holds")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-solve whenever the config file changes")
	root.Flags().BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error, disabled)")
	root.Flags().StringVar(&cfg.Start, "start", cfg.Start, `print the production schedule for a run that began at this RFC 3339 time, or "now"`)
	root.Flags().StringVar(&cfg.Timezone, "tz", cfg.Timezone, "IANA timezone for schedule times (default: UTC)")
	root.Flags().DurationVar(&cfg.Elapsed, "elapsed", cfg.Elapsed, "time the run has already gone, binds t0 in hours")

	root.SetOut(stdout)
	root.SetErr(stderr)
	return root
}

// loadConfig layers defaults and flags (base), the config file, the
// environment and --set bindings, then validates the result.
func loadConfig(base cliconfig.Config, cfgFile string, changed map[string]bool, set map[string]string) (cliconfig.Config, error) {
	cfg := base
	cfg.Bindings = nil
	cliconfig.MergeBindings(&cfg.Bindings, base.Bindings)

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("%w: load config: %w", domain.ErrInvalidConfig, err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return cfg, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
		}
	}

	// Apply environment variables (EQSOLVE_*)
	// These override file config but are overridden by flags (checked via changed map)
	if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
		return cfg, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	cliconfig.MergeBindings(&cfg.Bindings, set)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func solveAndPrint(ctx context.Context, s *solver.Solver, cfg cliconfig.Config, stdout io.Writer) error {
	colored := !cfg.NoColor && isTerminal(stdout)
	if cfg.Scheduled() {
		return scheduleAndPrint(ctx, s, cfg, colored, stdout)
	}

	res, err := s.Solve(ctx, cfg.Request())
	if err != nil {
		return err
	}
	out, err := render(res, cfg.Format, colored)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

func scheduleAndPrint(ctx context.Context, s *solver.Solver, cfg cliconfig.Config, colored bool, stdout io.Writer) error {
	req, err := cfg.ScheduleRequest(time.Now())
	if err != nil {
		return err
	}
	sched, err := s.Schedule(ctx, req)
	if err != nil {
		return err
	}
	out, err := renderSchedule(sched, cfg.Format, colored)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

// watchAndSolve solves once, then again after every change to cfgFile, until
// SIGINT or SIGTERM. Failed solves are reported and watching continues.
func watchAndSolve(
	ctx context.Context,
	s *solver.Solver,
	cfgFile string,
	load func() (cliconfig.Config, error),
	logger zerolog.Logger,
	stdout, stderr io.Writer,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info().Msg("received signal, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	report := func(err error) {
		logger.Error().Err(err).Int("exit_code", exitCode(err)).Msg("solve failed")
		fmt.Fprintln(stderr, red(err.Error()))
	}

	run := func(ctx context.Context) {
		cfg, err := load()
		if err != nil {
			report(err)
			return
		}
		if err := solveAndPrint(ctx, s, cfg, stdout); err != nil {
			report(err)
		}
	}

	run(ctx)
	w := watch.New(cfgFile, run, watch.DefaultConfig(), log.NewZerologAdapterWithLogger(logger))
	return w.Run(ctx)
}
