// Package cli implements the polypack command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/PolyPack/internal/model"
	"github.com/piwi3910/PolyPack/internal/project"
	"github.com/piwi3910/PolyPack/internal/telemetry"
	"github.com/piwi3910/PolyPack/internal/version"
)

// Flag names shared by the viper keys.
const (
	flagConfig        = "config"
	flagLogLevel      = "log-level"
	flagLogFormat     = "log-format"
	flagProfile       = "profile"
	flagProfilesFile  = "profiles-file"
	flagTraceFile     = "trace-file"
	flagMode          = "mode"
	flagSymmetry      = "symmetry"
	flagRegionPruning = "region-pruning"
	flagWorkers       = "workers"
	flagMaxSteps      = "max-steps"
	flagTimeout       = "timeout"
)

// app carries the state of one command line invocation.
type app struct {
	v          *viper.Viper
	config     model.AppConfig
	configPath string

	traceFile *os.File
	shutdown  func(context.Context) error
}

// Execute runs the command line with the process arguments and exits
// non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		stop()
		os.Exit(1)
	}
}

// Run executes one command line. Reports go to stdout, logs to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{v: viper.New()}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "polypack",
		Short: "Polyomino packing feasibility checker",
		Long: `PolyPack decides, for each query of a puzzle, whether the requested
multiset of polyomino pieces can be placed on a W x H grid, and reports how
many queries are feasible.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, flagConfig, "", "config file (default ~/.polypack/config.json)")
	pf.String(flagLogLevel, "", "log level: debug, info, warn, error")
	pf.String(flagLogFormat, "", "log format: console or json")
	pf.String(flagProfile, "", "solver profile")
	pf.String(flagProfilesFile, "", "custom profiles file")
	pf.String(flagTraceFile, "", "write trace spans to this file")

	root.AddCommand(
		a.solveCommand(),
		a.compareCommand(),
		a.shapesCommand(),
		a.profilesCommand(),
		a.versionCommand(),
	)
	return root
}

// initialize loads the config file, binds flags and environment, and sets
// up logging and tracing.
func (a *app) initialize(cmd *cobra.Command) error {
	if a.configPath == "" {
		a.configPath = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", a.configPath, err)
	}
	a.config = cfg

	a.v.SetEnvPrefix("POLYPACK")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	a.v.SetDefault(flagLogLevel, cfg.LogLevel)
	a.v.SetDefault(flagLogFormat, cfg.LogFormat)
	a.v.SetDefault(flagProfile, cfg.DefaultProfile)
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if err := a.setupLogging(cmd.ErrOrStderr()); err != nil {
		return err
	}

	profilesPath := a.v.GetString(flagProfilesFile)
	if profilesPath == "" {
		if profilesPath, err = project.DefaultProfilesPath(); err != nil {
			log.Debug().Err(err).Msg("no user config directory, skipping custom profiles")
		}
	}
	model.CustomProfiles = nil
	if profilesPath != "" {
		skipped, err := project.RegisterCustomProfiles(profilesPath)
		if err != nil {
			return fmt.Errorf("failed to load profiles %s: %w", profilesPath, err)
		}
		for _, name := range skipped {
			log.Warn().Str("profile", name).Msg("custom profile shadows a built-in profile, ignored")
		}
	}

	return a.setupTracing()
}

func (a *app) setupLogging(w io.Writer) error {
	level, err := zerolog.ParseLevel(strings.ToLower(a.v.GetString(flagLogLevel)))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	switch format := a.v.GetString(flagLogFormat); format {
	case "json":
		log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	case "", "console":
		out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
		log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	default:
		return fmt.Errorf("invalid log format %q: want console or json", format)
	}
	return nil
}

func (a *app) setupTracing() error {
	path := a.v.GetString(flagTraceFile)
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	shutdown, err := telemetry.Init("polypack", version.Version, f)
	if err != nil {
		f.Close()
		return err
	}
	a.traceFile = f
	a.shutdown = shutdown
	return nil
}

func (a *app) close() error {
	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdown(ctx); err != nil {
			return fmt.Errorf("failed to flush traces: %w", err)
		}
	}
	if a.traceFile != nil {
		return a.traceFile.Close()
	}
	return nil
}
