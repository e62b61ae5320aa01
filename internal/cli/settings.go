package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/piwi3910/PolyPack/internal/model"
)

// addSolverFlags registers the solver setting flags. Their defaults are only
// shown in help; the effective default comes from the profile and config.
func addSolverFlags(fs *pflag.FlagSet) {
	d := model.DefaultSettings()
	fs.String(flagMode, string(d.Mode), "solution mode: pack (gaps allowed) or exact (full cover)")
	fs.Bool(flagSymmetry, d.SymmetryBreaking, "skip symmetric placements of identical pieces")
	fs.Bool(flagRegionPruning, d.RegionPruning, "prune on empty regions too small for any remaining piece")
	fs.Int(flagWorkers, d.Workers, "queries solved in parallel")
	fs.Int64(flagMaxSteps, d.MaxSteps, "placement attempts per query before giving up (0 = unbounded)")
	fs.Duration(flagTimeout, d.QueryTimeout, "wall clock limit per query (0 = none)")
}

// resolveSettings layers defaults, the config file, the selected profile,
// environment and explicit flags, in increasing precedence.
func (a *app) resolveSettings() (model.SolverSettings, error) {
	base := model.DefaultSettings()
	a.config.ApplyToSettings(&base)

	if name := a.v.GetString(flagProfile); name != "" && name != model.SolverProfiles[0].Name {
		if !model.HasProfile(name) {
			return model.SolverSettings{}, fmt.Errorf("unknown profile %q (available: %v)", name, model.GetProfileNames())
		}
		base = model.GetProfile(name).Settings
	}

	a.v.SetDefault(flagMode, string(base.Mode))
	a.v.SetDefault(flagSymmetry, base.SymmetryBreaking)
	a.v.SetDefault(flagRegionPruning, base.RegionPruning)
	a.v.SetDefault(flagWorkers, base.Workers)
	a.v.SetDefault(flagMaxSteps, base.MaxSteps)
	a.v.SetDefault(flagTimeout, base.QueryTimeout)

	mode, err := model.ParseMode(a.v.GetString(flagMode))
	if err != nil {
		return model.SolverSettings{}, err
	}
	s := model.SolverSettings{
		Mode:             mode,
		SymmetryBreaking: a.v.GetBool(flagSymmetry),
		RegionPruning:    a.v.GetBool(flagRegionPruning),
		Workers:          a.v.GetInt(flagWorkers),
		MaxSteps:         a.v.GetInt64(flagMaxSteps),
		QueryTimeout:     a.v.GetDuration(flagTimeout),
	}
	if s.Workers < 1 {
		return model.SolverSettings{}, fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	if s.MaxSteps < 0 {
		return model.SolverSettings{}, fmt.Errorf("max-steps must not be negative")
	}
	if s.QueryTimeout < 0 {
		return model.SolverSettings{}, fmt.Errorf("timeout must not be negative")
	}
	return s, nil
}

// describe renders settings on one line for logs and listings.
func describe(s model.SolverSettings) string {
	timeout := "none"
	if s.QueryTimeout > 0 {
		timeout = s.QueryTimeout.Round(time.Millisecond).String()
	}
	return fmt.Sprintf("mode=%s symmetry=%t regions=%t workers=%d max-steps=%d timeout=%s",
		s.Mode, s.SymmetryBreaking, s.RegionPruning, s.Workers, s.MaxSteps, timeout)
}
