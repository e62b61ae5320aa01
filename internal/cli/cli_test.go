package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PolyPack/internal/export"
	"github.com/piwi3910/PolyPack/internal/importer"
	"github.com/piwi3910/PolyPack/internal/model"
	"github.com/piwi3910/PolyPack/internal/project"
)

const testShapes = `0:
###
##.
##.

1:
###
##.
.##

2:
.##
###
##.

3:
##.
###
##.

4:
###
#..
###

5:
###
.#.
###

`

// Two feasible queries and one that fails the area check.
const testPuzzle = testShapes + `4x4: 0 0 0 0 2 0
12x5: 1 0 1 0 2 2
3x3: 0 0 0 0 2 0
`

type harness struct {
	dir      string
	config   string
	profiles string
	puzzle   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Cleanup(func() { model.CustomProfiles = nil })

	dir := t.TempDir()
	h := &harness{
		dir:      dir,
		config:   filepath.Join(dir, "config.json"),
		profiles: filepath.Join(dir, "profiles.json"),
		puzzle:   filepath.Join(dir, "puzzle.txt"),
	}
	require.NoError(t, os.WriteFile(h.puzzle, []byte(testPuzzle), 0644))
	return h
}

func (h *harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	full := append([]string{"--config", h.config, "--profiles-file", h.profiles}, args...)
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), full, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

func TestSolve_CountsFeasibleQueries(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "solve", h.puzzle)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestSolve_WorkersKeepAnswer(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "solve", "--workers", "3", "--region-pruning", h.puzzle)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestSolve_JSONFormat(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "solve", "--format", "json", h.puzzle)
	require.NoError(t, err)

	var rep export.JSONReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "puzzle", rep.Puzzle)
	assert.Equal(t, 2, rep.Feasible)
	require.Len(t, rep.Results, 3)
	assert.Equal(t, model.VerdictInfeasible, rep.Results[2].Verdict)
	assert.Equal(t, "required area exceeds grid", rep.Results[2].Reason)
}

func TestSolve_SummaryFormat(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "solve", "--format", "summary", "--color", h.puzzle)
	require.NoError(t, err)
	assert.Contains(t, out, "Puzzle: puzzle")
	assert.Contains(t, out, "feasible")
	assert.Contains(t, out, "Feasible: 2  Infeasible: 1  Unknown: 0")
}

func TestSolve_UnknownFormat(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "solve", "--format", "yaml", h.puzzle)
	assert.Error(t, err)
}

func TestSolve_ExactModeFlag(t *testing.T) {
	h := newHarness(t)

	// Neither feasible query covers its grid completely.
	out, _, err := h.run(t, "solve", "--mode", "exact", h.puzzle)
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestSolve_EnvironmentOverridesConfig(t *testing.T) {
	h := newHarness(t)
	t.Setenv("POLYPACK_MODE", "exact")

	out, _, err := h.run(t, "solve", h.puzzle)
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestSolve_FlagOverridesEnvironment(t *testing.T) {
	h := newHarness(t)
	t.Setenv("POLYPACK_MODE", "exact")

	out, _, err := h.run(t, "solve", "--mode", "pack", h.puzzle)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestSolve_ConfigFileDefaults(t *testing.T) {
	h := newHarness(t)
	cfg := model.DefaultAppConfig()
	cfg.DefaultMode = model.ModeExact
	require.NoError(t, project.SaveAppConfig(h.config, cfg))

	out, _, err := h.run(t, "solve", h.puzzle)
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestSolve_StepBudgetYieldsUnknown(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "solve", "--max-steps", "1", "--format", "json", h.puzzle)
	require.NoError(t, err)

	var rep export.JSONReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 0, rep.Feasible)
	assert.Equal(t, 2, rep.Unknown)
}

func TestSolve_InvalidSettings(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "solve", "--workers", "0", h.puzzle)
	assert.Error(t, err)

	_, _, err = h.run(t, "solve", "--mode", "fill", h.puzzle)
	assert.Error(t, err)
}

func TestSolve_UnknownProfile(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "--profile", "turbo", "solve", h.puzzle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turbo")
}

func TestSolve_ProfileAndFlagOverride(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "--profile", "bounded", "solve", "--max-steps", "1", h.puzzle)
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	out, _, err = h.run(t, "--profile", "reference", "solve", h.puzzle)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestSolve_ParseErrorFailsRun(t *testing.T) {
	h := newHarness(t)
	bad := h.path("bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte(testShapes+"4x4 0 0\n"), 0644))

	out, _, err := h.run(t, "solve", bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, importer.ErrInvalidQueryFormat))
	assert.Empty(t, out)
}

func TestSolve_MissingInput(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "solve")
	assert.Error(t, err)

	_, _, err = h.run(t, "solve", h.path("missing.txt"))
	assert.Error(t, err)
}

func TestSolve_QueriesFromCSV(t *testing.T) {
	h := newHarness(t)
	csvPath := h.path("queries.csv")
	csv := "label,width,height,c0,c1,c2,c3,c4,c5\n" +
		"first,4,4,0,0,0,0,2,0\n" +
		"tiny,2,2,1,0,0,0,0,0\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0644))

	out, _, err := h.run(t, "solve", "--queries", csvPath, "--format", "json", h.puzzle)
	require.NoError(t, err)

	var rep export.JSONReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Results, 2)
	assert.Equal(t, "first", rep.Results[0].Label)
	assert.Equal(t, 1, rep.Feasible)
}

func TestSolve_QueriesUnknownShape(t *testing.T) {
	h := newHarness(t)
	csvPath := h.path("queries.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("width,height,c9\n4,4,1\n"), 0644))

	_, _, err := h.run(t, "solve", "--queries", csvPath, h.puzzle)
	require.Error(t, err)
	assert.True(t, errors.Is(err, importer.ErrUnknownShape))
}

func TestSolve_WritesArtifacts(t *testing.T) {
	h := newHarness(t)
	xlsx, pdf, cards, archive := h.path("r.xlsx"), h.path("r.pdf"), h.path("cards.pdf"), h.path("run.json")

	out, _, err := h.run(t, "solve",
		"--xlsx", xlsx, "--pdf", pdf, "--cards", cards, "--archive", archive, h.puzzle)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	for _, p := range []string{xlsx, pdf, cards} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.NotZero(t, info.Size(), p)
	}

	run, err := project.ImportRun(archive)
	require.NoError(t, err)
	assert.Equal(t, h.puzzle, run.Input)
	assert.Equal(t, 2, run.Summary.Feasible)
	assert.Len(t, run.Results, 3)
}

func TestSolve_TraceFile(t *testing.T) {
	h := newHarness(t)
	trace := h.path("trace.json")

	_, _, err := h.run(t, "--trace-file", trace, "solve", h.puzzle)
	require.NoError(t, err)

	data, err := os.ReadFile(trace)
	require.NoError(t, err)
	assert.Contains(t, string(data), "engine.Run")
	assert.Contains(t, string(data), "engine.Solve")
}

func TestSolve_RemembersInput(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "solve", h.puzzle)
	require.NoError(t, err)

	cfg, err := project.LoadAppConfig(h.config)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.RecentInputs)
	assert.Equal(t, h.puzzle, cfg.RecentInputs[0])
}

func TestSolve_JSONLogs(t *testing.T) {
	h := newHarness(t)

	out, logs, err := h.run(t, "--log-format", "json", "--log-level", "debug", "solve", h.puzzle)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
	assert.Contains(t, logs, `"module":"engine"`)
	assert.Contains(t, logs, `"message":"batch complete"`)
}

func TestSolve_InvalidLogLevel(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "--log-level", "loud", "solve", h.puzzle)
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "compare", h.puzzle)
	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIO")
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "No Symmetry Breaking")
	assert.Contains(t, out, "Region Pruning")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	for _, line := range lines[2:] {
		fields := strings.Fields(line)
		assert.Equal(t, "0", fields[len(fields)-1], line)
	}
}

func TestShapes(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "shapes", h.puzzle)
	require.NoError(t, err)
	assert.Contains(t, out, "Shape 0")
	assert.Contains(t, out, "id=5 area=7")
	assert.Contains(t, out, "  ###\n  .#.\n  ###\n")
}

func TestProfiles_List(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "profiles")
	require.NoError(t, err)
	for _, name := range []string{"default", "fast", "reference", "bounded"} {
		assert.Contains(t, out, name)
	}
}

func TestProfiles_ImportAndUse(t *testing.T) {
	h := newHarness(t)
	shared := h.path("shared.json")
	p := model.NewCustomProfile("strict")
	p.Settings.Mode = model.ModeExact
	require.NoError(t, project.ExportProfile(shared, p))

	out, _, err := h.run(t, "profiles", "import", shared)
	require.NoError(t, err)
	assert.Contains(t, out, "imported profile strict")

	loaded, err := project.LoadCustomProfiles(h.profiles)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	out, _, err = h.run(t, "--profile", "strict", "solve", h.puzzle)
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	out, _, err = h.run(t, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "strict")
	assert.Contains(t, out, "custom")
}

func TestProfiles_Export(t *testing.T) {
	h := newHarness(t)
	dst := h.path("fast.json")

	_, _, err := h.run(t, "profiles", "export", "fast", dst)
	require.NoError(t, err)

	p, err := project.ImportProfile(dst)
	require.NoError(t, err)
	assert.Equal(t, "fast", p.Name)
	assert.True(t, p.Settings.RegionPruning)

	_, _, err = h.run(t, "profiles", "export", "nope", dst)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "polypack "))
}
