package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/PolyPack/internal/model"
)

// ArchiveVersion is written into every run archive.
const ArchiveVersion = "1.0.0"

// RunSummary holds the aggregate counts of a run.
type RunSummary struct {
	Queries    int   `json:"queries"`
	Feasible   int   `json:"feasible"`
	Infeasible int   `json:"infeasible"`
	Unknown    int   `json:"unknown"`
	TotalSteps int64 `json:"total_steps"`
	DurationMS int64 `json:"duration_ms"`
}

// RunArchive is the on-disk record of one solve run.
type RunArchive struct {
	Version   string               `json:"version"`
	RunID     string               `json:"run_id"`
	CreatedAt string               `json:"created_at"`
	Input     string               `json:"input"`
	Puzzle    model.Puzzle         `json:"puzzle"`
	Settings  model.SolverSettings `json:"settings"`
	Summary   RunSummary           `json:"summary"`
	Results   []model.QueryResult  `json:"results"`
}

// NewRunArchive builds an archive for a finished batch.
func NewRunArchive(input string, p model.Puzzle, br model.BatchResult) RunArchive {
	return RunArchive{
		Version:   ArchiveVersion,
		RunID:     uuid.New().String(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Input:     input,
		Puzzle:    p,
		Settings:  br.Settings,
		Summary: RunSummary{
			Queries:    len(br.Results),
			Feasible:   br.Feasible(),
			Infeasible: br.Infeasible(),
			Unknown:    br.Unknown(),
			TotalSteps: br.TotalSteps(),
			DurationMS: br.Duration.Milliseconds(),
		},
		Results: br.Results,
	}
}

// ExportRun writes a run archive to the specified path as JSON.
func ExportRun(exportPath string, archive RunArchive) error {
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run archive: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write run archive: %w", err)
	}
	return nil
}

// ImportRun reads a run archive written by ExportRun.
func ImportRun(importPath string) (RunArchive, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return RunArchive{}, fmt.Errorf("failed to read run archive: %w", err)
	}
	var archive RunArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return RunArchive{}, fmt.Errorf("failed to parse run archive: %w", err)
	}
	if archive.Version == "" {
		return RunArchive{}, fmt.Errorf("invalid run archive: missing version field")
	}
	if len(archive.Results) != archive.Summary.Queries {
		return RunArchive{}, fmt.Errorf("invalid run archive: summary lists %d queries, found %d results",
			archive.Summary.Queries, len(archive.Results))
	}
	return archive, nil
}
