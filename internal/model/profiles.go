package model

import (
	"errors"
	"time"
)

// SolverProfile is a named set of solver settings.
type SolverProfile struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	IsBuiltIn   bool           `json:"is_built_in"`
	Settings    SolverSettings `json:"settings"`
}

// Built-in solver profiles
var SolverProfiles = []SolverProfile{
	{
		Name:        "default",
		Description: "Pack mode with symmetry breaking",
		IsBuiltIn:   true,
		Settings:    DefaultSettings(),
	},
	{
		Name:        "fast",
		Description: "Region pruning with four parallel workers",
		IsBuiltIn:   true,
		Settings: SolverSettings{
			Mode:             ModePack,
			SymmetryBreaking: true,
			RegionPruning:    true,
			Workers:          4,
		},
	},
	{
		Name:        "reference",
		Description: "Plain exhaustive search without symmetry breaking",
		IsBuiltIn:   true,
		Settings: SolverSettings{
			Mode:             ModePack,
			SymmetryBreaking: false,
			RegionPruning:    false,
			Workers:          1,
		},
	},
	{
		Name:        "bounded",
		Description: "Step and time limits, unresolved queries reported as unknown",
		IsBuiltIn:   true,
		Settings: SolverSettings{
			Mode:             ModePack,
			SymmetryBreaking: true,
			RegionPruning:    true,
			MaxSteps:         5_000_000,
			QueryTimeout:     10 * time.Second,
			Workers:          1,
		},
	},
}

// CustomProfiles holds user-defined profiles loaded from disk.
var CustomProfiles []SolverProfile

// AllProfiles returns built-in profiles followed by custom ones.
func AllProfiles() []SolverProfile {
	all := make([]SolverProfile, 0, len(SolverProfiles)+len(CustomProfiles))
	all = append(all, SolverProfiles...)
	all = append(all, CustomProfiles...)
	return all
}

// GetProfile returns a profile by name, or the default profile if not found.
func GetProfile(name string) SolverProfile {
	for _, p := range AllProfiles() {
		if p.Name == name {
			return p
		}
	}
	return SolverProfiles[0]
}

// HasProfile reports whether a profile with the given name exists.
func HasProfile(name string) bool {
	for _, p := range AllProfiles() {
		if p.Name == name {
			return true
		}
	}
	return false
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range AllProfiles() {
		names = append(names, p.Name)
	}
	return names
}

func isBuiltInName(name string) bool {
	for _, p := range SolverProfiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// NewCustomProfile returns a custom profile seeded with the default settings.
func NewCustomProfile(name string) SolverProfile {
	return SolverProfile{
		Name:        name,
		Description: "Custom profile",
		Settings:    DefaultSettings(),
	}
}

// AddCustomProfile adds or replaces a custom profile.
func AddCustomProfile(p SolverProfile) error {
	if p.Name == "" {
		return errors.New("profile name is required")
	}
	if isBuiltInName(p.Name) {
		return errors.New("cannot overwrite built-in profile " + p.Name)
	}
	p.IsBuiltIn = false
	for i := range CustomProfiles {
		if CustomProfiles[i].Name == p.Name {
			CustomProfiles[i] = p
			return nil
		}
	}
	CustomProfiles = append(CustomProfiles, p)
	return nil
}

// RemoveCustomProfile deletes a custom profile by name.
func RemoveCustomProfile(name string) error {
	if isBuiltInName(name) {
		return errors.New("cannot remove built-in profile " + name)
	}
	for i := range CustomProfiles {
		if CustomProfiles[i].Name == name {
			CustomProfiles = append(CustomProfiles[:i], CustomProfiles[i+1:]...)
			return nil
		}
	}
	return errors.New("profile not found: " + name)
}
