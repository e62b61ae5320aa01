package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/PolyPack/internal/model"
)

// DefaultProfilesDir returns the default directory for storing custom profiles.
func DefaultProfilesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "polypack"), nil
}

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() (string, error) {
	dir, err := DefaultProfilesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.json"), nil
}

// SaveCustomProfiles saves custom solver profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.SolverProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom solver profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.SolverProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.SolverProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.SolverProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}

	// Loaded profiles are never built-in
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// SaveCustomProfilesToDefault saves custom profiles to the default path.
func SaveCustomProfilesToDefault(profiles []model.SolverProfile) error {
	path, err := DefaultProfilesPath()
	if err != nil {
		return err
	}
	return SaveCustomProfiles(path, profiles)
}

// LoadCustomProfilesFromDefault loads custom profiles from the default path.
func LoadCustomProfilesFromDefault() ([]model.SolverProfile, error) {
	path, err := DefaultProfilesPath()
	if err != nil {
		return nil, err
	}
	return LoadCustomProfiles(path)
}

// RegisterCustomProfiles loads the profiles at path and adds them to
// model.CustomProfiles. Profiles that clash with a built-in name are skipped
// and reported by name.
func RegisterCustomProfiles(path string) (skipped []string, err error) {
	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if err := model.AddCustomProfile(p); err != nil {
			skipped = append(skipped, p.Name)
		}
	}
	return skipped, nil
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.SolverProfile) error {
	profile.IsBuiltIn = false
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.SolverProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SolverProfile{}, err
	}

	var profile model.SolverProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.SolverProfile{}, err
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return model.SolverProfile{}, errors.New("imported profile has no name")
	}
	return profile, nil
}
