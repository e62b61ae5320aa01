package model

import (
	"testing"
)

func TestAllProfilesIncludesBuiltInAndCustom(t *testing.T) {
	// Reset custom profiles
	CustomProfiles = nil

	builtInCount := len(SolverProfiles)
	all := AllProfiles()
	if len(all) != builtInCount {
		t.Errorf("expected %d profiles with no custom, got %d", builtInCount, len(all))
	}

	CustomProfiles = []SolverProfile{
		{Name: "Custom1", Description: "Test custom"},
	}
	defer func() { CustomProfiles = nil }()

	all = AllProfiles()
	if len(all) != builtInCount+1 {
		t.Errorf("expected %d profiles with 1 custom, got %d", builtInCount+1, len(all))
	}
}

func TestGetProfileFindsCustom(t *testing.T) {
	CustomProfiles = []SolverProfile{
		{Name: "MyCustom", Settings: SolverSettings{Mode: ModeExact, Workers: 2}},
	}
	defer func() { CustomProfiles = nil }()

	p := GetProfile("MyCustom")
	if p.Name != "MyCustom" {
		t.Errorf("expected MyCustom, got %s", p.Name)
	}
	if p.Settings.Mode != ModeExact {
		t.Errorf("expected exact mode, got %s", p.Settings.Mode)
	}
}

func TestGetProfileFallsBackToDefault(t *testing.T) {
	p := GetProfile("NonExistent")
	if p.Name != "default" {
		t.Errorf("expected default fallback, got %s", p.Name)
	}
	if HasProfile("NonExistent") {
		t.Error("HasProfile should be false for unknown name")
	}
}

func TestGetProfileNamesIncludesCustom(t *testing.T) {
	CustomProfiles = []SolverProfile{
		{Name: "CustomA"},
		{Name: "CustomB"},
	}
	defer func() { CustomProfiles = nil }()

	names := GetProfileNames()
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}

	for _, want := range []string{"default", "fast", "reference", "bounded", "CustomA", "CustomB"} {
		if !found[want] {
			t.Errorf("missing profile %s", want)
		}
	}
}

func TestAddCustomProfile(t *testing.T) {
	CustomProfiles = nil
	defer func() { CustomProfiles = nil }()

	p := SolverProfile{Name: "NewProfile", Description: "New", IsBuiltIn: true}
	if err := AddCustomProfile(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(CustomProfiles) != 1 {
		t.Fatalf("expected 1 custom profile, got %d", len(CustomProfiles))
	}
	if CustomProfiles[0].IsBuiltIn {
		t.Error("added profile must not be marked built-in")
	}
}

func TestAddCustomProfileRejectsBuiltInName(t *testing.T) {
	CustomProfiles = nil
	defer func() { CustomProfiles = nil }()

	if err := AddCustomProfile(SolverProfile{Name: "fast"}); err == nil {
		t.Fatal("expected error when adding profile with built-in name")
	}
	if err := AddCustomProfile(SolverProfile{}); err == nil {
		t.Fatal("expected error when adding profile without a name")
	}
}

func TestAddCustomProfileUpdatesExisting(t *testing.T) {
	CustomProfiles = nil
	defer func() { CustomProfiles = nil }()

	_ = AddCustomProfile(SolverProfile{Name: "MyProfile", Description: "Version 1"})
	_ = AddCustomProfile(SolverProfile{Name: "MyProfile", Description: "Version 2"})

	if len(CustomProfiles) != 1 {
		t.Fatalf("expected 1 custom profile after update, got %d", len(CustomProfiles))
	}
	if CustomProfiles[0].Description != "Version 2" {
		t.Errorf("expected updated description, got %s", CustomProfiles[0].Description)
	}
}

func TestRemoveCustomProfile(t *testing.T) {
	CustomProfiles = []SolverProfile{
		{Name: "ToRemove", Description: "Remove me"},
	}
	defer func() { CustomProfiles = nil }()

	if err := RemoveCustomProfile("ToRemove"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(CustomProfiles) != 0 {
		t.Error("profile was not removed")
	}
}

func TestRemoveCustomProfileRejectsBuiltIn(t *testing.T) {
	if err := RemoveCustomProfile("default"); err == nil {
		t.Fatal("expected error when removing built-in profile")
	}
}

func TestRemoveCustomProfileNotFound(t *testing.T) {
	CustomProfiles = nil
	if err := RemoveCustomProfile("NonExistent"); err == nil {
		t.Fatal("expected error when removing non-existent profile")
	}
}

func TestNewCustomProfile(t *testing.T) {
	p := NewCustomProfile("Test Custom")
	if p.Name != "Test Custom" {
		t.Errorf("expected name 'Test Custom', got %s", p.Name)
	}
	if p.IsBuiltIn {
		t.Error("custom profile should not be built-in")
	}
	if p.Settings != DefaultSettings() {
		t.Errorf("expected default settings, got %+v", p.Settings)
	}
}

func TestBuiltInProfilesMarkedCorrectly(t *testing.T) {
	for _, p := range SolverProfiles {
		if !p.IsBuiltIn {
			t.Errorf("built-in profile %s should have IsBuiltIn=true", p.Name)
		}
	}
}

func TestReferenceProfileDisablesSymmetry(t *testing.T) {
	p := GetProfile("reference")
	if p.Settings.SymmetryBreaking {
		t.Error("reference profile should search without symmetry breaking")
	}
}
