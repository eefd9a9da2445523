// file: internal/ignore/ignore_test.go
// version: 1.0.0
// guid: d654e363-3357-4b5f-80dc-707945b8102d

package ignore

import "testing"

func TestDefaultIgnoredEquipment(t *testing.T) {
	list, err := NewList(nil)
	if err != nil {
		t.Fatalf("NewList failed: %v", err)
	}

	ignored := []string{
		"some_tarkov_item",
		"diw_armor_plates_main_plate",
		"MMG",
		"TARKOV_UPPERCASE",
		"rm",
	}
	for _, name := range ignored {
		if !list.ShouldIgnore(name) {
			t.Errorf("expected %q to be ignored", name)
		}
	}

	kept := []string{
		"ace_medical_bandage",
		"rhs_weapon",
	}
	for _, name := range kept {
		if list.ShouldIgnore(name) {
			t.Errorf("expected %q to be kept", name)
		}
	}
}

func TestCustomIgnorePatterns(t *testing.T) {
	list, err := NewList([]string{
		"ace_*",
		"*_backpack",
		"specific_item",
	})
	if err != nil {
		t.Fatalf("NewList failed: %v", err)
	}

	ignored := []string{
		"ace_medical_bandage",
		"any_kind_of_backpack",
		"specific_item",
		// Defaults stay active alongside custom patterns.
		"rm",
		"tarkov_item",
	}
	for _, name := range ignored {
		if !list.ShouldIgnore(name) {
			t.Errorf("expected %q to be ignored", name)
		}
	}

	if list.ShouldIgnore("rhs_weapon") || list.ShouldIgnore("tfar_radio") {
		t.Error("custom patterns must not widen beyond their own matches")
	}
}

func TestPatternEdgeCases(t *testing.T) {
	list, err := NewList([]string{
		"*",
		"?test",
		"[abc]_item",
		"",
	})
	if err != nil {
		t.Fatalf("NewList failed: %v", err)
	}

	if !list.ShouldIgnore("anything") {
		t.Error("* should match anything")
	}
	if !list.ShouldIgnore("atest") {
		t.Error("?test should match atest")
	}
	if !list.ShouldIgnore("b_item") {
		t.Error("[abc]_item should match b_item")
	}
	if list.ShouldIgnore("") {
		t.Error("the empty name is never ignored")
	}
}

func TestMalformedPatternFailsFast(t *testing.T) {
	if _, err := NewList([]string{"[abc"}); err == nil {
		t.Fatal("expected an error for an unterminated character class")
	}
}

func TestPatternsOrder(t *testing.T) {
	list, err := NewList([]string{"custom_*"})
	if err != nil {
		t.Fatalf("NewList failed: %v", err)
	}

	patterns := list.Patterns()
	if len(patterns) != len(DefaultPatterns())+1 {
		t.Fatalf("got %d patterns, want defaults plus one", len(patterns))
	}
	if patterns[0] != "rm" {
		t.Errorf("first pattern = %q, want the first default", patterns[0])
	}
	if patterns[len(patterns)-1] != "custom_*" {
		t.Errorf("last pattern = %q, want the custom one", patterns[len(patterns)-1])
	}
}

func TestCaseInsensitivePatternInput(t *testing.T) {
	list, err := NewList([]string{"ACE_*"})
	if err != nil {
		t.Fatalf("NewList failed: %v", err)
	}
	if !list.ShouldIgnore("ace_medical_bandage") {
		t.Error("patterns should be lowercased at compile time")
	}
	if !list.ShouldIgnore("ACE_Medical_Bandage") {
		t.Error("names should be lowercased before matching")
	}
}
