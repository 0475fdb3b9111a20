// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// RESOLVE TESTS
// =============================================================================

func TestResolve_Classic(t *testing.T) {
	got, err := Resolve(ModeClassic, "", "ignored custom text", "define osmosis", DefaultRegistry())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "define osmosis" {
		t.Errorf("effective prompt = %q, want the raw question", got)
	}
}

func TestResolve_PreMade(t *testing.T) {
	got, err := Resolve(ModePreMade, KindDictionaryToCSV, "", "cat, dog", DefaultRegistry())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.Contains(got, "term; definition") {
		t.Errorf("effective prompt = %q, want the dictionary template", got)
	}
}

func TestResolve_PreMadeUnknownKind(t *testing.T) {
	_, err := Resolve(ModePreMade, "no-such-kind", "", "q", DefaultRegistry())
	if !errors.Is(err, ErrUnknownPromptKind) {
		t.Errorf("err = %v, want ErrUnknownPromptKind", err)
	}
}

func TestResolve_Custom(t *testing.T) {
	tests := []struct {
		name   string
		custom string
	}{
		{"free text", "Answer like a pirate."},
		{"empty is passed through", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(ModeCustom, "", tc.custom, "q", DefaultRegistry())
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if got != tc.custom {
				t.Errorf("effective prompt = %q, want %q verbatim", got, tc.custom)
			}
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	reg := DefaultRegistry()
	first, err1 := Resolve(ModePreMade, KindDictionaryToCSV, "c", "q", reg)
	second, err2 := Resolve(ModePreMade, KindDictionaryToCSV, "c", "q", reg)
	if err1 != nil || err2 != nil {
		t.Fatalf("Resolve failed: %v / %v", err1, err2)
	}
	if first != second {
		t.Errorf("identical inputs produced different outputs: %q vs %q", first, second)
	}
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistry_Merge(t *testing.T) {
	reg := DefaultRegistry().Merge(map[string]string{
		"haiku":             "Answer in a haiku.",
		KindDictionaryToCSV: "overridden",
	})

	if reg["haiku"] != "Answer in a haiku." {
		t.Error("new entry not merged")
	}
	if reg[KindDictionaryToCSV] != "overridden" {
		t.Error("existing entry not overridden")
	}
}

func TestLoadFile_MissingFileReturnsDefaults(t *testing.T) {
	reg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if _, ok := reg[KindDictionaryToCSV]; !ok {
		t.Error("defaults missing from registry")
	}
}

func TestLoadFile_OverlaysEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.toml")
	content := "[prompts]\n\"eli5\" = \"Explain like I am five.\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if reg["eli5"] != "Explain like I am five." {
		t.Errorf("eli5 = %q", reg["eli5"])
	}
	if _, ok := reg[KindDictionaryToCSV]; !ok {
		t.Error("built-in entry lost during overlay")
	}
}

func TestRegistry_KindsSorted(t *testing.T) {
	reg := Registry{"b": "x", "a": "y", "c": "z"}
	kinds := reg.Kinds()
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if kinds[i] != k {
			t.Fatalf("Kinds() = %v, want %v", kinds, want)
		}
	}
}
