// file: internal/matcher/sequence_test.go
// version: 1.0.0
// guid: 429d787f-4adc-4212-8572-5d064dc90785

package matcher

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 1.0},
		{"identical", "vest_carrier", "vest_carrier", 1.0},
		{"one empty", "abc", "", 0.0},
		{"no common runes", "abc", "xyz", 0.0},
		{"shifted block", "abcd", "bcde", 0.75},
		{"two blocks", "abcdefg", "abcefg", 12.0 / 13.0},
		{"whitespace prefix", " abcd", "abcd abcd", 10.0 / 14.0},
		{"single rune match", "a", "ab", 2.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sequenceRatio(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("sequenceRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSequenceRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"vest_carrier_blk", "vest_carrier_black"},
		{"helmet_combat", "hat_boonie_black"},
		{"simc_addon_nomex_long_tan", "simc_addon_nmx_long_tan"},
		{"abcd", "bcde"},
		{"", "anything"},
	}
	for _, pair := range pairs {
		forward := sequenceRatio(pair[0], pair[1])
		backward := sequenceRatio(pair[1], pair[0])
		if !almostEqual(forward, backward) {
			t.Errorf("sequenceRatio(%q, %q) = %v but reversed = %v", pair[0], pair[1], forward, backward)
		}
	}
}

func TestSequenceRatioBounds(t *testing.T) {
	samples := []string{"", "a", "vest", "vest_carrier_black", "uniform_combat_mc", "zzzz"}
	for _, a := range samples {
		for _, b := range samples {
			got := sequenceRatio(a, b)
			if got < 0.0 || got > 1.0 {
				t.Errorf("sequenceRatio(%q, %q) = %v outside [0,1]", a, b, got)
			}
		}
	}
}

func TestSequenceRatioRunes(t *testing.T) {
	if got := sequenceRatio("héllo", "héllo"); !almostEqual(got, 1.0) {
		t.Errorf("identical multibyte strings scored %v, want 1.0", got)
	}
	// One differing rune out of five on each side: 2*4/10.
	if got := sequenceRatio("héllo", "hallo"); !almostEqual(got, 0.8) {
		t.Errorf("sequenceRatio(héllo, hallo) = %v, want 0.8", got)
	}
}

func TestLongestMatchPrefersEarliest(t *testing.T) {
	// "ab" occurs twice in b; the tie resolves to the earliest occurrence.
	a := []rune("ab")
	b := []rune("abab")
	m := newBlockMatcher(a, b)
	i, j, k := m.longestMatch(0, len(a), 0, len(b))
	if k != 2 || i != 0 || j != 0 {
		t.Errorf("longestMatch = (%d, %d, %d), want (0, 0, 2)", i, j, k)
	}
}
