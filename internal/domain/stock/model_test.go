package stock

import (
	"reflect"
	"testing"
)

func TestNormalizeSymbol(t *testing.T) {
	cases := map[string]string{
		"aapl":   "AAPL",
		" msft ": "MSFT",
		"GOOGL":  "GOOGL",
		"  ":     "",
	}
	for in, want := range cases {
		if got := NormalizeSymbol(in); got != want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseSymbolList(t *testing.T) {
	t.Run("normalizes and preserves order", func(t *testing.T) {
		got := ParseSymbolList("msft, aapl ,GOOGL")
		want := []string{"MSFT", "AAPL", "GOOGL"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("drops empties and duplicates", func(t *testing.T) {
		got := ParseSymbolList("AAPL,,aapl, ,AAPL")
		want := []string{"AAPL"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("all invalid yields empty", func(t *testing.T) {
		if got := ParseSymbolList(", ,,"); len(got) != 0 {
			t.Errorf("expected empty, got %v", got)
		}
	})
}

func TestSortedSymbols(t *testing.T) {
	in := []string{"MSFT", "AAPL", "GOOGL"}
	got := SortedSymbols(in)

	if !reflect.DeepEqual(got, []string{"AAPL", "GOOGL", "MSFT"}) {
		t.Errorf("unexpected order %v", got)
	}
	// Input must stay untouched
	if !reflect.DeepEqual(in, []string{"MSFT", "AAPL", "GOOGL"}) {
		t.Errorf("input mutated: %v", in)
	}
}
