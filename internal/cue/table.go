// Package cue maps typed symbols to audio cues and plays them.
package cue

import (
	"sort"
	"strings"
)

// ID names a cue resource. It doubles as the file stem looked up in the cue
// directory, so "a" resolves to a.mp3 or a.wav.
type ID string

// Default is played for symbols without their own cue.
const Default ID = "default"

var table = map[string]ID{
	" ":    "space",
	"\n":   "newline",
	"\b":   "backspace",
	"\t":   "tab",
	"\x1b": "escape",
	".":    "period",
	",":    "comma",
	"+":    "plus",
	"-":    "hyphen",
	"ä":    "ae",
	"ö":    "oe",
	"ü":    "ue",
	"ß":    "ss",
}

func init() {
	for r := 'a'; r <= 'z'; r++ {
		table[string(r)] = ID(string(r))
	}
	for r := '0'; r <= '9'; r++ {
		table[string(r)] = ID(string(r))
	}
}

// Normalize lowercases symbol for lookup.
func Normalize(symbol string) string {
	return strings.ToLower(symbol)
}

// Lookup returns the cue for symbol, or Default when none is mapped.
// Lookup is case-insensitive.
func Lookup(symbol string) ID {
	if id, ok := table[Normalize(symbol)]; ok {
		return id
	}
	return Default
}

// Mapping pairs a symbol with its cue.
type Mapping struct {
	Symbol string
	ID     ID
}

// Symbols returns every mapped symbol sorted by cue ID.
func Symbols() []Mapping {
	out := make([]Mapping, 0, len(table))
	for sym, id := range table {
		out = append(out, Mapping{Symbol: sym, ID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns every distinct cue ID including Default, sorted.
func IDs() []ID {
	seen := map[ID]struct{}{Default: {}}
	for _, id := range table {
		seen[id] = struct{}{}
	}
	out := make([]ID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Printable renders a symbol for display, spelling out whitespace and
// control characters.
func Printable(symbol string) string {
	switch symbol {
	case " ":
		return "space"
	case "\n":
		return "enter"
	case "\b":
		return "backspace"
	case "\t":
		return "tab"
	case "\x1b":
		return "escape"
	}
	return symbol
}
