// Package format parses and applies Noxy's f-string format specs
// (spec.md §6.2): "[<width:int>][.<precision:int>][<type: x|X|o|f|e|g>]".
// Shared by the static analyzer (validation) and the evaluator (rendering)
// so the grammar is defined in exactly one place.
package format

import "strconv"

// Spec is a parsed format specifier.
type Spec struct {
	Width        int
	ZeroPad      bool
	Precision    int
	HasPrecision bool
	Kind         byte // 0, 'x', 'X', 'o', 'f', 'e', or 'g'
}

// Parse parses a raw format spec string (the text after ':' in an
// f-string hole, excluding the colon itself).
func Parse(raw string) Spec {
	var s Spec
	i := 0
	n := len(raw)

	if i < n && raw[i] == '0' {
		s.ZeroPad = true
	}
	start := i
	for i < n && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	if i > start {
		s.Width, _ = strconv.Atoi(raw[start:i])
	}

	if i < n && raw[i] == '.' {
		i++
		start = i
		for i < n && raw[i] >= '0' && raw[i] <= '9' {
			i++
		}
		s.Precision, _ = strconv.Atoi(raw[start:i])
		s.HasPrecision = true
	}

	if i < n {
		s.Kind = raw[i]
	}
	return s
}
