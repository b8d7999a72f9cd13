package littler

import (
	"fmt"
	"strconv"
	"strings"
)

// The little-R layout is defined in terms of Fortran edit descriptors.
// Each helper renders exactly w characters; values that don't fit are
// cut on the right, the same way the WRFDA reader would see them.

// formatF renders v as Fw.d: right-justified with d decimal places.
func formatF(v float64, w, d int) string {
	return fit(strconv.FormatFloat(v, 'f', d, 64), w, true)
}

// formatI renders v as Iw.
func formatI(v, w int) string {
	return fit(strconv.Itoa(v), w, true)
}

// formatA renders s as Aw: left-justified.
func formatA(s string, w int) string {
	return fit(s, w, false)
}

// formatL renders b as Lw.
func formatL(b bool, w int) string {
	if b {
		return fit("T", w, true)
	}
	return fit("F", w, true)
}

func fit(s string, w int, right bool) string {
	if len(s) >= w {
		return s[:w]
	}
	pad := strings.Repeat(" ", w-len(s))
	if right {
		return pad + s
	}
	return s + pad
}

// parseF reads an Fw.d field. Blank fields and the missing sentinel
// both decode to Missing.
func parseF(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return Missing, nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("bad real %q: %w", field, err)
	}
	if v == Missing {
		return Missing, nil
	}
	return v, nil
}

func parseI(field string) (int, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("bad integer %q: %w", field, err)
	}
	return v, nil
}

func parseL(field string) bool {
	switch strings.TrimSpace(field) {
	case "T", "t":
		return true
	}
	return false
}

// column returns line[from:to], treating anything past the end of the
// line as blank.
func column(line string, from, to int) string {
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return line[from:to]
}
