package littler

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/kr/pretty"
)

func sampleRecord() Record {
	l := MissingLevel()
	l.Pressure = 85000
	l.Height = 1500.25
	l.Temperature = 278.15
	l.WindU = -3.5
	l.WindV = 4.25
	l.RelativeHumidity = 65.5
	return Record{
		Latitude:   37.12345,
		Longitude:  -122.54321,
		ID:         "obs-123",
		Name:       "W-1234",
		Platform:   "FM-35 TEMP",
		Source:     "WindBorne",
		Elevation:  Missing,
		IsSounding: true,
		Date:       time.Date(2024, 11, 11, 6, 30, 15, 0, time.UTC),
		Levels:     []Level{l},
	}
}

func TestMarshalText_Layout(t *testing.T) {
	text, err := sampleRecord().MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(text), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}
	if len(lines[0]) != headerWidth {
		t.Errorf("header is %d characters, want %d", len(lines[0]), headerWidth)
	}
	for i, l := range lines[1:3] {
		if len(l) != dataWidth {
			t.Errorf("line %d is %d characters, want %d", i+2, len(l), dataWidth)
		}
	}
	if got := lines[0][colDate : colDate+20]; got != "20241111063015      " {
		t.Errorf("date column = %q", got)
	}
	if got := lines[0][colPlatform : colPlatform+10]; got != "FM-35 TEMP" {
		t.Errorf("platform column = %q", got)
	}
	wantEnd := "-777777.00000      0-777777.00000      0" + strings.Repeat("-888888.00000      0", 8)
	if lines[2] != wantEnd {
		t.Errorf("end line = %q, want %q", lines[2], wantEnd)
	}
	if lines[3] != "     39      0      0" {
		t.Errorf("tail line = %q", lines[3])
	}
	// Dew point is the 4th data field and was not observed.
	if got := lines[1][60:73]; got != "-888888.00000" {
		t.Errorf("dew point column = %q, want sentinel", got)
	}
}

func TestMarshalText_NoLevels(t *testing.T) {
	r := sampleRecord()
	r.Levels = nil
	if _, err := r.MarshalText(); err == nil {
		t.Error("Expected an error for a record without levels")
	}
}

func TestRoundTrip(t *testing.T) {
	want := sampleRecord()
	second := sampleRecord()
	second.ID = ""
	second.Name = ""
	second.Latitude = Missing
	second.Levels = append(second.Levels, MissingLevel())

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, r := range []Record{want, second} {
		if err := w.Write(r); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if w.Count() != 2 {
		t.Errorf("Count() = %d, want 2", w.Count())
	}

	got, err := ReadAll(&buf)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	for i, r := range []Record{want, second} {
		if !got[i].Date.Equal(r.Date) {
			t.Errorf("record %d: Date = %v, want %v", i, got[i].Date, r.Date)
		}
		if diff := pretty.Diff(roundRecord(r), roundRecord(got[i])); len(diff) > 0 {
			t.Errorf("record %d differs after round trip:\n%s", i, strings.Join(diff, "\n"))
		}
	}
}

// roundRecord rounds every real to the five decimals little-R keeps.
func roundRecord(r Record) Record {
	round := func(v float64) float64 { return math.Round(v*1e5) / 1e5 }
	r.Latitude = round(r.Latitude)
	r.Longitude = round(r.Longitude)
	r.Elevation = round(r.Elevation)
	levels := make([]Level, len(r.Levels))
	for i, l := range r.Levels {
		v := l.values()
		for j := range v {
			v[j] = round(v[j])
		}
		levels[i] = levelFrom(v)
	}
	r.Levels = levels
	r.Date = time.Time{}
	return r
}

func TestRecords_Errors(t *testing.T) {
	text, err := sampleRecord().MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(text), "\n")
	tests := []struct {
		name  string
		input string
	}{
		{"short header", "   37.0\n"},
		{"missing end line", lines[0] + "\n" + lines[1] + "\n"},
		{"missing tail", strings.Join(lines[:3], "\n") + "\n"},
		{"bad data", lines[0] + "\n" + strings.Repeat("x", dataWidth) + "\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadAll(strings.NewReader(tc.input)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
