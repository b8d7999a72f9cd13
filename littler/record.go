// Package littler reads and writes observations in the WRFDA "little R"
// fixed-column text format.
//
// Each record is a header line, one data line per vertical level, an
// end-of-record line and a tail line.
// See https://www2.mmm.ucar.edu/wrf/users/wrfda/OnlineTutorial/Help/littler.html
package littler

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	// Missing marks a value that was not observed.
	Missing = -888888.0

	// EndOfRecord fills the pressure and height of the end-of-record line.
	EndOfRecord = -777777.0
)

// Field widths, in characters.
const (
	headerWidth = 600
	dataWidth   = 200
	valueWidth  = 13 // F13.5
	qcWidth     = 7  // I7
	dateLayout  = "20060102150405"
)

// Header columns.
const (
	colLatitude  = 0
	colLongitude = 20
	colID        = 40
	colName      = 80
	colPlatform  = 120
	colSource    = 160
	colElevation = 200
	colSounding  = 270
	colBogus     = 280
	colDiscard   = 290
	colDate      = 320
)

// surfaceFields is the number of (value, QC) pairs after the date in the
// header: SLP, reference pressure, ground temperature, SST, surface
// pressure, precipitation, max/min/night-min temperature, 3h and 24h
// pressure change, cloud cover, ceiling and precipitable water.
const surfaceFields = 13

// tailValidFields is written to the tail line of every record.
const tailValidFields = 39

// Level is one data line. Units follow little-R: Pa, m, K, m/s, degrees
// and percent. Unobserved values are Missing.
type Level struct {
	Pressure         float64
	Height           float64
	Temperature      float64
	DewPoint         float64
	WindSpeed        float64
	WindDirection    float64
	WindU            float64
	WindV            float64
	RelativeHumidity float64
	Thickness        float64
}

// MissingLevel returns a Level with every value Missing.
func MissingLevel() Level {
	return Level{
		Pressure:         Missing,
		Height:           Missing,
		Temperature:      Missing,
		DewPoint:         Missing,
		WindSpeed:        Missing,
		WindDirection:    Missing,
		WindU:            Missing,
		WindV:            Missing,
		RelativeHumidity: Missing,
		Thickness:        Missing,
	}
}

func (l Level) values() [10]float64 {
	return [10]float64{
		l.Pressure, l.Height, l.Temperature, l.DewPoint, l.WindSpeed,
		l.WindDirection, l.WindU, l.WindV, l.RelativeHumidity, l.Thickness,
	}
}

func levelFrom(v [10]float64) Level {
	return Level{
		Pressure:         v[0],
		Height:           v[1],
		Temperature:      v[2],
		DewPoint:         v[3],
		WindSpeed:        v[4],
		WindDirection:    v[5],
		WindU:            v[6],
		WindV:            v[7],
		RelativeHumidity: v[8],
		Thickness:        v[9],
	}
}

// Record is one station report.
type Record struct {
	Latitude  float64
	Longitude float64
	ID        string
	Name      string
	Platform  string // FM code, e.g. "FM-35 TEMP"
	Source    string
	Elevation float64

	IsSounding bool
	Bogus      bool
	Discard    bool

	Date   time.Time
	Levels []Level
}

var errNoLevels = errors.New("littler: record has no levels")

// MarshalText renders r as four or more newline-terminated lines.
func (r Record) MarshalText() ([]byte, error) {
	if len(r.Levels) == 0 {
		return nil, errNoLevels
	}
	var b strings.Builder
	b.Grow(headerWidth + (len(r.Levels)+1)*(dataWidth+1) + 64)
	r.writeHeader(&b)
	for _, l := range r.Levels {
		writeData(&b, l.values())
	}
	end := MissingLevel().values()
	end[0], end[1] = EndOfRecord, EndOfRecord
	writeData(&b, end)
	b.WriteString(formatI(tailValidFields, qcWidth))
	b.WriteString(formatI(0, qcWidth))
	b.WriteString(formatI(0, qcWidth))
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func (r Record) writeHeader(b *strings.Builder) {
	b.WriteString(formatF(r.Latitude, 20, 5))
	b.WriteString(formatF(r.Longitude, 20, 5))
	b.WriteString(formatA(r.ID, 40))
	b.WriteString(formatA(r.Name, 40))
	b.WriteString(formatA(r.Platform, 40))
	b.WriteString(formatA(r.Source, 40))
	b.WriteString(formatF(r.Elevation, 20, 5))
	b.WriteString(formatI(int(Missing), 10)) // valid fields
	for range 4 {
		b.WriteString(formatI(0, 10)) // errors, warnings, sequence number, duplicates
	}
	b.WriteString(formatL(r.IsSounding, 10))
	b.WriteString(formatL(r.Bogus, 10))
	b.WriteString(formatL(r.Discard, 10))
	b.WriteString(formatI(int(Missing), 10)) // unix time
	b.WriteString(formatI(int(Missing), 10)) // julian day
	date := ""
	if !r.Date.IsZero() {
		date = r.Date.UTC().Format(dateLayout)
	}
	b.WriteString(formatA(date, 20))
	for range surfaceFields {
		b.WriteString(formatF(Missing, valueWidth, 5))
		b.WriteString(formatI(0, qcWidth))
	}
	b.WriteByte('\n')
}

func writeData(b *strings.Builder, values [10]float64) {
	for _, v := range values {
		b.WriteString(formatF(v, valueWidth, 5))
		b.WriteString(formatI(0, qcWidth))
	}
	b.WriteByte('\n')
}

// Writer appends records to an underlying writer.
type Writer struct {
	w     io.Writer
	count int
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes one record.
func (w *Writer) Write(r Record) error {
	text, err := r.MarshalText()
	if err != nil {
		return fmt.Errorf("record %d (%s): %w", w.count+1, r.ID, err)
	}
	if _, err := w.w.Write(text); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	return w.count
}
