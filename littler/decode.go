package littler

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"
)

// Records decodes little-R records from r, in file order.
// Decoding stops at the first error.
func Records(r io.Reader) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		s := bufio.NewScanner(r)
		s.Buffer(make([]byte, 0, 4096), 1<<20)
		line := 0
		next := func() (string, bool) {
			if !s.Scan() {
				return "", false
			}
			line++
			return strings.TrimRight(s.Text(), "\r"), true
		}
		for {
			header, ok := next()
			if !ok {
				break
			}
			if strings.TrimSpace(header) == "" {
				continue
			}
			rec, err := parseHeader(header)
			if err != nil {
				yield(Record{}, fmt.Errorf("line %d: %w", line, err))
				return
			}
			for {
				data, ok := next()
				if !ok {
					yield(Record{}, fmt.Errorf("line %d: record %q ends before its end-of-record line", line, rec.ID))
					return
				}
				l, err := parseData(data)
				if err != nil {
					yield(Record{}, fmt.Errorf("line %d: %w", line, err))
					return
				}
				if l.Pressure == EndOfRecord && l.Height == EndOfRecord {
					break
				}
				rec.Levels = append(rec.Levels, l)
			}
			if _, ok := next(); !ok {
				yield(Record{}, fmt.Errorf("line %d: record %q has no tail line", line, rec.ID))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(Record{}, err)
		}
	}
}

// ReadAll decodes every record in r.
func ReadAll(r io.Reader) ([]Record, error) {
	var recs []Record
	for rec, err := range Records(r) {
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseHeader(line string) (Record, error) {
	if len(line) < colDate+20 {
		return Record{}, fmt.Errorf("header is %d characters, want %d", len(line), headerWidth)
	}
	var rec Record
	var err error
	if rec.Latitude, err = parseF(column(line, colLatitude, colLongitude)); err != nil {
		return Record{}, fmt.Errorf("latitude: %w", err)
	}
	if rec.Longitude, err = parseF(column(line, colLongitude, colID)); err != nil {
		return Record{}, fmt.Errorf("longitude: %w", err)
	}
	rec.ID = strings.TrimSpace(column(line, colID, colName))
	rec.Name = strings.TrimSpace(column(line, colName, colPlatform))
	rec.Platform = strings.TrimSpace(column(line, colPlatform, colSource))
	rec.Source = strings.TrimSpace(column(line, colSource, colElevation))
	if rec.Elevation, err = parseF(column(line, colElevation, colElevation+20)); err != nil {
		return Record{}, fmt.Errorf("elevation: %w", err)
	}
	rec.IsSounding = parseL(column(line, colSounding, colBogus))
	rec.Bogus = parseL(column(line, colBogus, colDiscard))
	rec.Discard = parseL(column(line, colDiscard, colDiscard+10))
	if date := strings.TrimSpace(column(line, colDate, colDate+20)); date != "" {
		rec.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return Record{}, fmt.Errorf("date: %w", err)
		}
	}
	return rec, nil
}

func parseData(line string) (Level, error) {
	var v [10]float64
	for i := range v {
		from := i * (valueWidth + qcWidth)
		f, err := parseF(column(line, from, from+valueWidth))
		if err != nil {
			return Level{}, fmt.Errorf("data field %d: %w", i+1, err)
		}
		if _, err := parseI(column(line, from+valueWidth, from+valueWidth+qcWidth)); err != nil {
			return Level{}, fmt.Errorf("data field %d QC: %w", i+1, err)
		}
		v[i] = f
	}
	return levelFrom(v), nil
}
