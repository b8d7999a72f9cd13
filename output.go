package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/wbtools/wb2littler/littler"
	"github.com/wbtools/wb2littler/wb"
)

// batch is a group of observations destined for one output file.
type batch struct {
	filename     string
	observations []wb.Observation
}

// rangeFilename names the single output file for [start, end).
func rangeFilename(start, end time.Time) string {
	return fmt.Sprintf("WindBorne_%s_%s.little_r",
		start.UTC().Format(timeLayout), end.UTC().Format(timeLayout))
}

// bucketize sorts observations by time and splits them into buckets of
// the given width aligned to the Unix epoch. Each file is named for the
// midpoint of its bucket, so to get files centered on 00 UTC with 6 hour
// buckets, start 3 hours before.
func bucketize(observations []wb.Observation, hours int) []batch {
	sorted := slices.Clone(observations)
	slices.SortStableFunc(sorted, func(a, b wb.Observation) int {
		return a.Time().Compare(b.Time())
	})
	width := float64(hours * 60 * 60)
	index := func(o wb.Observation) int64 {
		return int64(math.Floor(*o.Timestamp / width))
	}

	var batches []batch
	for i := 0; i < len(sorted); {
		idx := index(sorted[i])
		j := i + 1
		for j < len(sorted) && index(sorted[j]) == idx {
			j++
		}
		mid := time.Unix(idx*int64(width)+int64(width)/2, 0).UTC()
		batches = append(batches, batch{
			filename: fmt.Sprintf("WindBorne_%04d-%02d-%02d_%02d:00_%dh.little_r",
				mid.Year(), mid.Month(), mid.Day(), mid.Hour(), hours),
			observations: sorted[i:j],
		})
		i = j
	}
	return batches
}

// writeRecords writes records to path. They go to a temporary file in
// the same directory first, which is renamed over path only once every
// record has been written; on error nothing is left behind.
func writeRecords(path string, records []littler.Record) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("can't create output file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	w := littler.NewWriter(bw)
	for _, r := range records {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("can't move output into place: %w", err)
	}
	return nil
}
