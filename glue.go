package main

import (
	"context"
	"iter"
	"time"

	"github.com/wbtools/wb2littler/wb"
)

// timeLayout is the command line format for START and END, in UTC.
const timeLayout = "2006-01-02_15:04"

// timeArg validates a command line time.
type timeArg struct {
	t time.Time
}

func (a *timeArg) String() string {
	return a.t.Format(timeLayout)
}

func (a *timeArg) Set(s string) error {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return err
	}
	a.t = t
	return nil
}

func (a *timeArg) Time() time.Time {
	return a.t
}

// pageSource encapsulates the wb package client for testing.
type pageSource interface {
	Pages(ctx context.Context, start, end time.Time) iter.Seq2[wb.Page, error]
}
