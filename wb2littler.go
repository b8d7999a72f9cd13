// Wb2littler retrieves WindBorne balloon observations and writes them in
// the little-R format read by WRFDA.
//
// Usage:
//
//	wb2littler [flags] START [END]
//
// START and END are UTC times formatted as 2006-01-02_15:04. END defaults
// to now. The WB_CLIENT_ID and WB_API_KEY environment variables must hold
// your WindBorne credentials.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/kr/pretty"
	"github.com/sethvargo/go-envconfig"

	"github.com/wbtools/wb2littler/config"
	"github.com/wbtools/wb2littler/littler"
	"github.com/wbtools/wb2littler/metrics"
	"github.com/wbtools/wb2littler/wb"
)

const version = "0.1"

const UserAgent = "wb2littler/" + version

var (
	debug       bool
	dryRun      bool
	outputDir   string
	bucketHours int
	metricsFile string
)

// now is replaced in tests.
var now = time.Now

func init() {
	flag.BoolVar(&debug, "debug", false,
		"Log verbosely")
	flag.BoolVar(&dryRun, "dryrun", false,
		"Fetch and convert observations, but print the records instead of writing files")
	flag.StringVar(&outputDir, "output_dir", ".",
		"Directory the little_r files are written to")
	flag.IntVar(&bucketHours, "bucket_hours", 0,
		"Split the output into files covering this many hours each, named for the midpoint of each bucket. "+
			"For files centered on 00 UTC with 6 hour buckets, start at 21 UTC the day before. "+
			"0 writes a single file for the whole time range.")
	flag.StringVar(&metricsFile, "metrics_file", "",
		"Write Prometheus metrics for this run to the given file (for the node_exporter textfile collector)")
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: wb2littler [flags] START [END]\n"+
		"START and END are UTC times like 2024-11-11_00:00; END defaults to now.\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli(ctx, flag.Args(), envconfig.OsLookuper(), os.Stderr)
	stop()
	os.Exit(code)
}

// options is everything the pipeline needs, resolved once at startup.
type options struct {
	start, end  time.Time
	outputDir   string
	bucketHours int
	dryRun      bool
}

type stats struct {
	pages, observations, missingMission int
	records, files                      int
}

// cli runs the program and returns the process exit code.
func cli(ctx context.Context, args []string, env envconfig.Lookuper, stderr io.Writer) int {
	started := time.Now()
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(stderr, "error: one or two times are needed")
		flag.Usage()
		return 1
	}
	var start, end timeArg
	if err := start.Set(args[0]); err != nil {
		fmt.Fprintf(stderr, "error: bad START %q: %v\n", args[0], err)
		return 1
	}
	end.t = now().UTC()
	if len(args) == 2 {
		if err := end.Set(args[1]); err != nil {
			fmt.Fprintf(stderr, "error: bad END %q: %v\n", args[1], err)
			return 1
		}
	}
	if !start.Time().Before(end.Time()) {
		fmt.Fprintf(stderr, "error: START (%s) is not before END (%s), won't match any observations\n",
			start.String(), end.String())
		return 1
	}
	if bucketHours < 0 {
		fmt.Fprintf(stderr, "error: -bucket_hours must not be negative, got %d\n", bucketHours)
		return 1
	}

	cfg, err := config.LoadFrom(ctx, env)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	logger := newLogger(stderr, cfg, debug)

	collector := metrics.NewCollector()
	auth := wb.NewAuthenticator(cfg.ClientID, cfg.APIKey, cfg.TokenTTL)
	client := wb.NewClient(cfg.BaseURL, auth, UserAgent,
		wb.WithAuthScheme(cfg.AuthScheme),
		wb.WithLogger(logger),
		wb.WithRequestHook(collector.ObserveRequest))

	opts := options{
		start:       start.Time(),
		end:         end.Time(),
		outputDir:   outputDir,
		bucketHours: bucketHours,
		dryRun:      dryRun,
	}
	logger.Info("retrieving observations", "start", opts.start, "end", opts.end)
	s, err := run(ctx, client, opts, logger)

	collector.PagesTotal.Add(float64(s.pages))
	collector.ObservationsTotal.Add(float64(s.observations))
	collector.RecordsWritten.Add(float64(s.records))
	collector.FilesWritten.Add(float64(s.files))
	collector.Finish(started, err == nil)
	if metricsFile != "" {
		if err := collector.WriteFile(metricsFile); err != nil {
			logger.Error("can't write metrics", "file", metricsFile, "err", err)
		}
	}
	if err != nil {
		logger.Error("conversion failed", "err", err)
		return 1
	}

	logger.Info("finished",
		"pages", s.pages,
		"observations", s.observations,
		"records", s.records,
		"files", s.files)
	if s.missingMission > 0 {
		logger.Warn("some observations had no mission name", "count", s.missingMission)
	}
	return 0
}

// run fetches every page for opts' time range and writes the little-R
// output. Output files are only created once all pages have been fetched.
func run(ctx context.Context, src pageSource, opts options, logger *slog.Logger) (stats, error) {
	var s stats
	var observations []wb.Observation
	for page, err := range src.Pages(ctx, opts.start, opts.end) {
		if err != nil {
			return s, err
		}
		s.pages++
		if len(page.Observations) == 0 {
			logger.Debug("page has no observations", "page", s.pages)
		}
		for _, o := range page.Observations {
			s.observations++
			if o.MissionName == "" {
				logger.Debug("observation without a mission name", "id", o.ID)
				s.missingMission++
			}
			observations = append(observations, o)
		}
	}
	if len(observations) == 0 {
		logger.Warn("could not find any observations for the input date range")
		return s, nil
	}

	batches := []batch{{
		filename:     rangeFilename(opts.start, opts.end),
		observations: observations,
	}}
	if opts.bucketHours > 0 {
		batches = bucketize(observations, opts.bucketHours)
	}

	for _, b := range batches {
		records := make([]littler.Record, len(b.observations))
		for i, o := range b.observations {
			records[i] = toRecord(o)
		}
		path := filepath.Join(opts.outputDir, b.filename)
		if opts.dryRun {
			logger.Info("DRYRUN: would write", "file", path, "records", len(records))
			for _, r := range records {
				pretty.Println(r)
			}
			continue
		}
		if err := writeRecords(path, records); err != nil {
			return s, err
		}
		logger.Info("wrote little_r file", "file", path, "records", len(records))
		s.records += len(records)
		s.files++
	}
	return s, nil
}
