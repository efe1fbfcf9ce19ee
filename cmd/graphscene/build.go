package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/dd0wney/cluso-graphscene/pkg/config"
	"github.com/dd0wney/cluso-graphscene/pkg/edgelist"
	"github.com/dd0wney/cluso-graphscene/pkg/graphbuild"
	"github.com/dd0wney/cluso-graphscene/pkg/layout"
	"github.com/dd0wney/cluso-graphscene/pkg/logging"
	"github.com/dd0wney/cluso-graphscene/pkg/metrics"
	"github.com/dd0wney/cluso-graphscene/pkg/report"
	"github.com/dd0wney/cluso-graphscene/pkg/scene"
	"github.com/dd0wney/cluso-graphscene/pkg/upload"
)

func buildCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML config file")
	input := fs.String("input", "", "CSV edge list (id,source,target)")
	output := fs.String("output", "", "scene file to write (default derived from -input)")
	format := fs.String("format", "json", "export format: json or obj")
	compress := fs.Bool("compress", false, "snappy-compress the exported scene")
	seed := fs.Uint64("seed", 0, "sampler seed, 0 for random")
	maxDistance := fs.Float64("max-distance", layout.DefaultMaxDistance, "ellipsoid size")
	interval := fs.Int("progress-interval", graphbuild.DefaultProgressInterval, "rows between progress reports")
	bar := fs.Bool("progress-bar", false, "render a live progress bar on stdout")
	textfile := fs.String("metrics-textfile", "", "write Prometheus metrics to this file")
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")
	bucket := fs.String("upload-bucket", "", "S3 bucket to upload the scene to")
	key := fs.String("upload-key", "", "S3 object key (default: output file name)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "build: unexpected arguments %v\n", fs.Args())
		return exitUsage
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "build: %v\n", err)
			return exitUsage
		}
		cfg = loaded
	}
	cfg.ApplyEnv(os.LookupEnv)

	// explicit flags win over the file and the environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "output":
			cfg.Output.Path = *output
		case "format":
			cfg.Output.Format = *format
		case "compress":
			cfg.Output.Compress = *compress
		case "seed":
			cfg.Layout.Seed = *seed
		case "max-distance":
			cfg.Layout.MaxDistance = *maxDistance
		case "progress-interval":
			cfg.Progress.Interval = *interval
		case "progress-bar":
			cfg.Progress.Bar = *bar
		case "metrics-textfile":
			cfg.Metrics.Textfile = *textfile
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "upload-bucket":
			cfg.Upload.Bucket = *bucket
		case "upload-key":
			cfg.Upload.Key = *key
		}
	})
	cfg.ResolveOutput()
	if cfg.Upload.Enabled() && cfg.Upload.Key == "" {
		cfg.Upload.Key = filepath.Base(cfg.Output.Path)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "build: invalid configuration: %v\n", err)
		return exitUsage
	}

	logger := logging.NewJSONLogger(stderr, logging.ParseLevel(cfg.Logging.Level))
	summary, err := build(context.Background(), cfg, logger, stdout)
	if err != nil {
		logger.Error("build failed", logging.Path(cfg.Input), logging.Error(err))
		return exitError
	}

	if _, err := summary.WriteTo(stdout); err != nil {
		return exitError
	}
	return exitOK
}

// build runs one complete build. Nothing is written to the output path
// unless the graph was built in full.
func build(ctx context.Context, cfg *config.Config, logger logging.Logger, stdout io.Writer) (*report.Summary, error) {
	reg := metrics.NewRegistry()

	total, err := edgelist.CountRows(cfg.Input)
	if err != nil {
		return nil, err
	}
	logger.Info("edge list opened", logging.Path(cfg.Input), logging.Count(total))

	reader, err := edgelist.Open(cfg.Input)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	sampler := layout.NewEllipsoidSampler(layout.SamplerConfig{
		MaxDistance: cfg.Layout.MaxDistance,
		Seed:        cfg.Layout.Seed,
	})
	sc := scene.New(cfg.Scene)

	opts := graphbuild.Options{
		Logger:           logger,
		Metrics:          reg,
		Total:            total,
		ProgressInterval: cfg.Progress.Interval,
	}

	var result *graphbuild.Result
	switch {
	case cfg.Progress.Bar && isTerminal(stdout):
		err = report.RunInteractive(stdout, "building "+filepath.Base(cfg.Input), cfg.Progress.Width,
			func(p graphbuild.ProgressReporter) error {
				opts.Progress = graphbuild.MultiProgress{graphbuild.LogProgress{Logger: logger}, p}
				var berr error
				result, berr = graphbuild.NewSession(sc, sampler, opts).Build(reader)
				return berr
			})
	case cfg.Progress.Bar:
		// not a terminal: one rendered bar line per report
		opts.Progress = graphbuild.MultiProgress{
			graphbuild.LogProgress{Logger: logger},
			report.NewBar(stdout, cfg.Progress.Width),
		}
		result, err = graphbuild.NewSession(sc, sampler, opts).Build(reader)
	default:
		result, err = graphbuild.NewSession(sc, sampler, opts).Build(reader)
	}

	stats := sampler.Stats()
	reg.RecordSampler(stats.Draws, stats.Accepted)
	if err != nil {
		writeMetrics(cfg, reg, logger)
		return nil, err
	}

	info, err := export(cfg, sc, reg, logger)
	if err != nil {
		writeMetrics(cfg, reg, logger)
		return nil, err
	}

	summary := &report.Summary{
		Input:          cfg.Input,
		Output:         cfg.Output.Path,
		Format:         string(info.Format),
		Compressed:     info.Compressed,
		Bytes:          info.Bytes,
		Digest:         info.Digest,
		Rows:           result.Rows,
		Nodes:          len(result.Nodes),
		Edges:          len(result.Edges),
		SelfLoops:      result.SelfLoops,
		DuplicateEdges: result.DuplicateEdges,
		AcceptanceRate: stats.AcceptanceRate(),
		Bounds:         layout.Bounds(result.Coordinates),
		Duration:       result.Duration,
		MetricsFile:    cfg.Metrics.Textfile,
	}

	if cfg.Upload.Enabled() {
		uri, err := uploadScene(ctx, cfg, info, reg, logger)
		if err != nil {
			writeMetrics(cfg, reg, logger)
			return nil, err
		}
		summary.UploadURI = uri
	}

	writeMetrics(cfg, reg, logger)
	return summary, nil
}

// export writes the scene through a temporary file renamed into place
func export(cfg *config.Config, sc *scene.Scene, reg *metrics.Registry, logger logging.Logger) (scene.ExportInfo, error) {
	timer := logging.StartTimer(logger, "scene exported", logging.Path(cfg.Output.Path))

	format := scene.Format(cfg.Output.Format)
	opts := scene.ExportOptions{
		Format:   format,
		Compress: cfg.Output.Compress,
		Indent:   cfg.Output.Indent,
	}
	if format == scene.FormatOBJ {
		mtl := cfg.MaterialLibraryPath()
		opts.MaterialLibrary = filepath.Base(mtl)
		if err := writeAtomic(mtl, func(w io.Writer) error { return scene.WriteMTL(w, sc) }); err != nil {
			return scene.ExportInfo{}, fmt.Errorf("write material library: %w", err)
		}
	}

	var info scene.ExportInfo
	err := writeAtomic(cfg.Output.Path, func(w io.Writer) error {
		var err error
		info, err = scene.Export(w, sc, opts)
		return err
	})
	if err != nil {
		timer.EndError(err)
		return scene.ExportInfo{}, err
	}

	d := timer.End(logging.String("format", string(info.Format)), logging.Int("bytes", int(info.Bytes)))
	reg.RecordExport(string(info.Format), info.Bytes, d)
	return info, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

func uploadScene(ctx context.Context, cfg *config.Config, info scene.ExportInfo, reg *metrics.Registry, logger logging.Logger) (string, error) {
	client, err := upload.NewS3Client(ctx, upload.ClientConfig{
		Region:          cfg.Upload.Region,
		Endpoint:        cfg.Upload.Endpoint,
		PathStyle:       cfg.Upload.PathStyle,
		AccessKeyID:     cfg.Upload.AccessKeyID,
		SecretAccessKey: cfg.Upload.SecretAccessKey,
	})
	if err != nil {
		return "", err
	}

	u := upload.New(client, upload.Options{
		Bucket:  cfg.Upload.Bucket,
		Timeout: cfg.Upload.Timeout,
		Logger:  logger,
		Metrics: reg,
	})
	res, err := u.UploadExport(ctx, cfg.Output.Path, cfg.Upload.Key, info)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", res.Bucket, res.Key), nil
}

func writeMetrics(cfg *config.Config, reg *metrics.Registry, logger logging.Logger) {
	if cfg.Metrics.Textfile == "" {
		return
	}
	start := time.Now()
	if err := reg.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn("metrics textfile not written", logging.Path(cfg.Metrics.Textfile), logging.Error(err))
		return
	}
	logger.Debug("metrics textfile written", logging.Path(cfg.Metrics.Textfile), logging.Latency(time.Since(start)))
}
