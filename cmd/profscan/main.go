package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/profscan/profscan-go/pipelines"
	"github.com/profscan/profscan-go/utils"
)

func main() {
	var (
		tablePath  string
		database   string
		dataDir    string
		outPath    string
		configPath string
		runDBPath  string
		logLevel   string
		logFormat  string
		iprLookup  bool
		goTerms    bool
	)

	flag.StringVar(&tablePath, "tsv", "", "input hit table (.tsv or .tsv.gz, required)")
	flag.StringVar(&database, "db", "", "database name the table was searched against (required)")
	flag.StringVar(&dataDir, "data-dir", "", "reference data directory (required)")
	flag.StringVar(&outPath, "out", "", "output path (default stdout; .gz compresses)")
	flag.StringVar(&configPath, "config", "", "optional yaml config file")
	flag.StringVar(&runDBPath, "run-db", "", "optional sqlite run history database")
	flag.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flag.StringVar(&logFormat, "log-format", "", "log format: text or json")
	flag.BoolVar(&iprLookup, "iprlookup", false, "attach cross-reference id and description columns")
	flag.BoolVar(&goTerms, "goterms", false, "attach ontology term column")
	flag.Parse()

	if tablePath == "" || database == "" || dataDir == "" {
		fmt.Fprintln(os.Stderr, "Error: -tsv, -db and -data-dir are required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := utils.DefaultConfig()
	if configPath != "" {
		loaded, err := utils.LoadConfig(configPath)
		if err != nil {
			fatal(err)
		}
		cfg = loaded
	}

	logger := utils.NewLogger()
	if logLevel == "" {
		logLevel = cfg.Logging.Level
	}
	if logFormat == "" {
		logFormat = cfg.Logging.Format
	}
	logger.SetLevel(utils.ParseLogLevel(logLevel))
	if logFormat != "" {
		logger.SetFormat(logFormat)
	}

	var store *utils.RunStore
	if runDBPath != "" {
		s, err := utils.OpenRunStore(runDBPath)
		if err != nil {
			fatal(err)
		}
		defer s.Close()
		store = s
	}

	var out io.Writer = os.Stdout
	var outFile io.WriteCloser
	if outPath != "" {
		f, err := pipelines.OpenOutput(outPath)
		if err != nil {
			fatal(err)
		}
		outFile = f
		out = f
	}

	started := time.Now()
	result, runErr := pipelines.Run(pipelines.Options{
		TablePath: tablePath,
		Database:  database,
		DataDir:   dataDir,
		CrossRefs: iprLookup,
		Ontology:  goTerms,
		Config:    cfg,
		Logger:    logger,
	}, out)

	if outFile != nil {
		if err := outFile.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}

	if store != nil {
		rec := utils.RunRecord{
			Database:   database,
			InputPath:  tablePath,
			DurationMS: time.Since(started).Milliseconds(),
			StartedAt:  started,
		}
		if runErr != nil {
			rec.Status = "failed"
			rec.Error = runErr.Error()
		} else if result.PassThrough {
			rec.Status = "pass-through"
		} else {
			rec.Status = "completed"
			rec.RowsIn = result.RowsIn
			rec.RowsOut = result.RowsOut
		}
		if err := store.Record(rec); err != nil {
			logger.Warn("failed to record run", map[string]any{"error": err.Error()})
		}
	}

	if runErr != nil {
		if outPath != "" {
			os.Remove(outPath)
		}
		fatal(runErr)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
