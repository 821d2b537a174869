package pipelines

import (
	"fmt"
	"io"
	"time"

	"github.com/profscan/profscan-go/refdata"
	"github.com/profscan/profscan-go/utils"
)

// Options configures one engine run over one input table.
type Options struct {
	TablePath string
	Database  string
	DataDir   string
	CrossRefs bool // attach the cross-reference id and description columns
	Ontology  bool // attach the ontology term column
	Config    *utils.Config
	Logger    *utils.Logger
}

// RunResult summarizes a completed run.
type RunResult struct {
	Database    string
	XMLKey      string
	RowsIn      int
	RowsOut     int
	PassThrough bool
	Duration    time.Duration
}

// Run executes the post-processing pipeline for one input table and writes
// the result to out. All reference data is loaded and the input fully parsed
// before the first output byte, so a failed run writes no partial output.
func Run(opts Options, out io.Writer) (*RunResult, error) {
	start := time.Now()
	cfg := opts.Config
	if cfg == nil {
		cfg = utils.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger()
	}
	log := logger.WithComponent("engine")

	desc, registered := Lookup(opts.Database)
	if !registered {
		log.Debug("no pipeline registered, using pass-through", map[string]any{
			"database": opts.Database,
			"xml_key":  desc.XMLKey,
		})
	}

	// A database with no stages and no annotation request reproduces the
	// input byte for byte.
	if len(desc.Stages) == 0 && !opts.CrossRefs && !opts.Ontology {
		rc, err := OpenInput(opts.TablePath)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		if _, err := io.Copy(out, rc); err != nil {
			return nil, fmt.Errorf("failed to copy table: %w", err)
		}
		return &RunResult{
			Database:    desc.Key,
			XMLKey:      desc.XMLKey,
			PassThrough: true,
			Duration:    time.Since(start),
		}, nil
	}

	needs := desc.Needs
	if opts.CrossRefs || opts.Ontology {
		needs.Signatures = "signature2interpro.tsv"
	}
	if opts.CrossRefs {
		needs.CrossRefDescs = "interpro2desc.tsv"
	}
	if opts.Ontology {
		needs.Ontology = "interpro2go"
	}

	ref, err := refdata.Load(opts.DataDir, needs)
	if err != nil {
		return nil, err
	}

	table, err := ReadTable(opts.TablePath)
	if err != nil {
		return nil, err
	}
	rowsIn := len(table.Rows)

	env := &Env{Ref: ref, Cfg: cfg.Database(desc.Key)}
	rows := table.Rows
	for _, st := range desc.Stages {
		before := len(rows)
		rows = st.Run(env, rows)
		log.Debug("stage applied", map[string]any{
			"stage":       st.Name,
			"rows_before": before,
			"rows_after":  len(rows),
		})
	}

	if opts.CrossRefs || opts.Ontology {
		Annotate(rows, desc.XMLKey, ref, opts.Ontology)
	}

	table.Rows = rows
	err = table.Write(out, WriteOptions{
		DropName:  true,
		CrossRefs: opts.CrossRefs,
		Ontology:  opts.Ontology,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write table: %w", err)
	}

	log.Info("run completed", map[string]any{
		"database": desc.Key,
		"rows_in":  rowsIn,
		"rows_out": len(rows),
	})
	return &RunResult{
		Database: desc.Key,
		XMLKey:   desc.XMLKey,
		RowsIn:   rowsIn,
		RowsOut:  len(rows),
		Duration: time.Since(start),
	}, nil
}
