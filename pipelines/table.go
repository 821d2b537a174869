package pipelines

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single table line; description fields can get long
// but never anywhere near this.
const maxLineSize = 4 * 1024 * 1024

func joinList(vals []string) string {
	return strings.Join(vals, ",")
}

// OpenInput opens a table file for reading, decompressing transparently when
// the path ends in .gz. The caller must close the returned reader.
func OpenInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open gzip input %s: %w", path, err)
	}
	return &gzipReadCloser{zr: zr, f: f}, nil
}

type gzipReadCloser struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipReadCloser) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

// OpenOutput creates an output file, compressing when the path ends in .gz.
// The caller must close the returned writer.
func OpenOutput(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	return &gzipWriteCloser{zw: gzip.NewWriter(f), f: f}, nil
}

type gzipWriteCloser struct {
	zw *gzip.Writer
	f  *os.File
}

func (g *gzipWriteCloser) Write(p []byte) (int, error) { return g.zw.Write(p) }

func (g *gzipWriteCloser) Close() error {
	zerr := g.zw.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

// ReadTable reads a tab-separated hit table with a header row.
func ReadTable(path string) (*Table, error) {
	rc, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, err := ParseTable(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse table %s: %w", path, err)
	}
	return t, nil
}

// ParseTable parses a tab-separated table with a header row into an ordered
// row collection. Rows shorter than the header are padded with empty fields;
// trailing fields beyond the header are ignored. Tab splitting is used
// directly (not a quoting CSV reader) because description fields may contain
// literal quote characters that must survive unchanged.
func ParseTable(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("table is empty: missing header row")
	}
	header := strings.Split(sc.Text(), "\t")

	t := &Table{Header: header}
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		row := &HitRow{}
		for i, col := range header {
			if i < len(fields) {
				row.setField(col, fields[i])
			} else {
				row.setField(col, "")
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// WriteOptions selects the column set of a written table.
type WriteOptions struct {
	// DropName removes the internal model-name column; processed output
	// carries the canonical accession as its sole identifier column.
	DropName bool
	// CrossRefs appends the cross-reference id and description columns.
	CrossRefs bool
	// Ontology appends the ontology term column.
	Ontology bool
}

// OutputHeader returns the header of the written table: the input columns in
// order, minus the model-name column when dropped, plus the requested
// annotation columns.
func (t *Table) OutputHeader(opts WriteOptions) []string {
	out := make([]string, 0, len(t.Header)+3)
	seen := make(map[string]bool, len(t.Header))
	for _, col := range t.Header {
		if opts.DropName && col == ColName {
			continue
		}
		out = append(out, col)
		seen[col] = true
	}
	if opts.CrossRefs && !seen[ColCrossRefs] {
		out = append(out, ColCrossRefs)
	}
	if opts.CrossRefs && !seen[ColCrossRefDescs] {
		out = append(out, ColCrossRefDescs)
	}
	if opts.Ontology && !seen[ColOntology] {
		out = append(out, ColOntology)
	}
	return out
}

// Write writes the table as tab-separated text with a header row.
func (t *Table) Write(w io.Writer, opts WriteOptions) error {
	bw := bufio.NewWriter(w)
	header := t.OutputHeader(opts)

	if _, err := bw.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
		return err
	}
	fields := make([]string, len(header))
	for _, row := range t.Rows {
		for i, col := range header {
			fields[i] = row.field(col)
		}
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
