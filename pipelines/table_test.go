package pipelines

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = "target\tNAME\tACC\tDESC\ttarget_start\ttarget_end\tquery_start\tquery_end\tscore\tbias\tevalue\tcell_frac\n" +
	"P1\tPiwi\tPF02171.22\tPiwi domain\t10\t80\t1\t70\t50.3\t0.1\t1.2e-12\t0.91\n" +
	"P2\tzf-CCHC\tPF00098.28\t\t5\t25\t2\t22\t12.7\t0.0\t3e-03\t0.80\n"

func TestParseTable(t *testing.T) {
	table, err := ParseTable(strings.NewReader(sampleTable))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 12, len(table.Header))

	r := table.Rows[0]
	assert.Equal(t, "P1", r.Target)
	assert.Equal(t, "Piwi", r.Name)
	assert.Equal(t, "PF02171.22", r.Accession)
	assert.Equal(t, "Piwi domain", r.Description)
	assert.Equal(t, "50.3", r.Score)
	assert.InDelta(t, 50.3, r.ScoreValue(), 1e-9)
	assert.InDelta(t, 1.2e-12, r.EvalueValue(), 1e-20)

	start, end, ok := r.Coords()
	require.True(t, ok)
	assert.Equal(t, 10, start)
	assert.Equal(t, 80, end)
}

func TestParseTable_EmptyInput(t *testing.T) {
	_, err := ParseTable(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseTable_ShortRowPadded(t *testing.T) {
	table, err := ParseTable(strings.NewReader("target\tNAME\tACC\nP1\tPiwi\n"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0].Accession)
}

func TestParseTable_UnknownColumnsPreserved(t *testing.T) {
	in := "target\tNAME\tmystery\nP1\tPiwi\tkept\n"
	table, err := ParseTable(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "kept", table.Rows[0].Extra["mystery"])

	var buf bytes.Buffer
	require.NoError(t, table.Write(&buf, WriteOptions{}))
	assert.Equal(t, in, buf.String())
}

func TestWrite_RoundTripUnmodified(t *testing.T) {
	table, err := ParseTable(strings.NewReader(sampleTable))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, table.Write(&buf, WriteOptions{}))
	assert.Equal(t, sampleTable, buf.String())
}

func TestWrite_DropsNameAndAppendsAnnotationColumns(t *testing.T) {
	table, err := ParseTable(strings.NewReader(sampleTable))
	require.NoError(t, err)
	table.Rows[0].CrossRefs = []string{"IPR003100", "IPR036085"}
	table.Rows[0].CrossRefDescs = []string{"PAZ domain"}
	table.Rows[0].Ontology = []string{"GO:0003676"}

	var buf bytes.Buffer
	require.NoError(t, table.Write(&buf, WriteOptions{DropName: true, CrossRefs: true, Ontology: true}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	header := strings.Split(lines[0], "\t")
	assert.NotContains(t, header, ColName)
	assert.Equal(t, []string{ColCrossRefs, ColCrossRefDescs, ColOntology}, header[len(header)-3:])

	first := strings.Split(lines[1], "\t")
	assert.Equal(t, "IPR003100,IPR036085", first[len(first)-3])
	assert.Equal(t, "PAZ domain", first[len(first)-2])
	assert.Equal(t, "GO:0003676", first[len(first)-1])

	second := strings.Split(lines[2], "\t")
	assert.Equal(t, "", second[len(second)-1])
}

func TestOpenInput_Gzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hits.tsv.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(sampleTable))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestOpenOutput_Gzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tsv.gz")

	w, err := OpenOutput(path)
	require.NoError(t, err)
	_, err = w.Write([]byte(sampleTable))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rc, err := OpenInput(path)
	require.NoError(t, err)
	defer rc.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleTable, buf.String())
}
