package pipelines

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_PassThroughIsByteExact(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "hits.tsv", sampleTable)

	var out bytes.Buffer
	res, err := Run(Options{
		TablePath: in,
		Database:  "mobidblite", // no pipeline registered
		DataDir:   dir,
	}, &out)
	require.NoError(t, err)

	assert.True(t, res.PassThrough)
	assert.Equal(t, "MOBIDBLITE", res.XMLKey)
	assert.Equal(t, sampleTable, out.String())
}

func TestRun_NoStagesWithAnnotationIsNotPassThrough(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "hits.tsv", sampleTable)
	writeFile(t, dir, "signature2interpro.tsv", "ANTIFAM\tANF00001\tIPR000001\n")
	writeFile(t, dir, "interpro2desc.tsv", "IPR000001\tSome family\n")

	var out bytes.Buffer
	res, err := Run(Options{
		TablePath: in,
		Database:  "antifam",
		DataDir:   dir,
		CrossRefs: true,
	}, &out)
	require.NoError(t, err)

	assert.False(t, res.PassThrough)
	header := strings.SplitN(out.String(), "\n", 2)[0]
	assert.NotContains(t, header, "\tNAME\t")
	assert.True(t, strings.HasSuffix(header, "\tInterPro\tIPR_desc"))
}

func TestRun_PfamEndToEnd(t *testing.T) {
	dir := t.TempDir()

	input := "target\tNAME\tACC\tDESC\ttarget_start\ttarget_end\tquery_start\tquery_end\tscore\tbias\tevalue\tcell_frac\n" +
		"P1\tPiwi\tPF02171.22\tPiwi domain\t10\t80\t1\t70\t50.3\t0.1\t1.2e-12\t0.91\n" +
		"P1\tPAZ\tPF02170.30\tPAZ domain\t200\t260\t1\t60\t8.0\t0.0\t2e-01\t0.55\n"
	in := writeFile(t, dir, "hits.tsv", input)

	writeFile(t, dir, "pfam/pfam_a.ga", "Piwi\t25.0\t25.0\nPAZ\t21.0\t21.0\n")
	writeFile(t, dir, "pfam/pfam_clans.tsv", "Piwi\tCL0219\n")
	writeFile(t, dir, "signature2interpro.tsv",
		"PFAM\tPF02171\tIPR003100\nPFAM\tPF02171\tIPR036085\n")
	writeFile(t, dir, "interpro2desc.tsv", "IPR003100\tPiwi domain\n")
	writeFile(t, dir, "interpro2go",
		"InterPro:IPR003100 Piwi domain > GO:nucleic acid binding ; GO:0003676\n")

	var out bytes.Buffer
	res, err := Run(Options{
		TablePath: in,
		Database:  "pfam",
		DataDir:   dir,
		CrossRefs: true,
		Ontology:  true,
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, res.RowsIn)
	assert.Equal(t, 1, res.RowsOut) // PAZ misses its 21.0 threshold

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"target\tACC\tDESC\ttarget_start\ttarget_end\tquery_start\tquery_end\tscore\tbias\tevalue\tcell_frac\tInterPro\tIPR_desc\tGO",
		lines[0])

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 14)
	assert.Equal(t, "PF02171", fields[1])
	assert.Equal(t, "50.3", fields[8]) // raw score preserved
	assert.Equal(t, "IPR003100,IPR036085", fields[11])
	assert.Equal(t, "Piwi domain", fields[12])
	assert.Equal(t, "GO:0003676", fields[13])
}

func TestRun_MissingRequiredAnnotationFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "hits.tsv", sampleTable)
	writeFile(t, dir, "pfam/pfam_a.ga", "Piwi\t25.0\t25.0\n")

	var out bytes.Buffer
	_, err := Run(Options{
		TablePath: in,
		Database:  "pfam",
		DataDir:   dir,
		CrossRefs: true,
	}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required reference file missing")
	assert.Zero(t, out.Len(), "failed run must not write output")
}

func TestRun_MissingFilterTableIsPermissive(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "hits.tsv", sampleTable)
	// No pfam_a.ga and no clan table: every row passes the filters.
	writeFile(t, dir, "signature2interpro.tsv", "PFAM\tPF02171\tIPR003100\n")
	writeFile(t, dir, "interpro2desc.tsv", "IPR003100\tPiwi domain\n")

	var out bytes.Buffer
	res, err := Run(Options{
		TablePath: in,
		Database:  "pfam",
		DataDir:   dir,
		CrossRefs: true,
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, res.RowsIn, res.RowsOut)
}

func TestRun_GzipInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hits.tsv.gz")
	wc, err := OpenOutput(path)
	require.NoError(t, err)
	_, err = wc.Write([]byte(sampleTable))
	require.NoError(t, err)
	require.NoError(t, wc.Close())

	var out bytes.Buffer
	res, err := Run(Options{
		TablePath: path,
		Database:  "antifam",
		DataDir:   dir,
	}, &out)
	require.NoError(t, err)
	assert.True(t, res.PassThrough)
	assert.Equal(t, sampleTable, out.String(), "pass-through decodes compressed input")
}
