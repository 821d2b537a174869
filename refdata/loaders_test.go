package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tmpFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSignatureMap(t *testing.T) {
	path := tmpFile(t, "signature2interpro.tsv",
		"PFAM\tPF02171\tIPR003100\n"+
			"PFAM\tPF02171\tIPR036085\n"+
			"SSF\tSSF101690\tIPR036085\n"+
			"short line\n"+
			"\n")

	m, err := LoadSignatureMap(path)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []string{"IPR003100", "IPR036085"},
		m[SignatureKey{DB: "PFAM", Signature: "PF02171"}])
	assert.Equal(t, []string{"IPR036085"},
		m[SignatureKey{DB: "SSF", Signature: "SSF101690"}])
}

func TestLoadDescriptions(t *testing.T) {
	path := tmpFile(t, "interpro2desc.tsv",
		"IPR003100\tPAZ domain\n"+
			"IPR036085\t PIWI domain superfamily \n"+
			"no-tab-line\n")

	m, err := LoadDescriptions(path)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, "PAZ domain", m["IPR003100"])
	assert.Equal(t, "PIWI domain superfamily", m["IPR036085"])
}

func TestLoadOntologyMap(t *testing.T) {
	path := tmpFile(t, "interpro2go",
		"!version: 2026/01/01\n"+
			"InterPro:IPR003100 PAZ domain > GO:nucleic acid binding ; GO:0003676\n"+
			"InterPro:IPR003100 PAZ domain > GO:RNA binding ; GO:0003723\n"+
			"InterPro:IPR999999 Broken entry without separator\n"+
			"InterPro:IPR888888 No term id > GO:something ; not-a-term\n")

	m, err := LoadOntologyMap(path)
	require.NoError(t, err)
	assert.Len(t, m, 1)
	assert.Equal(t, []string{"GO:0003676", "GO:0003723"}, m["IPR003100"])
}

func TestLoadThresholds(t *testing.T) {
	path := tmpFile(t, "pfam_a.ga",
		"Piwi\t25.0\t25.0\n"+
			"PAZ\t21.40\t21.10\n"+
			"Broken\tnot-a-number\t9.0\n"+
			"TooFew\t1.0\n")

	m, err := LoadThresholds(path)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, Threshold{Seq: 25, Dom: 25}, m["Piwi"])
	assert.Equal(t, Threshold{Seq: 21.4, Dom: 21.1}, m["PAZ"])
}

func TestLoadClans(t *testing.T) {
	path := tmpFile(t, "pfam_clans.tsv",
		"Piwi\tCL0219\textra\tcolumns\n"+
			"PAZ\tCL0638\n"+
			"NoClan\t\n")

	m, err := LoadClans(path)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, "CL0219", m["Piwi"])
	assert.Equal(t, "CL0638", m["PAZ"])
}

func TestLoadModelMap(t *testing.T) {
	path := tmpFile(t, "model2family.tsv",
		"1o7iB00\tG3DSA:1.10.8.10\n"+
			"2xyzA01\tG3DSA:3.40.50.300\n"+
			"dangling\n")

	m, err := LoadModelMap(path)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, "G3DSA:1.10.8.10", m["1o7iB00"])
}

func TestLoadFamilyNames_PicksLatestVersion(t *testing.T) {
	dir := t.TempDir()
	old := "PTHR10003\tOLD NAME\n"
	latest := "PTHR10003\tTRANSCRIPTION FACTOR\n" +
		"PTHR10003:SF1\tSUBFAMILY ENTRY\n" +
		"PTHR10007\tFAMILY NOT NAMED\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "PANTHER17.0_HMM_classifications"), []byte(old), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "PANTHER19.0_HMM_classifications"), []byte(latest), 0o644))

	m, err := LoadFamilyNames(filepath.Join(dir, "PANTHER*_HMM_classifications"))
	require.NoError(t, err)
	assert.Len(t, m, 1)
	assert.Equal(t, "TRANSCRIPTION FACTOR", m["PTHR10003"])
}

func TestLoadFamilyNames_NoMatchIsEmpty(t *testing.T) {
	m, err := LoadFamilyNames(filepath.Join(t.TempDir(), "PANTHER*_HMM_classifications"))
	require.NoError(t, err)
	assert.Empty(t, m)
}
