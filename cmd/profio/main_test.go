package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arloliu/profio/catalog"
	"github.com/arloliu/profio/checksum"
	"github.com/arloliu/profio/errs"
	"github.com/arloliu/profio/profile"
)

type fixture struct {
	dir     string
	tab     string
	json    string
	bin     string
	profile map[string][]float32
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()

	f := fixture{
		dir:  dir,
		tab:  filepath.Join(dir, "genes.tab"),
		json: filepath.Join(dir, "genes.json"),
		bin:  filepath.Join(dir, "coverage.bin"),
		profile: map[string][]float32{
			"a": {1, 2, 3},
			"b": {4, 5, 6, 7, 8},
		},
	}
	require.NoError(t, os.WriteFile(f.tab, []byte("a\t3\nb\t5\n"), 0o600))
	require.NoError(t, os.WriteFile(f.json, []byte(`{"features":[
		{"id":"a","segments":[[0,3]]},
		{"id":"b","segments":[[100,105]]}
	]}`), 0o600))
	require.NoError(t, profile.WriteFile(f.bin, f.profile, profile.WithCatalogFile(f.tab)))

	return f
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := &app{out: &out, logger: zap.NewNop()}
	err := a.command().Run(context.Background(), append([]string{"profio"}, args...))

	return out.String(), err
}

func TestChecksumCmd(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "checksum", "--features", f.tab)
	require.NoError(t, err)
	require.Contains(t, out, "features:     2\n")
	require.Contains(t, out, "total_length: 8\n")
	require.Contains(t, out, "checksum:     0x00340009\n")
	require.Contains(t, out, "a\t0\t3\n")
	require.Contains(t, out, "b\t3\t5\n")
	require.Equal(t, uint32(0x00340009), checksum.Compute([]uint32{3, 5}))

	_, err = run(t, "checksum")
	require.Error(t, err)
}

func TestChecksumCmd_FieldNames(t *testing.T) {
	f := newFixture(t)

	// The default field names do not exist in the fixture document.
	_, err := run(t, "checksum", f.json)
	require.ErrorIs(t, err, errs.ErrInvalidCatalog)

	out, err := run(t, "--name-field", "id", "--coords-field", "segments", "checksum", f.json)
	require.NoError(t, err)
	require.Contains(t, out, "checksum:     0x00340009\n")

	cfgPath := filepath.Join(f.dir, "profio.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("catalog:\n  name_field: id\n  coords_field: segments\n"), 0o600))
	out, err = run(t, "--config", cfgPath, "checksum", f.json)
	require.NoError(t, err)
	require.Contains(t, out, "checksum:     0x00340009\n")
}

func TestInspectCmd(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "inspect", "--catalog", f.tab, f.bin)
	require.NoError(t, err)
	require.Contains(t, out, "version:      3\n")
	require.Contains(t, out, "total_length: 8\n")
	require.Contains(t, out, "checksum:     0x00340009\n")
	require.Contains(t, out, "match=true")

	other := filepath.Join(f.dir, "other.tab")
	require.NoError(t, os.WriteFile(other, []byte("b\t5\na\t3\n"), 0o600))
	out, err = run(t, "inspect", "--catalog", other, f.bin)
	require.NoError(t, err)
	require.Contains(t, out, "match=false")

	_, err = run(t, "inspect", filepath.Join(f.dir, "missing.bin"))
	require.ErrorIs(t, err, errs.ErrPathNotFound)
}

func TestVerifyCmd(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "verify", "--catalog", f.tab, f.bin)
	require.NoError(t, err)
	require.Equal(t, "OK "+f.bin+"\n", out)

	other := filepath.Join(f.dir, "other.tab")
	require.NoError(t, os.WriteFile(other, []byte("b\t5\na\t3\n"), 0o600))
	_, err = run(t, "verify", "--catalog", other, f.bin)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)

	_, err = run(t, "verify", f.bin)
	require.Error(t, err, "catalog flag is required")
}

func TestExportCmd(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(f.dir, "coverage.csv")

	_, err := run(t, "export", "--catalog", f.tab, f.bin, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "a,3,1.00000 2.00000 3.00000\nb,5,4.00000 5.00000 6.00000 7.00000 8.00000\n", string(data))

	_, err = run(t, "export", "--catalog", f.tab, f.bin, filepath.Join(f.dir, "coverage.bin.lz4"))
	require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
}

func TestConvertCmd(t *testing.T) {
	f := newFixture(t)

	lz4Path := filepath.Join(f.dir, "coverage.bin.lz4")
	_, err := run(t, "convert", "--catalog", f.tab, f.bin, lz4Path)
	require.NoError(t, err)

	set, err := profile.ReadFile(lz4Path, profile.WithCatalogFile(f.tab))
	require.NoError(t, err)
	require.Equal(t, f.profile, set.ToMap())

	// Re-encode onto a catalog holding only "b".
	subset := filepath.Join(f.dir, "subset.tab")
	require.NoError(t, os.WriteFile(subset, []byte("b\t5\n"), 0o600))
	subsetBin := filepath.Join(f.dir, "subset.bin")
	_, err = run(t, "convert", "--catalog", f.tab, "--to-catalog", subset, lz4Path, subsetBin)
	require.NoError(t, err)

	cat, err := catalog.Load(subset)
	require.NoError(t, err)
	set, err = profile.ReadFile(subsetBin, profile.WithCatalog(cat))
	require.NoError(t, err)
	require.Equal(t, map[string][]float32{"b": {4, 5, 6, 7, 8}}, set.ToMap())

	_, err = run(t, "convert", "--catalog", f.tab, f.bin)
	require.Error(t, err)
}

func TestConvertCmd_SamePath(t *testing.T) {
	f := newFixture(t)
	before, err := os.ReadFile(f.bin)
	require.NoError(t, err)

	alias := filepath.Join(f.dir, ".", filepath.Base(f.bin))
	link := filepath.Join(f.dir, "link.bin")
	require.NoError(t, os.Link(f.bin, link))

	for _, out := range []string{f.bin, alias, link} {
		_, err := run(t, "convert", "--catalog", f.tab, f.bin, out)
		require.ErrorContains(t, err, "output is the input file")
	}

	after, err := os.ReadFile(f.bin)
	require.NoError(t, err)
	require.Equal(t, before, after)
}
