package chromsizes_test

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/pausetools/chromsizes"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sizesData = "chr1\t230218\nchr2\t813184\nchrM\t85779\n"

func TestRead(t *testing.T) {
	sizes, err := chromsizes.Read(strings.NewReader(sizesData))
	require.NoError(t, err)
	expect.EQ(t, sizes.Names(), []string{"chr1", "chr2", "chrM"})
	expect.EQ(t, sizes.NumChromosomes(), 3)
	for _, tt := range []struct {
		name string
		want int64
	}{
		{"chr1", 230218},
		{"chr2", 813184},
		{"chrM", 85779},
	} {
		got, err := sizes.Lookup(tt.name)
		expect.NoError(t, err)
		expect.EQ(t, got, tt.want)
	}
}

func TestReadExtraColumns(t *testing.T) {
	// A .fai index carries offsets and line widths after the length.
	sizes, err := chromsizes.Read(strings.NewReader("seq1\t12\t6\t5\t6\nseq2\t8\t44\t4\t5\n"))
	require.NoError(t, err)
	n, ok := sizes.Len("seq2")
	expect.True(t, ok)
	expect.EQ(t, n, int64(8))
}

func TestReadDuplicateLastWins(t *testing.T) {
	sizes, err := chromsizes.Read(strings.NewReader("chr1\t10\nchr2\t20\nchr1\t30\n"))
	require.NoError(t, err)
	n, err := sizes.Lookup("chr1")
	require.NoError(t, err)
	expect.EQ(t, n, int64(30))
	expect.EQ(t, sizes.Names(), []string{"chr1", "chr2"})
}

func TestReadMalformed(t *testing.T) {
	for _, data := range []string{
		"chr1\n",
		"chr1\t10\nchr2 20\n",
		"chr1\tten\n",
		"chr1\t-1\n",
		"chr1\t10\n\nchr2\t20\n",
	} {
		_, err := chromsizes.Read(strings.NewReader(data))
		assert.Error(t, err, "data: %q", data)
		assert.True(t, errors.Is(errors.Invalid, err), "data: %q, err: %v", data, err)
	}
}

func TestLookupUnknown(t *testing.T) {
	sizes, err := chromsizes.Read(strings.NewReader(sizesData))
	require.NoError(t, err)
	_, err = sizes.Lookup("chrX")
	require.Error(t, err)
	expect.True(t, errors.Is(errors.NotExist, err))
	_, ok := sizes.Len("chrX")
	expect.False(t, ok)
}

func TestReadPathIdempotent(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "sizes.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte(sizesData), 0644))

	ctx := vcontext.Background()
	first, err := chromsizes.ReadPath(ctx, path)
	require.NoError(t, err)
	second, err := chromsizes.ReadPath(ctx, path)
	require.NoError(t, err)
	expect.EQ(t, first.Names(), second.Names())
	for _, name := range first.Names() {
		a, _ := first.Len(name)
		b, _ := second.Len(name)
		expect.EQ(t, a, b)
	}
}

func TestReadPathGzip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(sizesData))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	path := filepath.Join(tempDir, "sizes.txt.gz")
	require.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0644))

	sizes, err := chromsizes.ReadPath(vcontext.Background(), path)
	require.NoError(t, err)
	n, err := sizes.Lookup("chrM")
	require.NoError(t, err)
	expect.EQ(t, n, int64(85779))
}

func TestWrite(t *testing.T) {
	sizes, err := chromsizes.Read(strings.NewReader(sizesData))
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, chromsizes.Write(&out, sizes))
	expect.EQ(t, out.String(), sizesData)
}

func TestFromSAMHeader(t *testing.T) {
	chr1, err := sam.NewReference("chr1", "", "", 10000, nil, nil)
	require.NoError(t, err)
	chr2, err := sam.NewReference("chr2", "", "", 2500, nil, nil)
	require.NoError(t, err)
	header, err := sam.NewHeader(nil, []*sam.Reference{chr1, chr2})
	require.NoError(t, err)

	sizes := chromsizes.FromSAMHeader(header)
	expect.EQ(t, sizes.Names(), []string{"chr1", "chr2"})
	n, err := sizes.Lookup("chr2")
	require.NoError(t, err)
	expect.EQ(t, n, int64(2500))
}
