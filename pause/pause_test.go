package pause

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, data string) []Pause {
	var pauses []Pause
	r := NewReader(strings.NewReader(data))
	for {
		p, err := r.Read()
		if err == io.EOF {
			return pauses
		}
		require.NoError(t, err)
		pauses = append(pauses, p)
	}
}

func TestRead(t *testing.T) {
	data := "comment before the first record\n" +
		">YAL001C_chrI_-12_1.5_3.25_0.75\n" +
		"ACGT\n" +
		"TTGA\r\n" +
		">YAL002W_chr_un_4_40_2_1\n" +
		">YAL003W_chrII_0_0_0_0\n" +
		"A\n"
	expect.EQ(t, readAll(t, data), []Pause{
		{"YAL001C", "chrI", -12, 1.5, 3.25, 0.75, "ACGTTTGA"},
		{"YAL002W", "chr_un", 4, 40, 2, 1, ""},
		{"YAL003W", "chrII", 0, 0, 0, 0, "A"},
	})
	expect.EQ(t, len(readAll(t, "")), 0)
	expect.EQ(t, len(readAll(t, "no records\n")), 0)
}

func TestReadMalformed(t *testing.T) {
	for _, data := range []string{
		">gene_chr1_1_2_3\n",
		">gene_chr1_x_1_2_3\n",
		">gene_chr1_1_x_2_3\n",
		">gene_chr1_1_1_x_3\n",
		">gene_chr1_1_1_2_x\n",
		">gene_chr1_1_1_2_3\nAC\n>bad\n",
	} {
		r := NewReader(strings.NewReader(data))
		var err error
		for err == nil {
			_, err = r.Read()
		}
		assert.True(t, errors.Is(errors.Invalid, err), "data: %q err: %v", data, err)
	}
}

func TestReadMalformedLineNumber(t *testing.T) {
	r := NewReader(strings.NewReader(">a_c_1_1_1_1\nAC\nGT\n>b_c_1_1_1\n"))
	_, err := r.Read()
	require.NoError(t, err)
	_, err = r.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		v       float64
		maxFrac int
		want    string
	}{
		{0, 5, "0"},
		{3, 5, "3"},
		{-12, 5, "-12"},
		{1.5, 5, "1.5"},
		{0.123456, 5, "0.12346"},
		{0.1234567890123, 10, "0.123456789"},
		{1e-6, 5, "0"},
		{2.000001, 5, "2"},
		{1e20, 5, "100000000000000000000"},
		{0.1, 16, "0.1"},
	}
	for _, tt := range tests {
		expect.EQ(t, FormatDecimal(tt.v, tt.maxFrac), tt.want, "v: %v", tt.v)
	}
}

func TestWrite(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	require.NoError(t, w.Write(Pause{"YAL001C", "chrI", -12, 1.123456, 3.25, 0.1, strings.Repeat("A", 81)}))
	require.NoError(t, w.Write(Pause{"YAL002W", "chrI", 4, 2, 1.0 / 3, 1, ""}))
	require.NoError(t, w.Flush())
	expect.EQ(t, out.String(),
		">YAL001C_chrI_-12_1.12346_3.25_0.1\n"+
			strings.Repeat("A", 80)+"\n"+
			"A\n"+
			">YAL002W_chrI_4_2_0.3333333333333333_1\n")
}

func randomPause(r *rand.Rand) Pause {
	const bases = "ACGT"
	seq := make([]byte, r.Intn(200))
	for i := range seq {
		seq[i] = bases[r.Intn(len(bases))]
	}
	return Pause{
		Name:              "gene" + string('A'+rune(r.Intn(26))),
		Chrom:             []string{"chrI", "chrII", "2-micron", "chr_un"}[r.Intn(4)],
		Position:          int64(r.Intn(1000) - 500),
		NormalizedReads:   r.Float64() * 5,
		FoldsAboveAverage: r.Float64() * 20,
		BeginningReads:    r.Float64() * 4,
		Sequence:          string(seq),
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	var want []Pause
	var out bytes.Buffer
	w := NewWriter(&out)
	for i := 0; i < 500; i++ {
		p := randomPause(r)
		want = append(want, p)
		require.NoError(t, w.Write(p))
	}
	require.NoError(t, w.Flush())

	got := readAll(t, out.String())
	require.Equal(t, len(want), len(got))
	for i := range want {
		expect.EQ(t, got[i].Name, want[i].Name)
		expect.EQ(t, got[i].Chrom, want[i].Chrom)
		expect.EQ(t, got[i].Position, want[i].Position)
		expect.EQ(t, got[i].Sequence, want[i].Sequence)
		assert.InDelta(t, want[i].NormalizedReads, got[i].NormalizedReads, 1e-5)
		assert.InDelta(t, want[i].FoldsAboveAverage, got[i].FoldsAboveAverage, 1e-9)
		assert.InDelta(t, want[i].BeginningReads, got[i].BeginningReads, 1e-9)
	}
}
