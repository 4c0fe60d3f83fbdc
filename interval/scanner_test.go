package interval

import (
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, data string) ([]Scored, error) {
	var ivs []Scored
	s := NewScanner(strings.NewReader(data))
	for s.Scan() {
		if s.Header() {
			continue
		}
		iv, err := s.Scored()
		if err != nil {
			return ivs, err
		}
		ivs = append(ivs, iv)
	}
	require.NoError(t, s.Err())
	return ivs, nil
}

func TestGetTokens(t *testing.T) {
	var tokens [5][]byte
	n := getTokens(tokens[:], []byte("chr1\t10  20\tname"))
	expect.EQ(t, n, 4)
	expect.EQ(t, string(tokens[0]), "chr1")
	expect.EQ(t, string(tokens[2]), "20")
	expect.EQ(t, string(tokens[3]), "name")

	n = getTokens(tokens[:3], []byte("a b c d e f"))
	expect.EQ(t, n, 3)
	n = getTokens(tokens[:], []byte("   "))
	expect.EQ(t, n, 0)
}

func TestIsHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"browser position chr7:127471196-127495720", true},
		{"browser", true},
		{`track name="my track"`, true},
		{"track", true},
		{"#comment", true},
		{"trackless\t1\t2\t3", false},
		{"chr1\t1\t2\t3", false},
		{"", false},
	}
	for _, tt := range tests {
		expect.EQ(t, IsHeader([]byte(tt.line)), tt.want, "line: %q", tt.line)
	}
}

func TestScored(t *testing.T) {
	data := "browser position chr7:127471196-127495720\n" +
		"track name=\"my track\"\n" +
		"#comment\n" +
		"chr1\t1\t3\t10\n" +
		"\n" +
		"chr1\t5\t8\tpeak1\t0.25\n" +
		"chr2 0 4 peak2 1.5e2 +\n"
	ivs, err := scanAll(t, data)
	require.NoError(t, err)
	expect.EQ(t, ivs, []Scored{
		{"chr1", 1, 3, 10},
		{"chr1", 5, 8, 0.25},
		{"chr2", 0, 4, 150},
	})
}

func TestScoredMalformed(t *testing.T) {
	for _, data := range []string{
		"chr1\t1\t3\n",
		"chr1\tx\t3\t1\n",
		"chr1\t1\ty\t1\n",
		"chr1\t1\t3\tscore\n",
		"chr1\t-1\t3\t1\n",
		"chr1\t5\t3\t1\n",
	} {
		_, err := scanAll(t, data)
		assert.Error(t, err, "data: %q", data)
		assert.True(t, errors.Is(errors.Invalid, err), "data: %q err: %v", data, err)
	}
}

func TestScoredLineNumber(t *testing.T) {
	_, err := scanAll(t, "#header\nchr1\t0\t1\t2\n\nchr1\t1\t2\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
}
