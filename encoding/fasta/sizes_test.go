package fasta_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/pausetools/encoding/fasta"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const fastaData = ">seq1\n" + "ACGTA\nCGTAC\nGT\n" + ">seq2 A viral sequence\n" + "ACGT\r\n" + "ACGT\n" + ">seq3\n"

func TestWriteSizes(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, fasta.WriteSizes(&out, strings.NewReader(fastaData)))
	expect.EQ(t, out.String(), "seq1\t12\nseq2\t8\nseq3\t0\n")

	// No trailing newline.
	out.Reset()
	assert.NoError(t, fasta.WriteSizes(&out, strings.NewReader(">chrM\nAC\n\nGT")))
	expect.EQ(t, out.String(), "chrM\t4\n")
}

func TestWriteSizesMalformed(t *testing.T) {
	for _, data := range []string{
		"",
		"ACGT\n>seq1\nAC\n",
		">\nACGT\n",
	} {
		var out bytes.Buffer
		err := fasta.WriteSizes(&out, strings.NewReader(data))
		expect.True(t, errors.Is(errors.Invalid, err), "data: %q err: %v", data, err)
	}
}
