package interval

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	gunsafe "github.com/grailbio/base/unsafe"
)

// maxLineLen bounds the length of a single BED line.
const maxLineLen = 16 << 20

// Scored is a BED interval carrying a score. Coordinates are 0-based and
// half-open.
type Scored struct {
	Chrom      string
	Start, End int64
	Score      float64
}

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

var (
	browserPrefix = []byte("browser")
	trackPrefix   = []byte("track")
)

// IsHeader reports whether line is a "browser" or "track" declaration, or a
// '#' comment.
func IsHeader(line []byte) bool {
	if len(line) > 0 && line[0] == '#' {
		return true
	}
	for _, prefix := range [][]byte{browserPrefix, trackPrefix} {
		if bytes.HasPrefix(line, prefix) && (len(line) == len(prefix) || line[len(prefix)] == ' ') {
			return true
		}
	}
	return false
}

// Scanner reads a BED stream line by line. Empty lines are skipped; header
// lines are returned and flagged by Header.
//
// Example:
//   s := interval.NewScanner(r)
//   for s.Scan() {
//     if s.Header() {
//       continue
//     }
//     iv, err := s.Scored()
//     ...
//   }
//   if err := s.Err(); err != nil { ... }
type Scanner struct {
	scanner *bufio.Scanner
	lineno  int
	line    []byte
	tokens  [5][]byte
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineLen)
	return &Scanner{scanner: scanner}
}

// Scan advances to the next non-empty line.
func (s *Scanner) Scan() bool {
	for s.scanner.Scan() {
		s.lineno++
		s.line = s.scanner.Bytes()
		if len(bytes.TrimSpace(s.line)) > 0 {
			return true
		}
	}
	return false
}

// Bytes returns the current line. The slice is valid until the next Scan.
func (s *Scanner) Bytes() []byte { return s.line }

// LineNumber returns the 1-based number of the current line.
func (s *Scanner) LineNumber() int { return s.lineno }

// Header reports whether the current line is a header or comment line.
func (s *Scanner) Header() bool { return IsHeader(s.line) }

// Err returns the first read error.
func (s *Scanner) Err() error { return s.scanner.Err() }

// Scored parses the current line as a scored interval. With exactly four
// columns the score is the 4th column; otherwise the 4th column is the
// feature name and the score is the 5th.
func (s *Scanner) Scored() (Scored, error) {
	nToken := getTokens(s.tokens[:], s.line)
	if nToken < 4 {
		return Scored{}, s.malformed(nil, "does not contain a score")
	}
	var (
		iv  Scored
		err error
	)
	iv.Chrom = string(s.tokens[0])
	if iv.Start, err = strconv.ParseInt(gunsafe.BytesToString(s.tokens[1]), 10, 64); err != nil {
		return Scored{}, s.malformed(err, "bad start")
	}
	if iv.End, err = strconv.ParseInt(gunsafe.BytesToString(s.tokens[2]), 10, 64); err != nil {
		return Scored{}, s.malformed(err, "bad end")
	}
	scoreCol := 4
	if nToken == 4 {
		scoreCol = 3
	}
	if iv.Score, err = strconv.ParseFloat(gunsafe.BytesToString(s.tokens[scoreCol]), 64); err != nil {
		return Scored{}, s.malformed(err, "bad score")
	}
	if iv.Start < 0 || iv.End < iv.Start {
		return Scored{}, s.malformed(nil, fmt.Sprintf("invalid interval [%d, %d)", iv.Start, iv.End))
	}
	return iv, nil
}

func (s *Scanner) malformed(err error, msg string) error {
	msg = fmt.Sprintf("bed: line %d: %s: %q", s.lineno, msg, s.line)
	if err != nil {
		return errors.E(errors.Invalid, err, msg)
	}
	return errors.E(errors.Invalid, msg)
}
