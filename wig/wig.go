// Package wig reads UCSC wiggle (WIG) files.  Both variableStep and
// fixedStep sections are supported; bedGraph sections are not.  Positions in
// a WIG file are 1-based; Point positions are 0-based.
//
// See https://genome.ucsc.edu/goldenPath/help/wiggle.html.
package wig

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/pausetools/interval"
)

// Point is the score of a single base.
type Point struct {
	Chrom string
	// Pos is 0-based.
	Pos   int64
	Score float64
}

type stepMode int

const (
	noStep stepMode = iota
	variableStep
	fixedStep
)

// Scanner iterates over the declarations and scored bases of a WIG stream.
// Each call to Scan stops either at a section declaration or at one base;
// a data line whose span covers n bases yields n consecutive points.
type Scanner struct {
	scanner *bufio.Scanner
	lineno  int
	err     error

	mode  stepMode
	chrom string
	span  int64
	step  int64
	// next is the 0-based position of the next fixedStep value.
	next int64

	point     Point
	isPoint   bool
	remaining int64
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{scanner: bufio.NewScanner(r)}
}

// Scan advances to the next declaration or point. It returns false at the
// end of the stream or on error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if s.remaining > 0 {
		s.point.Pos++
		s.remaining--
		s.isPoint = true
		return true
	}
	for s.scanner.Scan() {
		s.lineno++
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" || interval.IsHeader([]byte(line)) {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "variableStep", "fixedStep":
			s.err = s.declare(fields)
			s.isPoint = false
		default:
			s.err = s.data(fields)
			s.isPoint = true
		}
		return s.err == nil
	}
	s.err = s.scanner.Err()
	return false
}

// Chrom returns the chromosome of the current section.
func (s *Scanner) Chrom() string { return s.chrom }

// Point returns the current point. The boolean is false when Scan stopped
// at a section declaration.
func (s *Scanner) Point() (Point, bool) { return s.point, s.isPoint }

// Err returns the first error encountered.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) malformed(err error, msg string) error {
	msg = fmt.Sprintf("wig: line %d: %s", s.lineno, msg)
	if err != nil {
		return errors.E(errors.Invalid, err, msg)
	}
	return errors.E(errors.Invalid, msg)
}

func (s *Scanner) declare(fields []string) error {
	s.mode = variableStep
	if fields[0] == "fixedStep" {
		s.mode = fixedStep
	}
	s.chrom = ""
	s.span, s.step = 1, 1
	start := int64(-1)
	for _, field := range fields[1:] {
		eq := strings.IndexByte(field, '=')
		if eq < 0 {
			return s.malformed(nil, fmt.Sprintf("bad declaration field %q", field))
		}
		key, value := field[:eq], field[eq+1:]
		if key == "chrom" {
			s.chrom = value
			continue
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return s.malformed(err, fmt.Sprintf("bad declaration field %q", field))
		}
		switch key {
		case "span":
			s.span = n
		case "step":
			s.step = n
		case "start":
			start = n
		}
	}
	if s.chrom == "" {
		return s.malformed(nil, fields[0]+" without chrom")
	}
	if s.span < 1 || s.step < 1 {
		return s.malformed(nil, "span and step must be positive")
	}
	if s.mode == fixedStep {
		if start < 1 {
			return s.malformed(nil, "fixedStep requires a 1-based start")
		}
		s.next = start - 1
	}
	return nil
}

func (s *Scanner) data(fields []string) error {
	var (
		pos   int64
		value string
		err   error
	)
	switch s.mode {
	case noStep:
		return s.malformed(nil, "data line before any variableStep or fixedStep declaration")
	case variableStep:
		if len(fields) != 2 {
			return s.malformed(nil, fmt.Sprintf("variableStep data must contain 2 columns, found %d", len(fields)))
		}
		if pos, err = strconv.ParseInt(fields[0], 10, 64); err != nil {
			return s.malformed(err, "bad position")
		}
		if pos < 1 {
			return s.malformed(nil, fmt.Sprintf("position %d is not 1-based", pos))
		}
		pos--
		value = fields[1]
	case fixedStep:
		if len(fields) != 1 {
			return s.malformed(nil, fmt.Sprintf("fixedStep data must contain 1 column, found %d", len(fields)))
		}
		pos = s.next
		s.next += s.step
		value = fields[0]
	}
	score, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return s.malformed(err, "bad value")
	}
	s.point = Point{Chrom: s.chrom, Pos: pos, Score: score}
	s.remaining = s.span - 1
	return nil
}
