package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineSize bounds a single line of a training data file.
const maxLineSize = 64 * 1024 * 1024

// Load reads a training data file.
//
// File Format:
//
//	<count> <numInput> <numOutput>
//	<input values of example 1>
//	<output values of example 1>
//	...
//
// Values are whitespace separated; blank lines are ignored. Any deviation
// is reported as a *ParseError matching ErrMalformedData.
func Load(path string) (*TrainingData, error) {
	//nolint:gosec // G304: File path comes from the caller, which is expected for data loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file)
}

// Read parses training data in the format described by Load.
func Read(r io.Reader) (*TrainingData, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0

	next := func() ([]string, error) {
		for scanner.Scan() {
			lineNum++
			if fields := strings.Fields(scanner.Text()); len(fields) > 0 {
				return fields, nil
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, &ParseError{Line: lineNum + 1, Msg: err.Error()}
		}
		return nil, io.EOF
	}

	header, err := next()
	if err == io.EOF {
		return nil, &ParseError{Msg: "missing header line"}
	}
	if err != nil {
		return nil, err
	}
	if len(header) != 3 {
		return nil, &ParseError{Line: lineNum, Msg: fmt.Sprintf("header has %d fields, expected 3", len(header))}
	}

	var dims [3]int
	for i, field := range header {
		v, err := strconv.Atoi(field)
		if err != nil || v < 0 {
			return nil, &ParseError{Line: lineNum, Msg: fmt.Sprintf("header field %q is not a non-negative integer", field)}
		}
		dims[i] = v
	}
	count, numInput, numOutput := dims[0], dims[1], dims[2]
	if count > 0 && (numInput == 0 || numOutput == 0) {
		return nil, &ParseError{Line: lineNum, Msg: "vector widths must be positive"}
	}

	d := Empty(numInput, numOutput)
	readVector := func(width int, what string, example int) ([]float64, error) {
		fields, err := next()
		if err == io.EOF {
			return nil, &ParseError{Msg: fmt.Sprintf("file ends before %s of example %d", what, example+1)}
		}
		if err != nil {
			return nil, err
		}
		if len(fields) != width {
			return nil, &ParseError{Line: lineNum, Msg: fmt.Sprintf("%s of example %d has %d values, expected %d", what, example+1, len(fields), width)}
		}
		vec := make([]float64, width)
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &ParseError{Line: lineNum, Msg: fmt.Sprintf("value %q is not a number", field)}
			}
			vec[i] = v
		}
		return vec, nil
	}

	for i := 0; i < count; i++ {
		in, err := readVector(numInput, "input", i)
		if err != nil {
			return nil, err
		}
		out, err := readVector(numOutput, "output", i)
		if err != nil {
			return nil, err
		}
		d.inputs = append(d.inputs, in...)
		d.outputs = append(d.outputs, out...)
	}

	if _, err := next(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, &ParseError{Line: lineNum, Msg: fmt.Sprintf("unexpected data after %d examples", count)}
	}

	return d, nil
}

// Save writes the data set to path in the format described by Load.
func (d *TrainingData) Save(path string) (err error) {
	//nolint:gosec // G304: File path comes from the caller, which is expected for data saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	_, err = d.WriteTo(file)
	return err
}

// WriteTo writes the data set in the format described by Load.
//
// Values use the shortest representation that parses back to the same
// float64, so Read(WriteTo(d)) reproduces d exactly.
func (d *TrainingData) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}

	fmt.Fprintf(cw, "%d %d %d\n", d.Len(), d.numInput, d.numOutput)
	var line []byte
	for i := 0; i < d.Len(); i++ {
		line = appendVector(line[:0], d.Input(i))
		cw.Write(line)
		line = appendVector(line[:0], d.Output(i))
		cw.Write(line)
	}
	if cw.err != nil {
		return cw.n, fmt.Errorf("failed to write training data: %w", cw.err)
	}

	if err := cw.w.Flush(); err != nil {
		return cw.n, fmt.Errorf("failed to flush training data: %w", err)
	}
	return cw.n, nil
}

func appendVector(dst []byte, vec []float64) []byte {
	for i, v := range vec {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendFloat(dst, v, 'g', -1, 64)
	}
	return append(dst, '\n')
}

// countingWriter remembers the first error so the write loop stays flat.
type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
