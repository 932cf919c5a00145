package steplog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/bft-labs/envtap/internal/domain"
)

// Row is one step row read back from a sink. Info keeps its rendered text.
type Row struct {
	Steps  uint64  `csv:"steps"`
	Reward float64 `csv:"reward"`
	Done   bool    `csv:"done"`
	Info   string  `csv:"info"`
}

// ReadFile reads every row of the sink at path.
func ReadFile(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read sink: %v", domain.ErrIO, err)
	}
	return Read(bytes.NewReader(data))
}

// Read parses a sink from r. The header must match domain.Header.
func Read(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read sink: %v", domain.ErrIO, err)
	}
	if err := checkHeader(data); err != nil {
		return nil, err
	}

	rows := []Row{}
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return rows, nil
		}
		return nil, fmt.Errorf("parse sink: %w", err)
	}
	return rows, nil
}

func checkHeader(data []byte) error {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	got := strings.TrimRight(string(line), "\r")
	want := strings.Join(domain.Header, ",")
	if got != want {
		return fmt.Errorf("unexpected sink header %q, want %q", got, want)
	}
	return nil
}

// parseLine parses one CSV data line without its header.
func parseLine(line string) (Row, error) {
	fields, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return Row{}, fmt.Errorf("parse row: %w", err)
	}
	if len(fields) != len(domain.Header) {
		return Row{}, fmt.Errorf("parse row: %d fields, want %d", len(fields), len(domain.Header))
	}

	steps, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return Row{}, fmt.Errorf("parse steps: %w", err)
	}
	reward, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Row{}, fmt.Errorf("parse reward: %w", err)
	}
	done, err := strconv.ParseBool(fields[2])
	if err != nil {
		return Row{}, fmt.Errorf("parse done: %w", err)
	}
	return Row{Steps: steps, Reward: reward, Done: done, Info: fields[3]}, nil
}

// Summary aggregates the rows of one sink.
type Summary struct {
	Rows        int
	LastStep    uint64
	Episodes    int
	TotalReward float64
}

// Summarize aggregates rows. Episodes counts rows with Done set.
func Summarize(rows []Row) Summary {
	var s Summary
	s.Rows = len(rows)
	for _, r := range rows {
		s.TotalReward += r.Reward
		if r.Done {
			s.Episodes++
		}
		s.LastStep = r.Steps
	}
	return s
}

// CheckContiguous verifies that step indices run 1, 2, 3, … without gaps.
func CheckContiguous(rows []Row) error {
	for i, r := range rows {
		if want := uint64(i + 1); r.Steps != want {
			return fmt.Errorf("row %d has step %d, want %d", i+1, r.Steps, want)
		}
	}
	return nil
}
