package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/equity/internal/id"
	"github.com/cleared-dev/equity/internal/model"
)

// Service reads and appends journal/journal.csv under a repo root.
type Service struct {
	repoRoot string
	accounts AccountLookup
}

// NewService creates a journal Service.
func NewService(repoRoot string, accounts AccountLookup) *Service {
	return &Service{repoRoot: repoRoot, accounts: accounts}
}

// Path returns the journal file path under a repo root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, "journal", "journal.csv")
}

// ReadLines reads every line of the journal. A missing file is an empty journal.
func (s *Service) ReadLines() ([]Line, error) {
	path := Path(s.repoRoot)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return lines, nil
}

// Load reads the journal and groups its lines into entries.
func (s *Service) Load() ([]model.JournalEntry, error) {
	lines, err := s.ReadLines()
	if err != nil {
		return nil, err
	}
	return Group(lines), nil
}

// Append assigns the next ID for the entry's month, validates the entry and
// appends its lines to the journal. Returns the entry ID.
func (s *Service) Append(entry model.JournalEntry) (string, error) {
	year := entry.Date.Year()
	month := int(entry.Date.Month())

	seq, err := s.NextEntrySeq(year, month)
	if err != nil {
		return "", err
	}
	entry.ID = id.Entry{Year: year, Month: month, Seq: seq}.String()

	if issues := Validate([]model.JournalEntry{entry}, s.accounts); len(issues) > 0 {
		msgs := make([]string, len(issues))
		for i, is := range issues {
			msgs[i] = is.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	path := Path(s.repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendLines(f, Flatten(entry)); err != nil {
		return "", fmt.Errorf("appending lines: %w", err)
	}
	return entry.ID, nil
}

// NextEntrySeq returns the next available sequence number for a month.
func (s *Service) NextEntrySeq(year, month int) (int, error) {
	lines, err := s.ReadLines()
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, line := range lines {
		e, err := id.Parse(line.ID)
		if err != nil || !e.SameMonth(year, month) {
			continue
		}
		maxSeq = max(maxSeq, e.Seq)
	}
	return maxSeq + 1, nil
}

// Init creates an empty journal with just the header.
func Init(repoRoot string) error {
	path := Path(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Header+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing journal: %w", err)
	}
	return nil
}
