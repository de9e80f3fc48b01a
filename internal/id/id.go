// Package id formats journal identifiers. Entries are numbered per month
// ("2025-04-003") and their lines carry a letter suffix ("2025-04-003b").
package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry identifies a journal entry by month and sequence.
type Entry struct {
	Year  int
	Month int
	Seq   int
}

func (e Entry) String() string {
	return fmt.Sprintf("%04d-%02d-%03d", e.Year, e.Month, e.Seq)
}

// Line returns the id of the entry's n-th line, counting from zero:
// a..z, then aa, ab, ...
func (e Entry) Line(n int) string {
	return e.String() + lineSuffix(n)
}

// SameMonth reports whether e is numbered in the given month.
func (e Entry) SameMonth(year, month int) bool {
	return e.Year == year && e.Month == month
}

func lineSuffix(n int) string {
	var suffix []byte
	for ; ; n = n/26 - 1 {
		suffix = append([]byte{byte('a' + n%26)}, suffix...)
		if n < 26 {
			return string(suffix)
		}
	}
}

// LineID appends the n-th line suffix to an entry id string.
func LineID(entryID string, n int) string {
	return entryID + lineSuffix(n)
}

// Parse reads an entry or line id. A line suffix is ignored.
func Parse(s string) (Entry, error) {
	parts := strings.Split(EntryGroup(s), "-")
	if len(parts) != 3 {
		return Entry{}, fmt.Errorf("invalid entry ID %q, want YYYY-MM-NNN", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Entry{}, fmt.Errorf("invalid entry ID %q: %w", s, err)
		}
		nums[i] = n
	}
	if nums[1] < 1 || nums[1] > 12 {
		return Entry{}, fmt.Errorf("month out of range in entry ID %q", s)
	}
	return Entry{Year: nums[0], Month: nums[1], Seq: nums[2]}, nil
}

// EntryGroup strips the line suffix: "2025-01-001a" -> "2025-01-001".
func EntryGroup(lineID string) string {
	return strings.TrimRightFunc(lineID, func(r rune) bool { return r >= 'a' && r <= 'z' })
}
