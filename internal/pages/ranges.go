package pages

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned by ParseRange for malformed or out-of-range
// input.
var ErrInvalidRange = errors.New("invalid page range")

// ParseRange parses a list such as "1, 3, 5-7" against a document of max
// pages. The result is sorted and free of duplicates.
func ParseRange(s string, max int) ([]int, error) {
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, err := parseSpan(part)
		if err != nil {
			return nil, err
		}
		if lo < 1 || hi > max || lo > hi {
			return nil, fmt.Errorf("%w: %q outside 1-%d", ErrInvalidRange, part, max)
		}
		for p := lo; p <= hi; p++ {
			seen[p] = true
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: no pages selected", ErrInvalidRange)
	}
	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out, nil
}

func parseSpan(part string) (int, int, error) {
	if a, b, ok := strings.Cut(part, "-"); ok {
		lo, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, part)
		}
		hi, err := strconv.Atoi(strings.TrimSpace(b))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, part)
		}
		return lo, hi, nil
	}
	p, err := strconv.Atoi(part)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, part)
	}
	return p, p, nil
}

// Selection formats page numbers as pdfcpu page selection strings.
func Selection(numbers []int) []string {
	out := make([]string, len(numbers))
	for i, n := range numbers {
		out[i] = strconv.Itoa(n)
	}
	return out
}

// Complement returns the pages in 1..max that are not in numbers, ascending.
func Complement(numbers []int, max int) []int {
	in := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		in[n] = true
	}
	var out []int
	for p := 1; p <= max; p++ {
		if !in[p] {
			out = append(out, p)
		}
	}
	return out
}
