// Package filter narrows a sheet.Dataset by the BHS filter fields.
//
// All active constraints are combined with AND. Substring fields match the
// cell text case-sensitively. The date range is inclusive on both ends and
// compares calendar days of the DATE01 column.
package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andareed/siftly-bhs/sheet"
)

// Column names the filter reads.
const (
	ColIDBHS = "ID_BHS"
	ColIDEDS = "ID_EDS"
	ColIATA  = "IATA"
	ColDate  = "DATE01"
)

var (
	ErrInvalidStartDate = errors.New("invalid start date")
	ErrInvalidEndDate   = errors.New("invalid end date")
	ErrInvertedRange    = errors.New("start date is after end date")
)

// Criteria is the user's current set of constraints. The zero value has no
// constraints and matches every row.
type Criteria struct {
	IDBHS     string
	IDEDS     string
	IATA      string
	StartDate string
	EndDate   string
}

func (c Criteria) IsEmpty() bool {
	return c == Criteria{}
}

// HasDateBound reports whether either end of the date range is set.
func (c Criteria) HasDateBound() bool {
	return c.StartDate != "" || c.EndDate != ""
}

// String summarises the active constraints, e.g. "IATA=CDG 2024-02-01..".
func (c Criteria) String() string {
	var parts []string
	if c.IDBHS != "" {
		parts = append(parts, ColIDBHS+"="+c.IDBHS)
	}
	if c.IDEDS != "" {
		parts = append(parts, ColIDEDS+"="+c.IDEDS)
	}
	if c.IATA != "" {
		parts = append(parts, ColIATA+"="+c.IATA)
	}
	if c.HasDateBound() {
		parts = append(parts, c.StartDate+".."+c.EndDate)
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, " ")
}

// Predicate is a compiled Criteria.
type Predicate struct {
	c        Criteria
	start    time.Time
	end      time.Time
	hasStart bool
	hasEnd   bool
}

// Compile validates the date bounds of c and returns a reusable predicate.
func Compile(c Criteria) (*Predicate, error) {
	p := &Predicate{c: c}

	if s := strings.TrimSpace(c.StartDate); s != "" {
		t, ok := parseBound(s)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStartDate, c.StartDate)
		}
		p.start, p.hasStart = t, true
	}
	if s := strings.TrimSpace(c.EndDate); s != "" {
		t, ok := parseBound(s)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEndDate, c.EndDate)
		}
		p.end, p.hasEnd = t, true
	}
	if p.hasStart && p.hasEnd && p.start.After(p.end) {
		return nil, ErrInvertedRange
	}
	return p, nil
}

// Match reports whether r satisfies every active constraint.
func (p *Predicate) Match(r sheet.Row) bool {
	if !contains(r, ColIDBHS, p.c.IDBHS) ||
		!contains(r, ColIDEDS, p.c.IDEDS) ||
		!contains(r, ColIATA, p.c.IATA) {
		return false
	}

	if !p.hasStart && !p.hasEnd {
		return true
	}

	// rows whose DATE01 cannot be read never satisfy a date bound
	d, ok := ParseDate(r.Raw(ColDate))
	if !ok {
		return false
	}
	if p.hasStart && d.Before(p.start) {
		return false
	}
	if p.hasEnd && d.After(p.end) {
		return false
	}
	return true
}

// An absent cell reads as empty text, so it only satisfies an empty criterion.
func contains(r sheet.Row, col, want string) bool {
	if want == "" {
		return true
	}
	return strings.Contains(r.Text(col), want)
}

// Apply returns the positions of matching rows in ds, in dataset order.
// Empty criteria select every row.
func Apply(ds *sheet.Dataset, c Criteria) ([]int, error) {
	p, err := Compile(c)
	if err != nil {
		return nil, err
	}

	n := ds.Len()
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if p.Match(ds.Row(i)) {
			out = append(out, i)
		}
	}
	return out, nil
}

// All returns every position of ds, the view after a reset.
func All(ds *sheet.Dataset) []int {
	out := make([]int, ds.Len())
	for i := range out {
		out[i] = i
	}
	return out
}
