// Package model defines the core data structures for whosout.
package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bryan-cox/whosout/internal/calendar"
)

// LeaveType labels a leave entry. The provider is free to send type
// names beyond the ones enumerated here; unknown names pass through
// unchanged.
type LeaveType string

const (
	TypeVacation LeaveType = "vacation"
	TypeSick     LeaveType = "sick"
	TypeHoliday  LeaveType = "holiday"
	TypeTimeOff  LeaveType = "time off"
)

// ParseLeaveType normalizes a provider type string into a LeaveType.
func ParseLeaveType(s string) LeaveType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vacation":
		return TypeVacation
	case "sick":
		return TypeSick
	case "holiday":
		return TypeHoliday
	case "timeoff", "time off":
		return TypeTimeOff
	default:
		return LeaveType(s)
	}
}

// Entry is one approved-leave record from the provider: a closed date
// range (Start and End both inclusive) plus a leave type. Holiday rows
// arrive with an empty EmployeeID and the holiday's name in Name.
type Entry struct {
	EmployeeID    string        `yaml:"employee_id"`
	Name          string        `yaml:"name"`
	PreferredName string        `yaml:"preferred_name"`
	Type          LeaveType     `yaml:"type"`
	Start         calendar.Date `yaml:"start"`
	End           calendar.Date `yaml:"end"`
}

// GroupKey identifies which consolidation group an entry belongs to.
// Holiday rows carry no employee id, so the name stands in for it.
func (e Entry) GroupKey() string {
	if e.EmployeeID != "" {
		return e.EmployeeID
	}
	return e.Name
}

// Validate rejects ranges that end before they start. Such an entry
// means the upstream data is broken; the run fails rather than emit a
// misleading merged range.
func (e Entry) Validate() error {
	if e.End.Before(e.Start) {
		return fmt.Errorf("leave entry for %q ends %s before it starts %s", e.Name, e.End, e.Start)
	}
	return nil
}

// OverlapsOrTouches reports whether the two ranges intersect or sit on
// directly adjacent days.
func (e Entry) OverlapsOrTouches(o Entry) bool {
	if e.Start.After(o.Start) {
		e, o = o, e
	}
	return !o.Start.After(e.End.Next())
}

// WeekendOnlyGap reports whether the days strictly between e.End and
// o.Start are all Saturdays and Sundays. Any all-weekend gap merges no
// matter its length; in practice only a single Sat+Sun pair can occur.
func (e Entry) WeekendOnlyGap(o Entry) bool {
	return weekendOnlyGap(e.End, o.Start)
}

// Mergeable is the single adjacency predicate used by consolidation: a
// range ending on end absorbs an entry starting on start when the two
// touch, overlap, or are separated only by weekend days. The weekend
// policy lives here and nowhere else. A block starting on a Monday is
// not retro-dated to the preceding Saturday; that is a known,
// intentional simplification.
func Mergeable(end, start calendar.Date) bool {
	if !start.After(end.Next()) {
		return true
	}
	return weekendOnlyGap(end, start)
}

func weekendOnlyGap(end, start calendar.Date) bool {
	d := end.Next()
	if !d.Before(start) {
		return false
	}
	for ; d.Before(start); d = d.Next() {
		if !d.IsWeekend() {
			return false
		}
	}
	return true
}

// MergedRange is one consolidated absence: the widest span reachable
// from its entries under Mergeable, carrying every leave type seen
// along the way. Names ride along from the feed entries so the report
// can label ranges without a directory lookup.
type MergedRange struct {
	EmployeeID    string
	Name          string
	PreferredName string
	Start         calendar.Date
	End           calendar.Date
	Types         []LeaveType
}

// Contains reports whether the range covers the given date.
func (r MergedRange) Contains(d calendar.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// AddType unions t into the range's leave types, kept sorted for
// deterministic output.
func (r *MergedRange) AddType(t LeaveType) {
	for _, existing := range r.Types {
		if existing == t {
			return
		}
	}
	r.Types = append(r.Types, t)
	sort.Slice(r.Types, func(i, j int) bool { return r.Types[i] < r.Types[j] })
}

// HasType reports whether t is among the range's leave types.
func (r MergedRange) HasType(t LeaveType) bool {
	for _, existing := range r.Types {
		if existing == t {
			return true
		}
	}
	return false
}

// Employee is one directory record used for display-name resolution.
type Employee struct {
	ID            string
	Name          string
	PreferredName string
}

// DisplayName resolves the name shown in reports: the preferred name
// when the employee has one, otherwise the legal name. A missing
// preferred name is the common case, not an error.
func (e Employee) DisplayName() string {
	if e.PreferredName != "" {
		return e.PreferredName
	}
	return e.Name
}

// EmployeeDisplay groups an employee's merged ranges under the chosen
// display name, ordered by start date.
type EmployeeDisplay struct {
	EmployeeID string
	ChosenName string
	Ranges     []MergedRange
}
