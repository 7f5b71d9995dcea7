package timeline

import "sort"

// Expansion tracks which day groups of the grouped view are open.
// The zero value has every group collapsed.
type Expansion struct {
	open map[string]struct{}
}

// Toggle flips a day and reports whether it is now expanded.
func (x *Expansion) Toggle(day string) bool {
	if x.open == nil {
		x.open = make(map[string]struct{})
	}
	if _, ok := x.open[day]; ok {
		delete(x.open, day)
		return false
	}
	x.open[day] = struct{}{}
	return true
}

// IsExpanded reports whether day is open.
func (x *Expansion) IsExpanded(day string) bool {
	_, ok := x.open[day]
	return ok
}

// ExpandAll opens every group.
func (x *Expansion) ExpandAll(groups []DayGroup) {
	if x.open == nil {
		x.open = make(map[string]struct{}, len(groups))
	}
	for _, g := range groups {
		x.open[g.Date] = struct{}{}
	}
}

// CollapseAll closes every group.
func (x *Expansion) CollapseAll() {
	x.open = nil
}

// Expanded lists open days, newest first.
func (x *Expansion) Expanded() []string {
	days := make([]string, 0, len(x.open))
	for day := range x.open {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days
}
