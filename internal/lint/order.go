package lint

import (
	"sort"
	"strings"

	"sfclint/internal/template"
)

const (
	categoryDefaultValue = "defaultValueProp"
	categoryAttribute    = "attribute"
	categoryBind         = "bind"
)

// orderTable is the attribute ordering table: each group lists names that
// share one priority, groups are ordered.
type orderTable struct {
	index map[string]int
}

func newOrderTable(groups []string) orderTable {
	t := orderTable{index: make(map[string]int)}
	for i, group := range groups {
		for _, name := range strings.Split(group, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, dup := t.index[name]; !dup {
				t.index[name] = i
			}
		}
	}
	return t
}

// priority returns the group index of category, or -1 when no group lists it.
func (t orderTable) priority(category string) int {
	if i, ok := t.index[category]; ok {
		return i
	}
	return -1
}

func (t orderTable) classify(a template.Attribute) string {
	if a.Name == "bind" && (a.Arg == "key" || a.Arg == "ref") {
		return a.Arg
	}
	if _, ok := t.index[a.Name]; ok {
		return a.Name
	}
	if !a.HasValue() {
		return categoryDefaultValue
	}
	if !a.Bound {
		return categoryAttribute
	}
	return categoryBind
}

// canonical returns a new slice in canonical order plus the categories of the
// input and of the result. attrs is not modified.
func (t orderTable) canonical(attrs []template.Attribute) (sorted []template.Attribute, before, after []string) {
	before = make([]string, len(attrs))
	for i, a := range attrs {
		before[i] = t.classify(a)
	}
	idx := make([]int, len(attrs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return t.priority(before[idx[i]]) < t.priority(before[idx[j]])
	})
	sorted = make([]template.Attribute, len(attrs))
	after = make([]string, len(attrs))
	for i, from := range idx {
		sorted[i] = attrs[from]
		after[i] = before[from]
	}
	return sorted, before, after
}

func sameSequence(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
