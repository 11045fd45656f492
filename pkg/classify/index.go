package classify

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/regview/regview-go/pkg/periph"
)

// Index is the classification of one dataset, computed once after load and
// read-only afterwards.
type Index struct {
	groups     map[string][]*periph.Peripheral
	names      []string
	result     Result
	categoryOf map[string]string
}

// NewIndex groups and classifies every peripheral of the dataset.
func NewIndex(ds *periph.Dataset, categories []Category) *Index {
	groups, names := groupBy(ds.Peripherals())
	res := classifyGroups(groups, names, categories)

	categoryOf := make(map[string]string, len(names))
	for _, c := range res.Categorized {
		for _, g := range c.Groups {
			categoryOf[g.Name] = c.Name
		}
	}

	return &Index{
		groups:     groups,
		names:      names,
		result:     res,
		categoryOf: categoryOf,
	}
}

// Result returns the classification.
func (x *Index) Result() Result {
	return x.result
}

// GroupNames returns all group names in ordinal order.
func (x *Index) GroupNames() []string {
	out := make([]string, len(x.names))
	copy(out, x.names)
	return out
}

// Group looks up a group by name. Instances are in load order; use
// Instances for display order.
func (x *Index) Group(name string) (Group, bool) {
	ps, ok := x.groups[name]
	if !ok {
		return Group{}, false
	}
	return Group{Name: name, Instances: ps}, true
}

// Instances returns the group's instances sorted for display.
func (x *Index) Instances(name string) ([]*periph.Peripheral, bool) {
	ps, ok := x.groups[name]
	if !ok {
		return nil, false
	}
	return SortInstances(ps), true
}

// CategoryOf returns the category that claimed the group, or "" when the
// group is uncategorized or unknown.
func (x *Index) CategoryOf(group string) string {
	return x.categoryOf[group]
}

// SortInstances returns a copy of the instances ordered by name with a
// locale-aware collation. Names that collate equal fall back to ordinal
// order so the result is fully deterministic.
func SortInstances(instances []*periph.Peripheral) []*periph.Peripheral {
	out := make([]*periph.Peripheral, len(instances))
	copy(out, instances)

	// Collators keep internal buffers and are not safe for concurrent use.
	c := collate.New(language.Und)
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := c.CompareString(out[i].Name, out[j].Name); cmp != 0 {
			return cmp < 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}
