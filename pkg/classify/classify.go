package classify

import (
	"sort"
	"strings"

	"github.com/regview/regview-go/pkg/periph"
)

// FallbackGroupName holds peripherals that declare no group name.
const FallbackGroupName = "Other"

// Group is every peripheral instance sharing one group name.
type Group struct {
	Name      string
	Instances []*periph.Peripheral
}

// CategoryGroups is a category with the groups it claimed.
type CategoryGroups struct {
	Name   string
	Groups []Group
}

// Result is the output of Classify.
type Result struct {
	// Categorized holds one entry per category, in table order. Categories
	// that claimed nothing have an empty Groups list.
	Categorized []CategoryGroups

	// Uncategorized holds groups no category claimed, in sorted order.
	Uncategorized []Group
}

// NonEmpty returns the categories that claimed at least one group.
func (r Result) NonEmpty() []CategoryGroups {
	out := make([]CategoryGroups, 0, len(r.Categorized))
	for _, c := range r.Categorized {
		if len(c.Groups) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// GroupCount returns the total number of groups across both outputs.
func (r Result) GroupCount() int {
	n := len(r.Uncategorized)
	for _, c := range r.Categorized {
		n += len(c.Groups)
	}
	return n
}

// GroupName returns the group a peripheral belongs to.
func GroupName(p *periph.Peripheral) string {
	if p.GroupName == "" {
		return FallbackGroupName
	}
	return p.GroupName
}

// groupBy partitions peripherals by group name, keeping input order inside
// each group, and returns the ordinally sorted group names.
func groupBy(peripherals []*periph.Peripheral) (map[string][]*periph.Peripheral, []string) {
	groups := make(map[string][]*periph.Peripheral)
	for _, p := range peripherals {
		if p == nil {
			continue
		}
		name := GroupName(p)
		groups[name] = append(groups[name], p)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return groups, names
}

// Matches reports whether a group name matches any of the patterns.
func Matches(groupName string, patterns []string) bool {
	upper := strings.ToUpper(groupName)
	for _, p := range patterns {
		up := strings.ToUpper(p)
		if strings.Contains(upper, up) || upper == up {
			return true
		}
	}
	return false
}

// Classify groups peripherals by group name and assigns each group to the
// first category in table order with a matching pattern.
func Classify(peripherals []*periph.Peripheral, categories []Category) Result {
	groups, names := groupBy(peripherals)
	return classifyGroups(groups, names, categories)
}

func classifyGroups(groups map[string][]*periph.Peripheral, names []string, categories []Category) Result {
	used := make(map[string]bool, len(names))
	res := Result{Categorized: make([]CategoryGroups, 0, len(categories))}

	for _, cat := range categories {
		cg := CategoryGroups{Name: cat.Name}
		for _, name := range names {
			if used[name] || !Matches(name, cat.Patterns) {
				continue
			}
			used[name] = true
			cg.Groups = append(cg.Groups, Group{Name: name, Instances: groups[name]})
		}
		res.Categorized = append(res.Categorized, cg)
	}

	for _, name := range names {
		if !used[name] {
			res.Uncategorized = append(res.Uncategorized, Group{Name: name, Instances: groups[name]})
		}
	}
	return res
}
