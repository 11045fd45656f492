package nav

// RootLabel is the first breadcrumb entry.
const RootLabel = "System"

// Crumb is one breadcrumb entry. Clicking a crumb applies JumpTo(Target).
type Crumb struct {
	Label  string
	Target View
	Active bool

	// Link is false for the entry of the detail view, which has no
	// destination of its own.
	Link bool
}

// Breadcrumb returns the trail for s, root first.
func Breadcrumb(s State) []Crumb {
	crumbs := []Crumb{{Label: RootLabel, Target: ViewDashboard, Active: s.view == ViewDashboard, Link: true}}
	if s.view >= ViewInstances {
		crumbs = append(crumbs, Crumb{Label: s.group, Target: ViewInstances, Active: s.view == ViewInstances, Link: true})
	}
	if s.view >= ViewRegisters {
		crumbs = append(crumbs, Crumb{Label: s.peripheral, Target: ViewRegisters, Active: s.view == ViewRegisters, Link: true})
	}
	if s.view == ViewDetail {
		crumbs = append(crumbs, Crumb{Label: s.register, Target: ViewDetail, Active: true})
	}
	return crumbs
}

// BreadcrumbText joins the crumb labels with " / ".
func BreadcrumbText(s State) string {
	out := ""
	for i, c := range Breadcrumb(s) {
		if i > 0 {
			out += " / "
		}
		out += c.Label
	}
	return out
}
