package browse

import (
	"errors"
	"fmt"
	"sort"

	"github.com/regview/regview-go/pkg/bitrange"
	"github.com/regview/regview-go/pkg/classify"
	"github.com/regview/regview-go/pkg/layout"
	"github.com/regview/regview-go/pkg/nav"
	"github.com/regview/regview-go/pkg/periph"
)

// ErrNotFound is returned for unknown groups, peripherals and registers.
var ErrNotFound = errors.New("not found")

// Browser renders view models for one loaded dataset. It is read-only and
// safe for concurrent use.
type Browser struct {
	ds         *periph.Dataset
	index      *classify.Index
	categories []classify.Category
}

// New classifies the dataset with the given category table.
func New(ds *periph.Dataset, categories []classify.Category) *Browser {
	return &Browser{
		ds:         ds,
		index:      classify.NewIndex(ds, categories),
		categories: categories,
	}
}

// Dataset returns the underlying dataset.
func (b *Browser) Dataset() *periph.Dataset { return b.ds }

// Index returns the group index.
func (b *Browser) Index() *classify.Index { return b.index }

// Categories returns the category table the browser was built with.
func (b *Browser) Categories() []classify.Category { return b.categories }

// ModuleCard is one group entry on the dashboard.
type ModuleCard struct {
	Group string
	Count int
}

// CategorySection is a dashboard category with its group cards.
type CategorySection struct {
	Name  string
	Cards []ModuleCard
}

// DashboardView lists every group, categorized first.
type DashboardView struct {
	Categories      []CategorySection
	Uncategorized   []ModuleCard
	PeripheralCount int
	GroupCount      int
}

// Dashboard returns the categories that claimed at least one group,
// followed by the uncategorized groups.
func (b *Browser) Dashboard() DashboardView {
	res := b.index.Result()
	v := DashboardView{
		PeripheralCount: b.ds.Len(),
		GroupCount:      res.GroupCount(),
	}
	for _, c := range res.NonEmpty() {
		v.Categories = append(v.Categories, CategorySection{Name: c.Name, Cards: cards(c.Groups)})
	}
	v.Uncategorized = cards(res.Uncategorized)
	return v
}

func cards(groups []classify.Group) []ModuleCard {
	out := make([]ModuleCard, len(groups))
	for i, g := range groups {
		out[i] = ModuleCard{Group: g.Name, Count: len(g.Instances)}
	}
	return out
}

// InstancesView lists the instances of one group.
type InstancesView struct {
	Group     string
	Category  string // empty when uncategorized
	Instances []*periph.Peripheral
}

// Instances returns the group's instances in display order.
func (b *Browser) Instances(group string) (InstancesView, error) {
	ps, ok := b.index.Instances(group)
	if !ok {
		return InstancesView{}, fmt.Errorf("group %q: %w", group, ErrNotFound)
	}
	return InstancesView{
		Group:     group,
		Category:  b.index.CategoryOf(group),
		Instances: ps,
	}, nil
}

// RegisterRow is one entry of a register list.
type RegisterRow struct {
	Name        string
	Offset      uint32
	OffsetLabel string
	Description string
	FieldCount  int
}

// RegistersView lists the registers of one peripheral.
type RegistersView struct {
	Peripheral *periph.Peripheral
	Group      string
	Rows       []RegisterRow
}

// Registers returns the peripheral's registers ordered by address offset.
// Registers sharing an offset keep their declaration order.
func (b *Browser) Registers(peripheral string) (RegistersView, error) {
	p, ok := b.ds.Peripheral(peripheral)
	if !ok {
		return RegistersView{}, fmt.Errorf("peripheral %q: %w", peripheral, ErrNotFound)
	}

	regs := make([]periph.Register, len(p.Registers))
	copy(regs, p.Registers)
	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].AddressOffset < regs[j].AddressOffset
	})

	rows := make([]RegisterRow, len(regs))
	for i, r := range regs {
		rows[i] = RegisterRow{
			Name:        r.Name,
			Offset:      r.AddressOffset,
			OffsetLabel: "+" + bitrange.FormatOffset(r.AddressOffset),
			Description: r.Description,
			FieldCount:  len(r.Fields),
		}
	}

	return RegistersView{
		Peripheral: p,
		Group:      classify.GroupName(p),
		Rows:       rows,
	}, nil
}

// Detail lays out one register of a peripheral.
func (b *Browser) Detail(peripheral, register string) (*layout.RegisterDetail, error) {
	p, ok := b.ds.Peripheral(peripheral)
	if !ok {
		return nil, fmt.Errorf("peripheral %q: %w", peripheral, ErrNotFound)
	}
	reg, ok := p.Register(register)
	if !ok {
		return nil, fmt.Errorf("register %s.%s: %w", peripheral, register, ErrNotFound)
	}

	d, err := layout.Detail(*reg)
	if err != nil {
		return nil, fmt.Errorf("register %s.%s: %w", peripheral, register, err)
	}
	return d, nil
}

// Page is the rendered content for one navigation state. Exactly one of the
// view fields is set, matching State.View().
type Page struct {
	State      nav.State
	Breadcrumb []nav.Crumb

	Dashboard *DashboardView
	Instances *InstancesView
	Registers *RegistersView
	Detail    *layout.RegisterDetail
}

// Render builds the page for a navigation state. The state's group must
// contain its peripheral.
func (b *Browser) Render(s nav.State) (*Page, error) {
	page := &Page{State: s, Breadcrumb: nav.Breadcrumb(s)}

	switch s.View() {
	case nav.ViewDashboard:
		d := b.Dashboard()
		page.Dashboard = &d

	case nav.ViewInstances:
		v, err := b.Instances(s.Group())
		if err != nil {
			return nil, err
		}
		page.Instances = &v

	case nav.ViewRegisters:
		v, err := b.memberRegisters(s.Group(), s.Peripheral())
		if err != nil {
			return nil, err
		}
		page.Registers = &v

	case nav.ViewDetail:
		if _, err := b.memberRegisters(s.Group(), s.Peripheral()); err != nil {
			return nil, err
		}
		d, err := b.Detail(s.Peripheral(), s.Register())
		if err != nil {
			return nil, err
		}
		page.Detail = d
	}

	return page, nil
}

func (b *Browser) memberRegisters(group, peripheral string) (RegistersView, error) {
	v, err := b.Registers(peripheral)
	if err != nil {
		return RegistersView{}, err
	}
	if v.Group != group {
		return RegistersView{}, fmt.Errorf("peripheral %q in group %q: %w", peripheral, group, ErrNotFound)
	}
	return v, nil
}
