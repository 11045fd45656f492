package main

import (
	"fmt"

	"github.com/regview/regview-go/internal/viewer"
	"github.com/regview/regview-go/pkg/browse"
	"github.com/regview/regview-go/pkg/layout"
	"github.com/regview/regview-go/pkg/periph"
)

// DocModel holds everything the generator writes, in page order.
type DocModel struct {
	Title       string
	Source      string
	Dashboard   browse.DashboardView
	Groups      []*GroupDoc      // dashboard order
	Peripherals []*PeripheralDoc // sorted by name
	Failed      []periph.FileError

	groupByName map[string]*GroupDoc
}

// GroupDoc is one group page.
type GroupDoc struct {
	Name      string
	Category  string // empty when uncategorized
	Instances []*periph.Peripheral
}

// PeripheralDoc is one peripheral page.
type PeripheralDoc struct {
	Peripheral *periph.Peripheral
	Group      string
	Registers  []RegisterDoc
}

// RegisterDoc is one register section of a peripheral page. Exactly one of
// Detail and Err is set.
type RegisterDoc struct {
	Row    browse.RegisterRow
	Detail *layout.RegisterDetail
	Err    error
}

// BuildDocModel loads the dataset and lays out every register.
func BuildDocModel(cfg viewer.Config, title string) (*DocModel, error) {
	v, err := viewer.Open(cfg)
	if err != nil {
		return nil, err
	}
	m, err := newDocModel(v.Browser, title, v.Source)
	if err != nil {
		return nil, err
	}
	m.Failed = v.Failed
	return m, nil
}

func newDocModel(b *browse.Browser, title, source string) (*DocModel, error) {
	m := &DocModel{
		Title:       title,
		Source:      source,
		Dashboard:   b.Dashboard(),
		groupByName: make(map[string]*GroupDoc),
	}

	var names []string
	for _, c := range m.Dashboard.Categories {
		for _, card := range c.Cards {
			names = append(names, card.Group)
		}
	}
	for _, card := range m.Dashboard.Uncategorized {
		names = append(names, card.Group)
	}
	for _, name := range names {
		iv, err := b.Instances(name)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", name, err)
		}
		g := &GroupDoc{Name: iv.Group, Category: iv.Category, Instances: iv.Instances}
		m.Groups = append(m.Groups, g)
		m.groupByName[g.Name] = g
	}

	for _, p := range b.Dataset().Peripherals() {
		rv, err := b.Registers(p.Name)
		if err != nil {
			return nil, fmt.Errorf("peripheral %s: %w", p.Name, err)
		}
		pd := &PeripheralDoc{Peripheral: p, Group: rv.Group}
		for _, row := range rv.Rows {
			d, err := b.Detail(p.Name, row.Name)
			pd.Registers = append(pd.Registers, RegisterDoc{Row: row, Detail: d, Err: err})
		}
		m.Peripherals = append(m.Peripherals, pd)
	}

	return m, nil
}

// Group returns the named group page, if any.
func (m *DocModel) Group(name string) (*GroupDoc, bool) {
	g, ok := m.groupByName[name]
	return g, ok
}

// LayoutErrors counts registers that could not be laid out.
func (m *DocModel) LayoutErrors() int {
	n := 0
	for _, p := range m.Peripherals {
		for _, r := range p.Registers {
			if r.Err != nil {
				n++
			}
		}
	}
	return n
}
