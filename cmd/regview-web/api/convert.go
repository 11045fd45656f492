package api

import (
	"fmt"

	"github.com/regview/regview-go/pkg/browse"
	"github.com/regview/regview-go/pkg/layout"
	"github.com/regview/regview-go/pkg/nav"
)

func dashboardResponse(v browse.DashboardView) *DashboardResponse {
	resp := &DashboardResponse{
		Categories:      make([]Category, len(v.Categories)),
		Uncategorized:   cards(v.Uncategorized),
		PeripheralCount: v.PeripheralCount,
		GroupCount:      v.GroupCount,
	}
	for i, c := range v.Categories {
		resp.Categories[i] = Category{Name: c.Name, Cards: cards(c.Cards)}
	}
	return resp
}

func cards(in []browse.ModuleCard) []ModuleCard {
	out := make([]ModuleCard, len(in))
	for i, c := range in {
		out[i] = ModuleCard{Group: c.Group, Count: c.Count}
	}
	return out
}

func instancesResponse(v browse.InstancesView) *InstancesResponse {
	resp := &InstancesResponse{
		Group:     v.Group,
		Category:  v.Category,
		Instances: make([]PeripheralSummary, len(v.Instances)),
	}
	for i, p := range v.Instances {
		resp.Instances[i] = PeripheralSummary{
			Name:          p.Name,
			BaseAddress:   p.BaseAddress,
			Description:   p.Description,
			RegisterCount: len(p.Registers),
		}
	}
	return resp
}

func registersResponse(v browse.RegistersView) *RegistersResponse {
	resp := &RegistersResponse{
		Name:        v.Peripheral.Name,
		Group:       v.Group,
		BaseAddress: v.Peripheral.BaseAddress,
		Description: v.Peripheral.Description,
		Registers:   make([]RegisterRow, len(v.Rows)),
	}
	for i, r := range v.Rows {
		resp.Registers[i] = RegisterRow{
			Name:        r.Name,
			Offset:      r.Offset,
			OffsetLabel: r.OffsetLabel,
			Description: r.Description,
			FieldCount:  r.FieldCount,
		}
	}
	return resp
}

func detailResponse(peripheral string, d *layout.RegisterDetail) *DetailResponse {
	resp := &DetailResponse{
		Peripheral:  peripheral,
		Name:        d.Name,
		OffsetLabel: d.OffsetLabel,
		Description: d.Description,
		Access:      d.Access,
		ResetValue:  d.ResetValue,
		WordWidth:   d.WordWidth,
		Size:        d.Size,
		Empty:       d.Empty,
		Segments:    make([]Segment, len(d.Segments)),
		Fields:      make([]FieldRow, len(d.Rows)),
	}

	for i, s := range d.Segments {
		resp.Segments[i] = Segment{
			Key:        s.Key(),
			Reserved:   s.IsReserved(),
			MSB:        s.Range.MSB,
			LSB:        s.Range.LSB,
			Label:      s.Label(),
			Title:      s.Title(),
			Fraction:   s.Fraction(d.WordWidth),
			ColorIndex: s.ColorIndex,
		}
	}

	for i, r := range d.Rows {
		row := FieldRow{
			Key:         r.Key,
			Name:        r.Name,
			Bits:        r.Label,
			MSB:         r.Range.MSB,
			LSB:         r.Range.LSB,
			Description: r.Description,
			Access:      r.Access,
			ReadAction:  r.ReadAction,
		}
		if r.ResetBits != nil {
			row.Reset = fmt.Sprintf("0x%X", *r.ResetBits)
		}
		for _, e := range r.Values {
			row.Values = append(row.Values, EnumValue{
				Value:       e.Value,
				Label:       e.ValueLabel(),
				Name:        e.Name,
				Description: e.Description,
			})
		}
		resp.Fields[i] = row
	}
	return resp
}

func breadcrumb(s nav.State) []Crumb {
	crumbs := nav.Breadcrumb(s)
	out := make([]Crumb, len(crumbs))
	for i, c := range crumbs {
		target, err := nav.Apply(s, nav.JumpTo(c.Target))
		if err != nil {
			target = s
		}
		out[i] = Crumb{Label: c.Label, Path: target.Path(), Active: c.Active, Link: c.Link}
	}
	return out
}

func navResponse(p *browse.Page) *NavResponse {
	resp := &NavResponse{
		View:       p.State.View().String(),
		Path:       p.State.Path(),
		Breadcrumb: breadcrumb(p.State),
	}
	switch {
	case p.Dashboard != nil:
		resp.Dashboard = dashboardResponse(*p.Dashboard)
	case p.Instances != nil:
		resp.Instances = instancesResponse(*p.Instances)
	case p.Registers != nil:
		resp.Registers = registersResponse(*p.Registers)
	case p.Detail != nil:
		resp.Detail = detailResponse(p.State.Peripheral(), p.Detail)
	}
	return resp
}
