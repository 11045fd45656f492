// Package api provides the HTTP API handlers for the register viewer web
// front-end.
package api

import "time"

// DashboardResponse is the response for GET /api/v1/dashboard.
type DashboardResponse struct {
	Categories      []Category   `json:"categories"`
	Uncategorized   []ModuleCard `json:"uncategorized"`
	PeripheralCount int          `json:"peripheral_count"`
	GroupCount      int          `json:"group_count"`
}

// Category is a dashboard section.
type Category struct {
	Name  string       `json:"name"`
	Cards []ModuleCard `json:"cards"`
}

// ModuleCard is one group on the dashboard.
type ModuleCard struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

// InstancesResponse is the response for GET /api/v1/groups/{group}.
type InstancesResponse struct {
	Group     string              `json:"group"`
	Category  string              `json:"category,omitempty"`
	Instances []PeripheralSummary `json:"instances"`
}

// PeripheralSummary describes one peripheral instance in a list.
type PeripheralSummary struct {
	Name          string `json:"name"`
	BaseAddress   string `json:"base_address,omitempty"`
	Description   string `json:"description,omitempty"`
	RegisterCount int    `json:"register_count"`
}

// RegistersResponse is the response for GET /api/v1/peripherals/{name}.
type RegistersResponse struct {
	Name        string        `json:"name"`
	Group       string        `json:"group"`
	BaseAddress string        `json:"base_address,omitempty"`
	Description string        `json:"description,omitempty"`
	Registers   []RegisterRow `json:"registers"`
}

// RegisterRow is one entry of a register list.
type RegisterRow struct {
	Name        string `json:"name"`
	Offset      uint32 `json:"offset"`
	OffsetLabel string `json:"offset_label"`
	Description string `json:"description,omitempty"`
	FieldCount  int    `json:"field_count"`
}

// DetailResponse is the response for
// GET /api/v1/peripherals/{name}/registers/{register}.
type DetailResponse struct {
	Peripheral  string     `json:"peripheral"`
	Name        string     `json:"name"`
	OffsetLabel string     `json:"offset_label"`
	Description string     `json:"description,omitempty"`
	Access      string     `json:"access"`
	ResetValue  string     `json:"reset_value"`
	WordWidth   int        `json:"word_width"`
	Size        int        `json:"size,omitempty"`
	Empty       bool       `json:"empty"`
	Segments    []Segment  `json:"segments"`
	Fields      []FieldRow `json:"fields"`
}

// Segment is one box of the bit diagram, MSB first.
type Segment struct {
	Key        string  `json:"key,omitempty"`
	Reserved   bool    `json:"reserved"`
	MSB        int     `json:"msb"`
	LSB        int     `json:"lsb"`
	Label      string  `json:"label"`
	Title      string  `json:"title"`
	Fraction   float64 `json:"fraction"`
	ColorIndex int     `json:"color_index"`
}

// FieldRow is one line of the field table.
type FieldRow struct {
	Key         string      `json:"key"`
	Name        string      `json:"name"`
	Bits        string      `json:"bits"`
	MSB         int         `json:"msb"`
	LSB         int         `json:"lsb"`
	Description string      `json:"description,omitempty"`
	Access      string      `json:"access,omitempty"`
	ReadAction  string      `json:"read_action,omitempty"`
	Reset       string      `json:"reset,omitempty"`
	Values      []EnumValue `json:"values,omitempty"`
}

// EnumValue is one enumerated value of a field.
type EnumValue struct {
	Value       *int64 `json:"value"`
	Label       string `json:"label"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NavResponse is the response for GET /api/v1/nav.
type NavResponse struct {
	View       string             `json:"view"`
	Path       string             `json:"path"`
	Breadcrumb []Crumb            `json:"breadcrumb"`
	Dashboard  *DashboardResponse `json:"dashboard,omitempty"`
	Instances  *InstancesResponse `json:"instances,omitempty"`
	Registers  *RegistersResponse `json:"registers,omitempty"`
	Detail     *DetailResponse    `json:"detail,omitempty"`
}

// Crumb is one breadcrumb entry. Path is the navigation path it links to.
type Crumb struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
	Link   bool   `json:"link"`
}

// LoadResponse is the response for POST /api/v1/reload.
type LoadResponse struct {
	Source      string    `json:"source"`
	Peripherals int       `json:"peripherals"`
	Groups      int       `json:"groups"`
	Failed      []string  `json:"failed,omitempty"`
	LoadedAt    time.Time `json:"loaded_at"`
	DurationMS  float64   `json:"duration_ms"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
	// Kind and Field are set for register layout errors.
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
	Other string `json:"other,omitempty"`
}
