// Package nav models the viewer's navigation as an immutable state value and
// a pure transition function.
//
// The viewer is always in exactly one of four views:
//
//	Dashboard                         categories and groups
//	Instances(group)                  instances of one group
//	Registers(group, peripheral)      registers of one instance
//	Detail(group, peripheral, reg)    bit layout of one register
//
// Apply returns the next state for an action and never mutates its input.
package nav

import (
	"errors"
	"fmt"
	"strings"
)

// Navigation errors.
var (
	ErrInvalidTransition = errors.New("invalid navigation transition")
	ErrInvalidPath       = errors.New("invalid navigation path")
)

// View identifies which screen a State shows.
type View uint8

const (
	// ViewDashboard lists categories and groups.
	ViewDashboard View = iota
	// ViewInstances lists the instances of a group.
	ViewInstances
	// ViewRegisters lists the registers of a peripheral.
	ViewRegisters
	// ViewDetail shows the bit layout of a register.
	ViewDetail
)

// String returns the view name.
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewInstances:
		return "instances"
	case ViewRegisters:
		return "registers"
	case ViewDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// ParseView parses a view name as returned by View.String.
func ParseView(s string) (View, error) {
	switch strings.ToLower(s) {
	case "dashboard":
		return ViewDashboard, nil
	case "instances":
		return ViewInstances, nil
	case "registers":
		return ViewRegisters, nil
	case "detail":
		return ViewDetail, nil
	default:
		return 0, fmt.Errorf("%w: unknown view %q", ErrInvalidPath, s)
	}
}

// State is a navigation position. Fields deeper than the view are empty.
// The zero value is the dashboard.
type State struct {
	view       View
	group      string
	peripheral string
	register   string
}

// Dashboard returns the root state.
func Dashboard() State {
	return State{}
}

// Instances returns the state showing a group.
func Instances(group string) State {
	return State{view: ViewInstances, group: group}
}

// Registers returns the state showing a peripheral of a group.
func Registers(group, peripheral string) State {
	return State{view: ViewRegisters, group: group, peripheral: peripheral}
}

// Detail returns the state showing one register.
func Detail(group, peripheral, register string) State {
	return State{view: ViewDetail, group: group, peripheral: peripheral, register: register}
}

// View returns the current view.
func (s State) View() View { return s.view }

// Group returns the selected group, if any.
func (s State) Group() string { return s.group }

// Peripheral returns the selected peripheral, if any.
func (s State) Peripheral() string { return s.peripheral }

// Register returns the selected register, if any.
func (s State) Register() string { return s.register }

// Path renders the state as "group/peripheral/register", truncated to the
// current view. The dashboard is the empty path.
func (s State) Path() string {
	switch s.view {
	case ViewInstances:
		return s.group
	case ViewRegisters:
		return s.group + "/" + s.peripheral
	case ViewDetail:
		return s.group + "/" + s.peripheral + "/" + s.register
	default:
		return ""
	}
}

func (s State) String() string {
	if s.view == ViewDashboard {
		return "dashboard"
	}
	return s.view.String() + ":" + s.Path()
}

// ParsePath parses a path produced by State.Path.
func ParsePath(path string) (State, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return Dashboard(), nil
	}
	if strings.Contains(path, "//") {
		return State{}, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	parts := strings.Split(path, "/")
	switch len(parts) {
	case 1:
		return Instances(parts[0]), nil
	case 2:
		return Registers(parts[0], parts[1]), nil
	case 3:
		return Detail(parts[0], parts[1], parts[2]), nil
	default:
		return State{}, fmt.Errorf("%w: %q has %d segments", ErrInvalidPath, path, len(parts))
	}
}
