package nav

import "fmt"

// ActionKind enumerates navigation actions.
type ActionKind uint8

const (
	// ActionSelectGroup opens a group from the dashboard.
	ActionSelectGroup ActionKind = iota
	// ActionSelectPeripheral opens an instance from the instance list.
	ActionSelectPeripheral
	// ActionSelectRegister opens a register from the register list.
	ActionSelectRegister
	// ActionBack goes up one level.
	ActionBack
	// ActionHome returns to the dashboard.
	ActionHome
	// ActionJump goes to an ancestor view, like a breadcrumb click.
	ActionJump
)

func (k ActionKind) String() string {
	switch k {
	case ActionSelectGroup:
		return "select-group"
	case ActionSelectPeripheral:
		return "select-peripheral"
	case ActionSelectRegister:
		return "select-register"
	case ActionBack:
		return "back"
	case ActionHome:
		return "home"
	case ActionJump:
		return "jump"
	default:
		return fmt.Sprintf("action(%d)", uint8(k))
	}
}

// Action is a navigation request.
type Action struct {
	Kind   ActionKind
	Name   string // selected item for the Select actions
	Target View   // destination for ActionJump
}

// SelectGroup opens a group.
func SelectGroup(name string) Action { return Action{Kind: ActionSelectGroup, Name: name} }

// SelectPeripheral opens a peripheral.
func SelectPeripheral(name string) Action { return Action{Kind: ActionSelectPeripheral, Name: name} }

// SelectRegister opens a register.
func SelectRegister(name string) Action { return Action{Kind: ActionSelectRegister, Name: name} }

// Back goes up one level. Back on the dashboard stays on the dashboard.
func Back() Action { return Action{Kind: ActionBack} }

// Home returns to the dashboard.
func Home() Action { return Action{Kind: ActionHome} }

// JumpTo goes to an ancestor view of the current state.
func JumpTo(v View) Action { return Action{Kind: ActionJump, Target: v} }

// Apply returns the state reached from s by a. Selections are only valid
// from the parent view; jumps only to the current view or an ancestor.
func Apply(s State, a Action) (State, error) {
	switch a.Kind {
	case ActionSelectGroup:
		if s.view != ViewDashboard {
			return s, invalid(s, "select group")
		}
		if a.Name == "" {
			return s, fmt.Errorf("%w: empty group name", ErrInvalidTransition)
		}
		return Instances(a.Name), nil

	case ActionSelectPeripheral:
		if s.view != ViewInstances {
			return s, invalid(s, "select peripheral")
		}
		if a.Name == "" {
			return s, fmt.Errorf("%w: empty peripheral name", ErrInvalidTransition)
		}
		return Registers(s.group, a.Name), nil

	case ActionSelectRegister:
		if s.view != ViewRegisters {
			return s, invalid(s, "select register")
		}
		if a.Name == "" {
			return s, fmt.Errorf("%w: empty register name", ErrInvalidTransition)
		}
		return Detail(s.group, s.peripheral, a.Name), nil

	case ActionBack:
		switch s.view {
		case ViewDetail:
			return Registers(s.group, s.peripheral), nil
		case ViewRegisters:
			return Instances(s.group), nil
		default:
			return Dashboard(), nil
		}

	case ActionHome:
		return Dashboard(), nil

	case ActionJump:
		if a.Target > s.view {
			return s, invalid(s, "jump to "+a.Target.String())
		}
		switch a.Target {
		case ViewDashboard:
			return Dashboard(), nil
		case ViewInstances:
			return Instances(s.group), nil
		case ViewRegisters:
			return Registers(s.group, s.peripheral), nil
		default:
			return s, nil
		}

	default:
		return s, fmt.Errorf("%w: unknown action %d", ErrInvalidTransition, a.Kind)
	}
}

func invalid(s State, what string) error {
	return fmt.Errorf("%w: cannot %s from %s", ErrInvalidTransition, what, s.view)
}
