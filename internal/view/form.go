package view

// Mode is the state of the shared submit control.
type Mode int

const (
	// ModeCreate submits new tasks. It is the default.
	ModeCreate Mode = iota

	// ModeUpdate submits a replacement for the task being edited.
	ModeUpdate
)

// Action values carried by the submit control.
const (
	ActionAdd    = "add"
	ActionUpdate = "update"
)

// Action returns the value carried by the submit control in this mode.
func (m Mode) Action() string {
	if m == ModeUpdate {
		return ActionUpdate
	}
	return ActionAdd
}

func (m Mode) String() string { return m.Action() }

// ParseAction maps a submit control value back to a mode.
func ParseAction(action string) (Mode, bool) {
	switch action {
	case ActionAdd:
		return ModeCreate, true
	case ActionUpdate:
		return ModeUpdate, true
	}
	return ModeCreate, false
}

// Form is the task form: the two fields, the submit control mode and an
// optional notice shown above the list.
type Form struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Mode     Mode   `json:"-"`
	Notice   string `json:"notice,omitempty"`
}

// Reset clears the fields and the notice. The mode is left alone.
func (f *Form) Reset() {
	f.Title = ""
	f.Priority = ""
	f.Notice = ""
}

// Label returns the submit control text for the current mode.
func (f Form) Label() string {
	if f.Mode == ModeUpdate {
		return "Update task"
	}
	return "Add task"
}
