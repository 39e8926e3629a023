package domain

// WizardStep position in the booking wizard
type WizardStep int

const (
	StepService  WizardStep = 1
	StepDateTime WizardStep = 2
	StepAddress  WizardStep = 3
	StepConfirm  WizardStep = 4

	FirstStep = StepService
	LastStep  = StepConfirm
)

// String returns the step name shown in the wizard header
func (s WizardStep) String() string {
	switch s {
	case StepService:
		return "service"
	case StepDateTime:
		return "date_time"
	case StepAddress:
		return "address"
	case StepConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// IsTerminal returns true on the confirm step, where Next becomes Submit
func (s WizardStep) IsTerminal() bool {
	return s == LastStep
}

// Direction last navigation direction, used only for transition animation
type Direction int

const (
	DirectionNone     Direction = 0
	DirectionForward  Direction = 1
	DirectionBackward Direction = -1
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}
