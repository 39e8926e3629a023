package wizard

import "github.com/m04kA/SMC-BookingWizard/internal/domain"

// Primary actions of the wizard footer
const (
	ActionNext   = "next"
	ActionSubmit = "submit"
)

// StepController linear Service -> DateTime -> Address -> Confirm sequence.
// Not safe for concurrent use; Session guards it with its mutex.
type StepController struct {
	step      domain.WizardStep
	direction domain.Direction
}

func NewStepController() *StepController {
	return &StepController{step: domain.FirstStep, direction: domain.DirectionNone}
}

// Advance moves one step forward. No-op on the last step.
// Required fields are not checked here.
func (c *StepController) Advance() bool {
	if c.step >= domain.LastStep {
		return false
	}
	c.step++
	c.direction = domain.DirectionForward
	return true
}

// Retreat moves one step back. No-op on the first step.
func (c *StepController) Retreat() bool {
	if c.step <= domain.FirstStep {
		return false
	}
	c.step--
	c.direction = domain.DirectionBackward
	return true
}

func (c *StepController) Step() domain.WizardStep { return c.step }

func (c *StepController) Direction() domain.Direction { return c.direction }

func (c *StepController) IsTerminal() bool { return c.step.IsTerminal() }

func (c *StepController) CanRetreat() bool { return c.step > domain.FirstStep }

// PrimaryAction "submit" on the confirm step, "next" otherwise
func (c *StepController) PrimaryAction() string {
	if c.IsTerminal() {
		return ActionSubmit
	}
	return ActionNext
}
