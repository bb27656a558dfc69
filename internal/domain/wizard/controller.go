package wizard

import (
	"context"
	"sync"
	"time"

	"onboard/internal/validation"
)

// Transport is the external submission collaborator. The call may block for
// network latency; the controller guards against re-entry while it runs.
type Transport interface {
	Submit(ctx context.Context, rec Record) error
}

// StepInfo describes the current position for rendering collaborators.
type StepInfo struct {
	Index       int    `json:"index"`
	TotalSteps  int    `json:"totalSteps"`
	SectionName string `json:"sectionName"`
}

// Controller owns one in-flight onboarding record and its step state machine.
// It is the single mutator of the record; rendering collaborators only ever
// see snapshots.
type Controller struct {
	mu         sync.Mutex
	record     Record
	flags      Flags
	plan       []Step
	index      int
	submitting bool
	submitted  bool
	lookups    Lookups
	transport  Transport
	now        func() time.Time
}

func NewController(lookups Lookups, transport Transport) *Controller {
	c := &Controller{
		lookups:   lookups,
		transport: transport,
		now:       time.Now,
	}
	c.record = NewRecord()
	c.reconcile()
	return c
}

// reconcile recomputes flags and the step plan from the record, attaches or
// detaches conditional sections, and clamps the current index into the new
// valid range. Must be called with the lock held after every mutation.
func (c *Controller) reconcile() {
	c.flags = DeriveFlagsAt(c.record, c.now())
	reconcileSections(&c.record, c.flags)
	c.plan = ComputeSteps(c.flags)
	c.index = clampIndex(c.index, len(c.plan))
}

func (c *Controller) CurrentStep() StepInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return StepInfo{
		Index:       c.index,
		TotalSteps:  len(c.plan),
		SectionName: c.plan[c.index].Section,
	}
}

// Snapshot returns a read-only deep copy of the record.
func (c *Controller) Snapshot() Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record.Clone()
}

func (c *Controller) Flags() Flags {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flags
}

func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Controller) Submitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}

// Violations evaluates the rule set for one section for live inline display.
// Sections absent from the current plan report nothing.
func (c *Controller) Violations(section string) []validation.Violation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ValidateSection(c.record, section, c.flags, c.lookups)
}

// MutateField applies one field edit, then recomputes derived flags and the
// step plan so conditional sections appear or disappear immediately.
func (c *Controller) MutateField(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitting
	}
	if c.submitted {
		return &TransitionError{Op: "mutateField", Reason: "record already submitted"}
	}
	if err := applyField(&c.record, path, value); err != nil {
		return err
	}
	c.reconcile()
	return nil
}

// Next advances one step after the current section validates cleanly. The
// plan is recomputed first so edits made during the current step are honored.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitting
	}
	if c.submitted {
		return &TransitionError{Op: "next", Reason: "record already submitted"}
	}
	if c.plan[c.index].Terminal {
		return &TransitionError{Op: "next", Reason: "already on the final step"}
	}

	section := c.plan[c.index].Section
	if violations := ValidateSection(c.record, section, c.flags, c.lookups); len(violations) > 0 {
		return &ValidationError{Section: section, Violations: violations}
	}

	c.reconcile()
	c.index = clampIndex(c.index+1, len(c.plan))
	return nil
}

// Back always succeeds from any non-initial step. Leaving the review step
// backward clears the confirmation flag: any edit forces a fresh review.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitting
	}
	if c.submitted {
		return &TransitionError{Op: "back", Reason: "record already submitted"}
	}
	if c.index == 0 {
		return &TransitionError{Op: "back", Reason: "already on the first step"}
	}
	if c.plan[c.index].Terminal {
		c.record.Confirmation = false
	}
	c.index--
	return nil
}

// Submit validates the whole record and hands the assembled result to the
// transport. On transport failure the controller stays on the review step and
// the confirmation flag is deliberately left true so a transient error does
// not force a re-review.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitting
	}
	if c.submitted {
		c.mu.Unlock()
		return &TransitionError{Op: "submit", Reason: "record already submitted"}
	}
	if !c.plan[c.index].Terminal {
		c.mu.Unlock()
		return &TransitionError{Op: "submit", Reason: "not on the review step"}
	}
	if !c.record.Confirmation {
		violations := validateConfirmation(c.record)
		c.mu.Unlock()
		return &ValidationError{Section: SectionReview, Violations: violations}
	}
	for _, step := range c.plan {
		if step.Terminal {
			continue
		}
		if violations := ValidateSection(c.record, step.Section, c.flags, c.lookups); len(violations) > 0 {
			c.mu.Unlock()
			return &ValidationError{Section: step.Section, Violations: violations}
		}
	}

	assembled := Assemble(c.record, c.flags)
	c.submitting = true
	c.mu.Unlock()

	err := c.transport.Submit(ctx, assembled)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		return &SubmissionError{Err: err}
	}
	c.submitted = true
	return nil
}

// Assembled returns the record as it would be submitted right now.
func (c *Controller) Assembled() Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Assemble(c.record, c.flags)
}

// Reset returns the controller to the initial state with an empty record.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitting
	}
	c.record = NewRecord()
	c.index = 0
	c.submitted = false
	c.reconcile()
	return nil
}
