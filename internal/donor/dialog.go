package donor

import (
	"context"
	"sync"
)

// PendingSelection holds the campaign chosen for confirmation plus an opaque
// handle to the control that triggered it. At most one exists at a time.
type PendingSelection struct {
	Campaign Campaign
	Handle   any
}

// DialogController is the two-state machine gating the join action behind an
// explicit confirmation: Idle, or AwaitingConfirmation with one pending
// selection.
type DialogController struct {
	state     *State
	submitter *Submitter
	strict    bool

	mu      sync.Mutex
	pending *PendingSelection
}

// NewDialogController builds a dialog controller. With strict enabled,
// invalid transitions panic instead of degrading to no-ops.
func NewDialogController(state *State, submitter *Submitter, strict bool) *DialogController {
	return &DialogController{state: state, submitter: submitter, strict: strict}
}

// Open starts a confirmation for a joinable campaign, replacing any pending
// selection. Calling it on a closed, joined or pending row is a caller bug.
func (d *DialogController) Open(campaign Campaign, handle any) error {
	id := CanonicalID(campaign.ID)
	if status := d.state.DeriveStatus(id); status != StatusJoinable {
		return d.violation("open", "campaign is not joinable (status "+status.String()+")")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = &PendingSelection{Campaign: campaign, Handle: handle}
	return nil
}

// Confirm submits the held selection. The campaign id is captured by value
// before the dialog returns to Idle, so a Cancel or a new Open racing the
// submission cannot redirect it to a different campaign.
func (d *DialogController) Confirm(ctx context.Context) (Outcome, error) {
	d.mu.Lock()
	selection := d.pending
	d.pending = nil
	d.mu.Unlock()

	if selection == nil {
		return OutcomeFailed, d.violation("confirm", "no pending selection")
	}
	return d.submitter.Submit(ctx, selection.Campaign.ID)
}

// Cancel discards the pending selection without side effects. Explicit
// cancel, outside-click and escape all route here; cancelling while Idle is
// a no-op.
func (d *DialogController) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = nil
}

// Pending returns the current selection, or nil when the dialog is idle.
func (d *DialogController) Pending() *PendingSelection {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return nil
	}
	copied := *d.pending
	return &copied
}

func (d *DialogController) violation(op, reason string) error {
	err := &ProgrammingError{Op: op, Reason: reason}
	if d.strict {
		panic(err)
	}
	return err
}
