package notification

import (
	"context"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/medicine"
)

// Sender is the outbound delivery collaborator.
type Sender interface {
	Send(ctx context.Context, address c.Email, subject string, body string) error
}

type Outcome struct {
	v string
}

func (o Outcome) String() string {
	return o.v
}

var (
	OutcomeSent    = Outcome{v: "sent"}
	OutcomeSkipped = Outcome{v: "skipped"}
	OutcomeFailed  = Outcome{v: "failed"}
)

type SkipReason struct {
	v string
}

func (r SkipReason) String() string {
	return r.v
}

var (
	SkipReasonNone             = SkipReason{}
	SkipReasonNoAddress        = SkipReason{v: "no address"}
	SkipReasonDeleted          = SkipReason{v: "deleted"}
	SkipReasonAlreadyConfirmed = SkipReason{v: "already confirmed"}
)

// DispatchResult is the per-entry outcome of one dispatch within a tick.
type DispatchResult struct {
	MedicineID medicine.ID
	Outcome    Outcome
	SkipReason SkipReason
	Err        error
}

func Sent(id medicine.ID) DispatchResult {
	return DispatchResult{MedicineID: id, Outcome: OutcomeSent}
}

func Skipped(id medicine.ID, reason SkipReason) DispatchResult {
	return DispatchResult{MedicineID: id, Outcome: OutcomeSkipped, SkipReason: reason}
}

func Failed(id medicine.ID, err error) DispatchResult {
	return DispatchResult{MedicineID: id, Outcome: OutcomeFailed, Err: err}
}
