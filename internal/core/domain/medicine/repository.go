package medicine

import (
	"context"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	OwnerID       user.ID
	Name          string
	Dosage        string
	TimeOfDay     ClockTime
	AttachmentRef c.Optional[string]
	CreatedAt     time.Time
}

type MedicineRepository interface {
	Create(ctx context.Context, input CreateInput) (Medicine, error)
	// Lock takes a row lock on the entry; works only within a transaction.
	Lock(ctx context.Context, id ID) error
	GetByID(ctx context.Context, id ID) (Medicine, error)
	// ReadByOwner returns the owner's entries ordered by time of day.
	ReadByOwner(ctx context.Context, owner user.ID) ([]Medicine, error)
	// ReadDue returns all entries with the given canonical time of day,
	// regardless of confirmation state.
	ReadDue(ctx context.Context, timeOfDay ClockTime) ([]Medicine, error)
	SetLastConfirmed(ctx context.Context, id ID, at time.Time) (Medicine, error)
	Delete(ctx context.Context, id ID) error
}

type CreateIntakeInput struct {
	MedicineID ID
	TakenAt    time.Time
}

// IntakeRepository is the append-only confirmation history. Rows are never
// updated; appends do not rewrite the existing sequence.
type IntakeRepository interface {
	Create(ctx context.Context, input CreateIntakeInput) error
	ReadByMedicine(ctx context.Context, id ID) ([]time.Time, error)
	ReadByMedicines(ctx context.Context, ids []ID) (map[ID][]time.Time, error)
}
