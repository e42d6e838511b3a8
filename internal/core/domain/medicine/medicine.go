package medicine

import (
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/user"
	"time"

	"github.com/golang-module/carbon/v2"
)

type ID int64

type Medicine struct {
	ID            ID
	OwnerID       user.ID
	Name          string
	Dosage        string
	TimeOfDay     ClockTime
	LastConfirmed c.Optional[time.Time]
	AttachmentRef c.Optional[string]
	CreatedAt     time.Time
}

func (m *Medicine) Validate() error {
	if m.Name == "" {
		return e.NewInvalidStateError("medicine name must not be empty")
	}
	if m.Dosage == "" {
		return e.NewInvalidStateError("medicine dosage must not be empty")
	}
	return nil
}

// ConfirmedOn reports whether the entry has been confirmed on the calendar
// day of at, in at's location. This derived predicate is the single source
// of truth for both reminder suppression and adherence reporting.
func (m *Medicine) ConfirmedOn(at time.Time) bool {
	if !m.LastConfirmed.IsPresent {
		return false
	}
	// LastConfirmed may come back from the store in a different location
	// (pgx decodes timestamps in the process-local zone); the calendar day
	// is always taken in the reference zone at carries.
	lastConfirmed := m.LastConfirmed.Value.In(at.Location())
	return carbon.Time2Carbon(lastConfirmed).IsSameDay(carbon.Time2Carbon(at))
}

// IsDueAt reports whether the entry is due at the given instant.
func (m *Medicine) IsDueAt(at time.Time) bool {
	return m.TimeOfDay == ClockTimeOf(at) && !m.ConfirmedOn(at)
}

// MedicineWithIntakes pairs an entry with its chronologically ordered
// confirmation history. The history may contain more records than there
// were reminder occurrences: every confirm call appends.
type MedicineWithIntakes struct {
	Medicine
	Intakes []time.Time
}
