package response

import (
	"medremind/internal/core/domain/medicine"
	"time"
)

type Medicine struct {
	ID            int64      `json:"id"`
	OwnerID       int64      `json:"owner_id"`
	Name          string     `json:"name"`
	Dosage        string     `json:"dosage"`
	TimeOfDay     string     `json:"time_of_day"`
	LastConfirmed *time.Time `json:"last_confirmed"`
	AttachmentRef *string    `json:"attachment_ref"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (m *Medicine) FromDomainType(dm medicine.Medicine) {
	m.ID = int64(dm.ID)
	m.OwnerID = int64(dm.OwnerID)
	m.Name = dm.Name
	m.Dosage = dm.Dosage
	m.TimeOfDay = dm.TimeOfDay.String()
	if dm.LastConfirmed.IsPresent {
		m.LastConfirmed = &dm.LastConfirmed.Value
	}
	if dm.AttachmentRef.IsPresent {
		m.AttachmentRef = &dm.AttachmentRef.Value
	}
	m.CreatedAt = dm.CreatedAt
}

type MedicineWithIntakes struct {
	Medicine
	TakenToday bool        `json:"taken_today"`
	Intakes    []time.Time `json:"intakes"`
}

func (m *MedicineWithIntakes) FromDomainType(dm medicine.MedicineWithIntakes, now time.Time) {
	m.Medicine.FromDomainType(dm.Medicine)
	m.TakenToday = dm.ConfirmedOn(now)
	m.Intakes = dm.Intakes
	if m.Intakes == nil {
		m.Intakes = make([]time.Time, 0)
	}
}
