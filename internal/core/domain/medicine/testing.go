package medicine

import (
	"context"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/user"
	"sort"
	"sync"
	"time"
)

// FakeMedicineRepository is an in-memory repository for service tests.
// Error fields, when set, short-circuit the corresponding method.
type FakeMedicineRepository struct {
	CreateError error
	GetError    error
	ReadError   error
	UpdateError error
	DeleteError error

	Medicines map[ID]Medicine
	nextID    ID
	lock      sync.Mutex
}

func NewFakeMedicineRepository() *FakeMedicineRepository {
	return &FakeMedicineRepository{Medicines: make(map[ID]Medicine)}
}

func (r *FakeMedicineRepository) Create(ctx context.Context, input CreateInput) (m Medicine, err error) {
	if r.CreateError != nil {
		return m, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextID++
	m = Medicine{
		ID:            r.nextID,
		OwnerID:       input.OwnerID,
		Name:          input.Name,
		Dosage:        input.Dosage,
		TimeOfDay:     input.TimeOfDay,
		AttachmentRef: input.AttachmentRef,
		CreatedAt:     input.CreatedAt,
	}
	r.Medicines[m.ID] = m
	return m, nil
}

func (r *FakeMedicineRepository) Lock(ctx context.Context, id ID) error {
	return nil
}

func (r *FakeMedicineRepository) GetByID(ctx context.Context, id ID) (Medicine, error) {
	if r.GetError != nil {
		return Medicine{}, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	m, ok := r.Medicines[id]
	if !ok {
		return Medicine{}, ErrMedicineDoesNotExist
	}
	return m, nil
}

func (r *FakeMedicineRepository) ReadByOwner(ctx context.Context, owner user.ID) ([]Medicine, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	medicines := make([]Medicine, 0)
	for _, m := range r.Medicines {
		if m.OwnerID == owner {
			medicines = append(medicines, m)
		}
	}
	sort.Slice(medicines, func(i, j int) bool {
		if medicines[i].TimeOfDay == medicines[j].TimeOfDay {
			return medicines[i].ID < medicines[j].ID
		}
		return medicines[i].TimeOfDay.String() < medicines[j].TimeOfDay.String()
	})
	return medicines, nil
}

func (r *FakeMedicineRepository) ReadDue(ctx context.Context, timeOfDay ClockTime) ([]Medicine, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	medicines := make([]Medicine, 0)
	for _, m := range r.Medicines {
		if m.TimeOfDay == timeOfDay {
			medicines = append(medicines, m)
		}
	}
	sort.Slice(medicines, func(i, j int) bool { return medicines[i].ID < medicines[j].ID })
	return medicines, nil
}

func (r *FakeMedicineRepository) SetLastConfirmed(ctx context.Context, id ID, at time.Time) (Medicine, error) {
	if r.UpdateError != nil {
		return Medicine{}, r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	m, ok := r.Medicines[id]
	if !ok {
		return Medicine{}, ErrMedicineDoesNotExist
	}
	m.LastConfirmed = c.NewOptional(at, true)
	r.Medicines[id] = m
	return m, nil
}

func (r *FakeMedicineRepository) Delete(ctx context.Context, id ID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Medicines[id]; !ok {
		return ErrMedicineDoesNotExist
	}
	delete(r.Medicines, id)
	return nil
}

type FakeIntakeRepository struct {
	CreateError error
	ReadError   error

	Intakes map[ID][]time.Time
	lock    sync.Mutex
}

func NewFakeIntakeRepository() *FakeIntakeRepository {
	return &FakeIntakeRepository{Intakes: make(map[ID][]time.Time)}
}

func (r *FakeIntakeRepository) Create(ctx context.Context, input CreateIntakeInput) error {
	if r.CreateError != nil {
		return r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Intakes[input.MedicineID] = append(r.Intakes[input.MedicineID], input.TakenAt)
	return nil
}

func (r *FakeIntakeRepository) ReadByMedicine(ctx context.Context, id ID) ([]time.Time, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]time.Time(nil), r.Intakes[id]...), nil
}

func (r *FakeIntakeRepository) ReadByMedicines(ctx context.Context, ids []ID) (map[ID][]time.Time, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	intakes := make(map[ID][]time.Time, len(ids))
	for _, id := range ids {
		if history, ok := r.Intakes[id]; ok {
			intakes[id] = append([]time.Time(nil), history...)
		}
	}
	return intakes, nil
}
