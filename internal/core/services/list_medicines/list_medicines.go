package listmedicines

import (
	"context"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medicine"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"
	"time"
)

type Input struct {
	UserID user.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Medicines  []medicine.MedicineWithIntakes
	TakenToday uint
	Pending    uint
}

type service struct {
	log                logging.Logger
	medicineRepository medicine.MedicineRepository
	intakeRepository   medicine.IntakeRepository
	now                func() time.Time
}

func New(
	log logging.Logger,
	medicineRepository medicine.MedicineRepository,
	intakeRepository medicine.IntakeRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if medicineRepository == nil {
		panic(e.NewNilArgumentError("medicineRepository"))
	}
	if intakeRepository == nil {
		panic(e.NewNilArgumentError("intakeRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		medicineRepository: medicineRepository,
		intakeRepository:   intakeRepository,
		now:                now,
	}
}

// Run returns the owner's entries ordered by time of day along with the
// adherence counters. The counters are recomputed from the confirmed-today
// predicate on every call since "today" changes at midnight.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	medicines, err := s.medicineRepository.ReadByOwner(ctx, input.UserID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	ids := make([]medicine.ID, 0, len(medicines))
	for _, m := range medicines {
		ids = append(ids, m.ID)
	}
	intakes, err := s.intakeRepository.ReadByMedicines(ctx, ids)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	now := s.now()
	result.Medicines = make([]medicine.MedicineWithIntakes, 0, len(medicines))
	for _, m := range medicines {
		result.Medicines = append(
			result.Medicines,
			medicine.MedicineWithIntakes{Medicine: m, Intakes: intakes[m.ID]},
		)
		if m.ConfirmedOn(now) {
			result.TakenToday++
		} else {
			result.Pending++
		}
	}

	s.log.Info(
		ctx,
		"User medicines successfully read.",
		logging.Entry("userID", input.UserID),
		logging.Entry("count", len(result.Medicines)),
		logging.Entry("takenToday", result.TakenToday),
	)
	return result, nil
}
