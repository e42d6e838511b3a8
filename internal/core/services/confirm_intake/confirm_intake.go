package confirmintake

import (
	"context"
	"errors"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medicine"
	uow "medremind/internal/core/domain/unit_of_work"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"
	"time"
)

type Input struct {
	UserID     user.ID
	MedicineID medicine.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Medicine medicine.MedicineWithIntakes
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		now:        now,
	}
}

// Run records one intake: LastConfirmed is overwritten with the current
// instant and one history record is appended. Repeated confirmations on
// the same day all append; the confirmed-today predicate stays true after
// the first one, so the scheduler will not re-notify that day.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	medicineRepository := uow.Medicines()
	if err := medicineRepository.Lock(ctx, input.MedicineID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	m, err := medicineRepository.GetByID(ctx, input.MedicineID)
	if err != nil {
		switch {
		case errors.Is(err, medicine.ErrMedicineDoesNotExist):
			s.log.Info(ctx, "Medicine not found.", logging.Entry("input", input))
		default:
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	if m.OwnerID != input.UserID {
		s.log.Info(ctx, "Medicine belongs to another user.", logging.Entry("input", input))
		return result, medicine.ErrMedicinePermission
	}

	takenAt := s.now()
	confirmed, err := medicineRepository.SetLastConfirmed(ctx, m.ID, takenAt)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	err = uow.Intakes().Create(ctx, medicine.CreateIntakeInput{MedicineID: m.ID, TakenAt: takenAt})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	intakes, err := uow.Intakes().ReadByMedicine(ctx, m.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Medicine intake has been confirmed.",
		logging.Entry("medicineID", m.ID),
		logging.Entry("userID", m.OwnerID),
		logging.Entry("takenAt", takenAt),
	)
	result.Medicine = medicine.MedicineWithIntakes{Medicine: confirmed, Intakes: intakes}
	return result, nil
}
