package deletemedicine

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
	Medicine medicine.Medicine
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
	}
}

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

	err = medicineRepository.Delete(ctx, m.ID)
	if err != nil && !errors.Is(err, medicine.ErrMedicineDoesNotExist) {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Medicine has been successfully deleted.",
		logging.Entry("medicineID", m.ID),
		logging.Entry("userID", m.OwnerID),
	)
	result.Medicine = m
	return result, nil
}
