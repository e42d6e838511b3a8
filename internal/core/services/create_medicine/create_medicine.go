package createmedicine

import (
	"context"
	"fmt"
	c "medremind/internal/core/domain/common"
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
	UserID        user.ID
	Name          string
	Dosage        string
	TimeOfDay     medicine.ClockTime
	AttachmentRef c.Optional[string]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("create-medicine::%d", i.UserID)
}

type Result struct {
	Medicine medicine.Medicine
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

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	newMedicine := medicine.Medicine{
		OwnerID:   input.UserID,
		Name:      input.Name,
		Dosage:    input.Dosage,
		TimeOfDay: input.TimeOfDay,
	}
	if err := newMedicine.Validate(); err != nil {
		s.log.Info(ctx, "Invalid medicine data.", logging.Entry("input", input), logging.Entry("err", err))
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	created, err := uow.Medicines().Create(
		ctx,
		medicine.CreateInput{
			OwnerID:       input.UserID,
			Name:          input.Name,
			Dosage:        input.Dosage,
			TimeOfDay:     input.TimeOfDay,
			AttachmentRef: input.AttachmentRef,
			CreatedAt:     s.now(),
		},
	)
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
		"Medicine has been successfully created.",
		logging.Entry("medicineID", created.ID),
		logging.Entry("userID", created.OwnerID),
		logging.Entry("timeOfDay", created.TimeOfDay),
	)
	result.Medicine = created
	return result, nil
}
