package dispatchreminders

import (
	"context"
	"errors"
	"fmt"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medicine"
	"medremind/internal/core/domain/notification"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	findduemedicines "medremind/internal/core/services/find_due_medicines"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Input struct {
	At time.Time
}

type Result struct {
	TickID   string
	Outcomes []notification.DispatchResult
}

type service struct {
	log                logging.Logger
	findDue            services.Service[findduemedicines.Input, findduemedicines.Result]
	medicineRepository medicine.MedicineRepository
	userRepository     user.UserRepository
	sender             notification.Sender
	sendTimeout        time.Duration
}

func New(
	log logging.Logger,
	findDue services.Service[findduemedicines.Input, findduemedicines.Result],
	medicineRepository medicine.MedicineRepository,
	userRepository user.UserRepository,
	sender notification.Sender,
	sendTimeout time.Duration,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if findDue == nil {
		panic(e.NewNilArgumentError("findDue"))
	}
	if medicineRepository == nil {
		panic(e.NewNilArgumentError("medicineRepository"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if sendTimeout <= 0 {
		panic("sendTimeout must be positive")
	}
	return &service{
		log:                log,
		findDue:            findDue,
		medicineRepository: medicineRepository,
		userRepository:     userRepository,
		sender:             sender,
		sendTimeout:        sendTimeout,
	}
}

// Run executes one dispatch batch: selects the due entries and notifies
// each owner. Dispatches run concurrently, one per entry, each bounded by
// the send timeout; one entry's failure never affects the others. A store
// error while selecting the due set aborts the whole tick.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	result.TickID = uuid.New().String()

	due, err := s.findDue.Run(ctx, findduemedicines.Input{At: input.At})
	if err != nil {
		return result, err
	}
	if len(due.Medicines) == 0 {
		return result, nil
	}

	s.log.Info(
		ctx,
		"Dispatching due medicine reminders.",
		logging.Entry("tickID", result.TickID),
		logging.Entry("dueKey", due.DueKey),
		logging.Entry("count", len(due.Medicines)),
	)

	result.Outcomes = make([]notification.DispatchResult, len(due.Medicines))
	var wg sync.WaitGroup
	wg.Add(len(due.Medicines))
	for ix, m := range due.Medicines {
		ix, m := ix, m
		go func() {
			defer wg.Done()
			result.Outcomes[ix] = s.dispatch(ctx, input.At, m)
		}()
	}
	wg.Wait()

	for _, outcome := range result.Outcomes {
		entries := []logging.LogEntry{
			logging.Entry("tickID", result.TickID),
			logging.Entry("medicineID", outcome.MedicineID),
			logging.Entry("outcome", outcome.Outcome),
		}
		switch outcome.Outcome {
		case notification.OutcomeFailed:
			entries = append(entries, logging.Entry("err", outcome.Err))
			s.log.Error(ctx, "Reminder dispatch failed.", entries...)
		case notification.OutcomeSkipped:
			entries = append(entries, logging.Entry("reason", outcome.SkipReason))
			s.log.Info(ctx, "Reminder dispatch skipped.", entries...)
		default:
			s.log.Info(ctx, "Reminder dispatched.", entries...)
		}
	}
	return result, nil
}

func (s *service) dispatch(ctx context.Context, at time.Time, m medicine.Medicine) notification.DispatchResult {
	// Re-read the entry: it may have been deleted or confirmed after the
	// due set was selected. Both races resolve to a skip, not an error.
	current, err := s.medicineRepository.GetByID(ctx, m.ID)
	if err != nil {
		if errors.Is(err, medicine.ErrMedicineDoesNotExist) {
			return notification.Skipped(m.ID, notification.SkipReasonDeleted)
		}
		return notification.Failed(m.ID, err)
	}
	if current.ConfirmedOn(at) {
		return notification.Skipped(m.ID, notification.SkipReasonAlreadyConfirmed)
	}

	owner, err := s.userRepository.GetByID(ctx, current.OwnerID)
	if err != nil {
		if errors.Is(err, user.ErrUserDoesNotExist) {
			return notification.Skipped(m.ID, notification.SkipReasonNoAddress)
		}
		return notification.Failed(m.ID, err)
	}
	address, ok := owner.ContactAddress()
	if !ok {
		return notification.Skipped(m.ID, notification.SkipReasonNoAddress)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	subject, body := buildMessage(current)
	if err := s.sender.Send(sendCtx, address, subject, body); err != nil {
		return notification.Failed(m.ID, err)
	}
	return notification.Sent(m.ID)
}

// buildMessage is deterministic in the entry's fields.
func buildMessage(m medicine.Medicine) (subject string, body string) {
	subject = fmt.Sprintf("Reminder: take %s", m.Name)
	body = fmt.Sprintf(
		"It's time to take your medicine.\n\nMedicine: %s\nDosage: %s\nTime: %s\n\n"+
			"Please log in to your dashboard to mark it as taken.",
		m.Name,
		m.Dosage,
		m.TimeOfDay,
	)
	return subject, body
}
