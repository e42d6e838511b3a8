package findduemedicines

import (
	"context"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medicine"
	"medremind/internal/core/services"
	"time"
)

type Input struct {
	At time.Time
}

type Result struct {
	DueKey    medicine.ClockTime
	Medicines []medicine.Medicine
}

type service struct {
	log                logging.Logger
	medicineRepository medicine.MedicineRepository
}

func New(
	log logging.Logger,
	medicineRepository medicine.MedicineRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if medicineRepository == nil {
		panic(e.NewNilArgumentError("medicineRepository"))
	}
	return &service{
		log:                log,
		medicineRepository: medicineRepository,
	}
}

// Run selects the entries due at the given instant: time of day equal to
// the instant's canonical due key and not yet confirmed on that calendar
// day. No side effects; entries with the same owner and time are all
// returned.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	result.DueKey = medicine.ClockTimeOf(input.At)

	candidates, err := s.medicineRepository.ReadDue(ctx, result.DueKey)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("dueKey", result.DueKey))
		return result, err
	}

	result.Medicines = make([]medicine.Medicine, 0, len(candidates))
	for _, m := range candidates {
		if m.ConfirmedOn(input.At) {
			continue
		}
		result.Medicines = append(result.Medicines, m)
	}

	s.log.Debug(
		ctx,
		"Due medicines selected.",
		logging.Entry("dueKey", result.DueKey),
		logging.Entry("candidateCount", len(candidates)),
		logging.Entry("dueCount", len(result.Medicines)),
	)
	return result, nil
}
