package services

import (
	"medremind/internal/app/deps"
	drl "medremind/internal/core/domain/rate_limiter"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"
	confirmintake "medremind/internal/core/services/confirm_intake"
	createmedicine "medremind/internal/core/services/create_medicine"
	deletemedicine "medremind/internal/core/services/delete_medicine"
	dispatchreminders "medremind/internal/core/services/dispatch_reminders"
	findduemedicines "medremind/internal/core/services/find_due_medicines"
	getuserbysessiontoken "medremind/internal/core/services/get_user_by_session_token"
	listmedicines "medremind/internal/core/services/list_medicines"
	ratelimiting "medremind/internal/core/services/rate_limiting"
)

type Services struct {
	GetUserBySessionToken services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]

	CreateMedicine services.Service[createmedicine.Input, createmedicine.Result]
	DeleteMedicine services.Service[deletemedicine.Input, deletemedicine.Result]
	ListMedicines  services.Service[listmedicines.Input, listmedicines.Result]
	ConfirmIntake  services.Service[confirmintake.Input, confirmintake.Result]

	FindDueMedicines  services.Service[findduemedicines.Input, findduemedicines.Result]
	DispatchReminders services.Service[dispatchreminders.Input, dispatchreminders.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.SessionRepository,
	)

	s.CreateMedicine = auth.WithAuthentication(
		deps.SessionRepository,
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Minute, Value: 10},
			createmedicine.New(
				deps.Logger,
				deps.UnitOfWork,
				deps.Now,
			),
		),
	)
	s.DeleteMedicine = auth.WithAuthentication(
		deps.SessionRepository,
		deletemedicine.New(
			deps.Logger,
			deps.UnitOfWork,
		),
	)
	s.ListMedicines = auth.WithAuthentication(
		deps.SessionRepository,
		listmedicines.New(
			deps.Logger,
			deps.MedicineRepository,
			deps.IntakeRepository,
			deps.Now,
		),
	)
	s.ConfirmIntake = auth.WithAuthentication(
		deps.SessionRepository,
		confirmintake.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.Now,
		),
	)

	s.FindDueMedicines = findduemedicines.New(
		deps.Logger,
		deps.MedicineRepository,
	)
	s.DispatchReminders = dispatchreminders.New(
		deps.Logger,
		s.FindDueMedicines,
		deps.MedicineRepository,
		deps.UserRepository,
		deps.ReminderSender,
		deps.Config.DispatchTimeout,
	)

	return s
}
