package uow

import (
	"context"
	"medremind/internal/core/domain/medicine"
	"medremind/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Sessions() user.SessionRepository
	Medicines() medicine.MedicineRepository
	Intakes() medicine.IntakeRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
