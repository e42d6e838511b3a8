package uow

import (
	"context"
	"medremind/internal/core/domain/medicine"
	"medremind/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository     *user.FakeUserRepository
	SessionRepository  *user.FakeSessionRepository
	MedicineRepository *medicine.FakeMedicineRepository
	IntakeRepository   *medicine.FakeIntakeRepository
	WasRollbackCalled  bool
	WasCommitCalled    bool
}

func NewFakeUnitOfWorkContext() *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:     user.NewFakeUserRepository(),
		SessionRepository:  user.NewFakeSessionRepository(),
		MedicineRepository: medicine.NewFakeMedicineRepository(),
		IntakeRepository:   medicine.NewFakeIntakeRepository(),
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Sessions() user.SessionRepository {
	return c.SessionRepository
}

func (c *FakeUnitOfWorkContext) Medicines() medicine.MedicineRepository {
	return c.MedicineRepository
}

func (c *FakeUnitOfWorkContext) Intakes() medicine.IntakeRepository {
	return c.IntakeRepository
}

type FakeUnitOfWork struct {
	Context    *FakeUnitOfWorkContext
	BeginError error
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{Context: NewFakeUnitOfWorkContext()}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginError != nil {
		return nil, u.BeginError
	}
	return u.Context, nil
}

func (u *FakeUnitOfWork) Medicines() *medicine.FakeMedicineRepository {
	return u.Context.MedicineRepository
}

func (u *FakeUnitOfWork) Intakes() *medicine.FakeIntakeRepository {
	return u.Context.IntakeRepository
}
