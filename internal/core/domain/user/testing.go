package user

import (
	"context"
	"sync"
)

type FakeUserRepository struct {
	Users    map[ID]User
	GetError error
	lock     sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make(map[ID]User)}
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (User, error) {
	if r.GetError != nil {
		return User{}, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return User{}, ErrUserDoesNotExist
	}
	return u, nil
}

type FakeSessionRepository struct {
	Sessions map[SessionToken]User
	GetError error
	lock     sync.Mutex
}

func NewFakeSessionRepository() *FakeSessionRepository {
	return &FakeSessionRepository{Sessions: make(map[SessionToken]User)}
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (User, error) {
	if r.GetError != nil {
		return User{}, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	u, ok := r.Sessions[token]
	if !ok {
		return User{}, ErrUserDoesNotExist
	}
	return u, nil
}
