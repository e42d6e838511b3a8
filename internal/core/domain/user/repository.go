package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id ID) (User, error)
}

type SessionRepository interface {
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
}
