package user

import (
	"context"
	"medremind/internal/core/domain/user"
	"medremind/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var Now = time.Now().UTC().Truncate(time.Millisecond)

type testSuite struct {
	suite.Suite
	pool        *pgxpool.Pool
	repo        *PgxUserRepository
	sessionRepo *PgxSessionRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxUserRepository(suite.pool)
	suite.sessionRepo = NewPgxSessionRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepositories(t *testing.T) {
	if !db.TestPoolAvailable() {
		t.Skip("TEST_POSTGRESQL_URL is not set.")
	}
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createUser(email interface{}) user.ID {
	s.T().Helper()
	var id int64
	err := s.pool.QueryRow(
		context.Background(),
		"INSERT INTO app_user (email, created_at) VALUES ($1, $2) RETURNING id",
		email,
		Now,
	).Scan(&id)
	s.Require().NoError(err)
	return user.ID(id)
}

func (s *testSuite) createSession(userID user.ID, token string) {
	s.T().Helper()
	_, err := s.pool.Exec(
		context.Background(),
		"INSERT INTO user_session (token, user_id, created_at) VALUES ($1, $2, $3)",
		token,
		int64(userID),
		Now,
	)
	s.Require().NoError(err)
}

func (s *testSuite) TestGetByID() {
	id := s.createUser("test@test.test")

	u, err := s.repo.GetByID(context.Background(), id)

	s.Nil(err)
	s.Equal(id, u.ID)
	address, ok := u.ContactAddress()
	s.True(ok)
	s.Equal("test@test.test", string(address))
}

func (s *testSuite) TestGetByIDWithoutEmail() {
	id := s.createUser(nil)

	u, err := s.repo.GetByID(context.Background(), id)

	s.Nil(err)
	_, ok := u.ContactAddress()
	s.False(ok)
}

func (s *testSuite) TestGetByIDNotExisting() {
	_, err := s.repo.GetByID(context.Background(), user.ID(404))

	s.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (s *testSuite) TestGetUserByToken() {
	id := s.createUser("test@test.test")
	s.createSession(id, "test-token")

	u, err := s.sessionRepo.GetUserByToken(context.Background(), user.SessionToken("test-token"))

	s.Nil(err)
	s.Equal(id, u.ID)
}

func (s *testSuite) TestGetUserByUnknownToken() {
	_, err := s.sessionRepo.GetUserByToken(context.Background(), user.SessionToken("unknown"))

	s.ErrorIs(err, user.ErrUserDoesNotExist)
}
