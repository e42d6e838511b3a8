package createmedicine

import (
	"context"
	"errors"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medicine"
	uow "medremind/internal/core/domain/unit_of_work"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2023, 2, 1, 12, 0, 0, 0, time.UTC)

const USER_ID = user.ID(1)

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	unitOfWork *uow.FakeUnitOfWork
	service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.unitOfWork = uow.NewFakeUnitOfWork()
	suite.service = New(suite.logger, suite.unitOfWork, func() time.Time { return Now })
}

func TestCreateMedicineService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) validInput() Input {
	timeOfDay, err := medicine.ParseClockTime("08:00")
	s.Require().NoError(err)
	return Input{
		UserID:    USER_ID,
		Name:      "Aspirin",
		Dosage:    "100mg",
		TimeOfDay: timeOfDay,
	}
}

func (s *testSuite) TestSuccess() {
	input := s.validInput()

	result, err := s.service.Run(context.Background(), input)

	s.Nil(err)
	s.True(s.unitOfWork.Context.WasCommitCalled)
	s.Equal(USER_ID, result.Medicine.OwnerID)
	s.Equal("Aspirin", result.Medicine.Name)
	s.Equal("100mg", result.Medicine.Dosage)
	s.Equal("08:00", result.Medicine.TimeOfDay.String())
	s.Equal(Now, result.Medicine.CreatedAt)
	s.False(result.Medicine.LastConfirmed.IsPresent)
	s.Contains(s.unitOfWork.Medicines().Medicines, result.Medicine.ID)
}

func (s *testSuite) TestSuccessWithAttachment() {
	input := s.validInput()
	input.AttachmentRef = c.NewOptional("attachments/aspirin.png", true)

	result, err := s.service.Run(context.Background(), input)

	s.Nil(err)
	s.Require().True(result.Medicine.AttachmentRef.IsPresent)
	s.Equal("attachments/aspirin.png", result.Medicine.AttachmentRef.Value)
}

func (s *testSuite) TestEmptyNameIsRejected() {
	input := s.validInput()
	input.Name = ""

	_, err := s.service.Run(context.Background(), input)

	var invalidState *e.InvalidStateError
	s.ErrorAs(err, &invalidState)
	s.False(s.unitOfWork.Context.WasCommitCalled)
	s.Empty(s.unitOfWork.Medicines().Medicines)
}

func (s *testSuite) TestEmptyDosageIsRejected() {
	input := s.validInput()
	input.Dosage = ""

	_, err := s.service.Run(context.Background(), input)

	var invalidState *e.InvalidStateError
	s.ErrorAs(err, &invalidState)
	s.Empty(s.unitOfWork.Medicines().Medicines)
}

func (s *testSuite) TestCreateErrorRollsBack() {
	createError := errors.New("insert failed")
	s.unitOfWork.Medicines().CreateError = createError

	_, err := s.service.Run(context.Background(), s.validInput())

	s.ErrorIs(err, createError)
	s.False(s.unitOfWork.Context.WasCommitCalled)
	s.True(s.unitOfWork.Context.WasRollbackCalled)
}

func (s *testSuite) TestRateLimitKeyIsPerUser() {
	s.Equal("create-medicine::1", Input{UserID: user.ID(1)}.GetRateLimitKey())
	s.Equal("create-medicine::2", Input{UserID: user.ID(2)}.GetRateLimitKey())
}
