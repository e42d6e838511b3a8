package listmedicines

import (
	"context"
	"errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medicine"
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
	logger             *logging.FakeLogger
	medicineRepository *medicine.FakeMedicineRepository
	intakeRepository   *medicine.FakeIntakeRepository
	now                time.Time
	service            services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.medicineRepository = medicine.NewFakeMedicineRepository()
	suite.intakeRepository = medicine.NewFakeIntakeRepository()
	suite.now = Now
	suite.service = New(
		suite.logger,
		suite.medicineRepository,
		suite.intakeRepository,
		func() time.Time { return suite.now },
	)
}

func TestListMedicinesService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createMedicine(owner user.ID, name string, timeOfDay string) medicine.Medicine {
	ct, err := medicine.ParseClockTime(timeOfDay)
	s.Require().NoError(err)
	m, err := s.medicineRepository.Create(context.Background(), medicine.CreateInput{
		OwnerID:   owner,
		Name:      name,
		Dosage:    "100mg",
		TimeOfDay: ct,
		CreatedAt: Now.Add(-24 * time.Hour),
	})
	s.Require().NoError(err)
	return m
}

func (s *testSuite) confirm(m medicine.Medicine, at time.Time) {
	_, err := s.medicineRepository.SetLastConfirmed(context.Background(), m.ID, at)
	s.Require().NoError(err)
	err = s.intakeRepository.Create(context.Background(), medicine.CreateIntakeInput{MedicineID: m.ID, TakenAt: at})
	s.Require().NoError(err)
}

func (s *testSuite) TestEmptyList() {
	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.Nil(err)
	s.Empty(result.Medicines)
	s.Zero(result.TakenToday)
	s.Zero(result.Pending)
}

func (s *testSuite) TestOrderedByTimeOfDay() {
	evening := s.createMedicine(USER_ID, "Melatonin", "21:00")
	morning := s.createMedicine(USER_ID, "Aspirin", "08:00")
	noon := s.createMedicine(USER_ID, "Ibuprofen", "12:30")

	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.Nil(err)
	s.Require().Len(result.Medicines, 3)
	s.Equal(morning.ID, result.Medicines[0].ID)
	s.Equal(noon.ID, result.Medicines[1].ID)
	s.Equal(evening.ID, result.Medicines[2].ID)
}

func (s *testSuite) TestDoesNotIncludeOtherUsersMedicines() {
	s.createMedicine(user.ID(2), "Aspirin", "08:00")
	mine := s.createMedicine(USER_ID, "Ibuprofen", "12:30")

	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.Nil(err)
	s.Require().Len(result.Medicines, 1)
	s.Equal(mine.ID, result.Medicines[0].ID)
}

func (s *testSuite) TestAdherenceCounters() {
	taken := s.createMedicine(USER_ID, "Aspirin", "08:00")
	s.createMedicine(USER_ID, "Ibuprofen", "12:30")
	takenYesterday := s.createMedicine(USER_ID, "Melatonin", "21:00")
	s.confirm(taken, Now.Add(-time.Hour))
	s.confirm(takenYesterday, Now.AddDate(0, 0, -1))

	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.Nil(err)
	s.Equal(uint(1), result.TakenToday)
	s.Equal(uint(2), result.Pending)
}

func (s *testSuite) TestCountersAreRecomputedFromTheCurrentDay() {
	m := s.createMedicine(USER_ID, "Aspirin", "08:00")
	s.confirm(m, Now.Add(-time.Hour))

	today, err := s.service.Run(context.Background(), Input{UserID: USER_ID})
	s.Require().NoError(err)
	s.Equal(uint(1), today.TakenToday)
	s.Equal(uint(0), today.Pending)

	// Same store, next calendar day: the entry counts as pending again.
	s.now = Now.AddDate(0, 0, 1)
	tomorrow, err := s.service.Run(context.Background(), Input{UserID: USER_ID})
	s.Require().NoError(err)
	s.Equal(uint(0), tomorrow.TakenToday)
	s.Equal(uint(1), tomorrow.Pending)
}

func (s *testSuite) TestIntakeHistoryIsAttached() {
	m := s.createMedicine(USER_ID, "Aspirin", "08:00")
	s.confirm(m, Now.AddDate(0, 0, -1))
	s.confirm(m, Now.Add(-time.Hour))

	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.Nil(err)
	s.Require().Len(result.Medicines, 1)
	s.Equal([]time.Time{Now.AddDate(0, 0, -1), Now.Add(-time.Hour)}, result.Medicines[0].Intakes)
}

func (s *testSuite) TestReadErrorIsReturned() {
	readError := errors.New("store unavailable")
	s.medicineRepository.ReadError = readError

	_, err := s.service.Run(context.Background(), Input{UserID: USER_ID})

	s.ErrorIs(err, readError)
}
