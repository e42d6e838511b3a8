package findduemedicines

import (
	"context"
	"errors"
	c "medremind/internal/core/domain/common"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medicine"
	"medremind/internal/core/domain/user"
	"medremind/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2023, 2, 1, 8, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger             *logging.FakeLogger
	medicineRepository *medicine.FakeMedicineRepository
	service            services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.medicineRepository = medicine.NewFakeMedicineRepository()
	suite.service = New(suite.logger, suite.medicineRepository)
}

func TestFindDueMedicinesService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createMedicine(owner user.ID, timeOfDay string, lastConfirmed c.Optional[time.Time]) medicine.Medicine {
	ct, err := medicine.ParseClockTime(timeOfDay)
	s.Require().NoError(err)
	m, err := suiteCreate(s.medicineRepository, owner, ct)
	s.Require().NoError(err)
	if lastConfirmed.IsPresent {
		m, err = s.medicineRepository.SetLastConfirmed(context.Background(), m.ID, lastConfirmed.Value)
		s.Require().NoError(err)
	}
	return m
}

func suiteCreate(
	r *medicine.FakeMedicineRepository,
	owner user.ID,
	timeOfDay medicine.ClockTime,
) (medicine.Medicine, error) {
	return r.Create(context.Background(), medicine.CreateInput{
		OwnerID:   owner,
		Name:      "Aspirin",
		Dosage:    "100mg",
		TimeOfDay: timeOfDay,
		CreatedAt: Now.Add(-24 * time.Hour),
	})
}

func (s *testSuite) TestReturnsUnconfirmedEntryMatchingDueKey() {
	m := s.createMedicine(user.ID(1), "08:00", c.NewOptional(time.Time{}, false))

	result, err := s.service.Run(context.Background(), Input{At: Now})

	s.Nil(err)
	s.Len(result.Medicines, 1)
	s.Equal(m.ID, result.Medicines[0].ID)
	s.Equal("08:00", result.DueKey.String())
}

func (s *testSuite) TestExcludesEntryWithDifferentTimeOfDay() {
	s.createMedicine(user.ID(1), "08:01", c.NewOptional(time.Time{}, false))

	result, err := s.service.Run(context.Background(), Input{At: Now})

	s.Nil(err)
	s.Empty(result.Medicines)
}

func (s *testSuite) TestExcludesEntryConfirmedEarlierSameDay() {
	s.createMedicine(user.ID(1), "08:00", c.NewOptional(Now.Add(-30*time.Second), true))

	result, err := s.service.Run(context.Background(), Input{At: Now.Add(time.Minute)})

	s.Nil(err)
	s.Empty(result.Medicines)
}

func (s *testSuite) TestIncludesEntryConfirmedThePreviousDay() {
	m := s.createMedicine(user.ID(1), "08:00", c.NewOptional(Now.AddDate(0, 0, -1), true))

	result, err := s.service.Run(context.Background(), Input{At: Now})

	s.Nil(err)
	s.Len(result.Medicines, 1)
	s.Equal(m.ID, result.Medicines[0].ID)
}

func (s *testSuite) TestReturnsAllEntriesSharingTheDueMinute() {
	first := s.createMedicine(user.ID(1), "09:00", c.NewOptional(time.Time{}, false))
	second := s.createMedicine(user.ID(2), "09:00", c.NewOptional(time.Time{}, false))
	// Same owner, same time: no coalescing.
	third := s.createMedicine(user.ID(1), "09:00", c.NewOptional(time.Time{}, false))

	at := time.Date(2023, 2, 1, 9, 0, 0, 0, time.UTC)
	result, err := s.service.Run(context.Background(), Input{At: at})

	s.Nil(err)
	ids := make([]medicine.ID, 0, len(result.Medicines))
	for _, m := range result.Medicines {
		ids = append(ids, m.ID)
	}
	s.ElementsMatch([]medicine.ID{first.ID, second.ID, third.ID}, ids)
}

func (s *testSuite) TestDueAgainTheNextDayWithoutNewConfirmation() {
	m := s.createMedicine(user.ID(1), "08:00", c.NewOptional(Now.Add(30*time.Second), true))

	sameDay, err := s.service.Run(context.Background(), Input{At: Now.Add(time.Minute)})
	s.Nil(err)
	s.Empty(sameDay.Medicines)

	nextDay, err := s.service.Run(context.Background(), Input{At: Now.AddDate(0, 0, 1)})
	s.Nil(err)
	s.Len(nextDay.Medicines, 1)
	s.Equal(m.ID, nextDay.Medicines[0].ID)
}

func (s *testSuite) TestStoreErrorAbortsSelection() {
	readError := errors.New("store unavailable")
	s.medicineRepository.ReadError = readError

	_, err := s.service.Run(context.Background(), Input{At: Now})

	s.ErrorIs(err, readError)
}
