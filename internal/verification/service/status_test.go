package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/mock/gomock"

	"vouch/internal/verification/models"
	dErrors "vouch/pkg/domain-errors"
)

func (s *ServiceSuite) TestStatusFailsWithoutAnySession() {
	_, err := s.service.CheckStatus(context.Background(), subjectDID, "")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeSessionNotFound))
}

func (s *ServiceSuite) TestStatusAdoptsQuerySuppliedSessionID() {
	// Registry wiped by a restart; the wallet still knows its session id.
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(&models.VendorState{SessionID: "s1", Status: models.StatusPending}, nil)

	result, err := s.service.CheckStatus(context.Background(), subjectDID, "s1")

	s.Require().NoError(err)
	s.Require().NotNil(result.Status)
	s.Equal(models.StatusPending, *result.Status)

	registered, ok := s.sessions.Get(subjectDID)
	s.Require().True(ok)
	s.Equal("s1", registered)
}

func (s *ServiceSuite) TestStatusDegradesOnVendorFailure() {
	s.sessions.Set(subjectDID, "s1")
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(nil, errors.New("vendor timeout"))

	result, err := s.service.CheckStatus(context.Background(), subjectDID, "")

	s.Require().NoError(err)
	s.Nil(result.Status)
	s.Nil(result.Connection)
}

func (s *ServiceSuite) TestStatusCreatesConnectionOnceAcrossPolls() {
	s.sessions.Set(subjectDID, "s1")
	gomock.InOrder(
		s.mockVendor.EXPECT().
			FetchSession(gomock.Any(), "s1").
			Return(&models.VendorState{SessionID: "s1", Status: models.StatusPending}, nil),
		s.mockVendor.EXPECT().
			FetchSession(gomock.Any(), "s1").
			Return(&models.VendorState{SessionID: "s1", Status: models.StatusPending}, nil),
		s.mockVendor.EXPECT().
			FetchSession(gomock.Any(), "s1").
			Return(&models.VendorState{SessionID: "s1", Status: models.StatusApproved}, nil).
			Times(2),
	)
	s.mockIssuance.EXPECT().
		CreateConnection(gomock.Any()).
		Return(&models.Connection{ID: "c1", URL: "https://wallet/c1"}, nil).
		Times(1)

	first, err := s.service.CheckStatus(context.Background(), subjectDID, "")
	s.Require().NoError(err)
	s.Equal(models.StatusPending, *first.Status)
	s.Nil(first.Connection)

	second, err := s.service.CheckStatus(context.Background(), subjectDID, "")
	s.Require().NoError(err)
	s.Nil(second.Connection)

	third, err := s.service.CheckStatus(context.Background(), subjectDID, "")
	s.Require().NoError(err)
	s.Require().NotNil(third.Connection)
	s.Equal("c1", third.Connection.ID)

	// A further approved poll returns the memoized connection without a
	// second creation call.
	fourth, err := s.service.CheckStatus(context.Background(), subjectDID, "")
	s.Require().NoError(err)
	s.Require().NotNil(fourth.Connection)
	s.Equal("c1", fourth.Connection.ID)
}

func (s *ServiceSuite) TestStatusOmitsConnectionAfterIssuance() {
	s.sessions.Set(subjectDID, "s1")
	s.gate.MarkIssued(subjectDID)
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(&models.VendorState{SessionID: "s1", Status: models.StatusApproved}, nil)

	result, err := s.service.CheckStatus(context.Background(), subjectDID, "")

	s.Require().NoError(err)
	s.Equal(models.StatusApproved, *result.Status)
	s.Nil(result.Connection)
}

func (s *ServiceSuite) TestStatusSurvivesConnectionCreationFailure() {
	s.sessions.Set(subjectDID, "s1")
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(&models.VendorState{SessionID: "s1", Status: models.StatusApproved}, nil).
		Times(2)
	gomock.InOrder(
		s.mockIssuance.EXPECT().
			CreateConnection(gomock.Any()).
			Return(nil, errors.New("issuance down")),
		s.mockIssuance.EXPECT().
			CreateConnection(gomock.Any()).
			Return(&models.Connection{ID: "c1", URL: "https://wallet/c1"}, nil),
	)

	// Creation failure is non-fatal; the caller sees no connection this round.
	degraded, err := s.service.CheckStatus(context.Background(), subjectDID, "")
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, *degraded.Status)
	s.Nil(degraded.Connection)

	// The next poll retries and succeeds.
	recovered, err := s.service.CheckStatus(context.Background(), subjectDID, "")
	s.Require().NoError(err)
	s.Require().NotNil(recovered.Connection)
	s.Equal("c1", recovered.Connection.ID)
}

func (s *ServiceSuite) TestStatusConcurrentApprovedPollsCreateOneConnection() {
	s.sessions.Set(subjectDID, "s1")
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(&models.VendorState{SessionID: "s1", Status: models.StatusApproved}, nil).
		AnyTimes()
	s.mockIssuance.EXPECT().
		CreateConnection(gomock.Any()).
		DoAndReturn(func(context.Context) (*models.Connection, error) {
			time.Sleep(10 * time.Millisecond) // widen the race window
			return &models.Connection{ID: "c1", URL: "https://wallet/c1"}, nil
		}).
		Times(1)

	var wg sync.WaitGroup
	results := make([]*StatusResult, 10)
	for i := range 10 {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			result, err := s.service.CheckStatus(context.Background(), subjectDID, "")
			s.NoError(err)
			results[idx] = result
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		s.Require().NotNil(result.Connection)
		s.Equal("c1", result.Connection.ID)
	}
}
