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

func (s *ServiceSuite) seedApprovedConnection() models.Connection {
	s.sessions.Set(subjectDID, "s1")
	return s.connections.PutIfAbsent(subjectDID, models.Connection{ID: "c1", URL: "https://wallet/c1"})
}

func approvedState() *models.VendorState {
	return &models.VendorState{
		SessionID: "s1",
		Status:    models.StatusApproved,
		Subject:   subjectDID,
		Person: &models.KYCPerson{
			FirstName:   "Alice",
			LastName:    "Example",
			Gender:      "F",
			IDNumber:    "A1234567",
			DateOfBirth: "1990-02-03",
			Nationality: "NZ",
		},
		Document: &models.KYCDocument{Type: "passport", Number: "P1", Country: "NZ"},
	}
}

func (s *ServiceSuite) TestClaimNotAcceptedIsSoftAndStateless() {
	result, err := s.service.ClaimCredential(context.Background(), "c1", false)

	s.Require().NoError(err)
	s.Equal(MsgClaimNotAccepted, result.Message)
	s.False(s.gate.IsIssued(subjectDID))
}

func (s *ServiceSuite) TestClaimUnknownConnectionDegradesSoftly() {
	result, err := s.service.ClaimCredential(context.Background(), "missing", true)

	s.Require().NoError(err)
	s.Equal(MsgNoVerification, result.Message)
}

func (s *ServiceSuite) TestClaimIssuesCredentialExactlyOnce() {
	s.seedApprovedConnection()
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(approvedState(), nil).
		Times(1)
	s.mockIssuance.EXPECT().
		IssueCredential(gomock.Any(), "c1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, claim models.ClaimRecord) error {
			s.Equal("Alice Example", claim.Name)
			s.Equal("A1234567", claim.IDNumber)
			s.Equal("passport", claim.DocumentType)
			s.False(claim.IssuedAt.IsZero())
			return nil
		}).
		Times(1)

	first, err := s.service.ClaimCredential(context.Background(), "c1", true)
	s.Require().NoError(err)
	s.Equal(MsgClaimSuccess, first.Message)
	s.True(s.gate.IsIssued(subjectDID))

	// Second claim succeeds without a second vendor lookup or submission.
	second, err := s.service.ClaimCredential(context.Background(), "c1", true)
	s.Require().NoError(err)
	s.Equal(MsgClaimSuccess, second.Message)
}

func (s *ServiceSuite) TestClaimRejectedWhenNotApproved() {
	s.seedApprovedConnection()
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(&models.VendorState{SessionID: "s1", Status: models.StatusDeclined}, nil)

	_, err := s.service.ClaimCredential(context.Background(), "c1", true)

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotApproved))
	s.False(s.gate.IsIssued(subjectDID))
}

func (s *ServiceSuite) TestClaimSoftFailsWhenVendorUnavailable() {
	s.seedApprovedConnection()
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(nil, errors.New("vendor timeout"))

	result, err := s.service.ClaimCredential(context.Background(), "c1", true)

	s.Require().NoError(err)
	s.Equal(MsgDecisionPending, result.Message)
	s.False(s.gate.IsIssued(subjectDID))
}

func (s *ServiceSuite) TestClaimSoftFailsWithoutRegisteredSession() {
	s.connections.PutIfAbsent(subjectDID, models.Connection{ID: "c1", URL: "https://wallet/c1"})

	result, err := s.service.ClaimCredential(context.Background(), "c1", true)

	s.Require().NoError(err)
	s.Equal(MsgDecisionPending, result.Message)
}

func (s *ServiceSuite) TestClaimLeavesGateUnmarkedOnIssuanceFailure() {
	s.seedApprovedConnection()
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(approvedState(), nil).
		Times(2)
	gomock.InOrder(
		s.mockIssuance.EXPECT().
			IssueCredential(gomock.Any(), "c1", gomock.Any()).
			Return(errors.New("offer rejected")),
		s.mockIssuance.EXPECT().
			IssueCredential(gomock.Any(), "c1", gomock.Any()).
			Return(nil),
	)

	_, err := s.service.ClaimCredential(context.Background(), "c1", true)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeVendorUnavailable))
	s.False(s.gate.IsIssued(subjectDID))

	// The wallet can retry the claim after a transient issuance failure.
	result, err := s.service.ClaimCredential(context.Background(), "c1", true)
	s.Require().NoError(err)
	s.Equal(MsgClaimSuccess, result.Message)
	s.True(s.gate.IsIssued(subjectDID))
}

func (s *ServiceSuite) TestClaimConcurrentDuplicatesIssueOnce() {
	s.seedApprovedConnection()
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(approvedState(), nil).
		AnyTimes()
	s.mockIssuance.EXPECT().
		IssueCredential(gomock.Any(), "c1", gomock.Any()).
		DoAndReturn(func(context.Context, string, models.ClaimRecord) error {
			time.Sleep(10 * time.Millisecond) // widen the race window
			return nil
		}).
		Times(1)

	var wg sync.WaitGroup
	results := make([]*ClaimResult, 10)
	for i := range 10 {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			result, err := s.service.ClaimCredential(context.Background(), "c1", true)
			s.NoError(err)
			results[idx] = result
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		s.Require().NotNil(result)
		s.Equal(MsgClaimSuccess, result.Message)
	}
	s.True(s.gate.IsIssued(subjectDID))
}
