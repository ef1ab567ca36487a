package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"vouch/internal/verification/models"
	dErrors "vouch/pkg/domain-errors"
)

const subjectDID = models.DID("did:example:alice")

func (s *ServiceSuite) TestStartCreatesFreshSessionWhenNoPriorState() {
	s.mockVendor.EXPECT().
		CreateSession(gomock.Any(), subjectDID).
		Return(&models.VendorSession{ID: "s1", URL: "https://v/s1"}, nil)

	result, err := s.service.StartVerification(context.Background(), subjectDID, "")

	s.Require().NoError(err)
	s.Equal("s1", result.SessionID)
	s.Equal("https://v/s1", result.URL)

	registered, ok := s.sessions.Get(subjectDID)
	s.Require().True(ok)
	s.Equal("s1", registered)
}

func (s *ServiceSuite) TestStartReusesActiveSession() {
	s.sessions.Set(subjectDID, "s1")
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(&models.VendorState{SessionID: "s1", Status: models.StatusPending, URL: "https://v/s1"}, nil)

	result, err := s.service.StartVerification(context.Background(), subjectDID, "")

	s.Require().NoError(err)
	s.Equal("s1", result.SessionID)
	s.Equal("https://v/s1", result.URL)

	session, ok := s.sessions.Find(subjectDID)
	s.Require().True(ok)
	s.Equal(models.StatusPending, session.LastKnownStatus)
}

func (s *ServiceSuite) TestStartReplacesTerminalSession() {
	s.sessions.Set(subjectDID, "s1")
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(&models.VendorState{SessionID: "s1", Status: models.StatusExpired}, nil)
	s.mockVendor.EXPECT().
		CreateSession(gomock.Any(), subjectDID).
		Return(&models.VendorSession{ID: "s2", URL: "https://v/s2"}, nil)

	result, err := s.service.StartVerification(context.Background(), subjectDID, "")

	s.Require().NoError(err)
	s.NotEqual("s1", result.SessionID)
	s.Equal("s2", result.SessionID)

	registered, _ := s.sessions.Get(subjectDID)
	s.Equal("s2", registered)
}

func (s *ServiceSuite) TestStartPrefersClientSuppliedSessionID() {
	s.sessions.Set(subjectDID, "s1")
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s9").
		Return(&models.VendorState{SessionID: "s9", Status: models.StatusInReview, URL: "https://v/s9"}, nil)

	result, err := s.service.StartVerification(context.Background(), subjectDID, "s9")

	s.Require().NoError(err)
	s.Equal("s9", result.SessionID)

	registered, _ := s.sessions.Get(subjectDID)
	s.Equal("s9", registered)
}

func (s *ServiceSuite) TestStartFailsOpenWhenVendorLookupFails() {
	s.sessions.Set(subjectDID, "s1")
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s1").
		Return(nil, errors.New("vendor timeout"))
	s.mockVendor.EXPECT().
		CreateSession(gomock.Any(), subjectDID).
		Return(&models.VendorSession{ID: "s2", URL: "https://v/s2"}, nil)

	result, err := s.service.StartVerification(context.Background(), subjectDID, "")

	s.Require().NoError(err)
	s.Equal("s2", result.SessionID)
}

func (s *ServiceSuite) TestStartPropagatesCreateFailure() {
	s.mockVendor.EXPECT().
		CreateSession(gomock.Any(), subjectDID).
		Return(nil, errors.New("vendor down"))

	_, err := s.service.StartVerification(context.Background(), subjectDID, "")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeVendorUnavailable))

	_, ok := s.sessions.Get(subjectDID)
	s.False(ok)
}
