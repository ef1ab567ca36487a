package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"vouch/internal/verification/models"
)

func (s *ServiceSuite) TestCallbackRemapsRegistryToVendorSession() {
	s.sessions.Set(subjectDID, "s1")
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s2").
		Return(&models.VendorState{
			SessionID: "s2",
			Status:    models.StatusPending,
			Subject:   subjectDID,
		}, nil)

	s.service.HandleCallback(context.Background(), "s2")

	sessionID, ok := s.sessions.Get(subjectDID)
	s.Require().True(ok)
	s.Equal("s2", sessionID)

	record, ok := s.sessions.Find(subjectDID)
	s.Require().True(ok)
	s.Equal(models.StatusPending, record.LastKnownStatus)
}

func (s *ServiceSuite) TestCallbackRegistersUnknownSubject() {
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s9").
		Return(&models.VendorState{
			SessionID: "s9",
			Status:    models.StatusInReview,
			Subject:   subjectDID,
		}, nil)

	s.service.HandleCallback(context.Background(), "s9")

	sessionID, ok := s.sessions.Get(subjectDID)
	s.Require().True(ok)
	s.Equal("s9", sessionID)
}

func (s *ServiceSuite) TestCallbackSwallowsVendorFailure() {
	s.sessions.Set(subjectDID, "s1")
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s2").
		Return(nil, errors.New("vendor timeout"))

	s.service.HandleCallback(context.Background(), "s2")

	sessionID, ok := s.sessions.Get(subjectDID)
	s.Require().True(ok)
	s.Equal("s1", sessionID)
}

func (s *ServiceSuite) TestCallbackIgnoresMissingSubjectCorrelation() {
	s.sessions.Set(subjectDID, "s1")
	s.mockVendor.EXPECT().
		FetchSession(gomock.Any(), "s2").
		Return(&models.VendorState{SessionID: "s2", Status: models.StatusPending}, nil)

	s.service.HandleCallback(context.Background(), "s2")

	sessionID, ok := s.sessions.Get(subjectDID)
	s.Require().True(ok)
	s.Equal("s1", sessionID)
}
