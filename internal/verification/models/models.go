// Package models defines the verification domain: sessions tracked at the KYC
// vendor, peer connections with the issuance network, and the normalized claim
// record submitted for credential issuance.
package models

import "time"

// DID is the decentralized identifier naming the wallet subject.
type DID string

// Status is the vendor-reported state of a verification session.
type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusPending    Status = "Pending"
	StatusInReview   Status = "InReview"
	StatusApproved   Status = "Approved"
	StatusDeclined   Status = "Declined"
	StatusExpired    Status = "Expired"
	StatusAbandoned  Status = "Abandoned"
)

// Terminal reports whether no further progress can occur on the session
// without starting a new one.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusDeclined, StatusExpired, StatusAbandoned:
		return true
	}
	return false
}

// VerificationSession is the current vendor session tracked for a DID.
// One logical session is current per DID at a time; superseded sessions are
// discarded, not archived.
type VerificationSession struct {
	Subject         DID
	VendorSessionID string
	LastKnownStatus Status
	LastPolledAt    time.Time
}

// Connection is a peer link with the issuance network. Created at most once
// per DID for the lifetime of the process.
type Connection struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	OwningDID DID    `json:"-"`
}

// VendorSession is the vendor's answer to a session creation request.
type VendorSession struct {
	ID  string
	URL string
}

// VendorState is a point-in-time view of a vendor session: its status, the
// continuation URL, the originating subject from the vendor's correlation
// field, and the KYC decision payload once one exists.
type VendorState struct {
	SessionID string
	Status    Status
	URL       string
	Subject   DID
	Person    *KYCPerson
	Document  *KYCDocument
}

// KYCPerson carries the identity fields extracted by the vendor.
type KYCPerson struct {
	FirstName   string
	LastName    string
	Gender      string
	IDNumber    string
	DateOfBirth string
	Nationality string
}

// KYCDocument describes the identity document examined by the vendor.
type KYCDocument struct {
	Type    string
	Number  string
	Country string
}

// ClaimRecord is the normalized credential subject submitted to the issuance
// network. The field mapping is stable across the vendor versions in use.
type ClaimRecord struct {
	Name           string    `json:"name"`
	Gender         string    `json:"gender"`
	IDNumber       string    `json:"idNumber"`
	DateOfBirth    string    `json:"dateOfBirth"`
	Country        string    `json:"country"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	IssuedAt       time.Time `json:"issuedAt"`
}

// NormalizeClaim maps the vendor's decision payload into a ClaimRecord.
// Missing person or document sections produce empty fields rather than errors;
// the vendor guarantees both on approved sessions.
func NormalizeClaim(state *VendorState, issuedAt time.Time) ClaimRecord {
	record := ClaimRecord{IssuedAt: issuedAt}
	if p := state.Person; p != nil {
		record.Name = joinName(p.FirstName, p.LastName)
		record.Gender = p.Gender
		record.IDNumber = p.IDNumber
		record.DateOfBirth = p.DateOfBirth
		record.Country = p.Nationality
	}
	if d := state.Document; d != nil {
		record.DocumentType = d.Type
		record.DocumentNumber = d.Number
		if record.Country == "" {
			record.Country = d.Country
		}
	}
	return record
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
