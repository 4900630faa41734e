package domain

import "time"

// ClaimStatus enumerates claim lifecycle states.
type ClaimStatus string

const (
	ClaimStatusPending    ClaimStatus = "pending"
	ClaimStatusProcessing ClaimStatus = "processing"
	ClaimStatusApproved   ClaimStatus = "approved"
	ClaimStatusDenied     ClaimStatus = "denied"
)

// Valid reports whether the status is one of the enumerated values.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusProcessing, ClaimStatusApproved, ClaimStatusDenied:
		return true
	}
	return false
}

// Attachment is supporting-file metadata submitted with a claim.
type Attachment struct {
	ID         string
	Name       string
	URL        string
	Size       int64
	UploadedAt time.Time
}

// ClaimMessage is a single entry in the claim's append-only conversation.
type ClaimMessage struct {
	ID         string
	SenderID   string
	SenderName string
	Text       string
	Timestamp  time.Time
}

// Claim is a customer-filed request for compensation under a policy.
type Claim struct {
	ID           string
	UserID       string
	PolicyID     string
	ClaimNumber  string
	Type         string
	Description  string
	Amount       int64
	Status       ClaimStatus
	IncidentDate time.Time
	ReportedAt   time.Time
	Attachments  []Attachment
	Messages     []ClaimMessage
}
