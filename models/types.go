package models

// Delegate status constants
const (
	StatusRegistered = "Registered"
	StatusAllotted   = "Allotted"
)

// Registration rounds
const (
	RoundPriority  = "Priority"
	RoundFirst     = "First"
	RoundLightning = "Lightning"
)

// Email delivery states
const (
	EmailSent   = "sent"
	EmailFailed = "failed"
)

// Domain types

// Preference is one ranked committee choice with up to three portfolios.
type Preference struct {
	Committee  string   `json:"committee"`
	Portfolios []string `json:"portfolios"`
}

type Preferences struct {
	Pref1 Preference `json:"pref1"`
	Pref2 Preference `json:"pref2"`
	Pref3 Preference `json:"pref3"`
}

// Registration is the canonical delegate record. Email is the identity key;
// RegID is derived for display and may collide.
type Registration struct {
	ID              string      `json:"id"`
	RegID           string      `json:"reg_id"`
	SourceTimestamp string      `json:"source_timestamp"`
	Round           string      `json:"round"`
	FullName        string      `json:"full_name"`
	WhatsApp        string      `json:"whatsapp"`
	Email           string      `json:"email"`
	College         string      `json:"college"`
	Course          string      `json:"course"`
	Category        string      `json:"category"`
	CACode          string      `json:"ca_code"`
	MUNExperience   string      `json:"mun_experience"`
	Accommodation   string      `json:"accommodation"`
	Preferences     Preferences `json:"preferences"`
	Status          string      `json:"status"`

	// Owned by the allotment workflow; set and cleared together
	AllottedCommittee *string `json:"allotted_committee"`
	AllottedPortfolio *string `json:"allotted_portfolio"`
	AllottedAt        *string `json:"allotted_at"`

	// Owned by the email send workflow
	EmailStatus *string `json:"email_status"`
	EmailSentAt *string `json:"email_sent_at"`
	EmailError  *string `json:"email_error"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// WritebackRow is the projection of a registration pushed back to the sheet.
type WritebackRow struct {
	Email             string
	AllottedCommittee *string
	AllottedPortfolio *string
	Status            string
	AllottedAt        *string
}

// Operation results

type SyncResult struct {
	Round         string `json:"round"`
	ImportedCount int    `json:"importedCount"`
	SkippedCount  int    `json:"skippedCount"`
}

type WritebackResult struct {
	UpdatedCount   int `json:"updatedCount"`
	UnmatchedCount int `json:"unmatchedCount"`
}

// Request types

type UpdateDelegateRequest struct {
	ID    string         `json:"id"`
	Patch map[string]any `json:"patch"`
}

type AllotRequest struct {
	ID                string `json:"id"`
	AllottedCommittee string `json:"allotted_committee"`
	AllottedPortfolio string `json:"allotted_portfolio"`
	Clear             bool   `json:"clear"`
}

type SendEmailRequest struct {
	ID string `json:"id"`
}

type BulkEmailRequest struct {
	IDs []string `json:"ids"`
}

// Response types

type SyncResponse struct {
	OK bool `json:"ok"`
	SyncResult
}

type WritebackResponse struct {
	OK bool `json:"ok"`
	WritebackResult
}

type RoundsResponse struct {
	OK     bool     `json:"ok"`
	Rounds []string `json:"rounds"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type DelegateResponse struct {
	OK       bool         `json:"ok"`
	Delegate Registration `json:"delegate"`
}

type DelegateListResponse struct {
	OK        bool           `json:"ok"`
	Delegates []Registration `json:"delegates"`
}

type EmailResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type BulkEmailResponse struct {
	OK      bool          `json:"ok"`
	Total   int           `json:"total"`
	Sent    int           `json:"sent"`
	Failed  int           `json:"failed"`
	Results []EmailResult `json:"results"`
}

// Error response

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
