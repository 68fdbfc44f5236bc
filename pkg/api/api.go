// Package api holds the JSON wire types shared by the records service and its
// clients. Dates of birth travel as YYYY-MM-DD strings; ids as UUID strings.
package api

import "time"

// Record is any resource kept in a client collection.
type Record interface {
	GetID() string
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

type Donor struct {
	ID            string    `json:"id"`
	UniqueDonorID string    `json:"unique_donor_id"`
	Name          string    `json:"name"`
	Gender        string    `json:"gender"`
	Age           *int      `json:"age"`
	DateOfBirth   *string   `json:"date_of_birth"`
	Ethnicity     *string   `json:"ethnicity,omitempty"`
	IsPriority    bool      `json:"is_priority"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (d Donor) GetID() string { return d.ID }

// DonorInput is the body of POST /donors.
type DonorInput struct {
	UniqueDonorID string  `json:"unique_donor_id"`
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	Age           *int    `json:"age,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	Ethnicity     *string `json:"ethnicity,omitempty"`
	IsPriority    bool    `json:"is_priority"`
	Notes         *string `json:"notes,omitempty"`
}

// DonorPatch is the body of PATCH /donors/{id}. Absent fields are unchanged.
type DonorPatch struct {
	UniqueDonorID *string `json:"unique_donor_id,omitempty"`
	Name          *string `json:"name,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	Age           *int    `json:"age,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	Ethnicity     *string `json:"ethnicity,omitempty"`
	IsPriority    *bool   `json:"is_priority,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) GetID() string { return u.ID }

type UserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UserPatch struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
}

type Setting struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description *string   `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s Setting) GetID() string { return s.ID }

type SettingInput struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Description *string `json:"description,omitempty"`
}

type SettingPatch struct {
	Value       *string `json:"value,omitempty"`
	Description *string `json:"description,omitempty"`
}

type Document struct {
	ID          string    `json:"id"`
	DonorID     string    `json:"donor_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	PageCount   int       `json:"page_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (d Document) GetID() string { return d.ID }

// DocumentCount is one entry of GET /documents/counts.
type DocumentCount struct {
	DonorID string `json:"donor_id"`
	Count   int    `json:"count"`
}

type Citation struct {
	DocumentID string `json:"document_id"`
	Page       int    `json:"page"`
}

type Finding struct {
	ID        string     `json:"id"`
	DonorID   string     `json:"donor_id"`
	Category  string     `json:"category"`
	Summary   string     `json:"summary"`
	Severity  string     `json:"severity"`
	Citations []Citation `json:"citations"`
	CreatedAt time.Time  `json:"created_at"`
}

func (f Finding) GetID() string { return f.ID }

// FindingInput is the body of POST /donors/{id}/findings.
type FindingInput struct {
	Category  string     `json:"category"`
	Summary   string     `json:"summary"`
	Severity  string     `json:"severity"`
	Citations []Citation `json:"citations"`
}

// Severity values of a finding.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)
