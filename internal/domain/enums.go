package domain

// Gender is the fixed set of values accepted for a donor's gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Genders returns the accepted genders in display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// Severity classifies a finding produced by document analysis.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

func (s Severity) String() string { return string(s) }

func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// EventType names a domain event published to the broker.
type EventType string

const (
	EventDonorCreated     EventType = "donor.created"
	EventDonorUpdated     EventType = "donor.updated"
	EventDonorDeleted     EventType = "donor.deleted"
	EventDocumentUploaded EventType = "document.uploaded"
)

func (e EventType) String() string { return string(e) }
