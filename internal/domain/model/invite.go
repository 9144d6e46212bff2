package model

import "time"

// Invite is a single-use doctor registration code issued by the admin.
// Codes may optionally be locked to a doctor email.
type Invite struct {
	ID          string
	Code        string
	DoctorName  string
	DoctorEmail string
	// TeamID is the tenant the registered doctor joins. Copied from the
	// issuing admin so the team's employees see the doctor's orders.
	TeamID       int64
	CreatedAt    time.Time
	ExpiresAt    time.Time
	UsedAt       *time.Time
	UsedByUserID *int64
}

// Used reports whether the code was already claimed.
func (i Invite) Used() bool {
	return i.UsedAt != nil
}

// Expired reports whether the code is past its expiry at the given instant.
func (i Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Team is the tenant boundary scoping which orders a user may see.
type Team struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
