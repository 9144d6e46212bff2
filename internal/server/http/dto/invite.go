package dto

import "time"

// InviteRequest issues a doctor registration code.
type InviteRequest struct {
	DoctorName  string `json:"doctorName"`
	DoctorEmail string `json:"doctorEmail"`
	Days        int    `json:"days"`
}

// InviteResponse is the issued code with its validity window.
type InviteResponse struct {
	Code        string    `json:"code"`
	DoctorName  string    `json:"doctorName,omitempty"`
	DoctorEmail string    `json:"doctorEmail,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// DoctorResponse is one row of the admin's doctor oversight table.
type DoctorResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"createdAt"`
}
