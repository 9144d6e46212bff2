package dto

import (
	"time"

	"github.com/scandent/orline/internal/domain/model"
)

// IntakeRequest is the multi-section order form as posted by a doctor.
type IntakeRequest struct {
	Patient  model.Patient         `json:"patient"`
	Referred model.ReferringDoctor `json:"referred"`

	Study        string             `json:"study"`
	StudyDetails model.StudyDetails `json:"studyDetails"`

	CBCT     model.CBCT     `json:"cbct"`
	Delivery model.Delivery `json:"delivery"`

	DoctorNotes string `json:"doctorNotes"`
}

// PrepareResponse returns the confirmation token and the draft summary the
// client renders before the order is committed.
type PrepareResponse struct {
	ConfirmToken string        `json:"confirmToken"`
	Draft        OrderResponse `json:"draft"`
}

// ConfirmRequest resolves a pending confirmation.
type ConfirmRequest struct {
	Token  string `json:"token"`
	Accept bool   `json:"accept"`
}

// UpdateOrderRequest mutates status and internal notes in one call.
type UpdateOrderRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// OrderResponse is one order as rendered to any role.
type OrderResponse struct {
	ID    string `json:"id"`
	Folio string `json:"folio,omitempty"`

	Patient  model.Patient         `json:"patient"`
	Referred model.ReferringDoctor `json:"referred"`

	Selection model.StudySelection `json:"selection"`
	CBCT      model.CBCT           `json:"cbct"`
	Delivery  model.Delivery       `json:"delivery"`

	StudyLine string `json:"studyLine"`

	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	DoctorNotes string `json:"doctorNotes,omitempty"`
	Notes       string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// KPIResponse summarizes a board's status counts.
type KPIResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Process   int `json:"process"`
	Ready     int `json:"ready"`
	Delivered int `json:"delivered"`
}

// OrderListResponse is the board payload: projected orders plus counters.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	KPIs   KPIResponse     `json:"kpis"`
}

// OrderDetailResponse is one order with its attachments.
type OrderDetailResponse struct {
	Order OrderResponse  `json:"order"`
	Links []LinkResponse `json:"links"`
}
