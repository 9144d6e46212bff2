package model

import "time"

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusProcess   OrderStatus = "process"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
)

// Statuses lists lifecycle states in their natural order.
var Statuses = []OrderStatus{OrderStatusPending, OrderStatusProcess, OrderStatusReady, OrderStatusDelivered}

// ValidStatus reports whether s is one of the lifecycle states.
func ValidStatus(s OrderStatus) bool {
	for _, st := range Statuses {
		if st == s {
			return true
		}
	}
	return false
}

// StatusLabel returns the user-facing Spanish label for a status.
func StatusLabel(s OrderStatus) string {
	switch s {
	case OrderStatusProcess:
		return "En proceso"
	case OrderStatusReady:
		return "Listo"
	case OrderStatusDelivered:
		return "Entregado"
	}
	return "Pendiente"
}

// Patient is the snapshot of patient data captured at order creation.
type Patient struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Age     string `json:"age"`
	DOB     string `json:"dob"`
	Address string `json:"address"`
}

// ReferringDoctor identifies the doctor who referred the study.
type ReferringDoctor struct {
	Name   string `json:"name"`
	Cedula string `json:"cedula"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
}

// Delivery choices. Unknown values normalize to the defaults.
const (
	DeliveryDigital  = "Digital"
	DeliveryPhysical = "Física"

	DeliverToPatient = "Entregar al paciente"
	DeliverToClinic  = "Entregar al consultorio"
)

// Delivery captures how the finished study should reach its recipient.
type Delivery struct {
	Method string `json:"method"`
	Target string `json:"target"`
}

// DefaultDelivery returns the preference used when the form leaves it unset.
func DefaultDelivery() Delivery {
	return Delivery{Method: DeliveryDigital, Target: DeliverToPatient}
}

// NormalizeDelivery replaces unknown choices with defaults.
func NormalizeDelivery(d Delivery) Delivery {
	if d.Method != DeliveryDigital && d.Method != DeliveryPhysical {
		d.Method = DeliveryDigital
	}
	if d.Target != DeliverToPatient && d.Target != DeliverToClinic {
		d.Target = DeliverToPatient
	}
	return d
}

// Order is a diagnostic-study request registered by a doctor.
type Order struct {
	ID       string
	Folio    string
	DoctorID int64
	TeamID   int64

	Patient  Patient
	Referred ReferringDoctor

	Selection StudySelection
	CBCT      CBCT
	Delivery  Delivery

	// StudyLine is derived from Selection and Referred; never edited by hand.
	StudyLine string

	Status      OrderStatus
	DoctorNotes string
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
