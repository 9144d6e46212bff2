package model

import "time"

// Link providers.
const (
	LinkProviderStorage = "storage"
	LinkProviderOther   = "other"
)

// OrderLink is a stored attachment associated with one order: an uploaded
// file or an external URL. Links are created only while the parent order is
// in process, deleted at will, never updated in place.
type OrderLink struct {
	ID        string
	OrderID   string
	Title     string
	URL       string
	Provider  string
	CreatedBy int64
	CreatedAt time.Time
}
