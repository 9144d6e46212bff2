package dto

import "time"

// LinkRequest attaches an external URL to an order.
type LinkRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Provider string `json:"provider"`
}

// LinkResponse is one attachment as rendered to the client.
type LinkResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}
