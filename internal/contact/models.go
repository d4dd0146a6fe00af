package contact

import "time"

// Unknown is recorded when request metadata cannot be determined.
const Unknown = "unknown"

// Lead is one visitor submission. Leads are append-only.
type Lead struct {
	ID        string    `json:"_id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Mobile    string    `json:"mobile" bson:"mobile"`
	Message   string    `json:"message" bson:"message"`
	IPAddress string    `json:"ipAddress" bson:"ipAddress"`
	UserAgent string    `json:"userAgent" bson:"userAgent"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// RequestMeta is what the boundary captures about the submitting client.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}
