package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// User roles.
const (
	RoleAdmin      = "ADMIN"
	RoleStaff      = "STAFF"
	RoleEventOwner = "EVENT_OWNER"
)

// Event statuses.
const (
	EventDraft     = "DRAFT"
	EventPublished = "PUBLISHED"
	EventCancelled = "CANCELLED"
	EventCompleted = "COMPLETED"
)

// Registration statuses. Admission only ever writes Confirmed; Pending and
// Declined are storable for administrative workflows.
const (
	RegistrationConfirmed = "CONFIRMED"
	RegistrationPending   = "PENDING"
	RegistrationDeclined  = "DECLINED"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleEventOwner:
		return true
	}
	return false
}

func ValidEventStatus(status string) bool {
	switch status {
	case EventDraft, EventPublished, EventCancelled, EventCompleted:
		return true
	}
	return false
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
