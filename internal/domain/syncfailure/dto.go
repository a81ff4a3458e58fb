package syncfailure

import (
	"time"

	"github.com/veritime/attendance-backend-go/internal/pkg/validator"
)

// ListRequest carries the query parameters of the audit listing endpoint.
type ListRequest struct {
	StartDate string
	EndDate   string
	Resolved  string
	Kind      string
}

// Validate validates the listing request and builds the repository filter.
func (r ListRequest) Validate() (Filter, validator.ValidationErrors) {
	var errs validator.ValidationErrors
	var filter Filter

	if r.StartDate != "" {
		start, ok := validator.IsValidDate(r.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		} else {
			filter.StartDate = &start
		}
	}

	if r.EndDate != "" {
		end, ok := validator.IsValidDate(r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		} else {
			// Inclusive upper bound
			endOfDay := end.Add(24*time.Hour - time.Nanosecond)
			filter.EndDate = &endOfDay
		}
	}

	switch r.Resolved {
	case "":
	case "true":
		v := true
		filter.Resolved = &v
	case "false":
		v := false
		filter.Resolved = &v
	default:
		errs = append(errs, validator.ValidationError{Field: "resolved", Message: "must be true or false"})
	}

	if r.Kind != "" {
		kind := Kind(r.Kind)
		if !kind.Valid() {
			errs = append(errs, validator.ValidationError{Field: "kind", Message: "unknown failure kind"})
		} else {
			filter.Kind = &kind
		}
	}

	return filter, errs
}

// ResolveRequest carries the operator note for resolving an event.
type ResolveRequest struct {
	Note string `json:"note"`
}

// Validate validates the resolve request.
func (r ResolveRequest) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "is required"})
	}
	return errs
}

// EventResponse is the API shape for a failure event.
type EventResponse struct {
	ID             string     `json:"id"`
	Kind           Kind       `json:"kind"`
	Message        string     `json:"message"`
	DeviceAddress  *string    `json:"device_address,omitempty"`
	EmployeeID     *string    `json:"employee_id,omitempty"`
	RawPayload     *string    `json:"raw_payload,omitempty"`
	Resolved       bool       `json:"resolved"`
	ResolutionNote *string    `json:"resolution_note,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// ToResponse converts an Event entity to its API shape.
func (e Event) ToResponse() EventResponse {
	return EventResponse{
		ID:             e.ID,
		Kind:           e.Kind,
		Message:        e.Message,
		DeviceAddress:  e.DeviceAddress,
		EmployeeID:     e.EmployeeID,
		RawPayload:     e.RawPayload,
		Resolved:       e.Resolved,
		ResolutionNote: e.ResolutionNote,
		CreatedAt:      e.CreatedAt,
		ResolvedAt:     e.ResolvedAt,
	}
}
