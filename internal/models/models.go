package models

import (
	"time"
)

// User roles
const (
	RoleAdmin      = "admin"
	RoleLawyer     = "lawyer"
	RoleIndividual = "individual"
)

// Time entry statuses
const (
	EntryStatusDraft     = "draft"
	EntryStatusSubmitted = "submitted"
)

// Edit request statuses
const (
	EditRequestPending  = "pending"
	EditRequestApproved = "approved"
	EditRequestDenied   = "denied"
)

// Firm represents a law firm. An individual account is a one-person firm.
type Firm struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	BillingIncrement float64   `db:"billing_increment" json:"billingIncrement"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// User represents a user in the system
type User struct {
	ID        string    `db:"id" json:"id"`
	FirmID    *string   `db:"firm_id" json:"firmId"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"fullName"`
	Password  string    `db:"password" json:"-"` // Password hash, not returned in JSON
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Client represents a billing matter owned by a firm.
// Soft-deleted via IsActive, never removed (time entries reference it).
type Client struct {
	ID        string    `db:"id" json:"id"`
	FirmID    string    `db:"firm_id" json:"firmId"`
	Name      string    `db:"name" json:"name"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// TaskType represents a category of legal work.
// A nil FirmID marks a global default shared across all firms.
type TaskType struct {
	ID       string  `db:"id" json:"id"`
	FirmID   *string `db:"firm_id" json:"firmId"`
	Name     string  `db:"name" json:"name"`
	IsActive bool    `db:"is_active" json:"isActive"`
}

// TimeEntry represents one unit of billable work. While the timer is
// running, EndedAt and the duration fields are nil; they are filled
// exactly once at stop (or manual-create) time.
type TimeEntry struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"userId"`
	ClientID         string     `db:"client_id" json:"clientId"`
	TaskTypeID       *string    `db:"task_type_id" json:"taskTypeId"`
	StartedAt        time.Time  `db:"started_at" json:"startedAt"`
	EndedAt          *time.Time `db:"ended_at" json:"endedAt"`
	ExactDurationMin *float64   `db:"exact_duration_minutes" json:"exactDurationMinutes"`
	BillableDuration *float64   `db:"billable_duration" json:"billableDuration"`
	Notes            *string    `db:"notes" json:"notes"`
	Status           string     `db:"status" json:"status"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
}

// EditRequest proposes changes to a submitted time entry. Each proposed
// field is independently nullable, meaning "no change".
type EditRequest struct {
	ID                 string    `db:"id" json:"id"`
	TimeEntryID        string    `db:"time_entry_id" json:"timeEntryId"`
	RequestedBy        string    `db:"requested_by" json:"requestedBy"`
	ProposedNotes      *string   `db:"proposed_notes" json:"proposedNotes"`
	ProposedDuration   *float64  `db:"proposed_duration" json:"proposedDuration"`
	ProposedTaskTypeID *string   `db:"proposed_task_type_id" json:"proposedTaskTypeId"`
	Status             string    `db:"status" json:"status"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
}

// TimeEntryView is a time entry with its joined display fields, decided
// at the repository boundary instead of an untyped bag of columns.
type TimeEntryView struct {
	TimeEntry
	ClientName   string  `db:"client_name" json:"clientName"`
	TaskTypeName *string `db:"task_type_name" json:"taskTypeName"`
	UserFullName string  `db:"user_full_name" json:"userFullName"`
}

// EditRequestView is an edit request joined with the entry it targets
// and the names an admin needs to review it.
type EditRequestView struct {
	EditRequest
	Entry                TimeEntryView `json:"entry"`
	ProposedTaskTypeName *string       `db:"proposed_task_type_name" json:"proposedTaskTypeName"`
}
