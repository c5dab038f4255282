package models

import "time"

// Request models
type SignUpRequest struct {
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required,min=8"`
	FullName         string  `json:"fullName" binding:"required"`
	AccountType      string  `json:"accountType" binding:"required,oneof=individual firm"`
	FirmName         string  `json:"firmName"`
	BillingIncrement float64 `json:"billingIncrement"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type StartTimerRequest struct {
	ClientID string `json:"clientId" binding:"required"`
}

// StopTimerRequest carries the interstitial notes step. Every stop goes
// through it exactly once; there is no stop path that skips it.
type StopTimerRequest struct {
	Notes      string  `json:"notes"`
	TaskTypeID *string `json:"taskTypeId"`
}

type ManualEntryRequest struct {
	ClientID   string    `json:"clientId" binding:"required"`
	TaskTypeID *string   `json:"taskTypeId"`
	StartedAt  time.Time `json:"startedAt" binding:"required"`
	EndedAt    time.Time `json:"endedAt" binding:"required"`
	Notes      string    `json:"notes"`
}

type UpdateDraftRequest struct {
	Notes      *string `json:"notes"`
	TaskTypeID *string `json:"taskTypeId"`
}

type CreateEditRequestRequest struct {
	ProposedNotes      *string  `json:"proposedNotes"`
	ProposedDuration   *float64 `json:"proposedDuration"`
	ProposedTaskTypeID *string  `json:"proposedTaskTypeId"`
}

type UpdateFirmRequest struct {
	BillingIncrement float64 `json:"billingIncrement" binding:"required"`
}

type CreateClientRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

type CreateTaskTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateTaskTypeRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

type AddLawyerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}

// EntryFilters narrows a firm entry listing. Date bounds are inclusive
// YYYY-MM-DD strings; To runs through end of day.
type EntryFilters struct {
	LawyerID   string `form:"lawyerId"`
	ClientID   string `form:"clientId"`
	TaskTypeID string `form:"taskTypeId"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	UserID    string `json:"userId,omitempty"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	Role      string `json:"role,omitempty"`
	FirmID    string `json:"firmId,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

type MeResponse struct {
	Status string `json:"status"`
	User   User   `json:"user"`
	Firm   *Firm  `json:"firm,omitempty"`
}

// TimerStateResponse mirrors the blob the extension popup caches
// locally: enough to resume a running-timer UI without a round trip.
type TimerStateResponse struct {
	Status     string `json:"status"`
	Running    bool   `json:"running"`
	EntryID    string `json:"entryId,omitempty"`
	ClientID   string `json:"clientId,omitempty"`
	ClientName string `json:"clientName,omitempty"`
	StartedAt  string `json:"startedAt,omitempty"`
}

type EntryResponse struct {
	Status string    `json:"status"`
	Entry  TimeEntry `json:"entry"`
}

type EntriesResponse struct {
	Status         string          `json:"status"`
	Entries        []TimeEntryView `json:"entries"`
	PendingEditIDs []string        `json:"pendingEditIds"`
	DraftCount     int             `json:"draftCount"`
	DraftBillable  float64         `json:"draftBillable"`
}

type SubmitDraftsResponse struct {
	Status    string `json:"status"`
	Submitted int    `json:"submitted"`
}

type FirmEntriesResponse struct {
	Status        string          `json:"status"`
	Entries       []TimeEntryView `json:"entries"`
	TotalBillable float64         `json:"totalBillable"`
	TotalMinutes  float64         `json:"totalMinutes"`
	Count         int             `json:"count"`
}

type EditRequestResponse struct {
	Status  string      `json:"status"`
	Request EditRequest `json:"request"`
}

type EditRequestsResponse struct {
	Status   string            `json:"status"`
	Requests []EditRequestView `json:"requests"`
}

type FirmResponse struct {
	Status string `json:"status"`
	Firm   Firm   `json:"firm"`
}

type ClientsResponse struct {
	Status  string   `json:"status"`
	Clients []Client `json:"clients"`
}

type ClientResponse struct {
	Status string `json:"status"`
	Client Client `json:"client"`
}

type TaskTypesResponse struct {
	Status    string     `json:"status"`
	TaskTypes []TaskType `json:"taskTypes"`
}

type TaskTypeResponse struct {
	Status   string   `json:"status"`
	TaskType TaskType `json:"taskType"`
}

type LawyersResponse struct {
	Status  string `json:"status"`
	Lawyers []User `json:"lawyers"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
