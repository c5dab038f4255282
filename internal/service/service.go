package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/billableapp/billable-server/internal/billing"
	"github.com/billableapp/billable-server/internal/models"
	"github.com/billableapp/billable-server/internal/repository"
)

// Sentinel errors the API layer maps to HTTP statuses.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("user with this email already exists")
	ErrNotAuthorized       = errors.New("not authorized")
	ErrNotFound            = errors.New("not found")
	ErrTimerAlreadyRunning = errors.New("a timer is already running")
	ErrNoActiveTimer       = errors.New("no active timer")
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, userID string) (*models.MeResponse, error)
	UpdateFullName(ctx context.Context, userID, fullName string) error

	// Timer lifecycle
	StartTimer(ctx context.Context, userID, clientID string) (*models.TimerStateResponse, error)
	GetTimerState(ctx context.Context, userID string) (*models.TimerStateResponse, error)
	StopTimer(ctx context.Context, userID string, req models.StopTimerRequest) (*models.EntryResponse, error)

	// Entry lifecycle
	CreateManualEntry(ctx context.Context, userID string, req models.ManualEntryRequest) (*models.EntryResponse, error)
	UpdateDraftEntry(ctx context.Context, userID, entryID string, req models.UpdateDraftRequest) error
	SubmitDrafts(ctx context.Context, userID string) (*models.SubmitDraftsResponse, error)
	ListEntries(ctx context.Context, userID string) (*models.EntriesResponse, error)

	// Edit requests
	CreateEditRequest(ctx context.Context, userID, entryID string, req models.CreateEditRequestRequest) (*models.EditRequestResponse, error)
	ListPendingEditRequests(ctx context.Context, adminID string) (*models.EditRequestsResponse, error)
	ApproveEditRequest(ctx context.Context, adminID, requestID string) error
	DenyEditRequest(ctx context.Context, adminID, requestID string) error

	// Firm administration
	GetFirm(ctx context.Context, userID string) (*models.FirmResponse, error)
	UpdateBillingIncrement(ctx context.Context, userID string, increment float64) (*models.FirmResponse, error)
	ListFirmEntries(ctx context.Context, adminID string, filters models.EntryFilters) (*models.FirmEntriesResponse, error)
	ListClients(ctx context.Context, userID string, includeInactive bool) (*models.ClientsResponse, error)
	CreateClient(ctx context.Context, userID, name string) (*models.ClientResponse, error)
	UpdateClient(ctx context.Context, userID, clientID string, req models.UpdateClientRequest) error
	ListTaskTypes(ctx context.Context, userID string, includeInactive bool) (*models.TaskTypesResponse, error)
	CreateTaskType(ctx context.Context, userID, name string) (*models.TaskTypeResponse, error)
	UpdateTaskType(ctx context.Context, userID, taskTypeID string, req models.UpdateTaskTypeRequest) error
	AddLawyer(ctx context.Context, adminID string, req models.AddLawyerRequest) (*models.AuthResponse, error)
	ListLawyers(ctx context.Context, adminID string) (*models.LawyersResponse, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
	}
}

// firmContext carries the firm scope resolved for one request.
type firmContext struct {
	user *models.User
	firm *models.Firm
}

func (s *DefaultService) resolveFirm(ctx context.Context, userID string) (*firmContext, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil || user.FirmID == nil {
		return nil, ErrNotAuthorized
	}

	firm, err := s.repo.GetFirm(ctx, *user.FirmID)
	if err != nil {
		return nil, fmt.Errorf("error getting firm: %w", err)
	}
	if firm == nil {
		return nil, ErrNotAuthorized
	}

	return &firmContext{user: user, firm: firm}, nil
}

// requireManager resolves the firm context and checks the caller may
// manage firm settings. Individuals are one-person firms and manage
// their own.
func (s *DefaultService) requireManager(ctx context.Context, userID string) (*firmContext, error) {
	fc, err := s.resolveFirm(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fc.user.Role != models.RoleAdmin && fc.user.Role != models.RoleIndividual {
		return nil, ErrNotAuthorized
	}
	return fc, nil
}

func (s *DefaultService) requireAdmin(ctx context.Context, userID string) (*firmContext, error) {
	fc, err := s.resolveFirm(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fc.user.Role != models.RoleAdmin {
		return nil, ErrNotAuthorized
	}
	return fc, nil
}

// Authentication methods
func (s *DefaultService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	increment := req.BillingIncrement
	if increment == 0 {
		increment = 0.1
	}
	if !billing.ValidIncrement(increment) {
		return nil, fmt.Errorf("%w: billing increment must be one of 0.1, 0.25, 0.5, 1.0", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// A firm signup creates an admin; an individual signup creates a
	// degenerate one-person firm. Role is fixed from here on.
	firm := &models.Firm{
		BillingIncrement: increment,
	}
	user := &models.User{
		ID:       uuid.New().String(),
		Email:    req.Email,
		FullName: req.FullName,
		Password: string(hashedPassword),
	}

	if req.AccountType == "firm" {
		if req.FirmName == "" {
			return nil, fmt.Errorf("%w: firm name is required", ErrInvalidInput)
		}
		firm.Name = req.FirmName
		user.Role = models.RoleAdmin
	} else {
		firm.Name = req.FullName + "'s Practice"
		user.Role = models.RoleIndividual
	}

	if err := s.repo.CreateFirmWithAdmin(ctx, firm, user); err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return &models.AuthResponse{
		Status:   "success",
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		FirmID:   firm.ID,
	}, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	firmID := ""
	if user.FirmID != nil {
		firmID = *user.FirmID
	}

	return &models.AuthResponse{
		Status:    "success",
		UserID:    user.ID,
		Role:      user.Role,
		FirmID:    firmID,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}

func (s *DefaultService) Me(ctx context.Context, userID string) (*models.MeResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	resp := &models.MeResponse{Status: "success", User: *user}
	if user.FirmID != nil {
		firm, err := s.repo.GetFirm(ctx, *user.FirmID)
		if err != nil {
			return nil, fmt.Errorf("error getting firm: %w", err)
		}
		resp.Firm = firm
	}

	return resp, nil
}

func (s *DefaultService) UpdateFullName(ctx context.Context, userID, fullName string) error {
	if fullName == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	return s.repo.UpdateUserFullName(ctx, userID, fullName)
}

// Timer lifecycle

func (s *DefaultService) StartTimer(ctx context.Context, userID, clientID string) (*models.TimerStateResponse, error) {
	fc, err := s.resolveFirm(ctx, userID)
	if err != nil {
		return nil, err
	}

	client, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("error getting client: %w", err)
	}
	if client == nil || client.FirmID != fc.firm.ID {
		return nil, ErrNotFound
	}
	if !client.IsActive {
		return nil, fmt.Errorf("%w: client is inactive", ErrInvalidInput)
	}

	entry := &models.TimeEntry{
		UserID:    userID,
		ClientID:  clientID,
		StartedAt: time.Now().UTC(),
		Status:    models.EntryStatusDraft,
	}

	existing, err := s.repo.StartTimer(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error starting timer: %w", err)
	}
	if existing != nil {
		// A timer is already running; hand back its state so both
		// surfaces converge on the same entry.
		state, stateErr := s.timerState(ctx, existing)
		if stateErr != nil {
			return nil, stateErr
		}
		return state, ErrTimerAlreadyRunning
	}

	return &models.TimerStateResponse{
		Status:     "success",
		Running:    true,
		EntryID:    entry.ID,
		ClientID:   client.ID,
		ClientName: client.Name,
		StartedAt:  entry.StartedAt.Format(time.RFC3339),
	}, nil
}

// GetTimerState re-derives the running state from the persisted entry
// collection. On discrepancy with any local cache, this record wins.
func (s *DefaultService) GetTimerState(ctx context.Context, userID string) (*models.TimerStateResponse, error) {
	active, err := s.repo.GetActiveEntry(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting active timer: %w", err)
	}
	if active == nil {
		return &models.TimerStateResponse{Status: "success", Running: false}, nil
	}

	return s.timerState(ctx, active)
}

func (s *DefaultService) timerState(ctx context.Context, entry *models.TimeEntry) (*models.TimerStateResponse, error) {
	clientName := ""
	if client, err := s.repo.GetClient(ctx, entry.ClientID); err != nil {
		return nil, fmt.Errorf("error getting client: %w", err)
	} else if client != nil {
		clientName = client.Name
	}

	return &models.TimerStateResponse{
		Status:     "success",
		Running:    true,
		EntryID:    entry.ID,
		ClientID:   entry.ClientID,
		ClientName: clientName,
		StartedAt:  entry.StartedAt.Format(time.RFC3339),
	}, nil
}

// StopTimer closes the running entry. Notes and task type arrive with
// the stop request, so the interstitial step happens exactly once per
// stop. The billable duration is computed here, once, from the firm's
// current increment and never recomputed afterwards.
func (s *DefaultService) StopTimer(ctx context.Context, userID string, req models.StopTimerRequest) (*models.EntryResponse, error) {
	fc, err := s.resolveFirm(ctx, userID)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.GetActiveEntry(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting active timer: %w", err)
	}
	if active == nil {
		return nil, ErrNoActiveTimer
	}

	if err := s.checkTaskType(ctx, fc, req.TaskTypeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	exactMinutes := now.Sub(active.StartedAt).Minutes()
	billable := billing.RoundToBillingIncrement(exactMinutes, fc.firm.BillingIncrement)

	updated, err := s.repo.StopEntry(ctx, repository.StopEntryParams{
		EntryID:          active.ID,
		UserID:           userID,
		EndedAt:          now,
		ExactDurationMin: exactMinutes,
		BillableDuration: billable,
		Notes:            req.Notes,
		TaskTypeID:       req.TaskTypeID,
	})
	if err != nil {
		return nil, fmt.Errorf("error stopping timer: %w", err)
	}
	if !updated {
		// Another surface stopped it between our read and write
		return nil, ErrNoActiveTimer
	}

	entry, err := s.repo.GetTimeEntry(ctx, active.ID)
	if err != nil {
		return nil, fmt.Errorf("error reloading entry: %w", err)
	}

	return &models.EntryResponse{Status: "success", Entry: *entry}, nil
}

// Entry lifecycle

func (s *DefaultService) CreateManualEntry(ctx context.Context, userID string, req models.ManualEntryRequest) (*models.EntryResponse, error) {
	fc, err := s.resolveFirm(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !req.EndedAt.After(req.StartedAt) {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}

	client, err := s.repo.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("error getting client: %w", err)
	}
	if client == nil || client.FirmID != fc.firm.ID {
		return nil, ErrNotFound
	}

	if err := s.checkTaskType(ctx, fc, req.TaskTypeID); err != nil {
		return nil, err
	}

	exactMinutes := req.EndedAt.Sub(req.StartedAt).Minutes()
	billable := billing.RoundToBillingIncrement(exactMinutes, fc.firm.BillingIncrement)
	endedAt := req.EndedAt.UTC()
	notes := req.Notes

	entry := &models.TimeEntry{
		UserID:           userID,
		ClientID:         req.ClientID,
		TaskTypeID:       req.TaskTypeID,
		StartedAt:        req.StartedAt.UTC(),
		EndedAt:          &endedAt,
		ExactDurationMin: &exactMinutes,
		BillableDuration: &billable,
		Notes:            &notes,
		Status:           models.EntryStatusDraft,
	}

	if err := s.repo.CreateTimeEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	return &models.EntryResponse{Status: "success", Entry: *entry}, nil
}

func (s *DefaultService) UpdateDraftEntry(ctx context.Context, userID, entryID string, req models.UpdateDraftRequest) error {
	if req.Notes == nil && req.TaskTypeID == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.TaskTypeID != nil {
		fc, err := s.resolveFirm(ctx, userID)
		if err != nil {
			return err
		}
		if err := s.checkTaskType(ctx, fc, req.TaskTypeID); err != nil {
			return err
		}
	}

	updated, err := s.repo.UpdateDraftEntry(ctx, entryID, userID, req.Notes, req.TaskTypeID)
	if err != nil {
		return fmt.Errorf("error updating entry: %w", err)
	}
	if !updated {
		// Not the owner's draft: either submitted, or someone else's
		return ErrNotFound
	}

	return nil
}

func (s *DefaultService) SubmitDrafts(ctx context.Context, userID string) (*models.SubmitDraftsResponse, error) {
	count, err := s.repo.SubmitDrafts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error submitting drafts: %w", err)
	}

	return &models.SubmitDraftsResponse{Status: "success", Submitted: count}, nil
}

func (s *DefaultService) ListEntries(ctx context.Context, userID string) (*models.EntriesResponse, error) {
	entries, err := s.repo.GetUserEntryViews(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}

	pendingIDs, err := s.repo.GetPendingEntryIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing pending edit requests: %w", err)
	}

	draftCount := 0
	draftBillable := 0.0
	for _, e := range entries {
		if e.Status == models.EntryStatusDraft && e.EndedAt != nil {
			draftCount++
			if e.BillableDuration != nil {
				draftBillable += *e.BillableDuration
			}
		}
	}

	if pendingIDs == nil {
		pendingIDs = []string{}
	}

	return &models.EntriesResponse{
		Status:         "success",
		Entries:        entries,
		PendingEditIDs: pendingIDs,
		DraftCount:     draftCount,
		DraftBillable:  draftBillable,
	}, nil
}

// Edit requests

// CreateEditRequest proposes changes to a submitted entry. Draft
// entries are edited directly; submitted ones only change through an
// approved request.
func (s *DefaultService) CreateEditRequest(ctx context.Context, userID, entryID string, req models.CreateEditRequestRequest) (*models.EditRequestResponse, error) {
	entry, err := s.repo.GetTimeEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("error getting entry: %w", err)
	}
	if entry == nil || entry.UserID != userID {
		return nil, ErrNotFound
	}
	if entry.Status != models.EntryStatusSubmitted {
		return nil, fmt.Errorf("%w: only submitted entries need an edit request", ErrInvalidInput)
	}

	if req.ProposedNotes == nil && req.ProposedDuration == nil && req.ProposedTaskTypeID == nil {
		return nil, fmt.Errorf("%w: at least one field must be proposed", ErrInvalidInput)
	}
	if req.ProposedDuration != nil && *req.ProposedDuration < 0 {
		return nil, fmt.Errorf("%w: proposed duration must not be negative", ErrInvalidInput)
	}

	if req.ProposedTaskTypeID != nil {
		fc, err := s.resolveFirm(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.checkTaskType(ctx, fc, req.ProposedTaskTypeID); err != nil {
			return nil, err
		}
	}

	request := &models.EditRequest{
		TimeEntryID:        entryID,
		RequestedBy:        userID,
		ProposedNotes:      req.ProposedNotes,
		ProposedDuration:   req.ProposedDuration,
		ProposedTaskTypeID: req.ProposedTaskTypeID,
	}

	if err := s.repo.CreateEditRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("error creating edit request: %w", err)
	}

	return &models.EditRequestResponse{Status: "success", Request: *request}, nil
}

func (s *DefaultService) ListPendingEditRequests(ctx context.Context, adminID string) (*models.EditRequestsResponse, error) {
	fc, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.GetFirmPendingEditRequestViews(ctx, fc.firm.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing edit requests: %w", err)
	}

	return &models.EditRequestsResponse{Status: "success", Requests: requests}, nil
}

func (s *DefaultService) ApproveEditRequest(ctx context.Context, adminID, requestID string) error {
	request, err := s.editRequestForAdmin(ctx, adminID, requestID)
	if err != nil {
		return err
	}
	if request.Status != models.EditRequestPending {
		return fmt.Errorf("%w: edit request is %s", ErrInvalidInput, request.Status)
	}

	if err := s.repo.ApproveEditRequest(ctx, request); err != nil {
		return fmt.Errorf("error approving edit request: %w", err)
	}

	return nil
}

func (s *DefaultService) DenyEditRequest(ctx context.Context, adminID, requestID string) error {
	request, err := s.editRequestForAdmin(ctx, adminID, requestID)
	if err != nil {
		return err
	}

	denied, err := s.repo.DenyEditRequest(ctx, request.ID)
	if err != nil {
		return fmt.Errorf("error denying edit request: %w", err)
	}
	if !denied {
		return fmt.Errorf("%w: edit request is %s", ErrInvalidInput, request.Status)
	}

	return nil
}

// editRequestForAdmin loads a request and checks the underlying entry's
// owner belongs to the admin's firm.
func (s *DefaultService) editRequestForAdmin(ctx context.Context, adminID, requestID string) (*models.EditRequest, error) {
	fc, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	request, err := s.repo.GetEditRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("error getting edit request: %w", err)
	}
	if request == nil {
		return nil, ErrNotFound
	}

	entry, err := s.repo.GetTimeEntry(ctx, request.TimeEntryID)
	if err != nil {
		return nil, fmt.Errorf("error getting entry: %w", err)
	}
	if entry == nil {
		return nil, ErrNotFound
	}

	owner, err := s.repo.GetUserByID(ctx, entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting entry owner: %w", err)
	}
	if owner == nil || owner.FirmID == nil || *owner.FirmID != fc.firm.ID {
		return nil, ErrNotAuthorized
	}

	return request, nil
}

// Firm administration

func (s *DefaultService) GetFirm(ctx context.Context, userID string) (*models.FirmResponse, error) {
	fc, err := s.resolveFirm(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.FirmResponse{Status: "success", Firm: *fc.firm}, nil
}

// UpdateBillingIncrement changes the rounding granularity for future
// entries only. Past entries keep the billable duration they were
// stopped with.
func (s *DefaultService) UpdateBillingIncrement(ctx context.Context, userID string, increment float64) (*models.FirmResponse, error) {
	fc, err := s.requireManager(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !billing.ValidIncrement(increment) {
		return nil, fmt.Errorf("%w: billing increment must be one of 0.1, 0.25, 0.5, 1.0", ErrInvalidInput)
	}

	if err := s.repo.UpdateFirmBillingIncrement(ctx, fc.firm.ID, increment); err != nil {
		return nil, fmt.Errorf("error updating billing increment: %w", err)
	}

	fc.firm.BillingIncrement = increment
	return &models.FirmResponse{Status: "success", Firm: *fc.firm}, nil
}

func (s *DefaultService) ListFirmEntries(ctx context.Context, adminID string, filters models.EntryFilters) (*models.FirmEntriesResponse, error) {
	fc, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.GetFirmSubmittedEntryViews(ctx, fc.firm.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing firm entries: %w", err)
	}

	filtered := FilterEntries(entries, filters)
	totals := Totals(filtered)

	return &models.FirmEntriesResponse{
		Status:        "success",
		Entries:       filtered,
		TotalBillable: totals.BillableHours,
		TotalMinutes:  totals.ExactMinutes,
		Count:         totals.Count,
	}, nil
}

func (s *DefaultService) ListClients(ctx context.Context, userID string, includeInactive bool) (*models.ClientsResponse, error) {
	fc, err := s.resolveFirm(ctx, userID)
	if err != nil {
		return nil, err
	}

	clients, err := s.repo.GetFirmClients(ctx, fc.firm.ID, !includeInactive)
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}
	if clients == nil {
		clients = []models.Client{}
	}

	return &models.ClientsResponse{Status: "success", Clients: clients}, nil
}

func (s *DefaultService) CreateClient(ctx context.Context, userID, name string) (*models.ClientResponse, error) {
	fc, err := s.requireManager(ctx, userID)
	if err != nil {
		return nil, err
	}

	client := &models.Client{FirmID: fc.firm.ID, Name: name}
	if err := s.repo.CreateClient(ctx, client); err != nil {
		return nil, fmt.Errorf("error creating client: %w", err)
	}

	return &models.ClientResponse{Status: "success", Client: *client}, nil
}

func (s *DefaultService) UpdateClient(ctx context.Context, userID, clientID string, req models.UpdateClientRequest) error {
	fc, err := s.requireManager(ctx, userID)
	if err != nil {
		return err
	}

	updated, err := s.repo.UpdateClient(ctx, clientID, fc.firm.ID, req.Name, req.IsActive)
	if err != nil {
		return fmt.Errorf("error updating client: %w", err)
	}
	if !updated {
		return ErrNotFound
	}

	return nil
}

func (s *DefaultService) ListTaskTypes(ctx context.Context, userID string, includeInactive bool) (*models.TaskTypesResponse, error) {
	fc, err := s.resolveFirm(ctx, userID)
	if err != nil {
		return nil, err
	}

	taskTypes, err := s.repo.GetFirmTaskTypes(ctx, fc.firm.ID, !includeInactive)
	if err != nil {
		return nil, fmt.Errorf("error listing task types: %w", err)
	}
	if taskTypes == nil {
		taskTypes = []models.TaskType{}
	}

	return &models.TaskTypesResponse{Status: "success", TaskTypes: taskTypes}, nil
}

func (s *DefaultService) CreateTaskType(ctx context.Context, userID, name string) (*models.TaskTypeResponse, error) {
	fc, err := s.requireManager(ctx, userID)
	if err != nil {
		return nil, err
	}

	taskType := &models.TaskType{FirmID: &fc.firm.ID, Name: name}
	if err := s.repo.CreateTaskType(ctx, taskType); err != nil {
		return nil, fmt.Errorf("error creating task type: %w", err)
	}

	return &models.TaskTypeResponse{Status: "success", TaskType: *taskType}, nil
}

func (s *DefaultService) UpdateTaskType(ctx context.Context, userID, taskTypeID string, req models.UpdateTaskTypeRequest) error {
	fc, err := s.requireManager(ctx, userID)
	if err != nil {
		return err
	}

	updated, err := s.repo.UpdateTaskType(ctx, taskTypeID, fc.firm.ID, req.Name, req.IsActive)
	if err != nil {
		return fmt.Errorf("error updating task type: %w", err)
	}
	if !updated {
		// Global defaults fall through here too; firms cannot edit them
		return ErrNotFound
	}

	return nil
}

// AddLawyer creates a lawyer account inside the admin's firm. This is
// the server-side stand-in for the email invite flow.
func (s *DefaultService) AddLawyer(ctx context.Context, adminID string, req models.AddLawyerRequest) (*models.AuthResponse, error) {
	fc, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	lawyer := &models.User{
		ID:       uuid.New().String(),
		FirmID:   &fc.firm.ID,
		Email:    req.Email,
		FullName: req.FullName,
		Password: string(hashedPassword),
		Role:     models.RoleLawyer,
	}

	if err := s.repo.CreateUser(ctx, lawyer); err != nil {
		return nil, fmt.Errorf("error creating lawyer: %w", err)
	}

	return &models.AuthResponse{
		Status:   "success",
		UserID:   lawyer.ID,
		Email:    lawyer.Email,
		FullName: lawyer.FullName,
		Role:     lawyer.Role,
		FirmID:   fc.firm.ID,
	}, nil
}

func (s *DefaultService) ListLawyers(ctx context.Context, adminID string) (*models.LawyersResponse, error) {
	fc, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.GetFirmUsers(ctx, fc.firm.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing lawyers: %w", err)
	}

	lawyers := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role != models.RoleAdmin {
			lawyers = append(lawyers, u)
		}
	}

	return &models.LawyersResponse{Status: "success", Lawyers: lawyers}, nil
}

// checkTaskType validates an optional task type reference against the
// firm scope (firm-owned or global, and active).
func (s *DefaultService) checkTaskType(ctx context.Context, fc *firmContext, taskTypeID *string) error {
	if taskTypeID == nil {
		return nil
	}

	taskType, err := s.repo.GetTaskType(ctx, *taskTypeID)
	if err != nil {
		return fmt.Errorf("error getting task type: %w", err)
	}
	if taskType == nil {
		return ErrNotFound
	}
	if taskType.FirmID != nil && *taskType.FirmID != fc.firm.ID {
		return ErrNotFound
	}
	if !taskType.IsActive {
		return fmt.Errorf("%w: task type is inactive", ErrInvalidInput)
	}

	return nil
}

// Helper methods
func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": user.ID, // subject
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
