package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/billableapp/billable-server/internal/models"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetFirmUsers(ctx context.Context, firmID string) ([]models.User, error)
	UpdateUserFullName(ctx context.Context, userID, fullName string) error

	// Firm operations
	CreateFirmWithAdmin(ctx context.Context, firm *models.Firm, admin *models.User) error
	GetFirm(ctx context.Context, firmID string) (*models.Firm, error)
	UpdateFirmBillingIncrement(ctx context.Context, firmID string, increment float64) error

	// Client operations
	CreateClient(ctx context.Context, client *models.Client) error
	GetClient(ctx context.Context, clientID string) (*models.Client, error)
	GetFirmClients(ctx context.Context, firmID string, activeOnly bool) ([]models.Client, error)
	UpdateClient(ctx context.Context, clientID, firmID string, name *string, isActive *bool) (bool, error)

	// Task type operations
	CreateTaskType(ctx context.Context, taskType *models.TaskType) error
	GetTaskType(ctx context.Context, taskTypeID string) (*models.TaskType, error)
	GetFirmTaskTypes(ctx context.Context, firmID string, activeOnly bool) ([]models.TaskType, error)
	UpdateTaskType(ctx context.Context, taskTypeID, firmID string, name *string, isActive *bool) (bool, error)

	// Time entry operations
	StartTimer(ctx context.Context, entry *models.TimeEntry) (*models.TimeEntry, error)
	GetActiveEntry(ctx context.Context, userID string) (*models.TimeEntry, error)
	StopEntry(ctx context.Context, stop StopEntryParams) (bool, error)
	CreateTimeEntry(ctx context.Context, entry *models.TimeEntry) error
	GetTimeEntry(ctx context.Context, entryID string) (*models.TimeEntry, error)
	UpdateDraftEntry(ctx context.Context, entryID, userID string, notes, taskTypeID *string) (bool, error)
	SubmitDrafts(ctx context.Context, userID string) (int, error)
	GetUserEntryViews(ctx context.Context, userID string) ([]models.TimeEntryView, error)
	GetFirmSubmittedEntryViews(ctx context.Context, firmID string) ([]models.TimeEntryView, error)

	// Edit request operations
	CreateEditRequest(ctx context.Context, request *models.EditRequest) error
	GetEditRequest(ctx context.Context, requestID string) (*models.EditRequest, error)
	GetPendingEntryIDs(ctx context.Context, userID string) ([]string, error)
	GetFirmPendingEditRequestViews(ctx context.Context, firmID string) ([]models.EditRequestView, error)
	ApproveEditRequest(ctx context.Context, request *models.EditRequest) error
	DenyEditRequest(ctx context.Context, requestID string) (bool, error)
}

// StopEntryParams carries the fields written exactly once when a
// running entry is closed.
type StopEntryParams struct {
	EntryID          string
	UserID           string
	EndedAt          time.Time
	ExactDurationMin float64
	BillableDuration float64
	Notes            string
	TaskTypeID       *string
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// User repository methods
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, firm_id, email, full_name, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// Generate a new UUID if not provided
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirmID, user.Email, user.FullName, user.Password, user.Role,
		user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetFirmUsers(ctx context.Context, firmID string) ([]models.User, error) {
	query := `SELECT * FROM users WHERE firm_id = $1 ORDER BY full_name`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query, firmID)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *PostgresRepository) UpdateUserFullName(ctx context.Context, userID, fullName string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET full_name = $1, updated_at = $2 WHERE id = $3`,
		fullName, time.Now().UTC(), userID)
	return err
}

// Firm repository methods
func (r *PostgresRepository) CreateFirmWithAdmin(ctx context.Context, firm *models.Firm, admin *models.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	if firm.ID == "" {
		firm.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	firm.CreatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO firms (id, name, billing_increment, created_at) VALUES ($1, $2, $3, $4)`,
		firm.ID, firm.Name, firm.BillingIncrement, firm.CreatedAt)
	if err != nil {
		return err
	}

	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	admin.FirmID = &firm.ID
	admin.CreatedAt = now
	admin.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, firm_id, email, full_name, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		admin.ID, admin.FirmID, admin.Email, admin.FullName, admin.Password, admin.Role,
		admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetFirm(ctx context.Context, firmID string) (*models.Firm, error) {
	query := `SELECT * FROM firms WHERE id = $1`

	var firm models.Firm
	err := r.db.GetContext(ctx, &firm, query, firmID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Firm not found
		}
		return nil, err
	}

	return &firm, nil
}

// UpdateFirmBillingIncrement changes the rounding granularity for
// future entries. Already-billed durations are never recomputed.
func (r *PostgresRepository) UpdateFirmBillingIncrement(ctx context.Context, firmID string, increment float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE firms SET billing_increment = $1 WHERE id = $2`,
		increment, firmID)
	return err
}

// Client repository methods
func (r *PostgresRepository) CreateClient(ctx context.Context, client *models.Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	client.IsActive = true
	client.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (id, firm_id, name, is_active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		client.ID, client.FirmID, client.Name, client.IsActive, client.CreatedAt)
	return err
}

func (r *PostgresRepository) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	var client models.Client
	err := r.db.GetContext(ctx, &client, `SELECT * FROM clients WHERE id = $1`, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &client, nil
}

func (r *PostgresRepository) GetFirmClients(ctx context.Context, firmID string, activeOnly bool) ([]models.Client, error) {
	query := `SELECT * FROM clients WHERE firm_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name`

	var clients []models.Client
	err := r.db.SelectContext(ctx, &clients, query, firmID)
	if err != nil {
		return nil, err
	}

	return clients, nil
}

// UpdateClient renames or (de)activates a client. Clients are never
// hard-deleted; time entries keep referencing them.
func (r *PostgresRepository) UpdateClient(ctx context.Context, clientID, firmID string, name *string, isActive *bool) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE clients SET name = COALESCE($1, name), is_active = COALESCE($2, is_active)
		WHERE id = $3 AND firm_id = $4`,
		name, isActive, clientID, firmID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// Task type repository methods
func (r *PostgresRepository) CreateTaskType(ctx context.Context, taskType *models.TaskType) error {
	if taskType.ID == "" {
		taskType.ID = uuid.New().String()
	}
	taskType.IsActive = true

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_types (id, firm_id, name, is_active) VALUES ($1, $2, $3, $4)`,
		taskType.ID, taskType.FirmID, taskType.Name, taskType.IsActive)
	return err
}

func (r *PostgresRepository) GetTaskType(ctx context.Context, taskTypeID string) (*models.TaskType, error) {
	var taskType models.TaskType
	err := r.db.GetContext(ctx, &taskType, `SELECT * FROM task_types WHERE id = $1`, taskTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &taskType, nil
}

// GetFirmTaskTypes returns the firm's own task types plus the shared
// global defaults (firm_id IS NULL).
func (r *PostgresRepository) GetFirmTaskTypes(ctx context.Context, firmID string, activeOnly bool) ([]models.TaskType, error) {
	query := `SELECT * FROM task_types WHERE (firm_id = $1 OR firm_id IS NULL)`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name`

	var taskTypes []models.TaskType
	err := r.db.SelectContext(ctx, &taskTypes, query, firmID)
	if err != nil {
		return nil, err
	}

	return taskTypes, nil
}

// UpdateTaskType edits a firm-scoped task type. Global defaults are
// read-only for firms, so the firm_id predicate excludes them.
func (r *PostgresRepository) UpdateTaskType(ctx context.Context, taskTypeID, firmID string, name *string, isActive *bool) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE task_types SET name = COALESCE($1, name), is_active = COALESCE($2, is_active)
		WHERE id = $3 AND firm_id = $4`,
		name, isActive, taskTypeID, firmID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// Time entry repository methods

// StartTimer inserts a fresh running draft entry, re-checking the
// at-most-one-active-timer invariant inside the transaction. If another
// surface won the race the existing running entry is returned instead
// and nothing is inserted.
func (r *PostgresRepository) StartTimer(ctx context.Context, entry *models.TimeEntry) (*models.TimeEntry, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	var existing models.TimeEntry
	err = tx.GetContext(ctx, &existing,
		`SELECT * FROM time_entries WHERE user_id = $1 AND ended_at IS NULL FOR UPDATE`,
		entry.UserID)
	if err == nil {
		tx.Rollback()
		return &existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	err = nil

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO time_entries (id, user_id, client_id, started_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.UserID, entry.ClientID, entry.StartedAt, entry.Status, entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return nil, nil
}

// GetActiveEntry re-derives the running-timer state from the store.
// Any client-side cache is an optimization; this row is the truth.
func (r *PostgresRepository) GetActiveEntry(ctx context.Context, userID string) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := r.db.GetContext(ctx, &entry,
		`SELECT * FROM time_entries WHERE user_id = $1 AND ended_at IS NULL`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No active timer
		}
		return nil, err
	}

	return &entry, nil
}

// StopEntry closes a running entry. The ended_at IS NULL predicate
// keeps a double stop from rewriting durations that were already set.
func (r *PostgresRepository) StopEntry(ctx context.Context, stop StopEntryParams) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE time_entries
		SET ended_at = $1, exact_duration_minutes = $2, billable_duration = $3,
			notes = $4, task_type_id = $5
		WHERE id = $6 AND user_id = $7 AND ended_at IS NULL`,
		stop.EndedAt, stop.ExactDurationMin, stop.BillableDuration,
		stop.Notes, stop.TaskTypeID, stop.EntryID, stop.UserID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *PostgresRepository) CreateTimeEntry(ctx context.Context, entry *models.TimeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO time_entries (id, user_id, client_id, task_type_id, started_at, ended_at,
			exact_duration_minutes, billable_duration, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.ClientID, entry.TaskTypeID, entry.StartedAt, entry.EndedAt,
		entry.ExactDurationMin, entry.BillableDuration, entry.Notes, entry.Status, entry.CreatedAt)

	return err
}

func (r *PostgresRepository) GetTimeEntry(ctx context.Context, entryID string) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := r.db.GetContext(ctx, &entry, `SELECT * FROM time_entries WHERE id = $1`, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}

// UpdateDraftEntry rewrites notes/task type on a draft owned by the
// caller. The status predicate makes submitted entries untouchable
// through this path.
func (r *PostgresRepository) UpdateDraftEntry(ctx context.Context, entryID, userID string, notes, taskTypeID *string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE time_entries
		SET notes = COALESCE($1, notes), task_type_id = COALESCE($2, task_type_id)
		WHERE id = $3 AND user_id = $4 AND status = 'draft'`,
		notes, taskTypeID, entryID, userID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// SubmitDrafts flips every finished draft of the user to submitted in
// one statement, so the transition is all-or-nothing. The running entry
// (ended_at IS NULL) is excluded.
func (r *PostgresRepository) SubmitDrafts(ctx context.Context, userID string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE time_entries SET status = 'submitted'
		WHERE user_id = $1 AND status = 'draft' AND ended_at IS NOT NULL`,
		userID)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rows), nil
}

const entryViewColumns = `
	te.*,
	c.name AS client_name,
	tt.name AS task_type_name,
	u.full_name AS user_full_name
`

func (r *PostgresRepository) GetUserEntryViews(ctx context.Context, userID string) ([]models.TimeEntryView, error) {
	query := `
		SELECT ` + entryViewColumns + `
		FROM time_entries te
		JOIN clients c ON te.client_id = c.id
		LEFT JOIN task_types tt ON te.task_type_id = tt.id
		JOIN users u ON te.user_id = u.id
		WHERE te.user_id = $1
		ORDER BY te.started_at DESC
	`

	var entries []models.TimeEntryView
	err := r.db.SelectContext(ctx, &entries, query, userID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *PostgresRepository) GetFirmSubmittedEntryViews(ctx context.Context, firmID string) ([]models.TimeEntryView, error) {
	query := `
		SELECT ` + entryViewColumns + `
		FROM time_entries te
		JOIN clients c ON te.client_id = c.id
		LEFT JOIN task_types tt ON te.task_type_id = tt.id
		JOIN users u ON te.user_id = u.id
		WHERE te.status = 'submitted' AND u.firm_id = $1
		ORDER BY te.started_at DESC
	`

	var entries []models.TimeEntryView
	err := r.db.SelectContext(ctx, &entries, query, firmID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Edit request repository methods
func (r *PostgresRepository) CreateEditRequest(ctx context.Context, request *models.EditRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	request.Status = models.EditRequestPending
	request.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO edit_requests (id, time_entry_id, requested_by, proposed_notes,
			proposed_duration, proposed_task_type_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		request.ID, request.TimeEntryID, request.RequestedBy, request.ProposedNotes,
		request.ProposedDuration, request.ProposedTaskTypeID, request.Status, request.CreatedAt)

	return err
}

func (r *PostgresRepository) GetEditRequest(ctx context.Context, requestID string) (*models.EditRequest, error) {
	var request models.EditRequest
	err := r.db.GetContext(ctx, &request, `SELECT * FROM edit_requests WHERE id = $1`, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &request, nil
}

// GetPendingEntryIDs lists the caller's entries that already have a
// pending edit request, for flagging in the dashboard.
func (r *PostgresRepository) GetPendingEntryIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids,
		`SELECT time_entry_id FROM edit_requests WHERE requested_by = $1 AND status = 'pending'`,
		userID)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

type editRequestRow struct {
	models.EditRequest
	ProposedTaskTypeName *string `db:"proposed_task_type_name"`
	EntryID              string  `db:"entry_id"`
}

func (r *PostgresRepository) GetFirmPendingEditRequestViews(ctx context.Context, firmID string) ([]models.EditRequestView, error) {
	query := `
		SELECT er.*, ptt.name AS proposed_task_type_name, te.id AS entry_id
		FROM edit_requests er
		JOIN time_entries te ON er.time_entry_id = te.id
		JOIN users u ON te.user_id = u.id
		LEFT JOIN task_types ptt ON er.proposed_task_type_id = ptt.id
		WHERE er.status = 'pending' AND u.firm_id = $1
		ORDER BY er.created_at ASC
	`

	var rows []editRequestRow
	if err := r.db.SelectContext(ctx, &rows, query, firmID); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []models.EditRequestView{}, nil
	}

	entryIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		entryIDs = append(entryIDs, row.EntryID)
	}

	entryQuery, args, err := sqlx.In(`
		SELECT `+entryViewColumns+`
		FROM time_entries te
		JOIN clients c ON te.client_id = c.id
		LEFT JOIN task_types tt ON te.task_type_id = tt.id
		JOIN users u ON te.user_id = u.id
		WHERE te.id IN (?)
	`, entryIDs)
	if err != nil {
		return nil, err
	}

	var entries []models.TimeEntryView
	if err := r.db.SelectContext(ctx, &entries, r.db.Rebind(entryQuery), args...); err != nil {
		return nil, err
	}

	entryByID := make(map[string]models.TimeEntryView, len(entries))
	for _, entry := range entries {
		entryByID[entry.ID] = entry
	}

	views := make([]models.EditRequestView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.EditRequestView{
			EditRequest:          row.EditRequest,
			Entry:                entryByID[row.EntryID],
			ProposedTaskTypeName: row.ProposedTaskTypeName,
		})
	}

	return views, nil
}

// ApproveEditRequest applies the approval as one transaction: copy each
// non-null proposed field onto the entry, flip the request to approved,
// and deny any sibling requests still pending against the same entry.
// Either all three land or none do.
func (r *PostgresRepository) ApproveEditRequest(ctx context.Context, request *models.EditRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	_, err = tx.ExecContext(ctx,
		`UPDATE time_entries
		SET notes = COALESCE($1, notes),
			billable_duration = COALESCE($2, billable_duration),
			task_type_id = COALESCE($3, task_type_id)
		WHERE id = $4`,
		request.ProposedNotes, request.ProposedDuration, request.ProposedTaskTypeID,
		request.TimeEntryID)
	if err != nil {
		return err
	}

	var result sql.Result
	result, err = tx.ExecContext(ctx,
		`UPDATE edit_requests SET status = 'approved' WHERE id = $1 AND status = 'pending'`,
		request.ID)
	if err != nil {
		return err
	}

	var rows int64
	rows, err = result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Approved and denied are terminal
		err = errors.New("edit request is not pending")
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE edit_requests SET status = 'denied'
		WHERE time_entry_id = $1 AND status = 'pending' AND id <> $2`,
		request.TimeEntryID, request.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DenyEditRequest marks a pending request denied, leaving the entry
// untouched. Returns false if the request was already terminal.
func (r *PostgresRepository) DenyEditRequest(ctx context.Context, requestID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE edit_requests SET status = 'denied' WHERE id = $1 AND status = 'pending'`,
		requestID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
