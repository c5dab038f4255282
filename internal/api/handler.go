package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billableapp/billable-server/internal/models"
	"github.com/billableapp/billable-server/internal/service"
)

// Handler holds the HTTP handlers for the API
type Handler struct {
	service service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{service: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.Login)
	}

	authorized := api.Group("")
	authorized.Use(AuthMiddleware())
	{
		authorized.GET("/me", h.Me)
		authorized.PATCH("/me", h.UpdateMe)

		authorized.GET("/timer", h.GetTimer)
		authorized.POST("/timer/start", h.StartTimer)
		authorized.POST("/timer/stop", h.StopTimer)

		authorized.GET("/entries", h.ListEntries)
		authorized.POST("/entries", h.CreateManualEntry)
		authorized.PATCH("/entries/:id", h.UpdateDraftEntry)
		authorized.POST("/entries/submit", h.SubmitDrafts)
		authorized.POST("/entries/:id/edit-requests", h.CreateEditRequest)

		authorized.GET("/clients", h.ListClients)
		authorized.GET("/task-types", h.ListTaskTypes)
		authorized.GET("/firm", h.GetFirm)

		admin := authorized.Group("/admin")
		{
			admin.GET("/entries", h.ListFirmEntries)
			admin.GET("/edit-requests", h.ListEditRequests)
			admin.POST("/edit-requests/:id/approve", h.ApproveEditRequest)
			admin.POST("/edit-requests/:id/deny", h.DenyEditRequest)
			admin.PATCH("/firm", h.UpdateFirm)
			admin.GET("/clients", h.ListAllClients)
			admin.POST("/clients", h.CreateClient)
			admin.PATCH("/clients/:id", h.UpdateClient)
			admin.GET("/task-types", h.ListAllTaskTypes)
			admin.POST("/task-types", h.CreateTaskType)
			admin.PATCH("/task-types/:id", h.UpdateTaskType)
			admin.GET("/lawyers", h.ListLawyers)
			admin.POST("/lawyers", h.AddLawyer)
		}
	}
}

// respondError maps service errors onto the HTTP error envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status: "error", Code: "INVALID_INPUT", Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Status: "error", Code: "UNAUTHORIZED", Message: err.Error(),
		})
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Status: "error", Code: "FORBIDDEN", Message: "Not authorized",
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status: "error", Code: "NOT_FOUND", Message: "Not found",
		})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status: "error", Code: "EMAIL_TAKEN", Message: err.Error(),
		})
	case errors.Is(err, service.ErrNoActiveTimer):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Status: "error", Code: "NO_ACTIVE_TIMER", Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status: "error", Code: "INTERNAL_ERROR", Message: err.Error(),
		})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status: "error", Code: "INVALID_REQUEST", Message: err.Error(),
	})
}

func userID(c *gin.Context) string {
	return c.MustGet("userId").(string)
}

// Authentication handlers

func (h *Handler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Me(c *gin.Context) {
	resp, err := h.service.Me(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var req struct {
		FullName string `json:"fullName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.UpdateFullName(c.Request.Context(), userID(c), req.FullName); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Timer handlers

func (h *Handler) GetTimer(c *gin.Context) {
	resp, err := h.service.GetTimerState(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) StartTimer(c *gin.Context) {
	var req models.StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.StartTimer(c.Request.Context(), userID(c), req.ClientID)
	if errors.Is(err, service.ErrTimerAlreadyRunning) {
		// The existing running entry wins; return it so the caller can
		// adopt it instead of showing a duplicate.
		c.JSON(http.StatusConflict, resp)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) StopTimer(c *gin.Context) {
	var req models.StopTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.StopTimer(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Entry handlers

func (h *Handler) ListEntries(c *gin.Context) {
	resp, err := h.service.ListEntries(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateManualEntry(c *gin.Context) {
	var req models.ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.CreateManualEntry(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) UpdateDraftEntry(c *gin.Context) {
	var req models.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.UpdateDraftEntry(c.Request.Context(), userID(c), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) SubmitDrafts(c *gin.Context) {
	resp, err := h.service.SubmitDrafts(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Edit request handlers

func (h *Handler) CreateEditRequest(c *gin.Context) {
	var req models.CreateEditRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.CreateEditRequest(c.Request.Context(), userID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) ListEditRequests(c *gin.Context) {
	resp, err := h.service.ListPendingEditRequests(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ApproveEditRequest(c *gin.Context) {
	if err := h.service.ApproveEditRequest(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) DenyEditRequest(c *gin.Context) {
	if err := h.service.DenyEditRequest(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Firm handlers

func (h *Handler) GetFirm(c *gin.Context) {
	resp, err := h.service.GetFirm(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UpdateFirm(c *gin.Context) {
	var req models.UpdateFirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.UpdateBillingIncrement(c.Request.Context(), userID(c), req.BillingIncrement)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListFirmEntries(c *gin.Context) {
	var filters models.EntryFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.ListFirmEntries(c.Request.Context(), userID(c), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Client handlers

func (h *Handler) ListClients(c *gin.Context) {
	resp, err := h.service.ListClients(c.Request.Context(), userID(c), false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListAllClients(c *gin.Context) {
	resp, err := h.service.ListClients(c.Request.Context(), userID(c), true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.CreateClient(c.Request.Context(), userID(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) UpdateClient(c *gin.Context) {
	var req models.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.UpdateClient(c.Request.Context(), userID(c), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Task type handlers

func (h *Handler) ListTaskTypes(c *gin.Context) {
	resp, err := h.service.ListTaskTypes(c.Request.Context(), userID(c), false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListAllTaskTypes(c *gin.Context) {
	resp, err := h.service.ListTaskTypes(c.Request.Context(), userID(c), true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateTaskType(c *gin.Context) {
	var req models.CreateTaskTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.CreateTaskType(c.Request.Context(), userID(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) UpdateTaskType(c *gin.Context) {
	var req models.UpdateTaskTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.UpdateTaskType(c.Request.Context(), userID(c), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Lawyer handlers

func (h *Handler) ListLawyers(c *gin.Context) {
	resp, err := h.service.ListLawyers(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AddLawyer(c *gin.Context) {
	var req models.AddLawyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.AddLawyer(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
