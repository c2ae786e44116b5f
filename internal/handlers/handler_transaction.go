package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/dto"
	"github.com/expensio/expensio_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	reportingService   portssvc.ReportingSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, rs portssvc.ReportingSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		reportingService:   rs,
	}
}

// RegisterTransactionRoutes registers all transaction-related routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, rs portssvc.ReportingSvcFacade) {
	h := newTransactionHandler(ts, rs)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.PATCH("/:transactionID/done", h.setTransactionDone)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a new transaction
// @Description Records a transaction for the authenticated user. Positive amounts are expenses, negative amounts income.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.MutationResponse
// @Failure 400 {object} dto.MutationResponse "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.MutationResponse{Success: false, Message: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.MutationResponse{Success: false, Message: err.Error()})
			return
		}
		logger.Error("Failed to create transaction in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MutationResponse{Success: false, Message: "Failed to create transaction"})
		return
	}

	resp := dto.ToTransactionResponse(txn)
	c.JSON(http.StatusCreated, dto.MutationResponse{Success: true, Message: "transaction created", Transaction: &resp})
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the authenticated user's transactions with optional category, done and search filters. With grouped=true the list is partitioned by calendar day, most recent first.
// @Tags transactions
// @Produce json
// @Param category query string false "Category substring filter; 'all' or empty disables it"
// @Param done query string false "Completion filter: done or undone"
// @Param search query string false "Case-insensitive substring match on description or category"
// @Param grouped query bool false "Group results by calendar day"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} dto.ListTransactionsResponse "No transactions matched"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.ResolveTransactionFilter(params.Category, params.Done)

	if params.Grouped {
		groups, err := h.reportingService.TransactionGroups(c.Request.Context(), ownerID, filter, params.Search)
		if err != nil {
			logger.Error("Failed to list grouped transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
			return
		}
		if len(groups) == 0 {
			// Distinct no-results signal the clients rely on, not an error.
			c.JSON(http.StatusNotFound, dto.GroupedTransactionsResponse{Success: false, Message: "no transactions found"})
			return
		}
		c.JSON(http.StatusOK, dto.GroupedTransactionsResponse{Success: true, Message: "transactions found", Groups: dto.ToDayGroupResponses(groups)})
		return
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), ownerID, filter)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	matched := txns[:0:0]
	for _, t := range txns {
		if domain.MatchesSearch(t, params.Search) {
			matched = append(matched, t)
		}
	}

	if len(matched) == 0 {
		c.JSON(http.StatusNotFound, dto.ListTransactionsResponse{Success: false, Message: "no transactions found", Transactions: []dto.TransactionResponse{}})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Success: true, Message: "transactions found", Transactions: dto.ToTransactionResponses(matched)})
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves one transaction owned by the authenticated user.
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.MutationResponse
// @Failure 404 {object} dto.MutationResponse "Transaction not found"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), c.Param("transactionID"), ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.MutationResponse{Success: false, Message: "transaction not found"})
			return
		}
		logger.Error("Failed to get transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MutationResponse{Success: false, Message: "Failed to retrieve transaction"})
		return
	}

	resp := dto.ToTransactionResponse(txn)
	c.JSON(http.StatusOK, dto.MutationResponse{Success: true, Message: "transaction found", Transaction: &resp})
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Applies a partial update to a transaction; omitted fields are untouched.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} dto.MutationResponse "Invalid input"
// @Failure 404 {object} dto.MutationResponse "Transaction not found"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MutationResponse{Success: false, Message: "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), c.Param("transactionID"), ownerID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.MutationResponse{Success: false, Message: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.MutationResponse{Success: false, Message: "transaction not found"})
		default:
			logger.Error("Failed to update transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.MutationResponse{Success: false, Message: "Failed to update transaction"})
		}
		return
	}

	resp := dto.ToTransactionResponse(txn)
	c.JSON(http.StatusOK, dto.MutationResponse{Success: true, Message: "transaction updated", Transaction: &resp})
}

// setTransactionDone godoc
// @Summary Set or toggle a transaction's done flag
// @Description With an explicit done value the flag is set idempotently; with an empty body the store flips the current value atomically.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param body body dto.SetDoneRequest false "Optional explicit done value"
// @Success 200 {object} dto.MutationResponse
// @Failure 404 {object} dto.MutationResponse "Transaction not found"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions/{transactionID}/done [patch]
func (h *transactionHandler) setTransactionDone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Body is optional; an absent or empty body means toggle.
	var req dto.SetDoneRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.MutationResponse{Success: false, Message: "Invalid request format: " + err.Error()})
			return
		}
	}

	txn, err := h.transactionService.SetTransactionDone(c.Request.Context(), c.Param("transactionID"), ownerID, req.Done)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.MutationResponse{Success: false, Message: "transaction not found"})
			return
		}
		logger.Error("Failed to set transaction done flag", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MutationResponse{Success: false, Message: "Failed to update transaction"})
		return
	}

	resp := dto.ToTransactionResponse(txn)
	c.JSON(http.StatusOK, dto.MutationResponse{Success: true, Message: "transaction updated", Transaction: &resp})
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Permanently removes a transaction owned by the authenticated user.
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.MutationResponse
// @Failure 404 {object} dto.MutationResponse "Transaction not found"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.transactionService.DeleteTransaction(c.Request.Context(), c.Param("transactionID"), ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.MutationResponse{Success: false, Message: "transaction not found"})
			return
		}
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MutationResponse{Success: false, Message: "Failed to delete transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.MutationResponse{Success: true, Message: "transaction deleted"})
}
