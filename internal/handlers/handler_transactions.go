package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/site_expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/site_expense_tracker/internal/dto"
	"github.com/SscSPs/site_expense_tracker/internal/middleware"
	"github.com/SscSPs/site_expense_tracker/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for the four site transaction streams.
type transactionHandler struct {
	txService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{txService: ts}
}

// registerTransactionRoutes registers expense, advance, funds and invoice routes under a site.
func registerTransactionRoutes(rg *gin.RouterGroup, txService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(txService)

	site := rg.Group("/sites/:site_id")
	{
		site.POST("/expenses", h.recordExpense)
		site.GET("/expenses", h.listExpenses)
		site.PATCH("/expenses/:expense_id/status", h.reviewExpense)

		site.POST("/advances", h.recordAdvance)
		site.GET("/advances", h.listAdvances)
		site.PATCH("/advances/:advance_id/status", h.reviewAdvance)

		site.POST("/funds", h.recordFundsReceived)
		site.GET("/funds", h.listFundsReceived)

		site.POST("/invoices", h.recordInvoice)
		site.GET("/invoices", h.listInvoices)
		site.PATCH("/invoices/:invoice_id/payment", h.markInvoicePaid)
	}
}

// bindCreate reads the site ID, the JSON body and the acting user shared by every record endpoint.
func bindCreate(c *gin.Context, req any, op string) (siteID, userID string, ok bool) {
	if siteID, ok = uuidParam(c, "site_id"); !ok {
		return "", "", false
	}
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).
			Warn("Failed to bind JSON for "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return "", "", false
	}
	if userID, ok = requireUserID(c); !ok {
		return "", "", false
	}
	return siteID, userID, true
}

// bindList reads the site ID and pagination query shared by every list endpoint.
func bindList(c *gin.Context) (string, dto.ListTransactionsParams, bool) {
	var params dto.ListTransactionsParams
	siteID, ok := uuidParam(c, "site_id")
	if !ok {
		return "", params, false
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return "", params, false
	}
	return siteID, params, true
}

// --- Expenses ---

// recordExpense godoc
// @Summary Record an expense
// @Description Records a pending expense against a site
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 500 {object} map[string]string "Failed to record expense"
// @Security BearerAuth
// @Router /sites/{site_id}/expenses [post]
func (h *transactionHandler) recordExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	siteID, userID, ok := bindCreate(c, &req, "RecordExpense")
	if !ok {
		return
	}

	expense, err := h.txService.RecordExpense(c.Request.Context(), siteID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to record expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses of a site
// @Tags expenses
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 500 {object} map[string]string "Failed to list expenses"
// @Security BearerAuth
// @Router /sites/{site_id}/expenses [get]
func (h *transactionHandler) listExpenses(c *gin.Context) {
	siteID, params, ok := bindList(c)
	if !ok {
		return
	}

	resp, err := h.txService.ListExpenses(c.Request.Context(), siteID, params)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// reviewExpense godoc
// @Summary Approve or reject an expense
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   expense_id path string true "Expense ID"
// @Param   review body dto.ReviewRequest true "Decision"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense already reviewed"
// @Failure 500 {object} map[string]string "Failed to review expense"
// @Security BearerAuth
// @Router /sites/{site_id}/expenses/{expense_id}/status [patch]
func (h *transactionHandler) reviewExpense(c *gin.Context) {
	expenseID, ok := uuidParam(c, "expense_id")
	if !ok {
		return
	}
	var req dto.ReviewRequest
	siteID, userID, ok := bindCreate(c, &req, "ReviewExpense")
	if !ok {
		return
	}

	expense, err := h.txService.ReviewExpense(c.Request.Context(), siteID, expenseID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to review expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// --- Advances ---

// recordAdvance godoc
// @Summary Record an advance
// @Description Records a pending advance. Safety shoes, tools and other purposes are debits to the worker.
// @Tags advances
// @Accept  json
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   advance body dto.CreateAdvanceRequest true "Advance details"
// @Success 201 {object} dto.AdvanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 500 {object} map[string]string "Failed to record advance"
// @Security BearerAuth
// @Router /sites/{site_id}/advances [post]
func (h *transactionHandler) recordAdvance(c *gin.Context) {
	var req dto.CreateAdvanceRequest
	siteID, userID, ok := bindCreate(c, &req, "RecordAdvance")
	if !ok {
		return
	}

	advance, err := h.txService.RecordAdvance(c.Request.Context(), siteID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to record advance")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAdvanceResponse(advance, accounting.IsWorkerDebit(*advance)))
}

// listAdvances godoc
// @Summary List advances of a site
// @Tags advances
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListAdvancesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 500 {object} map[string]string "Failed to list advances"
// @Security BearerAuth
// @Router /sites/{site_id}/advances [get]
func (h *transactionHandler) listAdvances(c *gin.Context) {
	siteID, params, ok := bindList(c)
	if !ok {
		return
	}

	resp, err := h.txService.ListAdvances(c.Request.Context(), siteID, params)
	if err != nil {
		respondError(c, err, "Failed to list advances")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// reviewAdvance godoc
// @Summary Approve or reject an advance
// @Tags advances
// @Accept  json
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   advance_id path string true "Advance ID"
// @Param   review body dto.ReviewRequest true "Decision"
// @Success 200 {object} dto.AdvanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Advance not found"
// @Failure 409 {object} map[string]string "Advance already reviewed"
// @Failure 500 {object} map[string]string "Failed to review advance"
// @Security BearerAuth
// @Router /sites/{site_id}/advances/{advance_id}/status [patch]
func (h *transactionHandler) reviewAdvance(c *gin.Context) {
	advanceID, ok := uuidParam(c, "advance_id")
	if !ok {
		return
	}
	var req dto.ReviewRequest
	siteID, userID, ok := bindCreate(c, &req, "ReviewAdvance")
	if !ok {
		return
	}

	advance, err := h.txService.ReviewAdvance(c.Request.Context(), siteID, advanceID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to review advance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdvanceResponse(advance, accounting.IsWorkerDebit(*advance)))
}

// --- Funds received ---

// recordFundsReceived godoc
// @Summary Record funds received
// @Description Records money credited to a site and raises its cumulative funds counter
// @Tags funds
// @Accept  json
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   funds body dto.CreateFundsReceivedRequest true "Funds details"
// @Success 201 {object} dto.FundsReceivedResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 500 {object} map[string]string "Failed to record funds received"
// @Security BearerAuth
// @Router /sites/{site_id}/funds [post]
func (h *transactionHandler) recordFundsReceived(c *gin.Context) {
	var req dto.CreateFundsReceivedRequest
	siteID, userID, ok := bindCreate(c, &req, "RecordFundsReceived")
	if !ok {
		return
	}

	funds, err := h.txService.RecordFundsReceived(c.Request.Context(), siteID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to record funds received")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFundsReceivedResponse(funds))
}

// listFundsReceived godoc
// @Summary List funds received by a site
// @Tags funds
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListFundsReceivedResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 500 {object} map[string]string "Failed to list funds received"
// @Security BearerAuth
// @Router /sites/{site_id}/funds [get]
func (h *transactionHandler) listFundsReceived(c *gin.Context) {
	siteID, params, ok := bindList(c)
	if !ok {
		return
	}

	resp, err := h.txService.ListFundsReceived(c.Request.Context(), siteID, params)
	if err != nil {
		respondError(c, err, "Failed to list funds received")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Invoices ---

// recordInvoice godoc
// @Summary Record a vendor invoice
// @Description Records a pending invoice; gross and net amounts are derived from quantity, rate and GST
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 500 {object} map[string]string "Failed to record invoice"
// @Security BearerAuth
// @Router /sites/{site_id}/invoices [post]
func (h *transactionHandler) recordInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	siteID, userID, ok := bindCreate(c, &req, "RecordInvoice")
	if !ok {
		return
	}

	invoice, err := h.txService.RecordInvoice(c.Request.Context(), siteID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to record invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices of a site
// @Tags invoices
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Site not found"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /sites/{site_id}/invoices [get]
func (h *transactionHandler) listInvoices(c *gin.Context) {
	siteID, params, ok := bindList(c)
	if !ok {
		return
	}

	resp, err := h.txService.ListInvoices(c.Request.Context(), siteID, params)
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// markInvoicePaid godoc
// @Summary Mark an invoice as paid
// @Tags invoices
// @Produce  json
// @Param   site_id path string true "Site ID"
// @Param   invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice already paid"
// @Failure 500 {object} map[string]string "Failed to mark invoice paid"
// @Security BearerAuth
// @Router /sites/{site_id}/invoices/{invoice_id}/payment [patch]
func (h *transactionHandler) markInvoicePaid(c *gin.Context) {
	siteID, ok := uuidParam(c, "site_id")
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "invoice_id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	invoice, err := h.txService.MarkInvoicePaid(c.Request.Context(), siteID, invoiceID, userID)
	if err != nil {
		respondError(c, err, "Failed to mark invoice paid")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}
