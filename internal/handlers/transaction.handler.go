package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/fasthttp/router"

	"github.com/LekaAli/fes/internal/model"
	"github.com/LekaAli/fes/internal/services"
	xhttp "github.com/LekaAli/fes/pkg/http"
)

type TransactionService interface {
	Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error)
	Get(ctx context.Context, id int64) (*model.Transaction, error)
	Update(ctx context.Context, id int64, p model.TransactionUpdateRequest) (*model.Transaction, error)
	Delete(ctx context.Context, id int64) error
	Dashboard(ctx context.Context, transactionID int64, operationType int) (*services.DashboardView, error)
}

type TransactionHandler struct {
	svc TransactionService
}

func NewTransactionHandler(transactionService TransactionService) *TransactionHandler {
	return &TransactionHandler{
		svc: transactionService,
	}
}

func RegisterTransactionRoutes(r *router.Router, h *TransactionHandler, auth *Auth) {
	r.GET("/", auth.Require(h.Dashboard))
	r.GET("/transactions", auth.Require(h.CreateForm))
	r.POST("/transactions", auth.Require(h.CreateTransaction))
	r.GET("/transactions/retrieve/", auth.Require(h.RetrieveForm))
	r.POST("/transactions/retrieve/", auth.Require(h.RetrieveTransaction))
	r.GET("/transactions/{id}", auth.Require(h.EditForm))
	r.POST("/transactions/{id}", auth.Require(h.EditTransaction))
	r.POST("/transactions/{id}/delete", auth.Require(h.DeleteTransaction))
}

type transactionForm struct {
	Date        string `validate:"omitempty"`
	Type        string `validate:"required,oneof=credit debit"`
	Amount      string `validate:"required"`
	Description string `validate:"required"`
}

type dashboardResponse struct {
	Title        string               `json:"title"`
	Transactions []*model.Transaction `json:"transactions"`
	TotalAmount  float64              `json:"account_balance"`
}

type editFormResponse struct {
	Title       string             `json:"title"`
	Transaction *model.Transaction `json:"transaction"`
}

/* --------------------------------- Routes ----------------------------------- */

// Dashboard multiplexes the listing page: plain listing, single-record view,
// redirect into edit, and delete-then-list, selected by the transaction_id
// and operation_type query pair.
func (h *TransactionHandler) Dashboard(ctx *xhttp.RequestCtx) {
	transactionID := queryInt64(ctx, "transaction_id")
	operationType := queryInt(ctx, "operation_type")

	view, err := h.svc.Dashboard(ctx, transactionID, operationType)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, "operation failed")
		return
	}

	if view.RedirectTo != "" {
		redirect(ctx, view.RedirectTo)
		return
	}

	transactions := view.Transactions
	if transactions == nil {
		transactions = []*model.Transaction{}
	}

	writeJSON(ctx, xhttp.StatusOK, dashboardResponse{
		Title:        "Dashboard",
		Transactions: transactions,
		TotalAmount:  view.Total,
	})
}

func (h *TransactionHandler) CreateForm(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"title": "Create Transaction"})
}

func (h *TransactionHandler) CreateTransaction(ctx *xhttp.RequestCtx) {
	form := transactionForm{
		Date:        formValue(ctx, "date"),
		Type:        formValue(ctx, "type"),
		Amount:      formValue(ctx, "amount"),
		Description: formValue(ctx, "description"),
	}
	if errs := validateForm(form); errs != nil {
		writeFieldErrors(ctx, errs)
		return
	}

	p := model.TransactionCreateRequest{
		Amount:      form.Amount,
		Type:        model.TransactionType(form.Type),
		Description: form.Description,
	}
	if form.Date != "" {
		t, err := parseTime(form.Date)
		if err != nil {
			writeFieldErrors(ctx, map[string]string{"date": "invalid date"})
			return
		}
		p.Date = t
	}

	if _, err := h.svc.Create(ctx, p); err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, "operation failed")
		return
	}

	redirect(ctx, "/")
}

func (h *TransactionHandler) RetrieveForm(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"title": "Retrieve Transaction"})
}

// RetrieveTransaction turns the search form into a dashboard visit: the
// submitted id becomes the selector, and the operation_type of the current
// request's query string rides along untouched.
func (h *TransactionHandler) RetrieveTransaction(ctx *xhttp.RequestCtx) {
	raw := formValue(ctx, "transaction_id")
	if raw == "" {
		writeFieldErrors(ctx, map[string]string{"transaction_id": "failed on required"})
		return
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		writeFieldErrors(ctx, map[string]string{"transaction_id": "must be an integer"})
		return
	}

	target := "/?transaction_id=" + raw
	if op := query(ctx, "operation_type"); op != "" {
		target += "&operation_type=" + op
	}
	redirect(ctx, target)
}

func (h *TransactionHandler) EditForm(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}

	txn, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			// pre-fill falls back to an empty form
			writeJSON(ctx, xhttp.StatusOK, editFormResponse{Title: "Edit Transaction"})
			return
		}
		writeError(ctx, xhttp.StatusInternalServerError, "operation failed")
		return
	}

	writeJSON(ctx, xhttp.StatusOK, editFormResponse{Title: "Edit Transaction", Transaction: txn})
}

func (h *TransactionHandler) EditTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}

	form := transactionForm{
		Date:        formValue(ctx, "date"),
		Type:        formValue(ctx, "type"),
		Amount:      formValue(ctx, "amount"),
		Description: formValue(ctx, "description"),
	}
	if errs := validateForm(form); errs != nil {
		writeFieldErrors(ctx, errs)
		return
	}

	p := model.TransactionUpdateRequest{
		Amount:      form.Amount,
		Type:        model.TransactionType(form.Type),
		Description: form.Description,
	}
	if form.Date != "" {
		t, err := parseTime(form.Date)
		if err != nil {
			writeFieldErrors(ctx, map[string]string{"date": "invalid date"})
			return
		}
		p.Date = t
	}

	if _, err := h.svc.Update(ctx, id, p); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(ctx, xhttp.StatusNotFound, "transaction not found")
			return
		}
		writeError(ctx, xhttp.StatusInternalServerError, "operation failed")
		return
	}

	redirect(ctx, "/")
}

func (h *TransactionHandler) DeleteTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}

	// a missing row is already the desired end state
	if err := h.svc.Delete(ctx, id); err != nil && !errors.Is(err, services.ErrNotFound) {
		writeError(ctx, xhttp.StatusInternalServerError, "operation failed")
		return
	}

	redirect(ctx, "/")
}
