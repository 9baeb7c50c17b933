package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mercatus-labs/mercatus-backend/api/responses"
	"github.com/mercatus-labs/mercatus-backend/api/validators"
	expensesvc "github.com/mercatus-labs/mercatus-backend/internal/expenses"
	"github.com/mercatus-labs/mercatus-backend/pkg/logger"
)

type createExpenseRequest struct {
	Category    string          `json:"category" validate:"required,min=1,max=120"`
	Description string          `json:"description" validate:"required,min=1"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	ReceiptURL  *string         `json:"receipt_url,omitempty"`
}

func CreateExpense(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, userID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload createExpenseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		expense, err := svc.Create(r.Context(), storeID, &userID, expensesvc.CreateInput{
			Category:    payload.Category,
			Description: payload.Description,
			Amount:      payload.Amount,
			ExpenseDate: payload.ExpenseDate,
			ReceiptURL:  payload.ReceiptURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, expense)
	}
}

func ListExpenses(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, _, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type updateExpenseRequest struct {
	Category    *string          `json:"category,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	ExpenseDate *time.Time       `json:"expense_date,omitempty"`
	ReceiptURL  *string          `json:"receipt_url,omitempty"`
}

func UpdateExpense(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, _, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, chi.URLParam(r, "expenseID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateExpenseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		expense, err := svc.Update(r.Context(), storeID, id, expensesvc.UpdateInput{
			Category:    payload.Category,
			Description: payload.Description,
			Amount:      payload.Amount,
			ExpenseDate: payload.ExpenseDate,
			ReceiptURL:  payload.ReceiptURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, expense)
	}
}

func DeleteExpense(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, _, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, chi.URLParam(r, "expenseID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), storeID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
