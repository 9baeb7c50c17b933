package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mercatus-labs/mercatus-backend/api/responses"
	"github.com/mercatus-labs/mercatus-backend/api/validators"
	storesvc "github.com/mercatus-labs/mercatus-backend/internal/stores"
	"github.com/mercatus-labs/mercatus-backend/pkg/logger"
)

// GetSettings returns the authenticated store's settings.
func GetSettings(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, _, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := svc.GetByID(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

type updateSettingsRequest struct {
	Name             *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email            *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string          `json:"phone,omitempty"`
	Address          *string          `json:"address,omitempty"`
	LogoURL          *string          `json:"logo_url,omitempty"`
	Currency         *string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	Timezone         *string          `json:"timezone,omitempty"`
	TaxRate          *decimal.Decimal `json:"tax_rate,omitempty"`
	ReturnPeriodDays *int             `json:"return_period_days,omitempty" validate:"omitempty,min=0"`
	Theme            *string          `json:"theme,omitempty"`
	Language         *string          `json:"language,omitempty"`
	ReceiptTemplate  *string          `json:"receipt_template,omitempty"`
}

// UpdateSettings applies partial updates to the store's settings.
func UpdateSettings(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, _, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := svc.UpdateSettings(r.Context(), storeID, storesvc.UpdateSettingsInput{
			Name:             payload.Name,
			Email:            payload.Email,
			Phone:            payload.Phone,
			Address:          payload.Address,
			LogoURL:          payload.LogoURL,
			Currency:         payload.Currency,
			Timezone:         payload.Timezone,
			TaxRate:          payload.TaxRate,
			ReturnPeriodDays: payload.ReturnPeriodDays,
			Theme:            payload.Theme,
			Language:         payload.Language,
			ReceiptTemplate:  payload.ReceiptTemplate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}
