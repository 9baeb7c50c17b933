package pos

import (
	"net/http"

	"github.com/mercatus-labs/mercatus-backend/api/responses"
	checkoutsvc "github.com/mercatus-labs/mercatus-backend/internal/checkout"
	"github.com/mercatus-labs/mercatus-backend/pkg/logger"
)

// Checkout finalizes the cashier's cart into a persisted invoice.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, cashierID, err := registerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		invoice, err := svc.Execute(r.Context(), storeID, cashierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, invoice)
	}
}
