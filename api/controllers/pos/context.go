package pos

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mercatus-labs/mercatus-backend/api/middleware"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
)

// registerFromContext resolves the (store, cashier) pair that owns the
// register session for this request.
func registerFromContext(r *http.Request) (storeID, cashierID uuid.UUID, err error) {
	rawStore := middleware.StoreIDFromContext(r.Context())
	if rawStore == "" {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "store context missing")
	}
	rawUser := middleware.UserIDFromContext(r.Context())
	if rawUser == "" {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	storeID, err = uuid.Parse(rawStore)
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id")
	}
	cashierID, err = uuid.Parse(rawUser)
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return storeID, cashierID, nil
}
