package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mercatus-labs/mercatus-backend/api/middleware"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
)

// actorFromContext resolves the authenticated store and user out of the
// request context seeded by the auth middleware.
func actorFromContext(r *http.Request) (storeID, userID uuid.UUID, err error) {
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
	userID, err = uuid.Parse(rawUser)
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return storeID, userID, nil
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(r *http.Request, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return id, nil
}
