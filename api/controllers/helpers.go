package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/api/middleware"
	"github.com/maresdigital/brandhub-backend/internal/brands"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
)

// actorID resolves the authenticated user from the request context.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

func actorIsAdmin(r *http.Request) bool {
	return middleware.RoleFromContext(r.Context()) == string(enums.UserRoleAdmin)
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name).
			WithDetails(map[string]any{"field": name})
	}
	return id, nil
}

// requireOwnedBrand loads the brand and checks the caller owns it. Admins
// pass the check for any brand.
func requireOwnedBrand(ctx context.Context, svc brands.Service, r *http.Request, brandID uuid.UUID) (*brands.BrandDTO, error) {
	brand, err := svc.Get(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if actorIsAdmin(r) {
		return brand, nil
	}
	actor, err := actorID(r)
	if err != nil {
		return nil, err
	}
	if brand.UserID != actor {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "brand belongs to another user")
	}
	return brand, nil
}
