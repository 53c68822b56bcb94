package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maresdigital/brandhub-backend/api/middleware"
	"github.com/maresdigital/brandhub-backend/api/responses"
	"github.com/maresdigital/brandhub-backend/api/validators"
	"github.com/maresdigital/brandhub-backend/internal/brands"
	"github.com/maresdigital/brandhub-backend/internal/pages"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/logger"
	"github.com/maresdigital/brandhub-backend/pkg/outbox"
)

// PageCreate adds a landing page under an owned brand.
func PageCreate(svc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		brandID, err := pathUUID(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := requireOwnedBrand(r.Context(), brandSvc, r, brandID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pages.CreatePageDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.BrandID = brandID

		page, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, page)
	}
}

// PageList returns an owned brand's landing pages.
func PageList(svc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		brandID, err := pathUUID(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := requireOwnedBrand(r.Context(), brandSvc, r, brandID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByBrand(r.Context(), brandID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// pageThroughOwnership loads a page and verifies the caller owns the brand
// it belongs to.
func pageThroughOwnership(svc pages.Service, brandSvc brands.Service, r *http.Request) (*pages.PageDTO, error) {
	pageID, err := pathUUID(r, "pageId")
	if err != nil {
		return nil, err
	}
	page, err := svc.Get(r.Context(), pageID)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwnedBrand(r.Context(), brandSvc, r, page.BrandID); err != nil {
		return nil, err
	}
	return page, nil
}

// PageGet returns one owned landing page.
func PageGet(svc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		page, err := pageThroughOwnership(svc, brandSvc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// PageUpdate applies a partial update to an owned landing page.
func PageUpdate(svc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		page, err := pageThroughOwnership(svc, brandSvc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pages.UpdatePageDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), page.ID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// PageUpdateStatus transitions the page between draft, published and
// archived.
func PageUpdateStatus(svc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		page, err := pageThroughOwnership(svc, brandSvc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pages.UpdateStatusDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorUser, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actor := &outbox.ActorRef{
			UserID:  actorUser,
			BrandID: &page.BrandID,
			Role:    middleware.RoleFromContext(r.Context()),
		}

		updated, err := svc.UpdateStatus(r.Context(), page.ID, body, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// PageDelete removes an owned landing page.
func PageDelete(svc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		page, err := pageThroughOwnership(svc, brandSvc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), page.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// BlockAdd inserts a block on an owned page.
func BlockAdd(svc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		page, err := pageThroughOwnership(svc, brandSvc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pages.CreateBlockDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		block, err := svc.AddBlock(r.Context(), page.ID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, block)
	}
}

// BlockList returns an owned page's blocks in display order.
func BlockList(svc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		page, err := pageThroughOwnership(svc, brandSvc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		blocks, err := svc.ListBlocks(r.Context(), page.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, blocks)
	}
}

// BlockUpdate edits the type or content of a block on an owned page.
func BlockUpdate(svc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		if _, err := pageThroughOwnership(svc, brandSvc, r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		blockID, err := pathUUID(r, "blockId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pages.UpdateBlockDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		block, err := svc.UpdateBlock(r.Context(), blockID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, block)
	}
}

// BlockRemove deletes a block from an owned page.
func BlockRemove(svc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		if _, err := pageThroughOwnership(svc, brandSvc, r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		blockID, err := pathUUID(r, "blockId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveBlock(r.Context(), blockID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// BlocksReorder rewrites the block order of an owned page.
func BlocksReorder(svc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		page, err := pageThroughOwnership(svc, brandSvc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pages.ReorderDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		blocks, err := svc.Reorder(r.Context(), page.ID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, blocks)
	}
}

// PublicPageBySlug renders a landing page for anonymous visitors.
func PublicPageBySlug(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		slug := chi.URLParam(r, "slug")
		page, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
