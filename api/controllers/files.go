package controllers

import (
	"net/http"

	"github.com/maresdigital/brandhub-backend/api/responses"
	"github.com/maresdigital/brandhub-backend/api/validators"
	"github.com/maresdigital/brandhub-backend/internal/brands"
	"github.com/maresdigital/brandhub-backend/internal/files"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/logger"
)

// FileRegister records the metadata of an uploaded brand asset.
func FileRegister(svc files.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file service unavailable"))
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

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body files.CreateFileDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.UserID = userID
		body.BrandID = brandID

		file, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, file)
	}
}

// FileList returns a brand's assets.
func FileList(svc files.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file service unavailable"))
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

// FileGet returns one asset record.
func FileGet(svc files.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file service unavailable"))
			return
		}

		fileID, err := pathUUID(r, "fileId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, err := svc.Get(r.Context(), fileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := requireOwnedBrand(r.Context(), brandSvc, r, file.BrandID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, file)
	}
}

// FileRecordUse bumps an asset's usage counter.
func FileRecordUse(svc files.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file service unavailable"))
			return
		}

		fileID, err := pathUUID(r, "fileId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, err := svc.Get(r.Context(), fileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := requireOwnedBrand(r.Context(), brandSvc, r, file.BrandID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RecordUse(r.Context(), fileID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fresh, err := svc.Get(r.Context(), fileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, fresh)
	}
}

// FileDelete removes an asset record.
func FileDelete(svc files.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file service unavailable"))
			return
		}

		fileID, err := pathUUID(r, "fileId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, err := svc.Get(r.Context(), fileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := requireOwnedBrand(r.Context(), brandSvc, r, file.BrandID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), fileID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// FilePresignUpload issues a signed upload URL for a new brand asset.
func FilePresignUpload(svc files.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file service unavailable"))
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

		var body files.UploadPresignRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.PresignUpload(r.Context(), brandID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
