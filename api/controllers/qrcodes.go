package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/maresdigital/brandhub-backend/api/middleware"
	"github.com/maresdigital/brandhub-backend/api/responses"
	"github.com/maresdigital/brandhub-backend/api/validators"
	"github.com/maresdigital/brandhub-backend/internal/brands"
	"github.com/maresdigital/brandhub-backend/internal/pages"
	"github.com/maresdigital/brandhub-backend/internal/qrcodes"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/logger"
	"github.com/maresdigital/brandhub-backend/pkg/pagination"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

// QRCreate provisions a QR code under an owned brand.
func QRCreate(svc qrcodes.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr code service unavailable"))
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

		var body qrcodes.CreateQRCodeDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.BrandID = brandID

		code, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, code)
	}
}

// qrThroughOwnership loads a QR code and verifies the caller owns its brand.
func qrThroughOwnership(svc qrcodes.Service, brandSvc brands.Service, r *http.Request) (*qrcodes.QRCodeDTO, error) {
	qrID, err := pathUUID(r, "qrId")
	if err != nil {
		return nil, err
	}
	code, err := svc.Get(r.Context(), qrID)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwnedBrand(r.Context(), brandSvc, r, code.BrandID); err != nil {
		return nil, err
	}
	return code, nil
}

// QRGet returns one owned QR code.
func QRGet(svc qrcodes.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr code service unavailable"))
			return
		}

		code, err := qrThroughOwnership(svc, brandSvc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, code)
	}
}

// QRListByBrand returns an owned brand's QR codes.
func QRListByBrand(svc qrcodes.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr code service unavailable"))
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

// QRListByPage returns the QR codes that point at an owned landing page.
func QRListByPage(svc qrcodes.Service, pageSvc pages.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr code service unavailable"))
			return
		}

		page, err := pageThroughOwnership(pageSvc, brandSvc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByPage(r.Context(), page.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// QRScans pages through an owned QR code's scan history, newest first.
func QRScans(svc qrcodes.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr code service unavailable"))
			return
		}

		code, err := qrThroughOwnership(svc, brandSvc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListScans(r.Context(), code.ID, pagination.Params{
			Limit:  limit,
			Cursor: validators.QueryString(r, "cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// QRDelete removes an owned QR code and its scan history.
func QRDelete(svc qrcodes.Service, brandSvc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr code service unavailable"))
			return
		}

		code, err := qrThroughOwnership(svc, brandSvc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), code.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// publicScanRequest is the optional body a scanning client may attach.
type publicScanRequest struct {
	Location *types.ScanLocation `json:"location,omitempty"`
}

// PublicScan records a scan and answers with the redirect target. The
// endpoint is anonymous: an empty or absent body is fine, and a user id
// is attached only when the request carries a valid session.
func PublicScan(svc qrcodes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr code service unavailable"))
			return
		}

		qrID, err := pathUUID(r, "qrId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto := qrcodes.ScanDTO{}

		var body publicScanRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&body); decodeErr == nil {
			dto.Location = body.Location
		} else if !errors.Is(decodeErr, io.EOF) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid request body"))
			return
		}

		if ip := scanClientIP(r); ip != "" {
			dto.IP = &ip
		}
		if ua := strings.TrimSpace(r.UserAgent()); ua != "" {
			dto.UserAgent = &ua
		}
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			if userID, parseErr := uuid.Parse(raw); parseErr == nil {
				dto.UserID = &userID
			}
		}

		result, err := svc.RecordScan(r.Context(), qrID, dto)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func scanClientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
