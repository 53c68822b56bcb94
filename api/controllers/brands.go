package controllers

import (
	"net/http"

	"github.com/maresdigital/brandhub-backend/api/middleware"
	"github.com/maresdigital/brandhub-backend/api/responses"
	"github.com/maresdigital/brandhub-backend/api/validators"
	"github.com/maresdigital/brandhub-backend/internal/brands"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/logger"
	"github.com/maresdigital/brandhub-backend/pkg/outbox"
	"github.com/maresdigital/brandhub-backend/pkg/types"
)

type brandCreateRequest struct {
	Name         string  `json:"name" validate:"required"`
	LogoURL      string  `json:"logo_url" validate:"required,url"`
	Description  string  `json:"description" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Tagline      *string `json:"tagline,omitempty"`
	VideoURL     *string `json:"video_url,omitempty"`
	Mission      *string `json:"mission,omitempty"`
	Vision       *string `json:"vision,omitempty"`
	FoundingYear *int    `json:"founding_year,omitempty"`
	Phone        *string `json:"phone,omitempty"`

	Address           *types.Address          `json:"address,omitempty"`
	Social            *types.Social           `json:"social,omitempty"`
	Certifications    types.Certifications    `json:"certifications,omitempty"`
	Awards            types.Awards            `json:"awards,omitempty"`
	PressFeatures     types.PressFeatures     `json:"press_features,omitempty"`
	FeaturedProducts  types.ProductHighlights `json:"featured_products,omitempty"`
	NewLaunchProducts types.ProductHighlights `json:"new_launch_products,omitempty"`
	Campaigns         types.Campaigns         `json:"campaigns,omitempty"`
	Settings          types.Settings          `json:"settings,omitempty"`
}

// BrandCreate registers a new brand owned by the caller.
func BrandCreate(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body brandCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Create(r.Context(), brands.CreateBrandDTO{
			UserID:            userID,
			Name:              body.Name,
			LogoURL:           body.LogoURL,
			Description:       body.Description,
			Email:             body.Email,
			Tagline:           body.Tagline,
			VideoURL:          body.VideoURL,
			Mission:           body.Mission,
			Vision:            body.Vision,
			FoundingYear:      body.FoundingYear,
			Phone:             body.Phone,
			Address:           body.Address,
			Social:            body.Social,
			Certifications:    body.Certifications,
			Awards:            body.Awards,
			PressFeatures:     body.PressFeatures,
			FeaturedProducts:  body.FeaturedProducts,
			NewLaunchProducts: body.NewLaunchProducts,
			Campaigns:         body.Campaigns,
			Settings:          body.Settings,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, brand)
	}
}

// BrandGet returns one brand profile. The endpoint is public: landing
// surfaces read it without credentials.
func BrandGet(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable"))
			return
		}

		id, err := pathUUID(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brand)
	}
}

// BrandList returns the caller's brands.
func BrandList(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// BrandUpdate applies a partial update to an owned brand.
func BrandUpdate(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable"))
			return
		}

		id, err := pathUUID(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := requireOwnedBrand(r.Context(), svc, r, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body brands.UpdateBrandDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brand)
	}
}

// BrandDelete removes an owned brand and everything hanging off it.
func BrandDelete(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable"))
			return
		}

		id, err := pathUUID(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := requireOwnedBrand(r.Context(), svc, r, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := &outbox.ActorRef{
			UserID:  brand.UserID,
			BrandID: &brand.ID,
			Role:    middleware.RoleFromContext(r.Context()),
		}
		if err := svc.Delete(r.Context(), id, actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminBrandFlags lets operators flip the active and verified flags on any
// brand.
func AdminBrandFlags(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable"))
			return
		}

		id, err := pathUUID(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body brands.UpdateFlagsDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.UpdateFlags(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brand)
	}
}

// BrandPresignLogo issues a signed upload URL for a brand logo.
func BrandPresignLogo(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "brand service unavailable"))
			return
		}

		id, err := pathUUID(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := requireOwnedBrand(r.Context(), svc, r, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body brands.LogoPresignRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.PresignLogo(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
