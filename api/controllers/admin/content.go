package admin

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/content"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

func BannerList(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banners, err := svc.ListBanners(r.Context())
		respond(w, r, logg, http.StatusOK, banners, err)
	}
}

func BannerCreate(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body content.CreateBannerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		banner, err := svc.CreateBanner(r.Context(), body)
		respond(w, r, logg, http.StatusCreated, banner, err)
	}
}

func BannerUpdate(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body content.UpdateBannerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		banner, err := svc.UpdateBanner(r.Context(), id, body)
		respond(w, r, logg, http.StatusOK, banner, err)
	}
}

func BannerToggle(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		banner, err := svc.ToggleBanner(r.Context(), id)
		respond(w, r, logg, http.StatusOK, banner, err)
	}
}

func BannerDelete(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		respond(w, r, logg, http.StatusOK, deleted, svc.DeleteBanner(r.Context(), id))
	}
}

func CarouselList(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCarousel(r.Context())
		respond(w, r, logg, http.StatusOK, items, err)
	}
}

func CarouselCreate(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body content.CreateCarouselItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.CreateCarouselItem(r.Context(), body)
		respond(w, r, logg, http.StatusCreated, item, err)
	}
}

func CarouselUpdate(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body content.UpdateCarouselItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.UpdateCarouselItem(r.Context(), id, body)
		respond(w, r, logg, http.StatusOK, item, err)
	}
}

func CarouselToggle(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.ToggleCarouselItem(r.Context(), id)
		respond(w, r, logg, http.StatusOK, item, err)
	}
}

func CarouselReorder(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body content.ReorderCarouselRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.ReorderCarousel(r.Context(), body)
		respond(w, r, logg, http.StatusOK, items, err)
	}
}

func CarouselDelete(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		respond(w, r, logg, http.StatusOK, deleted, svc.DeleteCarouselItem(r.Context(), id))
	}
}

func ContactGet(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := svc.Contact(r.Context())
		respond(w, r, logg, http.StatusOK, info, err)
	}
}

func ContactUpdate(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body content.UpdateContactRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		info, err := svc.UpdateContact(r.Context(), body)
		respond(w, r, logg, http.StatusOK, info, err)
	}
}
