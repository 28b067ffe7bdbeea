// Copyright (c) 2026 Bibliotech. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/bibliotech/internal/platform/request"
	"github.com/taibuivan/bibliotech/internal/platform/respond"
	"github.com/taibuivan/bibliotech/internal/profile"
)

// # Definitions & Constructors

// Handler implements the library HTTP endpoints.
//
// # Scope
//
// This is the presentation boundary for the item list: the derived view, the
// full mutation API, and the dashboard stats. It is strictly a transport layer —
// every rule lives in [Service] or the pure mutation functions.
type Handler struct {
	libraryService *Service
	profileService *profile.Service
}

// NewHandler constructs a new [Handler] with its service dependencies.
//
// The profile service supplies the poster identity snapshot for new comments.
func NewHandler(libraryService *Service, profileService *profile.Service) *Handler {
	return &Handler{
		libraryService: libraryService,
		profileService: profileService,
	}
}

// Routes returns a [chi.Router] configured with the library routes.
//
// # Endpoints
//   - GET    /                    : Filtered, sorted item list.
//   - POST   /                    : Add an item.
//   - GET    /stats               : Shelf totals.
//   - GET    /{id}                : Single item.
//   - DELETE /{id}                : Remove an item.
//   - PATCH  /{id}/progress       : Update the progress counter.
//   - PUT    /{id}/review         : Overwrite rating and review.
//   - PUT    /{id}/cover          : Overwrite the cover image.
//   - POST   /{id}/status/toggle  : Flip FINISHED <-> READING.
//   - POST   /{id}/comments       : Append a comment.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/stats", handler.stats)

	router.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Delete("/", handler.delete)
		r.Patch("/progress", handler.updateProgress)
		r.Put("/review", handler.updateReview)
		r.Put("/cover", handler.updateCover)
		r.Post("/status/toggle", handler.toggleStatus)
		r.Post("/comments", handler.addComment)
	})

	return router
}

// # Request Payloads

type updateProgressRequest struct {
	Progress int `json:"progress"`
}

type updateReviewRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

type updateCoverRequest struct {
	CoverURL string `json:"cover_url"`
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// # Endpoint Implementations

// list handles GET / — the derived view (search + tab + sort).
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	searchTerm := requestutil.Query(request, "search")
	tab := Tab(requestutil.Query(request, "tab"))

	items, err := handler.libraryService.List(request.Context(), searchTerm, tab)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, items)
}

// create handles POST /.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input NewItemInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.libraryService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

// stats handles GET /stats.
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.libraryService.Stats(request.Context()))
}

// get handles GET /{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.libraryService.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

// delete handles DELETE /{id}. Always 204 — deleting an absent item is a no-op.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.libraryService.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// updateProgress handles PATCH /{id}/progress.
func (handler *Handler) updateProgress(writer http.ResponseWriter, request *http.Request) {
	var payload updateProgressRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.libraryService.UpdateProgress(request.Context(), requestutil.ID(request, "id"), payload.Progress)
	handler.respondMutation(writer, request, item, err)
}

// updateReview handles PUT /{id}/review.
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	var payload updateReviewRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.libraryService.UpdateReview(request.Context(), requestutil.ID(request, "id"), payload.Rating, payload.Review)
	handler.respondMutation(writer, request, item, err)
}

// updateCover handles PUT /{id}/cover.
func (handler *Handler) updateCover(writer http.ResponseWriter, request *http.Request) {
	var payload updateCoverRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.libraryService.UpdateCover(request.Context(), requestutil.ID(request, "id"), payload.CoverURL)
	handler.respondMutation(writer, request, item, err)
}

// toggleStatus handles POST /{id}/status/toggle.
func (handler *Handler) toggleStatus(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.libraryService.ToggleStatus(request.Context(), requestutil.ID(request, "id"))
	handler.respondMutation(writer, request, item, err)
}

// addComment handles POST /{id}/comments.
//
// The poster identity is snapshotted from the current profile at post time.
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	var payload addCommentRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	poster, err := handler.profileService.Get(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.libraryService.AddComment(
		request.Context(),
		requestutil.ID(request, "id"),
		payload.Text,
		poster.Name,
		poster.AvatarOrPlaceholder(),
	)
	handler.respondMutation(writer, request, item, err)
}

// respondMutation maps the shared mutation outcome: errors pass through,
// a nil item (unknown id, no-op by contract) becomes 204, otherwise 200.
func (handler *Handler) respondMutation(writer http.ResponseWriter, request *http.Request, item *LibraryItem, err error) {
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if item == nil {
		respond.NoContent(writer)
		return
	}
	respond.OK(writer, item)
}
