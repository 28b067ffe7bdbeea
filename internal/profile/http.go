package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/bibliotech/internal/platform/request"
	"github.com/taibuivan/bibliotech/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the profile routes.
//
// # Endpoints
//   - GET / : Current profile.
//   - PUT / : Wholesale profile update.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.get)
	router.Put("/", handler.update)

	return router
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.service.Get(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, current)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}
