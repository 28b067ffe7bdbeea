package enrich

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/bibliotech/internal/platform/request"
	"github.com/taibuivan/bibliotech/internal/platform/respond"
	"github.com/taibuivan/bibliotech/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the metadata routes.
//
// # Endpoints
//   - GET /suggest?title=&author= : Best-effort metadata lookup.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/suggest", handler.suggest)

	return router
}

// suggest handles GET /suggest.
//
// The data field is null when no suggestion is available — that outcome is a
// 200, not an error, because enrichment is best-effort by contract.
func (handler *Handler) suggest(writer http.ResponseWriter, request *http.Request) {
	title := requestutil.Query(request, "title")
	author := requestutil.Query(request, "author")

	validator := &validate.Validator{}
	validator.Required("title", title)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.service.Suggest(request.Context(), title, author))
}
