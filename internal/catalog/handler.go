package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rodamax/rodamax-catalog/internal/platform/httpx"
)

// Handler exposes the catalog endpoints. The response shapes are part of
// the contract with existing frontends: listings return {data, pagination},
// the legacy search/stock/families endpoints return bare arrays.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	cfg      Config
	validate *validator.Validate
}

// NewHandler constructs Handler.
func NewHandler(logger *slog.Logger, service *Service, cfg Config) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// Mount registers the catalog routes.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/articles", h.List)
	r.Get("/articles/{key}", h.Get)
	r.Get("/search", h.Search)
	r.Post("/stock", h.Stock)
	r.Get("/families", h.Families)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := ParseFilters(r.URL.Query(), h.cfg)

	result, err := h.service.ListArticles(r.Context(), filters)
	if err != nil {
		h.logger.Error("list articles failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	filters := ParseFilters(r.URL.Query(), h.cfg)

	article, err := h.service.GetArticle(r.Context(), chi.URLParam(r, "key"), filters.PriceList)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, article)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	filters := ParseFilters(r.URL.Query(), h.cfg)
	if r.URL.Query().Get("limit") == "" {
		// The legacy search endpoint returns the whole match set by default.
		filters.Limit = h.cfg.SearchLimit
	}

	articles, err := h.service.SearchArticles(r.Context(), filters)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, articles)
}

// StockRequest is the bulk stock lookup body.
type StockRequest struct {
	Keys []string `json:"keys" validate:"required,min=1,dive,required"`
}

func (h *Handler) Stock(w http.ResponseWriter, r *http.Request) {
	var body StockRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "request body must be JSON with a keys array")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Input", "keys must be a non-empty array of article keys")
		return
	}

	entries, err := h.service.StockByKeys(r.Context(), body.Keys)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

func (h *Handler) Families(w http.ResponseWriter, r *http.Request) {
	families, err := h.service.Families(r.Context())
	if err != nil {
		h.logger.Error("list families failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, families)
}
