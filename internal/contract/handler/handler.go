// Package handler is the thin HTTP layer over the contract service. It
// decodes requests, enforces field-level validation at the trust boundary,
// and translates domain errors into JSON envelopes; no business logic lives
// here.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"foncier/internal/contract/cache"
	"foncier/internal/contract/models"
	"foncier/internal/contract/search"
	"foncier/internal/contract/service"
	"foncier/internal/platform/metrics"
	"foncier/internal/platform/middleware"
	derrors "foncier/pkg/domain-errors"
)

// Service defines the contract operations the handler depends on.
type Service interface {
	Create(ctx context.Context, input service.CreateInput) (*models.ContractRecord, error)
	Read(ctx context.Context, id string) (*models.ContractRecord, error)
	Modify(ctx context.Context, id string, input service.ModifyInput) (*models.ContractRecord, error)
	AddSignature(ctx context.Context, id string, sig models.PartySignature) (*models.ContractRecord, error)
	Approve(ctx context.Context, id string, approval models.ContractApprobation) (*models.ContractRecord, error)
	Validate(ctx context.Context, id string, validation models.ContractValidation) (*models.ContractRecord, error)
	Reject(ctx context.Context, id, reason string) (*models.ContractRecord, error)
	SoftDelete(ctx context.Context, id, reason string) (*models.ContractRecord, error)
	Archive(ctx context.Context, id string) (*models.ContractRecord, error)
	ListActive(ctx context.Context) (search.Result, error)
	SearchByOwner(ctx context.Context, name string) (search.Result, error)
	SearchByRegion(ctx context.Context, region string) (search.Result, error)
	SearchByType(ctx context.Context, t models.ContractType) (search.Result, error)
	History(ctx context.Context, id string) ([]service.HistoryEntry, error)
}

// Handler handles contract endpoints.
type Handler struct {
	logger       *slog.Logger
	contracts    Service
	metrics      *metrics.Metrics
	cache        *cache.RecordCache
	jwtValidator middleware.JWTValidator
}

func New(contracts Service, logger *slog.Logger, m *metrics.Metrics, recordCache *cache.RecordCache, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		contracts:    contracts,
		metrics:      m,
		cache:        recordCache,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the contract routes with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	contractRouter := chi.NewRouter()
	contractRouter.Use(middleware.Recovery(h.logger))
	contractRouter.Use(middleware.RequestID)
	contractRouter.Use(middleware.TxContext)
	contractRouter.Use(middleware.Logger(h.logger))
	contractRouter.Use(middleware.Timeout(30 * time.Second))
	contractRouter.Use(middleware.ContentTypeJSON)
	contractRouter.Use(h.latency)
	contractRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	contractRouter.Post("/contracts", h.handleCreate)
	contractRouter.Get("/contracts", h.handleList)
	contractRouter.Get("/contracts/search", h.handleSearch)
	contractRouter.Get("/contracts/{id}", h.handleRead)
	contractRouter.Put("/contracts/{id}", h.handleModify)
	contractRouter.Delete("/contracts/{id}", h.handleSoftDelete)
	contractRouter.Post("/contracts/{id}/signatures", h.handleAddSignature)
	contractRouter.Post("/contracts/{id}/approve", h.handleApprove)
	contractRouter.Post("/contracts/{id}/validate", h.handleValidate)
	contractRouter.Post("/contracts/{id}/reject", h.handleReject)
	contractRouter.Post("/contracts/{id}/archive", h.handleArchive)
	contractRouter.Get("/contracts/{id}/history", h.handleHistory)

	r.Mount("/", contractRouter)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.contracts.Create(r.Context(), input)
	if err != nil {
		h.logFailure(r.Context(), "create contract", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if rec := h.cache.Get(r.Context(), id); rec != nil {
		writeJSON(w, http.StatusOK, rec)
		return
	}
	rec, err := h.contracts.Read(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	h.cache.Set(r.Context(), rec)
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleModify(w http.ResponseWriter, r *http.Request) {
	var req modifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	h.mutation(w, r, "modify contract", func(ctx context.Context, id string) (*models.ContractRecord, error) {
		return h.contracts.Modify(ctx, id, input)
	})
}

func (h *Handler) handleAddSignature(w http.ResponseWriter, r *http.Request) {
	var req signatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	sig, err := req.toModel()
	if err != nil {
		writeError(w, err)
		return
	}
	h.mutation(w, r, "add signature", func(ctx context.Context, id string) (*models.ContractRecord, error) {
		return h.contracts.AddSignature(ctx, id, sig)
	})
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.mutation(w, r, "approve contract", func(ctx context.Context, id string) (*models.ContractRecord, error) {
		return h.contracts.Approve(ctx, id, req.toModel())
	})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.mutation(w, r, "validate contract", func(ctx context.Context, id string) (*models.ContractRecord, error) {
		return h.contracts.Validate(ctx, id, req.toModel())
	})
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.mutation(w, r, "reject contract", func(ctx context.Context, id string) (*models.ContractRecord, error) {
		return h.contracts.Reject(ctx, id, req.Reason)
	})
}

func (h *Handler) handleSoftDelete(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if r.Body != nil {
		// Reason is optional on delete; a missing body is fine.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	h.mutation(w, r, "delete contract", func(ctx context.Context, id string) (*models.ContractRecord, error) {
		return h.contracts.SoftDelete(ctx, id, req.Reason)
	})
}

func (h *Handler) handleArchive(w http.ResponseWriter, r *http.Request) {
	h.mutation(w, r, "archive contract", func(ctx context.Context, id string) (*models.ContractRecord, error) {
		return h.contracts.Archive(ctx, id)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.contracts.ListActive(r.Context())
	if err != nil {
		h.logFailure(r.Context(), "list contracts", err)
		writeError(w, err)
		return
	}
	writeSearchResult(w, result)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var (
		result search.Result
		err    error
	)
	switch {
	case query.Get("owner") != "":
		result, err = h.contracts.SearchByOwner(r.Context(), query.Get("owner"))
	case query.Get("region") != "":
		result, err = h.contracts.SearchByRegion(r.Context(), query.Get("region"))
	case query.Get("type") != "":
		var contractType models.ContractType
		contractType, err = models.ParseContractType(query.Get("type"))
		if err == nil {
			result, err = h.contracts.SearchByType(r.Context(), contractType)
		}
	default:
		writeError(w, derrors.New(derrors.CodeBadRequest, "search requires an owner, region, or type parameter"))
		return
	}
	if err != nil {
		h.logFailure(r.Context(), "search contracts", err)
		writeError(w, err)
		return
	}
	writeSearchResult(w, result)
}

type historyEntryResponse struct {
	TxRef     string                 `json:"txRef"`
	Timestamp models.Timestamp       `json:"timestamp"`
	IsDelete  bool                   `json:"isDelete"`
	Record    *models.ContractRecord `json:"record,omitempty"`
	Raw       string                 `json:"raw,omitempty"`
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.contracts.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryResponse{
			TxRef:     e.TxRef,
			Timestamp: e.Timestamp,
			IsDelete:  e.IsDelete,
			Record:    e.Record,
			Raw:       string(e.Raw),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": out,
		"count":   len(out),
	})
}

// mutation runs one write operation against the record in the URL and
// invalidates its cached copy on success.
func (h *Handler) mutation(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, id string) (*models.ContractRecord, error)) {
	id := chi.URLParam(r, "id")
	rec, err := fn(r.Context(), id)
	if err != nil {
		h.logFailure(r.Context(), op, err)
		writeError(w, err)
		return
	}
	h.cache.Invalidate(r.Context(), id)
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) logFailure(ctx context.Context, op string, err error) {
	code := derrors.CodeOf(err)
	if code == derrors.CodeInternal || code == derrors.CodeQuery {
		h.logger.ErrorContext(ctx, op+" failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		return
	}
	h.logger.WarnContext(ctx, op+" rejected",
		"request_id", middleware.GetRequestID(ctx),
		"code", string(code),
		"error", err.Error(),
	)
}

// latency records request duration against the matched route pattern.
func (h *Handler) latency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		h.metrics.ObserveRequestDuration(route, r.Method, time.Since(start).Seconds())
	})
}

func writeSearchResult(w http.ResponseWriter, result search.Result) {
	writeJSON(w, http.StatusOK, map[string]any{
		"results": result.Records,
		"count":   result.Count,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler returns the same JSON envelope.
func writeError(w http.ResponseWriter, err error) {
	var de *derrors.Error
	code := derrors.CodeInternal
	detail := "internal error"
	if errors.As(err, &de) {
		code = de.Code
		detail = de.Detail
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(derrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":  string(code),
		"detail": detail,
	})
}
