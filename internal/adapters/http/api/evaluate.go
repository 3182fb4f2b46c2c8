// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	service "github.com/okian/introeval/internal/app"
	"github.com/okian/introeval/internal/domain/model"
	"github.com/okian/introeval/internal/domain/scoring"
	"github.com/okian/introeval/pkg/logger"
)

// evaluateRequest mirrors the OpenAPI schema for POST /evaluate. Duration is
// kept raw so a non-integer value is reported as an invalid duration rather
// than as malformed JSON.
type evaluateRequest struct {
	Transcript string          `json:"transcript"`
	Duration   json.RawMessage `json:"duration"`
}

type batchRequestItem struct {
	ID         string          `json:"id"`
	Transcript string          `json:"transcript"`
	Duration   json.RawMessage `json:"duration"`
}

type batchRequest struct {
	Items []batchRequestItem `json:"items"`
}

type batchResponse struct {
	Results []model.BatchResult `json:"results"`
}

// EvaluateHandler handles single and batch evaluation requests.
type EvaluateHandler struct {
	deps         Dependencies
	maxBodyBytes int64
	timeout      time.Duration
	logger       logger.Logger
}

// NewEvaluateHandler creates a new evaluation handler.
func NewEvaluateHandler(deps Dependencies, maxBodyBytes int64, timeout time.Duration, l logger.Logger) *EvaluateHandler {
	return &EvaluateHandler{deps: deps, maxBodyBytes: maxBodyBytes, timeout: timeout, logger: l}
}

// HandleEvaluate handles POST /evaluate requests.
func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req evaluateRequest
	if status, err := h.decode(w, r, op, &req); err != nil {
		writeError(w, status, err)
		return
	}

	duration, err := resolveDuration(req.Duration, h.deps.DefaultDuration())
	if err != nil {
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	report, err := h.deps.Evaluate(ctx, req.Transcript, duration)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleBatch handles POST /evaluate/batch requests.
func (h *EvaluateHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req batchRequest
	if status, err := h.decode(w, r, op, &req); err != nil {
		writeError(w, status, err)
		return
	}

	items := make([]model.BatchItem, len(req.Items))
	for i, it := range req.Items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			id = uuid.NewString()
		}
		// An unusable duration becomes 0 so validation rejects that item alone.
		duration, err := resolveDuration(it.Duration, h.deps.DefaultDuration())
		if err != nil {
			duration = 0
		}
		items[i] = model.BatchItem{ID: id, Transcript: it.Transcript, DurationSec: duration}
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	results, err := h.deps.EvaluateBatch(ctx, items)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

// decode reads a size-capped JSON body into v.
func (h *EvaluateHandler) decode(w http.ResponseWriter, r *http.Request, op string, v any) (int, error) {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, WrapKind(op, ErrPayloadTooLarge,
				fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
		}
		return http.StatusBadRequest, WrapKind(op, ErrBadRequest, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return http.StatusBadRequest, WrapKind(op, ErrBadRequest, errors.New("request body must be a JSON object"))
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return http.StatusBadRequest, WrapKind(op, ErrBadRequest, fmt.Errorf("invalid JSON: %w", err))
	}
	return http.StatusOK, nil
}

func (h *EvaluateHandler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

// fail maps a service error to a status code and writes it.
func (h *EvaluateHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, scoring.ErrEmptyTranscript),
		errors.Is(err, scoring.ErrInvalidDuration),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, err))
	default:
		h.logger.Error(r.Context(), "evaluation request failed",
			logger.String("op", op),
			logger.String("requestID", RequestIDFromContext(r.Context())),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, WrapKind(op, ErrInternal, err))
	}
}

// resolveDuration returns def when raw is absent or null, the integer value
// when raw is a positive whole number, and ErrInvalidDuration otherwise.
func resolveDuration(raw json.RawMessage, def int) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return def, nil
	}
	var d int
	if err := json.Unmarshal(trimmed, &d); err != nil || d <= 0 {
		return 0, scoring.ErrInvalidDuration
	}
	return d, nil
}
