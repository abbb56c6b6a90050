package handlers

import (
	"encoding/json"
	goerrors "errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hyper-a11/cyber-gst-info/internal/auth"
	"github.com/hyper-a11/cyber-gst-info/internal/config"
	"github.com/hyper-a11/cyber-gst-info/internal/gst"
	"github.com/hyper-a11/cyber-gst-info/internal/models"
	"github.com/hyper-a11/cyber-gst-info/internal/upstream"
	"github.com/hyper-a11/cyber-gst-info/pkg/errors"
)

// gstinParams are the accepted query parameter names for the identifier, in
// priority order ("gstin" and "num" are legacy aliases).
var gstinParams = []string{"gst", "gstin", "num"}

// LookupHandler handles GST lookup requests
type LookupHandler struct {
	authorizer *auth.Authorizer
	fetcher    upstream.Fetcher
	normalizer *gst.Normalizer
	config     *config.Config
	logger     *zap.Logger
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(
	authorizer *auth.Authorizer,
	fetcher upstream.Fetcher,
	normalizer *gst.Normalizer,
	config *config.Config,
	logger *zap.Logger,
) *LookupHandler {
	return &LookupHandler{
		authorizer: authorizer,
		fetcher:    fetcher,
		normalizer: normalizer,
		config:     config,
		logger:     logger,
	}
}

// HandleLookup handles GET /
// @Summary     Look up GST registration details
// @Description Validates the API key, fetches registration details for the given GSTIN from the upstream source and returns them in canonical form together with key-status metadata.
// @Tags        gst
// @Produce     application/json
// @Param       gst query string false "GSTIN to look up (aliases: gstin, num)"
// @Param       key query string true  "API key"
// @Success     200 {object} models.LookupResponse
// @Failure     400 {object} map[string]string
// @Failure     401 {object} map[string]string
// @Failure     403 {object} map[string]string
// @Failure     500 {object} map[string]string
// @Router      / [get]
func (h *LookupHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	verdict := h.authorizer.Authorize(r.URL.Query().Get("key"), time.Now())
	switch verdict.Status {
	case auth.StatusMissing:
		h.sendError(w, errors.ErrKeyMissing)
		return
	case auth.StatusInvalid:
		h.sendError(w, errors.ErrKeyInvalid)
		return
	case auth.StatusExpired:
		h.sendJSON(w, errors.ErrKeyExpired.HTTPStatus, map[string]string{
			"status":      errors.ErrKeyExpired.Status,
			"error":       errors.ErrKeyExpired.Message,
			"expiry_date": verdict.ExpiryDate,
		})
		return
	}

	gstin := firstQueryParam(r, gstinParams)
	if gstin == "" {
		// Fail fast before any upstream I/O; the key was valid, so its
		// status block is still echoed.
		h.sendJSON(w, errors.ErrGSTINMissing.HTTPStatus, map[string]interface{}{
			"status":      errors.ErrGSTINMissing.Status,
			"error":       errors.ErrGSTINMissing.Message,
			"key_details": keyDetails(verdict),
		})
		return
	}
	gstin = gst.CanonicalGSTIN(gstin)

	raw, err := h.fetcher.Fetch(ctx, gstin)
	if err != nil {
		h.logger.Error("Upstream fetch failed", zap.String("gstin", gstin), zap.Error(err))
		h.sendFetchError(w, err)
		return
	}

	details := h.normalizer.Normalize(gstin, raw, time.Now())

	h.sendJSON(w, http.StatusOK, &models.LookupResponse{
		Status:     "success",
		GSTDetails: details,
		IME:        "GST",
		KeyDetails: keyDetails(verdict),
		Source:     h.config.BrandSource,
		PoweredBy:  h.config.BrandPoweredBy,
	})
}

func firstQueryParam(r *http.Request, names []string) string {
	query := r.URL.Query()
	for _, name := range names {
		if value := query.Get(name); value != "" {
			return value
		}
	}
	return ""
}

func keyDetails(verdict auth.Result) models.KeyDetails {
	return models.KeyDetails{
		ExpiryDate:    verdict.ExpiryDate,
		DaysRemaining: verdict.DaysRemainingLabel(),
		Status:        string(verdict.Status),
	}
}

// sendFetchError maps an upstream failure to its fixed response body. Only the
// ServiceError message crosses the boundary; the wrapped cause stays in logs.
func (h *LookupHandler) sendFetchError(w http.ResponseWriter, err error) {
	var serviceErr *errors.ServiceError
	if !goerrors.As(err, &serviceErr) {
		serviceErr = errors.ErrInternalServer
	}
	h.sendError(w, serviceErr)
}

func (h *LookupHandler) sendError(w http.ResponseWriter, err *errors.ServiceError) {
	h.sendJSON(w, err.HTTPStatus, map[string]string{
		"status": err.Status,
		"error":  err.Message,
	})
}

func (h *LookupHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
