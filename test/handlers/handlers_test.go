package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hyper-a11/cyber-gst-info/internal/auth"
	"github.com/hyper-a11/cyber-gst-info/internal/config"
	"github.com/hyper-a11/cyber-gst-info/internal/gst"
	"github.com/hyper-a11/cyber-gst-info/internal/handlers"
	"github.com/hyper-a11/cyber-gst-info/internal/models"
	"github.com/hyper-a11/cyber-gst-info/pkg/errors"
	"github.com/hyper-a11/cyber-gst-info/test/mocks"
)

const testGSTIN = "19AABCU9603R1ZM"

func newTestHandler(t *testing.T, fetcher *mocks.MockFetcher) *handlers.LookupHandler {
	t.Helper()

	registry, err := auth.NewRegistry(map[string]string{
		"VALID_KEY":   "2099-12-31",
		"EXPIRED_KEY": "2020-01-01",
	})
	require.NoError(t, err)

	authorizer := auth.NewAuthorizer(registry, time.UTC)
	normalizer := gst.NewNormalizer("Test GST Source", time.UTC)
	cfg := &config.Config{
		BrandSource:    "@ZEXX_CYBER",
		BrandPoweredBy: "@CYBER×CHAT",
	}

	return handlers.NewLookupHandler(authorizer, fetcher, normalizer, cfg, zap.NewNop())
}

func doLookup(t *testing.T, handler *handlers.LookupHandler, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", target, nil)
	rr := httptest.NewRecorder()
	handler.HandleLookup(rr, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr, body
}

func TestHandleLookup_MissingKey(t *testing.T) {
	handler := newTestHandler(t, new(mocks.MockFetcher))

	rr, body := doLookup(t, handler, "/?gst="+testGSTIN)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Failed", body["status"])
	assert.Equal(t, "API Key missing", body["error"])
}

func TestHandleLookup_InvalidKey(t *testing.T) {
	handler := newTestHandler(t, new(mocks.MockFetcher))

	rr, body := doLookup(t, handler, "/?gst="+testGSTIN+"&key=WRONG")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Failed", body["status"])
	assert.Equal(t, "Invalid API Key", body["error"])
}

func TestHandleLookup_ExpiredKey(t *testing.T) {
	handler := newTestHandler(t, new(mocks.MockFetcher))

	rr, body := doLookup(t, handler, "/?gst="+testGSTIN+"&key=EXPIRED_KEY")

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Expired", body["status"])
	assert.Equal(t, "Key Expired", body["error"])
	// The stored expiry date is echoed back unchanged.
	assert.Equal(t, "2020-01-01", body["expiry_date"])
}

func TestHandleLookup_MissingGSTIN(t *testing.T) {
	fetcher := new(mocks.MockFetcher)
	handler := newTestHandler(t, fetcher)

	rr, body := doLookup(t, handler, "/?key=VALID_KEY")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Failed", body["status"])
	assert.Equal(t, errors.ErrGSTINMissing.Message, body["error"])

	keyDetails, ok := body["key_details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2099-12-31", keyDetails["expiry_date"])
	assert.Equal(t, "Active", keyDetails["status"])

	// Fail fast: no upstream call happens without an identifier.
	fetcher.AssertNotCalled(t, "Fetch")
}

func TestHandleLookup_UpstreamFailure(t *testing.T) {
	fetcher := new(mocks.MockFetcher)
	fetcher.On("Fetch", mock.Anything, testGSTIN).Return(nil, errors.ErrUpstreamUnreachable)
	handler := newTestHandler(t, fetcher)

	rr, body := doLookup(t, handler, "/?gst="+testGSTIN+"&key=VALID_KEY")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, "GST source unreachable", body["error"])

	fetcher.AssertExpectations(t)
}

func TestHandleLookup_Success(t *testing.T) {
	fetcher := new(mocks.MockFetcher)
	fetcher.On("Fetch", mock.Anything, testGSTIN).Return(models.RawRecord{
		"lgnm":     "ACME INDUSTRIES PVT LTD",
		"tradeNam": "ACME",
		"sts":      "Active",
		"rgdt":     "01/07/2017",
		"adr":      "3RD FLOOR, ABC Street, XYZ Locality, Kolkata, West Bengal, 700001",
	}, nil)
	handler := newTestHandler(t, fetcher)

	// The identifier is canonicalized before the fetch.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/?gst=19aabcu9603r1zm&key=VALID_KEY", nil)
	handler.HandleLookup(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response models.LookupResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	assert.Equal(t, "success", response.Status)
	assert.Equal(t, "GST", response.IME)
	assert.Equal(t, "@ZEXX_CYBER", response.Source)
	assert.Equal(t, "@CYBER×CHAT", response.PoweredBy)

	assert.Equal(t, testGSTIN, response.GSTDetails.GSTIN)
	assert.Equal(t, "ACME INDUSTRIES PVT LTD", response.GSTDetails.LegalName)
	assert.True(t, response.GSTDetails.IsActive)
	assert.Equal(t, "2017", response.GSTDetails.RegistrationYear)
	assert.Equal(t, "AABCU9603R", response.GSTDetails.PANNumber)
	assert.Equal(t, "700001", response.GSTDetails.PrincipalAddress.Pincode)

	assert.Equal(t, "2099-12-31", response.KeyDetails.ExpiryDate)
	assert.Equal(t, "Active", response.KeyDetails.Status)
	assert.NotEmpty(t, response.KeyDetails.DaysRemaining)

	fetcher.AssertExpectations(t)
}

func TestHandleLookup_EmptyUpstreamRecordStillSucceeds(t *testing.T) {
	fetcher := new(mocks.MockFetcher)
	fetcher.On("Fetch", mock.Anything, testGSTIN).Return(models.RawRecord{}, nil)
	handler := newTestHandler(t, fetcher)

	rr, _ := doLookup(t, handler, "/?gst="+testGSTIN+"&key=VALID_KEY")
	assert.Equal(t, http.StatusOK, rr.Code)

	var response models.LookupResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "success", response.Status)
	assert.Equal(t, models.NA, response.GSTDetails.LegalName)
	assert.False(t, response.GSTDetails.IsActive)
}

func TestHandleLookup_LegacyParamAliases(t *testing.T) {
	for _, param := range []string{"gst", "gstin", "num"} {
		fetcher := new(mocks.MockFetcher)
		fetcher.On("Fetch", mock.Anything, testGSTIN).Return(models.RawRecord{}, nil)
		handler := newTestHandler(t, fetcher)

		rr, _ := doLookup(t, handler, "/?"+param+"="+testGSTIN+"&key=VALID_KEY")

		assert.Equal(t, http.StatusOK, rr.Code, "param %q", param)
		fetcher.AssertExpectations(t)
	}
}
