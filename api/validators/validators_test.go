package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/testmart-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Stock     int   `json:"stock" validate:"gte=0"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":3,"stock":5}`))
	var body sampleBody
	require.NoError(t, DecodeJSONBody(req, &body))
	assert.Equal(t, int64(3), body.ProductID)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":3,"stock":-1}`))
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, map[string]string{"stock": "must be greater than or equal to 0"}, typed.Details())

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":3,"extra":true}`))
	assert.True(t, pkgerrors.HasCode(DecodeJSONBody(req, &body), pkgerrors.CodeValidation))
}

func TestQueryParsers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?product_id=7&start_date=2024-01-31&category=%20Toys%20&threshold=5", nil)

	id, err := ParseOptionalQueryID(req, "product_id")
	require.NoError(t, err)
	assert.Equal(t, int64(7), *id)

	date, err := ParseOptionalQueryDate(req, "start_date")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *date)

	missing, err := ParseOptionalQueryDate(req, "end_date")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Equal(t, "Toys", *ParseOptionalQueryString(req, "category"))
	assert.Nil(t, ParseOptionalQueryString(req, "nothing"))

	threshold, err := ParseQueryInt(req, "threshold", 10, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 5, threshold)

	bad := httptest.NewRequest(http.MethodGet, "/?product_id=abc&start_date=31-01-2024&offset=-2", nil)
	_, err = ParseOptionalQueryID(bad, "product_id")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	_, err = ParseOptionalQueryDate(bad, "start_date")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	_, err = ParsePagination(bad)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestParsePathID(t *testing.T) {
	withParam := func(value string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("productId", value)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	}

	id, err := ParsePathID(withParam("42"), "productId")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		_, err := ParsePathID(withParam(raw), "productId")
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), raw)
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Air Fryer", SanitizeString("  Air \t  Fryer\n", 0))
	assert.Equal(t, "Café", SanitizeString("Café au lait", 4))
	assert.Equal(t, "", SanitizeString("   ", 10))
}

func TestDecodeJSONBodyRejectsEmptyAndTrailingData(t *testing.T) {
	var body sampleBody

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	assert.Equal(t, "request body is required", pkgerrors.As(err).Message())

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":1,"stock":1}{"product_id":2}`))
	assert.True(t, pkgerrors.HasCode(DecodeJSONBody(req, &body), pkgerrors.CodeValidation))
}
