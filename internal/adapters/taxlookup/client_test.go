package taxlookup_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/adapters/taxlookup"
	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTaxRules_DecodesPartialRules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tax-rules/2025", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"vatStandard":"21","generalTaxCredit":"3068","bracketRates":["35.82",null,"49.5"]}`))
	}))
	defer srv.Close()

	client := taxlookup.New(srv.URL+"/", time.Second)
	data, err := client.FetchTaxRules(context.Background(), 2025)
	require.NoError(t, err)

	require.NotNil(t, data.VatStandard)
	assert.True(t, data.VatStandard.Equal(decimal.NewFromInt(21)))
	assert.Nil(t, data.VatReduced)
	require.NotNil(t, data.GeneralTaxCredit)
	assert.True(t, data.GeneralTaxCredit.Equal(decimal.NewFromInt(3068)))
	require.Len(t, data.BracketRates, 3)
	assert.Nil(t, data.BracketRates[1])
}

func TestFetchTaxRules_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"vatStandard":`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			data, err := taxlookup.New(srv.URL, time.Second).FetchTaxRules(context.Background(), 2025)
			assert.Nil(t, data)
			assert.ErrorIs(t, err, apperrors.ErrExternalLookup)
		})
	}
}

func TestFetchTaxRules_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := taxlookup.New(url, 200*time.Millisecond).FetchTaxRules(context.Background(), 2025)
	assert.ErrorIs(t, err, apperrors.ErrExternalLookup)
}
