package nbrb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/apperrors"
	"github.com/dkazlouski/currency_exchange_app/internal/clients/nbrb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratesPayload = `[
	{"Cur_ID": 431, "Date": "2025-09-01T00:00:00", "Cur_Abbreviation": "USD", "Cur_Scale": 1, "Cur_Name": "US Dollar", "Cur_OfficialRate": 3.2571},
	{"Cur_ID": 451, "Date": "2025-09-01T00:00:00", "Cur_Abbreviation": "EUR", "Cur_Scale": 1, "Cur_Name": "Euro", "Cur_OfficialRate": 3.5234},
	{"Cur_ID": 456, "Date": "2025-09-01T00:00:00", "Cur_Abbreviation": "RUB", "Cur_Scale": 100, "Cur_Name": "Russian Ruble", "Cur_OfficialRate": 3.6}
]`

func TestFetchDaily_Success(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/rates", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ratesPayload))
	}))
	defer server.Close()

	client := nbrb.New(server.URL, 5*time.Second)
	records, err := client.FetchDaily(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "periodicity=0", gotQuery)
	assert.Equal(t, "USD", records[0].Abbreviation)
	assert.EqualValues(t, 1, records[0].Scale)
	assert.True(t, decimal.RequireFromString("3.2571").Equal(records[0].Rate))
	assert.Equal(t, "2025-09-01T00:00:00", records[0].Date)
	assert.Equal(t, "RUB", records[2].Abbreviation)
	assert.EqualValues(t, 100, records[2].Scale)
}

func TestFetchDaily_OndateQueryParam(t *testing.T) {
	var gotOndate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOndate = r.URL.Query().Get("ondate")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := nbrb.New(server.URL, 5*time.Second)
	ondate := time.Date(2025, 8, 15, 13, 45, 0, 0, time.UTC)
	records, err := client.FetchDaily(context.Background(), &ondate)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "2025-08-15", gotOndate)
}

func TestFetchDaily_Non2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := nbrb.New(server.URL, 5*time.Second)
	records, err := client.FetchDaily(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
	assert.Contains(t, err.Error(), "503")
}

func TestFetchDaily_NonListPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Cur_Abbreviation": "USD"}`))
	}))
	defer server.Close()

	client := nbrb.New(server.URL, 5*time.Second)
	records, err := client.FetchDaily(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
	assert.Contains(t, err.Error(), "expected a list")
}

func TestFetchDaily_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := nbrb.New(server.URL, time.Second)
	records, err := client.FetchDaily(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestFetchDaily_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := nbrb.New(server.URL, 5*time.Second)
	_, err := client.FetchDaily(ctx, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}
