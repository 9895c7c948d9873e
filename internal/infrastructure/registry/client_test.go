package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rxscan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-key", "https://api.example.com", 240)

	assert.NotNil(t, client)
	assert.Equal(t, "test-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
}

func TestFindByPackageNDC_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drug/ndc.json", r.URL.Path)
		assert.Equal(t, `packaging.package_ndc:"0781-1089-01"`, r.URL.Query().Get("search"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		response := searchResponse{
			Results: []domain.ProductRecord{
				{
					ProductNDC:  "0781-1089",
					BrandName:   "Amoxicillin",
					GenericName: "amoxicillin",
					LabelerName: "Sandoz Inc",
					DosageForm:  "CAPSULE",
					Packaging: []domain.Packaging{
						{PackageNDC: "0781-1089-01", Description: "100 CAPSULE in 1 BOTTLE"},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, 0)
	record, err := client.FindByPackageNDC(context.Background(), "0781-1089-01")

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "0781-1089", record.ProductNDC)
	assert.Equal(t, "Sandoz Inc", record.LabelerName)
	require.Len(t, record.Packaging, 1)
	assert.Equal(t, "0781-1089-01", record.Packaging[0].PackageNDC)
}

func TestFindByProductNDC_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `product_ndc:"0781-1089"`, r.URL.Query().Get("search"))
		json.NewEncoder(w).Encode(searchResponse{
			Results: []domain.ProductRecord{{ProductNDC: "0781-1089"}},
		})
	}))
	defer server.Close()

	client := NewClient("", server.URL, 0)
	record, err := client.FindByProductNDC(context.Background(), "0781-1089")

	require.NoError(t, err)
	assert.Equal(t, "0781-1089", record.ProductNDC)
}

func TestFindByPackageNDC_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("", server.URL, 0)
	record, err := client.FindByPackageNDC(context.Background(), "9999-9999-99")

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domain.ErrNoMatch)
}

func TestFindByPackageNDC_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer server.Close()

	client := NewClient("", server.URL, 0)
	_, err := client.FindByPackageNDC(context.Background(), "9999-9999-99")

	assert.ErrorIs(t, err, domain.ErrNoMatch)
}

func TestFindByPackageNDC_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(searchResponse{
			Results: []domain.ProductRecord{{ProductNDC: "0781-1089"}},
		})
	}))
	defer server.Close()

	client := NewClient("", server.URL, 0)
	record, err := client.FindByPackageNDC(context.Background(), "0781-1089-01")

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "0781-1089", record.ProductNDC)
}

func TestFindByPackageNDC_AllAttemptsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient("", server.URL, 0)
	record, err := client.FindByPackageNDC(context.Background(), "0781-1089-01")

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domain.ErrRegistryUnavailable)
}

func TestFindByPackageNDC_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("", server.URL, 0)
	_, err := client.FindByPackageNDC(ctx, "0781-1089-01")

	assert.Error(t, err)
}
