package catalogapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/semjacko/product-harvester/internal/platform/catalogapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitCategories(t *testing.T) {
	wantCategories := []catalogapi.Category{
		{ID: 1, Name: "voda"},
		{ID: 2, Name: "jedlo"},
		{ID: 3, Name: "ostatné"},
	}

	tests := map[string]struct {
		serverHandler  http.Handler
		wantCategories []catalogapi.Category
		wantErr        error
	}{
		"ok": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				assert.Equal(t, http.MethodGet, req.Method, "should use GET method")
				assert.Equal(t, "/categories", req.URL.Path, "should call categories endpoint")
				wrt.Header().Add("Content-Type", "application/json")
				json.NewEncoder(wrt).Encode(map[string]any{"categories": wantCategories})
			}),
			wantCategories: wantCategories,
		},
		"empty": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				wrt.Header().Add("Content-Type", "application/json")
				wrt.Write([]byte(`{"categories":[]}`))
			}),
			wantCategories: []catalogapi.Category{},
		},
		"bad status error": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				wrt.WriteHeader(http.StatusInternalServerError)
			}),
			wantErr: catalogapi.ErrStatusNotOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(tt.serverHandler)
			t.Cleanup(func() {
				srv.Close()
			})

			client := catalogapi.NewClient(srv.Client(), srv.URL, "test-token")
			categories, err := client.Categories(context.TODO())

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
			assert.Equal(t, tt.wantCategories, categories, "should return correct categories")
		})
	}
}

func TestUnitCreateProduct(t *testing.T) {
	payload := catalogapi.ProductPayload{
		Product: catalogapi.ProductDetail{
			Barcode:          "8586013438303",
			Name:             "Milk",
			Amount:           1,
			Brand:            "Rajo",
			Unit:             "l",
			CategoryID:       2,
			SourceImage:      "/images/milk.jpg",
			IsBarcodeChecked: true,
		},
		Price:  1.39,
		ShopID: 871,
	}

	tests := map[string]struct {
		serverStatus int
		wantErr      error
	}{
		"ok":             {serverStatus: http.StatusOK},
		"created":        {serverStatus: http.StatusCreated},
		"bad status error": {
			serverStatus: http.StatusBadRequest,
			wantErr:      catalogapi.ErrStatusNotOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				assert.Equal(t, http.MethodPost, req.Method, "should use POST method")
				assert.Equal(t, "/products", req.URL.Path, "should call products endpoint")
				assert.Equal(t, "test-token", req.Header.Get("user-id"), "should send token in user-id header")
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"), "should send JSON content type")

				body, err := io.ReadAll(req.Body)
				require.NoError(t, err, "can't read request body")

				var raw map[string]any
				require.NoError(t, json.Unmarshal(body, &raw), "request body should be valid JSON")
				assert.Contains(t, raw, "shop_id", "body should carry the shop id")
				product, ok := raw["product"].(map[string]any)
				require.True(t, ok, "body should carry the product detail")
				assert.Contains(t, product, "is_barcode_checked", "detail should carry barcode verification")
				assert.Contains(t, product, "amount", "detail should carry the amount")
				assert.Contains(t, product, "source_image", "detail should carry the source image")

				var decoded catalogapi.ProductPayload
				require.NoError(t, json.Unmarshal(body, &decoded), "request body should decode into payload")
				assert.Equal(t, payload, decoded, "should send correct product payload")

				wrt.WriteHeader(tt.serverStatus)
			}))
			t.Cleanup(func() {
				srv.Close()
			})

			client := catalogapi.NewClient(srv.Client(), srv.URL, "test-token")
			err := client.CreateProduct(context.TODO(), payload)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}
