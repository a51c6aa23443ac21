package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"edrina-resto/apperrors"
	"edrina-resto/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errServer(status int, msg string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": msg})
	}))
}

func TestClientMapsErrorStatuses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		check  func(error) bool
		name   string
	}{
		{http.StatusBadRequest, apperrors.IsValidation, "validation"},
		{http.StatusConflict, apperrors.IsInvalidState, "invalid state"},
		{http.StatusUnauthorized, apperrors.IsAuth, "auth"},
		{http.StatusForbidden, apperrors.IsAuth, "forbidden"},
		{http.StatusNotFound, apperrors.IsNotFound, "not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := errServer(tc.status, "boom")
			defer srv.Close()

			_, err := New(srv.URL).ListOrders("tok")
			require.Error(t, err)
			assert.True(t, tc.check(err))
			assert.Contains(t, err.Error(), "boom")
		})
	}
}

func TestClientWrapsNetworkFailure(t *testing.T) {
	t.Parallel()
	_, err := New("http://127.0.0.1:1").ListOrders("tok")
	assert.True(t, apperrors.IsTransport(err))
}

func TestClientCreateOrder(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body struct {
			Table_number int                `json:"table_number"`
			Items        []models.OrderItem `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(models.Order{
			Order_id:     "o-1",
			Table_number: body.Table_number,
			Items:        body.Items,
			Status:       models.StatusInKitchen,
			Total_amount: 13.50,
		})
	}))
	defer srv.Close()

	order, err := New(srv.URL).CreateOrder("tok", 3, []models.OrderItem{
		{Menu_item_id: "item-a", Quantity: 2, Price: 5.00},
		{Menu_item_id: "item-b", Quantity: 1, Price: 3.50},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInKitchen, order.Status)
	assert.Equal(t, 13.50, order.Total_amount)
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "13.50 TND", FormatAmount(13.5))
	assert.Equal(t, "0.00 TND", FormatAmount(0))
}
