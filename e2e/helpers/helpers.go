package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/semjacko/product-harvester/internal/platform/catalogapi"
	"github.com/stretchr/testify/require"
)

// DeclareRMQExchange is helper function for declaring RMQ exchange.
func DeclareRMQExchange(t *testing.T, ch *amqp.Channel, exchange string) {
	t.Helper()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		require.FailNow(t, "can't declare exchange", exchange, err)
	}
}

// DeclareRMQQueue is helper function for declaring RMQ queue and binding and cleaning them after test is finished.
func DeclareRMQQueue(t *testing.T, channel *amqp.Channel, queueName, exchange, routingKey string) {
	t.Helper()

	_, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		require.FailNow(t, "can't declare queue", queueName, err)
	}

	err = channel.QueueBind(queueName, routingKey, exchange, false, nil)
	if err != nil {
		require.FailNow(t, "can't bind queue", queueName, routingKey, err)
	}

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}

// WriteImageFiles is helper function creating image files with provided
// names in folderPath. Returns paths of created files.
func WriteImageFiles(t *testing.T, folderPath string, names []string) []string {
	t.Helper()

	require.NoError(t, os.MkdirAll(folderPath, 0o755), "can't create images folder")

	paths := make([]string, len(names))
	for ix, name := range names {
		paths[ix] = filepath.Join(folderPath, name)
		require.NoError(t, os.WriteFile(paths[ix], []byte("image-bytes"), 0o644), "can't write image file")
	}

	return paths
}

// PrepareCatalogAPIServer is helper function mocking the catalog API.
// The server serves provided categories and records created products;
// the returned function gives all recorded payloads so far.
func PrepareCatalogAPIServer(
	t *testing.T,
	categories []catalogapi.Category,
) (*httptest.Server, func() []catalogapi.ProductPayload) {
	t.Helper()

	var mu sync.Mutex
	var payloads []catalogapi.ProductPayload

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		switch {
		case req.Method == http.MethodGet && req.URL.Path == "/categories":
			wrt.Header().Add("Content-Type", "application/json")
			_ = json.NewEncoder(wrt).Encode(map[string]any{"categories": categories})
		case req.Method == http.MethodPost && req.URL.Path == "/products":
			var payload catalogapi.ProductPayload
			if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
				wrt.WriteHeader(http.StatusBadRequest)
				return
			}
			mu.Lock()
			payloads = append(payloads, payload)
			mu.Unlock()
			wrt.WriteHeader(http.StatusCreated)
		default:
			wrt.WriteHeader(http.StatusNotFound)
		}
	}))

	t.Cleanup(func() {
		srv.Close()
	})

	return srv, func() []catalogapi.ProductPayload {
		mu.Lock()
		defer mu.Unlock()
		return append([]catalogapi.ProductPayload{}, payloads...)
	}
}
