package camunda_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/bpmnpath/pkg/adapters/camunda"
	"github.com/aretw0/bpmnpath/pkg/domain"
	contract "github.com/aretw0/bpmnpath/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine serves engine-rest's process-definition/key/{key}/xml for the given documents.
func fakeEngine(t *testing.T, docs map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "/engine-rest/process-definition/key/"
		if !strings.HasPrefix(r.URL.Path, prefix) || !strings.HasSuffix(r.URL.Path, "/xml") {
			http.NotFound(w, r)
			return
		}
		key := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, prefix), "/xml")
		xml, ok := docs[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{
				"type":    "RestException",
				"message": "No matching process definition with key: " + key,
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": key + ":1:1", "bpmn20Xml": xml})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Contract(t *testing.T) {
	docs := map[string]string{
		"invoice": `<definitions><process id="invoice"/></definitions>`,
	}
	srv := fakeEngine(t, docs)

	client := camunda.New(srv.URL + "/engine-rest/")
	contract.DefinitionSourceContractTest(t, client, docs)
}

func TestClient_Envelope(t *testing.T) {
	srv := fakeEngine(t, map[string]string{"invoice": "<definitions/>"})

	def, err := camunda.New(srv.URL+"/engine-rest").Fetch(context.Background(), "invoice")
	require.NoError(t, err)
	assert.Equal(t, "invoice:1:1", def.ID)
	assert.Equal(t, "invoice", def.Key)
}

func TestClient_BasicAuth(t *testing.T) {
	var user, pass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ = r.BasicAuth()
		w.Write([]byte(`{"id":"x","bpmn20Xml":"<definitions/>"}`))
	}))
	defer srv.Close()

	_, err := camunda.New(srv.URL, camunda.WithBasicAuth("demo", "secret")).Fetch(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "demo", user)
	assert.Equal(t, "secret", pass)
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"Server error", http.StatusInternalServerError, "boom", domain.ErrSourceUnavailable},
		{"Unauthorized", http.StatusUnauthorized, "", domain.ErrSourceUnavailable},
		{"Not JSON", http.StatusOK, "<html>", domain.ErrMalformedDefinition},
		{"Empty XML", http.StatusOK, `{"id":"x","bpmn20Xml":""}`, domain.ErrMalformedDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := camunda.New(srv.URL).Fetch(context.Background(), "x")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := camunda.New(srv.URL, camunda.WithTimeout(50*time.Millisecond)).Fetch(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
