package database

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"calorie-workers/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

// fakeElasticsearch answers like a cluster would, including the product header the client checks.
func fakeElasticsearch(t *testing.T, status map[string]int) (*ElasticsearchClient, *[]recordedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []recordedRequest
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		code := http.StatusOK
		if c, ok := status[r.Method+" "+r.URL.Path]; ok {
			code = c
		}
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"acknowledged":true,"result":"created"}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client, &requests
}

func TestElasticsearchClient_IndexDocument(t *testing.T) {
	client, requests := fakeElasticsearch(t, nil)

	doc := map[string]interface{}{"summaryId": "abc", "netCalories": 1078}
	require.NoError(t, client.IndexDocument(context.Background(), "daily-summaries", "abc", doc))

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/daily-summaries/_doc/abc", req.Path)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(req.Body), &got))
	assert.Equal(t, float64(1078), got["netCalories"])
}

func TestElasticsearchClient_IndexDocument_ErrorStatus(t *testing.T) {
	client, _ := fakeElasticsearch(t, map[string]int{"PUT /daily-summaries/_doc/abc": http.StatusBadRequest})

	err := client.IndexDocument(context.Background(), "daily-summaries", "abc", map[string]int{"x": 1})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestElasticsearchClient_EnsureSummaryIndex(t *testing.T) {
	t.Run("creates missing index", func(t *testing.T) {
		client, requests := fakeElasticsearch(t, map[string]int{"HEAD /daily-summaries": http.StatusNotFound})

		require.NoError(t, client.EnsureSummaryIndex(context.Background(), "daily-summaries"))
		require.Len(t, *requests, 2)
		assert.Equal(t, http.MethodPut, (*requests)[1].Method)
		assert.Contains(t, (*requests)[1].Body, `"netCalories"`)
	})

	t.Run("keeps existing index", func(t *testing.T) {
		client, requests := fakeElasticsearch(t, nil)

		require.NoError(t, client.EnsureSummaryIndex(context.Background(), "daily-summaries"))
		assert.Len(t, *requests, 1)
	})
}

func TestElasticsearchClient_Ping(t *testing.T) {
	client, _ := fakeElasticsearch(t, nil)
	assert.NoError(t, client.Ping(context.Background()))
}
