package builtin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolcall "github.com/mutablelogic/go-toolcall"
	builtin "github.com/mutablelogic/go-toolcall/pkg/builtin"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	settings "github.com/mutablelogic/go-toolcall/pkg/settings"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

func newNewsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/top-headlines", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","totalResults":1,"articles":[{"source":{"name":"BBC News"},"title":"Headline for ` + r.URL.Query().Get("category") + `"}]}`))
	})
	mux.HandleFunc("/everything", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","totalResults":0,"articles":[]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newsContext(ctx context.Context, key string) context.Context {
	store := settings.NewMemoryStore()
	if key != "" {
		store.SetPluginSetting(builtin.NewsID, "api_key", key)
	}
	return plugin.WithContext(ctx, &schema.PluginDescriptor{ID: builtin.NewsID}, store)
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_news_001(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	srv := newNewsServer(t)
	handlers := builtin.News(client.OptEndpoint(srv.URL)).Handlers()

	result, err := handlers["news_headlines"](newsContext(t.Context(), "secret"), map[string]any{"category": "Science"})
	require.NoError(err)
	assert.Equal("1. Headline for science (BBC News)", result)

	result, err = handlers["news_search"](newsContext(t.Context(), "secret"), map[string]any{"query": "golang"})
	require.NoError(err)
	assert.Equal("No articles found.", result)
}

func Test_news_002(t *testing.T) {
	assert := assert.New(t)
	srv := newNewsServer(t)
	handlers := builtin.News(client.OptEndpoint(srv.URL)).Handlers()

	_, err := handlers["news_search"](newsContext(t.Context(), ""), map[string]any{"query": "golang"})
	assert.ErrorIs(err, toolcall.ErrExecution)

	_, err = handlers["news_search"](newsContext(t.Context(), "secret"), map[string]any{})
	assert.ErrorIs(err, toolcall.ErrInvalidArguments)

	_, err = handlers["news_search"](newsContext(t.Context(), "secret"), map[string]any{"query": "golang", "sort_by": "date"})
	assert.ErrorIs(err, toolcall.ErrInvalidArguments)

	_, err = handlers["news_headlines"](newsContext(t.Context(), "secret"), map[string]any{"category": "gossip"})
	assert.ErrorIs(err, toolcall.ErrInvalidArguments)

	_, err = handlers["news_headlines"](newsContext(t.Context(), "secret"), map[string]any{"limit": 50})
	assert.ErrorIs(err, toolcall.ErrInvalidArguments)
}
