package llmgw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGateway_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`))
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "test-model", 0)
	out, err := gw.Analyze(context.Background(), "system", "user", 0.0, 100)
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)
}

func TestHTTPGateway_Analyze_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "test-model", 0)
	_, err := gw.Analyze(context.Background(), "system", "user", 0.0, 100)
	assert.Error(t, err)
}

func TestRecordedGateway_EnqueueAndFIFO(t *testing.T) {
	rg := NewRecordedGateway()
	rg.Enqueue("sys", "first").Enqueue("sys", "second")

	first, err := rg.Analyze(context.Background(), "sys", "u", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "first", first)

	second, err := rg.Analyze(context.Background(), "sys", "u", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "second", second)

	assert.Equal(t, 2, rg.CallCount("sys"))
}

func TestRecordedGateway_FailNext(t *testing.T) {
	rg := NewRecordedGateway()
	rg.FailNext("sys", assert.AnError)

	_, err := rg.Analyze(context.Background(), "sys", "u", 0, 0)
	assert.ErrorIs(t, err, assert.AnError)
}
