//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/2beens/trainingdash/internal/widgetstate"
	testingpkg "github.com/2beens/trainingdash/pkg/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doWidgetRequest(ctx context.Context, method, widget string, body []byte) *http.Response {
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+"/widgets/"+widget+"/state", bytes.NewReader(body))
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	return resp
}

func (s *IntegrationTestSuite) TestWidgetState_Lifecycle() {
	ctx := context.Background()
	t := s.T()

	resp := s.doWidgetRequest(ctx, http.MethodPut, "timer", []byte(`{"running":true,"elapsed":125}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.doWidgetRequest(ctx, http.MethodGet, "timer", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state widgetstate.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "timer", state.Widget)
	assert.JSONEq(t, `{"running":true,"elapsed":125}`, string(state.Data))

	// the key carries the configured ttl
	redisCtx, rdb := testingpkg.GetRedisClientAndCtx(t, net.JoinHostPort("localhost", s.redisPort))
	ttl, err := rdb.TTL(redisCtx, "trainingdash::widget-state::timer").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Seconds(), 0.0)

	resp = s.doWidgetRequest(ctx, http.MethodDelete, "timer", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.doWidgetRequest(ctx, http.MethodGet, "timer", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = s.doWidgetRequest(ctx, http.MethodPut, "timer", []byte(`[1,2,3]`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}
