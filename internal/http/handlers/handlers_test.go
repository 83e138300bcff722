package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandlers_Ping(t *testing.T) {
	t.Parallel()

	h := New(nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()

	h.Ping(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Equal(t, "pong", body["message"])
}

func TestHandlers_HealthcheckAndNotFound(t *testing.T) {
	t.Parallel()

	h := New(nil)

	rr := httptest.NewRecorder()
	h.HealthcheckHead(rr, httptest.NewRequest(http.MethodHead, "/healthcheck", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	h.NotFound(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.JSONEq(t, `{"error":"route not found"}`, rr.Body.String())
}

func TestActorFromRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPut, "/", nil)
	actor, err := actorFromRequest(req)
	require.NoError(t, err)
	require.Equal(t, "admin", string(actor.Role))

	req.Header.Set(HeaderCourierID, "12")
	actor, err = actorFromRequest(req)
	require.NoError(t, err)
	require.Equal(t, "courier", string(actor.Role))
	require.EqualValues(t, 12, actor.ID)

	req.Header.Set(HeaderCourierID, "abc")
	_, err = actorFromRequest(req)
	require.Error(t, err)

	anon, err := courierFromRequest(httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)
	require.Equal(t, "courier", string(anon.Role))
	require.Zero(t, anon.ID)
}
