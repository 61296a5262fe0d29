package practicum

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestFetchStatusesSendsCursorAndToken(t *testing.T) {
	t.Parallel()

	var gotAuth, gotFromDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFromDate = r.URL.Query().Get("from_date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"homeworks":[{"homework_name":"hw1","status":"approved"}],"current_date":1700000100}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api/user_api/homework_statuses/", "secret", time.Second, testLogger())
	body, err := client.FetchStatuses(context.Background(), 1700000000)
	require.NoError(t, err)

	assert.Equal(t, "OAuth secret", gotAuth)
	assert.Equal(t, "1700000000", gotFromDate)

	resp, err := homework.ValidateResponse(body)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000100), resp.CurrentDate)
	require.Len(t, resp.Homeworks, 1)
}

func TestFetchStatusesNonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad", time.Second, testLogger())
	body, err := client.FetchStatuses(context.Background(), 0)
	assert.Nil(t, body)

	var transportErr *homework.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusUnauthorized, transportErr.StatusCode)
	assert.ErrorContains(t, err, "401")
}

func TestFetchStatusesConnectionFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	client := NewClient(addr, "token", time.Second, testLogger())
	_, err := client.FetchStatuses(context.Background(), 0)

	var transportErr *homework.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
	assert.Error(t, transportErr.Cause)
}

func TestFetchStatusesTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL, "token", 50*time.Millisecond, testLogger())
	_, err := client.FetchStatuses(context.Background(), 0)

	var transportErr *homework.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
}

func TestFetchStatusesUndecodableBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>maintenance</html>")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token", time.Second, testLogger())
	_, err := client.FetchStatuses(context.Background(), 0)

	var transportErr *homework.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.ErrorContains(t, err, "decode response")
}

func TestFetchStatusesNonObjectBodyReachesValidator(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `["not", "a", "mapping"]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token", time.Second, testLogger())
	body, err := client.FetchStatuses(context.Background(), 0)
	require.NoError(t, err)

	_, err = homework.ValidateResponse(body)
	var schemaErr *homework.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, homework.KindNotAMapping, schemaErr.Kind)
}
