package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionStates(t *testing.T) {
	s := session{state: AwaitCredentials}

	require.Error(t, s.refresh())

	s.connect(&mockStore{})
	require.Equal(t, Ready, s.state)

	require.NoError(t, s.refresh())
	require.Equal(t, Refreshing, s.state)
	require.Error(t, s.refresh())

	s.ready()
	require.Equal(t, Ready, s.state)
	require.Equal(t, "ready", s.state.String())
}

func TestSessionCookie(t *testing.T) {
	ss := newSessions(0)

	w := httptest.NewRecorder()
	s := ss.get(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "campaign-sheets-session", cookies[0].Name)
	require.Equal(t, s.id, cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])

	w = httptest.NewRecorder()
	require.Same(t, s, ss.get(w, r))
	require.Empty(t, w.Result().Cookies())

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cookie, Value: "expired"})
	require.NotSame(t, s, ss.get(httptest.NewRecorder(), r))
}

func TestSessionTimeout(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	ss := newSessions(10 * time.Minute)
	ss.now = func() time.Time { return now }

	w := httptest.NewRecorder()
	s := ss.get(w, httptest.NewRequest(http.MethodGet, "/", nil))
	s.connect(&mockStore{})

	c := w.Result().Cookies()[0]
	request := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		return r
	}

	now = now.Add(9 * time.Minute)
	require.Same(t, s, ss.get(httptest.NewRecorder(), request()))

	// idle time is measured from the last request
	now = now.Add(9 * time.Minute)
	require.Same(t, s, ss.get(httptest.NewRecorder(), request()))

	now = now.Add(10 * time.Minute)
	w = httptest.NewRecorder()
	expired := ss.get(w, request())

	require.NotSame(t, s, expired)
	require.Equal(t, AwaitCredentials, expired.state)
	require.Nil(t, expired.store)
	require.Len(t, w.Result().Cookies(), 1)
	require.Len(t, ss.list, 1)
}

func TestSessionSweep(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	ss := newSessions(time.Minute)
	ss.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		ss.get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	require.Len(t, ss.list, 100)

	now = now.Add(time.Minute)
	ss.get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, ss.list, 1)
}
