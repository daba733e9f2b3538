package web

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the dashboard state of a browser session.
type State int

const (
	AwaitCredentials State = iota
	Ready
	Refreshing
)

func (s State) String() string {
	switch s {
	case AwaitCredentials:
		return "await-credentials"
	case Ready:
		return "ready"
	case Refreshing:
		return "refreshing"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

const cookie = "campaign-sheets-session"

// DefaultSessionTimeout is how long an idle session, and the worksheet it holds, is kept.
const DefaultSessionTimeout = 30 * time.Minute

// session holds the authenticated worksheet for one browser. Interactions on a session are
// serialised by its mutex.
type session struct {
	sync.Mutex
	id    string
	state State
	store Store
	seen  time.Time
}

// connect moves a session to Ready with the opened worksheet.
func (s *session) connect(store Store) {
	s.store = store
	s.state = Ready
}

// refresh moves a Ready session to Refreshing.
func (s *session) refresh() error {
	if s.state != Ready {
		return fmt.Errorf("cannot refresh session in state %v", s.state)
	}

	s.state = Refreshing

	return nil
}

// ready completes a refresh.
func (s *session) ready() {
	if s.state == Refreshing {
		s.state = Ready
	}
}

type sessions struct {
	sync.Mutex
	list    map[string]*session
	timeout time.Duration
	now     func() time.Time
}

func newSessions(timeout time.Duration) *sessions {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}

	return &sessions{
		list:    map[string]*session{},
		timeout: timeout,
		now:     time.Now,
	}
}

// get returns the session identified by the request cookie, creating a new session (and
// setting the cookie) if there is none or it has expired. Sessions idle for longer than the
// timeout are discarded.
func (ss *sessions) get(w http.ResponseWriter, r *http.Request) *session {
	ss.Lock()
	defer ss.Unlock()

	now := ss.now()

	ss.sweep(now)

	if c, err := r.Cookie(cookie); err == nil {
		if s, ok := ss.list[c.Value]; ok {
			s.seen = now
			return s
		}
	}

	s := &session{
		id:    uuid.NewString(),
		state: AwaitCredentials,
		seen:  now,
	}

	ss.list[s.id] = s

	http.SetCookie(w, &http.Cookie{
		Name:     cookie,
		Value:    s.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return s
}

func (ss *sessions) sweep(now time.Time) {
	for id, s := range ss.list {
		if now.Sub(s.seen) >= ss.timeout {
			delete(ss.list, id)
		}
	}
}
