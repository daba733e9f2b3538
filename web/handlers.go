package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/campaign-reporting/campaign-sheets/campaign"
	"github.com/campaign-reporting/campaign-sheets/gateway"
)

const (
	missingCredentials = "Please upload your service account .json key to continue."
	recordAdded        = "Record added! Refresh page to see updated table."
	maxUpload          = 1 << 20
)

type page struct {
	State    string
	Document string
	Revision *gateway.Revision
	Warning  string
	Notice   string
	Header   []string
	Rows     [][]string
	Channels []string
	Today    string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	sess.Lock()
	defer sess.Unlock()

	if sess.state == AwaitCredentials {
		s.render(w, http.StatusOK, page{State: AwaitCredentials.String(), Warning: missingCredentials})
		return
	}

	p, err := s.view(r.Context(), sess.store)
	if err != nil {
		s.fail(w, sess, err)
		return
	}

	s.render(w, http.StatusOK, *p)
}

// handleCredentials authorises the uploaded service account key and opens the worksheet. A
// missing key leaves the session waiting for credentials; any other failure is returned raw.
func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	sess.Lock()
	defer sess.Unlock()

	credentials, err := upload(w, r)
	if err != nil {
		s.fail(w, sess, err)
		return
	}

	store, err := s.connect(r.Context(), credentials)
	if errors.Is(err, gateway.ErrMissingCredentials) {
		s.render(w, http.StatusOK, page{State: AwaitCredentials.String(), Warning: missingCredentials})
		return
	} else if err != nil {
		s.fail(w, sess, err)
		return
	}

	sess.connect(store)
	s.logger.Info("worksheet opened", zap.String("session", sess.id), zap.String("sheet", store.Sheet()))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleAddRecord appends the submitted record and invalidates the cached worksheet. The page
// shows the table as it was before the append, with a notice to refresh.
func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	sess.Lock()
	defer sess.Unlock()

	if sess.state == AwaitCredentials {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	record, err := parseRecord(r, s.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := s.view(r.Context(), sess.store)
	if err != nil {
		s.fail(w, sess, err)
		return
	}

	if err := sess.refresh(); err != nil {
		s.fail(w, sess, err)
		return
	}

	defer sess.ready()

	if err := sess.store.Append(r.Context(), record.Row()); err != nil {
		s.fail(w, sess, err)
		return
	}

	sess.store.Invalidate()

	s.logger.Info("record added",
		zap.String("session", sess.id),
		zap.String("project", record.Project),
		zap.String("channel", record.Channel))

	p.Notice = recordAdded
	s.render(w, http.StatusOK, *p)
}

// handleReload clears the cached worksheet and redirects to a fresh read.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	sess.Lock()
	defer sess.Unlock()

	if sess.state != AwaitCredentials {
		if err := sess.refresh(); err != nil {
			s.fail(w, sess, err)
			return
		}

		sess.store.Invalidate()
		sess.ready()
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	sess.Lock()
	defer sess.Unlock()

	if sess.state == AwaitCredentials {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	table, err := sess.store.ReadAll(r.Context())
	if err != nil {
		s.fail(w, sess, err)
		return
	}

	var b bytes.Buffer
	if err := campaign.MakeXLSX(&b, table, sess.store.Sheet()); err != nil {
		s.fail(w, sess, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="campaigns.xlsx"`)
	w.Write(b.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// view reads the worksheet (through the snapshot cache), derives the KPIs and collects the
// channel options for the form.
func (s *Server) view(ctx context.Context, store Store) (*page, error) {
	table, err := store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	channels, err := store.ColumnValues(ctx, campaign.Channel)
	if err != nil {
		return nil, err
	}

	extra := table.Extra()

	p := page{
		State:    Ready.String(),
		Document: fmt.Sprintf("%v / %v", store.Title(), store.Sheet()),
		Header:   []string{},
		Rows:     [][]string{},
		Channels: campaign.ChannelOptions(channels),
		Today:    s.now().Format("2006-01-02"),
	}

	p.Header = append(p.Header, campaign.Columns...)
	p.Header = append(p.Header, extra...)
	p.Header = append(p.Header, campaign.Derived...)

	for _, c := range campaign.ComputeAll(table) {
		values := c.Values()
		row := append([]string{}, values[:len(campaign.Columns)]...)
		for _, h := range extra {
			row = append(row, c.Extra[h])
		}

		row = append(row, values[len(campaign.Columns):]...)
		p.Rows = append(p.Rows, row)
	}

	if revision, err := store.Revision(ctx); err != nil {
		s.logger.Warn("revision unavailable", zap.Error(err))
	} else {
		p.Revision = revision
	}

	return &p, nil
}

func (s *Server) render(w http.ResponseWriter, status int, p page) {
	var b bytes.Buffer
	if err := s.page.Execute(&b, p); err != nil {
		http.Error(w, "Error formatting page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(b.Bytes())
}

// fail reports an unrecoverable error for the interaction as is.
func (s *Server) fail(w http.ResponseWriter, sess *session, err error) {
	s.logger.Error("interaction failed", zap.String("session", sess.id), zap.Error(err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// upload returns the contents of the 'credentials' multipart file, or nothing if no file was
// attached.
func upload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)

	file, _, err := r.FormFile("credentials")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	defer file.Close()

	return io.ReadAll(file)
}
