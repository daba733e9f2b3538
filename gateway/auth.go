package gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

// Scopes grants read/write access to the spreadsheet and its hosting drive.
var Scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveScope,
}

// Session is an authenticated handle for a service account.
type Session struct {
	Account string
	Scopes  []string
	Client  *http.Client
}

// Authorise parses a service account JSON key and returns a session bound to the scopes. The
// token is fetched lazily, on the first remote call.
func Authorise(ctx context.Context, credentials []byte, scopes ...string) (*Session, error) {
	if len(bytes.TrimSpace(credentials)) == 0 {
		return nil, ErrMissingCredentials
	}

	if len(scopes) == 0 {
		scopes = Scopes
	}

	config, err := google.JWTConfigFromJSON(credentials, scopes...)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	// the session outlives the request that created it
	return &Session{
		Account: config.Email,
		Scopes:  config.Scopes,
		Client:  config.Client(context.WithoutCancel(ctx)),
	}, nil
}
