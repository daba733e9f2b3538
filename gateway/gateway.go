package gateway

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/campaign-reporting/campaign-sheets/campaign"
)

// Config identifies the worksheet and how long a read snapshot is reused.
type Config struct {
	URL   string
	Sheet string
	TTL   time.Duration
}

// Gateway reads and appends Campaign Records on a single named worksheet. A Gateway belongs to
// one session and is not safe for concurrent use.
type Gateway struct {
	sheets      *sheets.Service
	drive       *drive.Service
	spreadsheet string
	title       string
	sheet       string
	cache       cache
	now         func() time.Time
}

// Revision describes the last change to the spreadsheet document, as reported by Google Drive.
type Revision struct {
	Name       string
	Version    int64
	Modified   time.Time
	ModifiedBy string
}

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

// SpreadsheetID extracts the document ID from a Google Sheets URL.
func SpreadsheetID(url string) (string, error) {
	match := spreadsheetURL.FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

// Open resolves the named worksheet in the document at config.URL. It fails if the document or
// worksheet does not exist or the session is not allowed to read it.
func Open(ctx context.Context, session *Session, config Config, options ...option.ClientOption) (*Gateway, error) {
	if session == nil {
		return nil, ErrMissingCredentials
	}

	id, err := SpreadsheetID(config.URL)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(config.Sheet) == "" {
		return nil, fmt.Errorf("missing worksheet name")
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(session.Client)}, options...)

	google, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	gdrive, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%w)", err)
	}

	spreadsheet, err := getSpreadsheet(ctx, google, id)
	if err != nil {
		return nil, err
	}

	sheet, err := getSheet(spreadsheet, config.Sheet)
	if err != nil {
		return nil, err
	}

	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	title := ""
	if spreadsheet.Properties != nil {
		title = spreadsheet.Properties.Title
	}

	return &Gateway{
		sheets:      google,
		drive:       gdrive,
		spreadsheet: spreadsheet.SpreadsheetId,
		title:       title,
		sheet:       sheet.Properties.Title,
		cache:       cache{ttl: ttl},
		now:         time.Now,
	}, nil
}

// Title returns the spreadsheet document title.
func (g *Gateway) Title() string {
	return g.title
}

// Sheet returns the worksheet name.
func (g *Gateway) Sheet() string {
	return g.sheet
}

// ReadAll returns every worksheet row as a Campaign Record, with row 1 as the header. A snapshot
// younger than the TTL is returned without contacting the remote store.
func (g *Gateway) ReadAll(ctx context.Context) (*campaign.Table, error) {
	now := g.now()
	if !g.cache.IsStale(now) {
		return g.cache.Get(), nil
	}

	response, err := g.sheets.Spreadsheets.Values.Get(g.spreadsheet, g.area("")).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	table, err := campaign.MakeTable(response.Values)
	if err != nil {
		return nil, fmt.Errorf("error creating table from worksheet (%w)", err)
	}

	g.cache.Put(table, now)

	return table, nil
}

// Invalidate discards the cached snapshot so that the next ReadAll refetches the worksheet.
func (g *Gateway) Invalidate() {
	g.cache.Invalidate()
}

// ColumnValues returns the values in a named column, excluding the header.
func (g *Gateway) ColumnValues(ctx context.Context, column string) ([]string, error) {
	header, err := g.header(ctx)
	if err != nil {
		return nil, err
	}

	index, err := campaign.MakeIndex(header)
	if err != nil {
		return nil, err
	}

	ix, ok := index.Find(column)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownColumn, column)
	}

	col, err := excelize.ColumnNumberToName(ix + 1)
	if err != nil {
		return nil, err
	}

	response, err := g.sheets.Spreadsheets.Values.Get(g.spreadsheet, g.area(fmt.Sprintf("%[1]v2:%[1]v", col))).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve column '%s' from sheet (%w)", column, err)
	}

	values := []string{}
	for _, row := range response.Values {
		if len(row) > 0 {
			values = append(values, strings.TrimSpace(fmt.Sprintf("%v", row[0])))
		} else {
			values = append(values, "")
		}
	}

	return values, nil
}

// Append validates a row keyed by column name against the worksheet header and appends it in
// header order. Every Campaign Record column must be present, every key must name a header column
// and no two keys may name the same column. Other header columns missing from the row are left
// blank.
func (g *Gateway) Append(ctx context.Context, row map[string]any) error {
	header, err := g.header(ctx)
	if err != nil {
		return err
	}

	index, err := campaign.MakeIndex(header)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	values := make([]any, len(header))
	present := map[int]string{}
	unknown := []string{}
	missing := []string{}
	duplicate := []string{}

	for _, k := range keys {
		if ix, ok := index.Find(k); !ok {
			unknown = append(unknown, k)
		} else if other, ok := present[ix]; ok {
			duplicate = append(duplicate, fmt.Sprintf("%v/%v", other, k))
		} else {
			values[ix] = row[k]
			present[ix] = k
		}
	}

	for _, c := range campaign.Columns {
		if ix, ok := index.Find(c); !ok || present[ix] == "" {
			missing = append(missing, c)
		}
	}

	for i := range header {
		if _, ok := present[i]; !ok {
			values[i] = ""
		}
	}

	if len(missing) > 0 || len(unknown) > 0 || len(duplicate) > 0 {
		return &SchemaError{
			Missing:   missing,
			Unknown:   unknown,
			Duplicate: duplicate,
			Width:     len(header),
			Columns:   len(header),
		}
	}

	return g.append(ctx, values)
}

// AppendRow appends positional values at the end of the worksheet. The number of values must
// match the width of the header row.
func (g *Gateway) AppendRow(ctx context.Context, values []any) error {
	header, err := g.header(ctx)
	if err != nil {
		return err
	}

	if len(values) != len(header) {
		return &SchemaError{
			Width:   len(values),
			Columns: len(header),
		}
	}

	return g.append(ctx, values)
}

// Revision asks Google Drive when, and by whom, the document was last modified. The answer is
// kept with the current worksheet snapshot and refetched along with it.
func (g *Gateway) Revision(ctx context.Context) (*Revision, error) {
	now := g.now()
	if !g.cache.IsStale(now) && g.cache.revision != nil {
		return g.cache.revision, nil
	}

	file, err := g.drive.Files.Get(g.spreadsheet).
		Fields("id", "name", "version", "modifiedTime", "lastModifyingUser(displayName,emailAddress)").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve file information (%w)", err)
	}

	modified, err := time.Parse(time.RFC3339, file.ModifiedTime)
	if err != nil {
		return nil, err
	}

	revision := Revision{
		Name:     file.Name,
		Version:  file.Version,
		Modified: modified,
	}

	if user := file.LastModifyingUser; user != nil {
		revision.ModifiedBy = user.DisplayName
		if revision.ModifiedBy == "" {
			revision.ModifiedBy = user.EmailAddress
		}
	}

	if !g.cache.IsStale(now) {
		g.cache.revision = &revision
	}

	return &revision, nil
}

func (g *Gateway) append(ctx context.Context, values []any) error {
	rq := sheets.ValueRange{
		Values: [][]any{values},
	}

	if _, err := g.sheets.Spreadsheets.Values.Append(g.spreadsheet, g.area("A1"), &rq).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("error appending row to Google Sheets (%w)", err)
	}

	return nil
}

func (g *Gateway) header(ctx context.Context) ([]any, error) {
	response, err := g.sheets.Spreadsheets.Values.Get(g.spreadsheet, g.area("1:1")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve column headers from sheet (%w)", err)
	}

	if len(response.Values) == 0 || len(response.Values[0]) == 0 {
		return nil, fmt.Errorf("missing/invalid header row")
	}

	return response.Values[0], nil
}

// area returns an A1 range on the worksheet, quoting the sheet name.
func (g *Gateway) area(rng string) string {
	name := "'" + strings.ReplaceAll(g.sheet, "'", "''") + "'"
	if rng == "" {
		return name
	}

	return name + "!" + rng
}

func getSpreadsheet(ctx context.Context, google *sheets.Service, id string) (*sheets.Spreadsheet, error) {
	spreadsheet, err := google.Spreadsheets.Get(id).
		Fields("spreadsheetId", "properties.title", "sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	return spreadsheet, nil
}

func getSheet(spreadsheet *sheets.Spreadsheet, name string) (*sheets.Sheet, error) {
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil {
			continue
		}

		if strings.ToLower(strings.TrimSpace(sheet.Properties.Title)) == strings.ToLower(strings.TrimSpace(name)) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet '%s'", name)
}
