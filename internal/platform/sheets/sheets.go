package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Connect builds a Sheets API client. With an empty credentialsFile the
// application default credentials are used.
func Connect(ctx context.Context, credentialsFile string) (*gsheets.Service, error) {
	opts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	if path := strings.TrimSpace(credentialsFile); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("build sheets client: %w", err)
	}
	return svc, nil
}

// Values adapts the generated client to plain row slices.
type Values struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewValues binds the values API to one spreadsheet.
func NewValues(svc *gsheets.Service, spreadsheetID string) *Values {
	return &Values{svc: svc, spreadsheetID: spreadsheetID}
}

// Get reads a range; trailing empty cells are omitted by the API.
func (v *Values) Get(ctx context.Context, rng string) ([][]any, error) {
	resp, err := v.svc.Spreadsheets.Values.Get(v.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// Append adds rows after the last non-empty row of the range.
func (v *Values) Append(ctx context.Context, rng string, rows [][]any) error {
	_, err := v.svc.Spreadsheets.Values.Append(v.spreadsheetID, rng, &gsheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// Write overwrites each range with its single value in one batch call.
func (v *Values) Write(ctx context.Context, cells map[string]any) error {
	data := make([]*gsheets.ValueRange, 0, len(cells))
	for rng, value := range cells {
		data = append(data, &gsheets.ValueRange{Range: rng, Values: [][]any{{value}}})
	}
	_, err := v.svc.Spreadsheets.Values.BatchUpdate(v.spreadsheetID, &gsheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}).Context(ctx).Do()
	return err
}
