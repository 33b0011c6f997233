// Package sheets publishes tabular data as world-readable Google Sheets.
package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Publisher creates spreadsheets through the Sheets API and opens them
// up for link access through the Drive API.
type Publisher struct {
	sheets *gsheets.Service
	drive  *drive.Service
	now    func() time.Time
}

// NewPublisher builds a Publisher from a service account credentials file.
func NewPublisher(ctx context.Context, credentialsFile string) (*Publisher, error) {
	sheetsSvc, err := gsheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Publisher{sheets: sheetsSvc, drive: driveSvc, now: time.Now}, nil
}

// PublishStandings creates a spreadsheet holding the given table,
// shares it with anyone who has the link, and returns its URL. The
// first row is treated as the header.
func (p *Publisher) PublishStandings(ctx context.Context, table [][]any) (string, error) {
	title := fmt.Sprintf("F1 Standings %s", p.now().Format("2006-01-02 15:04"))

	spreadsheet, err := p.sheets.Spreadsheets.Create(&gsheets.Spreadsheet{
		Properties: &gsheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet: %w", err)
	}

	_, err = p.sheets.Spreadsheets.Values.Update(spreadsheet.SpreadsheetId, "A1", &gsheets.ValueRange{
		Values: table,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("write standings: %w", err)
	}

	_, err = p.drive.Permissions.Create(spreadsheet.SpreadsheetId, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("share spreadsheet: %w", err)
	}

	return spreadsheet.SpreadsheetUrl, nil
}

// Table converts header and string rows into the Sheets value layout.
func Table(header []string, rows [][]string) [][]any {
	table := make([][]any, 0, len(rows)+1)

	h := make([]any, len(header))
	for i, v := range header {
		h[i] = v
	}
	table = append(table, h)

	for _, row := range rows {
		r := make([]any, len(row))
		for i, v := range row {
			r[i] = v
		}
		table = append(table, r)
	}
	return table
}
