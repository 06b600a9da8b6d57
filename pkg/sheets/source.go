// Package sheets reads value ranges from Google Sheets.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arboleda/arboleda/internal/config"
	"github.com/arboleda/arboleda/pkg/records"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ErrNotConfigured means no spreadsheet id or credentials were provided.
var ErrNotConfigured = errors.New("spreadsheet source is not configured")

// Source returns the cells of an A1 range as trimmed text.
type Source interface {
	Values(ctx context.Context, readRange string) (records.Grid, error)
}

type Client struct {
	service       *gsheets.Service
	spreadsheetId string
}

// NewClient authenticates with the service-account key in cfg. The key is
// only parsed here; no request is made until Values is called.
func NewClient(ctx context.Context, cfg config.Sheets) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	jwt, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJson), gsheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}

	service, err := gsheets.NewService(ctx, option.WithHTTPClient(jwt.Client(context.Background())))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}
	log.Infof("Sheets client ready for spreadsheet %s as %s", cfg.SpreadsheetId, jwt.Email)
	return &Client{service: service, spreadsheetId: cfg.SpreadsheetId}, nil
}

func (c *Client) Values(ctx context.Context, readRange string) (records.Grid, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetId, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to read range %s: %w", readRange, err)
	}
	log.Debugf("Read %d rows from %s", len(resp.Values), readRange)
	return toGrid(resp.Values), nil
}

// toGrid stringifies the API's loosely typed cells.
func toGrid(values [][]interface{}) records.Grid {
	grid := make(records.Grid, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			if v == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, strings.TrimSpace(fmt.Sprint(v)))
		}
		grid = append(grid, cells)
	}
	return grid
}

// failingSource reports the same error for every read. It stands in for a
// client whose credentials could not be parsed at startup.
type failingSource struct {
	err error
}

func (f failingSource) Values(context.Context, string) (records.Grid, error) {
	return nil, f.err
}

// NewSource builds the Sheets client for cfg. It returns ErrNotConfigured
// when cfg lacks the spreadsheet id or key. Broken credentials do not stop
// startup; every read then fails with the credential error.
func NewSource(ctx context.Context, cfg config.Sheets) (Source, error) {
	client, err := NewClient(ctx, cfg)
	if errors.Is(err, ErrNotConfigured) {
		return nil, err
	}
	if err != nil {
		log.Errorf("Sheets source unavailable: %v", err)
		return failingSource{err: err}, nil
	}
	return client, nil
}
