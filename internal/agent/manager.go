package agent

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/loomworks/loomai/internal/f1"
	"github.com/loomworks/loomai/internal/sheets"
)

// Answerer produces an answer for a user query.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// StandingsSource fetches the current driver standings table.
type StandingsSource interface {
	CurrentDriverStandings(ctx context.Context) ([]f1.StandingRow, error)
}

// StandingsPublisher publishes a standings table and returns its URL.
type StandingsPublisher interface {
	PublishStandings(ctx context.Context, table [][]any) (string, error)
}

// Manager fronts the agent loop and short-circuits queries it can
// answer without the model.
type Manager struct {
	loop      *Loop
	standings StandingsSource
	publisher StandingsPublisher
	exportDir string
	logger    zerolog.Logger
	now       func() time.Time
}

func NewManager(loop *Loop, standings StandingsSource, logger zerolog.Logger) *Manager {
	return &Manager{
		loop:      loop,
		standings: standings,
		exportDir: ".",
		logger:    logger,
		now:       time.Now,
	}
}

// WithPublisher enables Google Sheets publication for standings queries.
func (m *Manager) WithPublisher(p StandingsPublisher) *Manager {
	m.publisher = p
	return m
}

// WithExportDir sets where fallback .xlsx exports are written.
func (m *Manager) WithExportDir(dir string) *Manager {
	m.exportDir = dir
	return m
}

// Answer routes a query. Standings questions go straight to the data
// source, everything else runs through the agent loop.
func (m *Manager) Answer(ctx context.Context, query string) (string, error) {
	lower := strings.ToLower(query)
	if strings.Contains(lower, "f1") && strings.Contains(lower, "stand") {
		return m.answerStandings(ctx)
	}
	return m.loop.Run(ctx, query)
}

func (m *Manager) answerStandings(ctx context.Context) (string, error) {
	rows, err := m.standings.CurrentDriverStandings(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch standings: %w", err)
	}

	if m.publisher != nil {
		stringRows := make([][]string, len(rows))
		for i, r := range rows {
			stringRows[i] = []string{r.Position, r.Driver, r.Points, r.Wins, r.Constructor}
		}
		url, err := m.publisher.PublishStandings(ctx, sheets.Table(f1.Header(), stringRows))
		if err != nil {
			m.logger.Warn().Err(err).Msg("sheets publication failed, exporting locally")
		} else {
			return "Current F1 driver standings: " + url, nil
		}
	}

	path := filepath.Join(m.exportDir, fmt.Sprintf("f1_standings_%s.xlsx", m.now().Format("20060102_150405")))
	if err := f1.WriteXLSX(rows, path); err != nil {
		return "", fmt.Errorf("export standings: %w", err)
	}
	return "Current F1 driver standings saved to " + path, nil
}
