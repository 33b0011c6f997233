// Package f1 fetches Formula 1 driver standings from the Ergast API
// and exports them as spreadsheets.
package f1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/loomworks/loomai/internal/domain"
)

const DefaultBaseURL = "http://ergast.com/api/f1"

// StandingRow is one flattened driver standings entry.
type StandingRow struct {
	Position    string
	Driver      string
	Points      string
	Wins        string
	Constructor string
}

// Header returns the column headers for an exported standings table.
func Header() []string {
	return []string{"Position", "Driver", "Points", "Wins", "Constructor"}
}

type ergastResponse struct {
	MRData struct {
		StandingsTable struct {
			StandingsLists []struct {
				DriverStandings []struct {
					Position string `json:"position"`
					Points   string `json:"points"`
					Wins     string `json:"wins"`
					Driver   struct {
						GivenName  string `json:"givenName"`
						FamilyName string `json:"familyName"`
					} `json:"Driver"`
					Constructors []struct {
						Name string `json:"name"`
					} `json:"Constructors"`
				} `json:"DriverStandings"`
			} `json:"StandingsLists"`
		} `json:"StandingsTable"`
	} `json:"MRData"`
}

// Client fetches standings from the Ergast REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the API base URL (for testing).
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// CurrentDriverStandings returns the current season's driver standings
// flattened to table rows.
func (c *Client) CurrentDriverStandings(ctx context.Context) ([]StandingRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/current/driverStandings.json", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "ergast request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewDomainError(domain.ErrCodeUpstream, fmt.Sprintf("ergast returned status %d", resp.StatusCode))
	}

	var parsed ergastResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "ergast returned malformed standings", err)
	}

	lists := parsed.MRData.StandingsTable.StandingsLists
	if len(lists) == 0 {
		return nil, domain.NewDomainError(domain.ErrCodeUpstream, "ergast returned no standings lists")
	}

	standings := lists[0].DriverStandings
	rows := make([]StandingRow, 0, len(standings))
	for _, s := range standings {
		constructor := ""
		if len(s.Constructors) > 0 {
			constructor = s.Constructors[0].Name
		}
		rows = append(rows, StandingRow{
			Position:    s.Position,
			Driver:      s.Driver.GivenName + " " + s.Driver.FamilyName,
			Points:      s.Points,
			Wins:        s.Wins,
			Constructor: constructor,
		})
	}
	return rows, nil
}
