package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/creatorlane/creatorlane/internal/analytics"
)

// Default choropleth endpoints: light to saturated sky blue.
const (
	defaultHeatmapLowColor  = "#e0f2fe"
	defaultHeatmapHighColor = "#0369a1"
)

// CountryClicks is one raw row from the external analytics backend.
type CountryClicks struct {
	Country string `json:"country" validate:"required"`
	Clicks  int64  `json:"clicks" validate:"gte=0"`
}

// HeatmapCell is a normalised choropleth cell with its computed fill colour.
type HeatmapCell struct {
	Country string `json:"country"`
	Clicks  int64  `json:"clicks"`
	Color   string `json:"color"`
}

// AnalyticsService shapes externally aggregated click data for the admin
// heatmap. It owns no storage: the numbers arrive precomputed.
type AnalyticsService struct {
	scale *analytics.ColorScale
}

// NewAnalyticsService constructs an AnalyticsService with the default colour scale.
func NewAnalyticsService() (*AnalyticsService, error) {
	scale, err := analytics.NewColorScale(defaultHeatmapLowColor, defaultHeatmapHighColor)
	if err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}
	return &AnalyticsService{scale: scale}, nil
}

// Heatmap normalises country names, merges rows that collapse onto the same
// country, and assigns each cell a colour proportional to its click share.
// Cells are returned in descending click order.
func (s *AnalyticsService) Heatmap(rows []CountryClicks) ([]HeatmapCell, error) {
	totals := make(map[string]int64, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		country := analytics.NormalizeCountry(row.Country)
		if country == "" {
			return nil, errors.New("analytics service: country name is required")
		}
		if row.Clicks < 0 {
			return nil, fmt.Errorf("analytics service: negative clicks for %s", country)
		}
		if _, seen := totals[country]; !seen {
			order = append(order, country)
		}
		totals[country] += row.Clicks
	}

	var maxClicks int64
	for _, clicks := range totals {
		if clicks > maxClicks {
			maxClicks = clicks
		}
	}

	cells := make([]HeatmapCell, 0, len(order))
	for _, country := range order {
		clicks := totals[country]
		cells = append(cells, HeatmapCell{
			Country: country,
			Clicks:  clicks,
			Color:   s.scale.Color(float64(clicks), float64(maxClicks)),
		})
	}

	sort.SliceStable(cells, func(i, j int) bool { return cells[i].Clicks > cells[j].Clicks })
	return cells, nil
}
