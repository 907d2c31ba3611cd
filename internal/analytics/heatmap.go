// Package analytics holds display helpers for the geographic click heatmap:
// country-name normalisation so backend rows line up with map topology names,
// and a linear colour scale for choropleth fills. The numbers themselves come
// from the external analytics backend; nothing is aggregated here.
package analytics

import (
	"fmt"
	"strconv"
	"strings"
)

// countryAliases maps the spellings reporting backends emit onto the names
// used by the world map topology.
var countryAliases = map[string]string{
	"usa":                             "United States",
	"us":                              "United States",
	"united states of america":        "United States",
	"uk":                              "United Kingdom",
	"great britain":                   "United Kingdom",
	"england":                         "United Kingdom",
	"uae":                             "United Arab Emirates",
	"south korea":                     "South Korea",
	"republic of korea":               "South Korea",
	"korea, republic of":              "South Korea",
	"russia":                          "Russia",
	"russian federation":              "Russia",
	"czechia":                         "Czech Republic",
	"viet nam":                        "Vietnam",
	"taiwan, province of china":       "Taiwan",
	"iran, islamic republic of":       "Iran",
	"bolivia, plurinational state of": "Bolivia",
}

// NormalizeCountry maps a reported country name onto the map topology name.
// Unknown names pass through trimmed and unchanged.
func NormalizeCountry(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := countryAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// ColorScale linearly interpolates between two hex colours.
type ColorScale struct {
	low  [3]int
	high [3]int
}

// NewColorScale parses two #RRGGBB endpoints.
func NewColorScale(low, high string) (*ColorScale, error) {
	lowRGB, err := parseHexColor(low)
	if err != nil {
		return nil, err
	}
	highRGB, err := parseHexColor(high)
	if err != nil {
		return nil, err
	}
	return &ColorScale{low: lowRGB, high: highRGB}, nil
}

// Color returns the fill for value on a 0..max scale. Values outside the range
// clamp to the endpoints; a non-positive max yields the low endpoint.
func (s *ColorScale) Color(value, max float64) string {
	if max <= 0 {
		return formatHexColor(s.low)
	}

	t := value / max
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	var rgb [3]int
	for i := 0; i < 3; i++ {
		rgb[i] = s.low[i] + int(t*float64(s.high[i]-s.low[i])+0.5)
	}
	return formatHexColor(rgb)
}

func parseHexColor(value string) ([3]int, error) {
	var rgb [3]int
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(value) != 6 {
		return rgb, fmt.Errorf("analytics: invalid hex colour %q", value)
	}
	for i := 0; i < 3; i++ {
		channel, err := strconv.ParseInt(value[i*2:i*2+2], 16, 0)
		if err != nil {
			return rgb, fmt.Errorf("analytics: invalid hex colour %q", value)
		}
		rgb[i] = int(channel)
	}
	return rgb, nil
}

func formatHexColor(rgb [3]int) string {
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
