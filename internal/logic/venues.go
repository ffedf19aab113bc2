package logic

import "math"

// teamLocations maps team abbreviations to stadium coordinates.
var teamLocations = map[string][2]float64{
	"ARI": {33.5276, -112.2626},
	"ATL": {33.7573, -84.4003},
	"BAL": {39.2780, -76.6227},
	"BUF": {42.7738, -78.7870},
	"CAR": {35.2258, -80.8530},
	"CHI": {41.8623, -87.6167},
	"CIN": {39.0955, -84.5160},
	"CLE": {41.5061, -81.6995},
	"DAL": {32.7473, -97.0945},
	"DEN": {39.7439, -105.0201},
	"DET": {42.3400, -83.0456},
	"GB":  {44.5013, -88.0622},
	"HOU": {29.6847, -95.4107},
	"IND": {39.7601, -86.1639},
	"JAX": {30.3240, -81.6373},
	"KC":  {39.0489, -94.4839},
	"LV":  {36.0909, -115.1833},
	"LAC": {33.8648, -118.2639},
	"LAR": {34.0141, -118.2879},
	"MIA": {25.9580, -80.2389},
	"MIN": {44.9737, -93.2577},
	"NE":  {42.0909, -71.2643},
	"NO":  {29.9511, -90.0812},
	"NYG": {40.8136, -74.0745},
	"NYJ": {40.8136, -74.0745},
	"PHI": {39.9008, -75.1675},
	"PIT": {40.4468, -80.0158},
	"SF":  {37.4032, -121.9698},
	"SEA": {47.5952, -122.3316},
	"TB":  {27.9759, -82.5033},
	"TEN": {36.1665, -86.7713},
	"WSH": {38.9076, -76.8645},
}

// domeTeams play home games indoors, so weather features are neutral there.
var domeTeams = map[string]bool{
	"ATL": true, "NO": true, "DET": true, "MIN": true,
	"DAL": true, "LV": true, "LAR": true, "ARI": true,
}

var divisions = [][]string{
	{"BUF", "MIA", "NE", "NYJ"},
	{"BAL", "CIN", "CLE", "PIT"},
	{"HOU", "IND", "JAX", "TEN"},
	{"DEN", "KC", "LV", "LAC"},
	{"DAL", "NYG", "PHI", "WSH"},
	{"CHI", "DET", "GB", "MIN"},
	{"ATL", "CAR", "NO", "TB"},
	{"ARI", "LAR", "SF", "SEA"},
}

const earthRadiusMiles = 3956.0

// travelDistance returns the great-circle distance in miles between the two
// teams' home stadiums, or 0 when either team is unknown.
func travelDistance(homeTeam, awayTeam string) float64 {
	home, okHome := teamLocations[homeTeam]
	away, okAway := teamLocations[awayTeam]
	if !okHome || !okAway {
		return 0
	}

	lat1 := home[0] * math.Pi / 180
	lon1 := home[1] * math.Pi / 180
	lat2 := away[0] * math.Pi / 180
	lon2 := away[1] * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return earthRadiusMiles * 2 * math.Asin(math.Sqrt(a))
}

// travelBucket classifies a trip as short (0), medium (1) or long (2).
func travelBucket(distance float64) float64 {
	switch {
	case distance < 500:
		return 0
	case distance < 1500:
		return 1
	default:
		return 2
	}
}

func isDivisionGame(homeTeam, awayTeam string) bool {
	for _, teams := range divisions {
		var home, away bool
		for _, t := range teams {
			if t == homeTeam {
				home = true
			}
			if t == awayTeam {
				away = true
			}
		}
		if home && away {
			return true
		}
	}
	return false
}
