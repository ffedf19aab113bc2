package ml

import "strings"

const weightPrefix = "w:"

func (m *LogisticModel) state() modelState {
	params := map[string]float64{"bias": m.bias}
	for name, w := range m.weights {
		params[weightPrefix+name] = w
	}
	return modelState{Version: m.version, Params: params}
}

func (m *LogisticModel) restore(s modelState) {
	m.version = s.Version
	if s.Params == nil {
		return
	}
	weights := make(map[string]float64)
	for key, v := range s.Params {
		if key == "bias" {
			m.bias = v
			continue
		}
		if name, ok := strings.CutPrefix(key, weightPrefix); ok {
			weights[name] = v
		}
	}
	if len(weights) > 0 {
		m.weights = weights
	}
}

func (m *RatingModel) state() modelState {
	return modelState{Version: m.version, Params: map[string]float64{
		"scale":          m.scale,
		"home_advantage": m.homeAdvantage,
	}}
}

func (m *RatingModel) restore(s modelState) {
	m.version = s.Version
	if v, ok := s.Params["scale"]; ok && v > 0 {
		m.scale = v
	}
	if v, ok := s.Params["home_advantage"]; ok {
		m.homeAdvantage = v
	}
}

func (m *FormModel) state() modelState {
	return modelState{Version: m.version, Params: map[string]float64{
		"form_weight":     m.formWeight,
		"streak_weight":   m.streakWeight,
		"win_pct_weight":  m.winPctWeight,
		"home_field_bias": m.homeFieldBias,
	}}
}

func (m *FormModel) restore(s modelState) {
	m.version = s.Version
	if v, ok := s.Params["form_weight"]; ok {
		m.formWeight = v
	}
	if v, ok := s.Params["streak_weight"]; ok {
		m.streakWeight = v
	}
	if v, ok := s.Params["win_pct_weight"]; ok {
		m.winPctWeight = v
	}
	if v, ok := s.Params["home_field_bias"]; ok {
		m.homeFieldBias = v
	}
}

func (m *MarketModel) state() modelState {
	return modelState{Version: m.version, Params: map[string]float64{
		"slope": m.slope,
	}}
}

func (m *MarketModel) restore(s modelState) {
	m.version = s.Version
	if v, ok := s.Params["slope"]; ok && v > 0 {
		m.slope = v
	}
}

func (m *PoissonModel) state() modelState {
	return modelState{Version: m.version, Params: map[string]float64{
		"points_per_score": m.pointsPerScore,
		"home_boost":       m.homeBoost,
		"max_scores":       float64(m.maxScores),
	}}
}

func (m *PoissonModel) restore(s modelState) {
	m.version = s.Version
	if v, ok := s.Params["points_per_score"]; ok && v > 0 {
		m.pointsPerScore = v
	}
	if v, ok := s.Params["home_boost"]; ok && v > 0 {
		m.homeBoost = v
	}
	if v, ok := s.Params["max_scores"]; ok && v >= 1 {
		m.maxScores = int(v)
	}
}
