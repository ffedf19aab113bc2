package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

const initialVersion = "v1"

// modelState is the on-disk form of a model's tunable parameters.
type modelState struct {
	Version string             `json:"version"`
	Params  map[string]float64 `json:"params"`
}

// persistable is implemented by models whose parameters round-trip through
// the registry's JSON files.
type persistable interface {
	state() modelState
	restore(modelState)
}

// Registry owns the full model set. The set is fixed at construction; files
// under the model directory only override parameters, never add or remove
// models.
type Registry struct {
	dir    string
	byName map[string]Model
	names  []string
	logger *zap.SugaredLogger
}

// LoadRegistry builds the model set and applies any saved parameter files
// found in dir. A missing or unreadable file leaves that model at its
// defaults.
func LoadRegistry(dir string, logger *zap.Logger) (*Registry, error) {
	r := &Registry{
		dir:    dir,
		byName: make(map[string]Model),
		logger: logger.Sugar(),
	}
	for _, m := range []Model{
		NewLogisticModel(),
		NewRatingModel(),
		NewFormModel(),
		NewMarketModel(),
		NewPoissonModel(),
	} {
		r.byName[m.Name()] = m
		r.names = append(r.names, m.Name())
	}
	sort.Strings(r.names)

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create model dir: %w", err)
		}
		for _, name := range r.names {
			if err := r.loadOne(name); err != nil {
				r.logger.Warnw("Using default parameters", "model", name, "error", err)
			}
		}
	}
	return r, nil
}

func (r *Registry) path(name string) string {
	return filepath.Join(r.dir, name+".json")
}

func (r *Registry) loadOne(name string) error {
	p, ok := r.byName[name].(persistable)
	if !ok {
		return nil
	}
	raw, err := os.ReadFile(r.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var state modelState
	if err := json.Unmarshal(raw, &state); err != nil {
		return fmt.Errorf("parse %s: %w", r.path(name), err)
	}
	p.restore(state)
	return nil
}

// Save writes one model's current parameters to its file.
func (r *Registry) Save(name string) error {
	m, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("unknown model %q", name)
	}
	p, ok := m.(persistable)
	if !ok {
		return nil
	}
	raw, err := json.MarshalIndent(p.state(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s state: %w", name, err)
	}
	if err := os.WriteFile(r.path(name), raw, 0o644); err != nil {
		return fmt.Errorf("write %s state: %w", name, err)
	}
	return nil
}

// Models returns every model in stable name order.
func (r *Registry) Models() []Model {
	out := make([]Model, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}
	return out
}

// Model returns a model by name, or nil.
func (r *Registry) Model(name string) Model {
	return r.byName[name]
}

// Names returns the model names in stable order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// SetVersion tags a model with a new version after a training run and
// persists the change.
func (r *Registry) SetVersion(name, version string) error {
	p, ok := r.byName[name].(persistable)
	if !ok {
		return fmt.Errorf("unknown model %q", name)
	}
	state := p.state()
	state.Version = version
	p.restore(state)
	return r.Save(name)
}
