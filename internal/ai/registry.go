// Package ai holds the model tier registry and the content provider clients.
package ai

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

// ModelsPath is the optional yaml override for the built-in tier table.
func ModelsPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".sunum2", "models.yaml")
}

// ModelConfig describes one product model tier.
type ModelConfig struct {
	Name  string `yaml:"name"`  // product tier id, e.g. "cry-5.2-kx3d"
	Label string `yaml:"label"` // display label, e.g. "Cry 5.2 KX3D"
	Code  string `yaml:"code"`  // provider model code, e.g. "mistral-large-2411"
	Speed string `yaml:"speed"` // "slow" | "medium" | "fast"
	// Match lists substrings that select this tier from free text.
	Match []string `yaml:"match,omitempty"`
}

func (m *ModelConfig) SpeedText() string {
	switch m.Speed {
	case "fast":
		return "Hızlı"
	case "medium":
		return "Dengeli"
	case "slow":
		return "En Güçlü"
	default:
		return m.Speed
	}
}

// Registry maps product tiers to provider model codes, ordered strongest first.
type Registry struct {
	models     map[string]*ModelConfig
	modelOrder []string
}

type modelsFile struct {
	Models []*ModelConfig `yaml:"models"`
}

func defaultModels() []*ModelConfig {
	return []*ModelConfig{
		{Name: "cry-5.2-kx3d", Label: "Cry 5.2 KX3D", Code: "mistral-large-2411", Speed: "slow", Match: []string{"5.2", "kx3d"}},
		{Name: "cry-4.6-kx1d", Label: "Cry 4.6 KX1D", Code: "mistral-medium", Speed: "medium", Match: []string{"4.6", "kx1d"}},
		{Name: "cry-2.3-ky1d", Label: "Cry 2.3 KY1D", Code: "mistral-small-2402", Speed: "fast", Match: []string{"2.3", "ky1d"}},
	}
}

// LoadRegistry builds the tier registry from models.yaml beside the executable,
// falling back to the built-in tier table when the file is absent.
func LoadRegistry() (*Registry, error) {
	data, err := os.ReadFile(ModelsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(defaultModels()...), nil
		}
		return nil, fmt.Errorf("failed to read models.yaml: %w", err)
	}

	var mf modelsFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse models.yaml: %w", err)
	}
	if len(mf.Models) == 0 {
		return nil, fmt.Errorf("no models found in models.yaml")
	}
	return NewRegistry(mf.Models...), nil
}

// NewRegistry builds a registry from explicit tiers, keeping their order.
func NewRegistry(models ...*ModelConfig) *Registry {
	r := &Registry{models: make(map[string]*ModelConfig)}
	for _, m := range models {
		if _, exists := r.models[m.Name]; !exists {
			r.modelOrder = append(r.modelOrder, m.Name)
		}
		r.models[m.Name] = m
	}
	return r
}

func (r *Registry) GetModel(name string) (*ModelConfig, bool) {
	m, ok := r.models[name]
	return m, ok
}

func (r *Registry) ListModels() []*ModelConfig {
	models := make([]*ModelConfig, 0, len(r.modelOrder))
	for _, name := range r.modelOrder {
		if m, ok := r.models[name]; ok {
			models = append(models, m)
		}
	}
	return models
}

// FastestModel returns the last tier in order, the retry-friendly default.
func (r *Registry) FastestModel() *ModelConfig {
	models := r.ListModels()
	if len(models) == 0 {
		return nil
	}
	return models[len(models)-1]
}

// MatchModel resolves free text to a tier by substring, checking tiers in
// order. Text with no match resolves to the fastest tier.
func (r *Registry) MatchModel(text string) *ModelConfig {
	lowered := strings.ToLower(text)
	for _, m := range r.ListModels() {
		for _, token := range m.Match {
			if token != "" && strings.Contains(lowered, strings.ToLower(token)) {
				return m
			}
		}
	}
	return r.FastestModel()
}

// ResolveCode maps a tier name to its provider model code, defaulting to the
// strongest tier for unknown names.
func (r *Registry) ResolveCode(name string) string {
	if m, ok := r.models[name]; ok {
		return m.Code
	}
	models := r.ListModels()
	if len(models) == 0 {
		return name
	}
	return models[0].Code
}
