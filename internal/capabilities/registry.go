package capabilities

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-5-20250929"

// Registry resolves model identifiers to their generation profiles. Profiles
// are loaded once from embedded YAML at construction.
type Registry struct {
	providers map[string]*ProviderProfiles
	mu        sync.RWMutex
}

// NewRegistry creates a registry from the embedded provider YAML files.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		providers: make(map[string]*ProviderProfiles),
	}

	if err := r.loadProviderFile("anthropic"); err != nil {
		return nil, fmt.Errorf("failed to load anthropic profiles: %w", err)
	}

	return r, nil
}

func (r *Registry) loadProviderFile(provider string) error {
	filename := fmt.Sprintf("config/%s.yaml", provider)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var profiles ProviderProfiles
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	r.providers[provider] = &profiles
	r.mu.Unlock()

	return nil
}

// GetModelProfile returns the profile for a specific model.
func (r *Registry) GetModelProfile(provider, model string) (*ModelProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles, ok := r.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}

	for i := range profiles.Models {
		if profiles.Models[i].ID == model {
			return &profiles.Models[i], nil
		}
	}

	return nil, fmt.Errorf("unknown model %s for provider %s", model, provider)
}

// MaxOutputTokens returns the output budget for a model, falling back to a
// conservative default when the model is not in the registry.
func (r *Registry) MaxOutputTokens(provider, model string) int {
	profile, err := r.GetModelProfile(provider, model)
	if err != nil || profile.MaxOutput <= 0 {
		return 8192
	}
	return profile.MaxOutput
}

// ListProviderModels returns all models for a provider in YAML order.
func (r *Registry) ListProviderModels(provider string) ([]ModelProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles, ok := r.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}

	return profiles.Models, nil
}
