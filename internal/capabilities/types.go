package capabilities

import "gopkg.in/yaml.v3"

// ModelProfile holds generation limits and display metadata for one model.
type ModelProfile struct {
	// Model identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`

	// Limits
	ContextWindow int `yaml:"context_window" json:"context_window"`
	MaxOutput     int `yaml:"max_output" json:"max_output"`
}

// ProviderProfiles holds all models for a provider, in YAML definition order.
type ProviderProfiles struct {
	Provider string         `yaml:"provider" json:"provider"`
	Models   []ModelProfile `yaml:"-" json:"models"`
}

// UnmarshalYAML preserves model order from the YAML file, which a map
// decode would lose.
func (p *ProviderProfiles) UnmarshalYAML(node *yaml.Node) error {
	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value == "provider" {
			p.Provider = node.Content[i+1].Value
			break
		}
	}

	type modelsOnly struct {
		Models map[string]ModelProfile `yaml:"models"`
	}
	var m modelsOnly
	if err := node.Decode(&m); err != nil {
		return err
	}

	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value == "models" {
			modelsNode := node.Content[i+1]
			// modelsNode.Content alternates: key, value, key, value...
			for j := 0; j < len(modelsNode.Content); j += 2 {
				modelID := modelsNode.Content[j].Value
				if model, ok := m.Models[modelID]; ok {
					model.ID = modelID
					p.Models = append(p.Models, model)
				}
			}
			break
		}
	}

	return nil
}
