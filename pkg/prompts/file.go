package prompts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlayFile is the on-disk shape of a prompt overlay:
//
//	sets:
//	  simple_qa:
//	    - name: my_prompt
//	      content: "..."
type overlayFile struct {
	Sets map[string][]Prompt `yaml:"sets"`
}

// Load returns the default library with the YAML overlay at path applied.
// Named sets in the file replace the built-in set of the same name.
func Load(path string) (*Library, error) {
	lib := Default()
	if path == "" {
		return lib, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var overlay overlayFile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	for name, ps := range overlay.Sets {
		for _, p := range ps {
			if p.Name == "" {
				return nil, fmt.Errorf("prompts file: set %q contains a prompt without a name", name)
			}
		}
	}

	lib.merge(overlay.Sets)
	return lib, nil
}
