package keywords

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileLists struct {
	Urgent []string `yaml:"urgent"`
	Mild   []string `yaml:"mild"`
}

// LoadFile читает списки фраз из YAML:
//
//	urgent: ["swap failed", ...]
//	mild: ["help", ...]
func LoadFile(path string) (*Matcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var lists fileLists
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	m := New(lists.Urgent, lists.Mild)
	if len(m.urgent) == 0 && len(m.mild) == 0 {
		return nil, fmt.Errorf("%s: no keywords defined", path)
	}
	return m, nil
}
