package generate

import (
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/complyo-io/complyo-engine/pkg/types"
)

//go:embed playbooks.yaml
var defaultPlaybooksYAML []byte

// Playbook is a canned remediation for a family of issues, used whenever
// the AI backend is not configured or declined to answer.
type Playbook struct {
	ID       string   `yaml:"id"`
	Match    []string `yaml:"match"`
	Type     string   `yaml:"type"`
	Language string   `yaml:"language"`
	Snippet  string   `yaml:"snippet"`
	Steps    []string `yaml:"steps"`
}

type playbookFile struct {
	Playbooks []Playbook `yaml:"playbooks"`
}

func DefaultPlaybooks() ([]Playbook, error) {
	var file playbookFile
	if err := yaml.Unmarshal(defaultPlaybooksYAML, &file); err != nil {
		return nil, fmt.Errorf("parse embedded playbooks: %w", err)
	}
	return file.Playbooks, nil
}

// LoadPlaybooks reads every yaml file under dir and appends its playbooks
// to the embedded defaults.
func LoadPlaybooks(dir string) ([]Playbook, error) {
	playbooks, err := DefaultPlaybooks()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return playbooks, nil
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !(strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var file playbookFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		playbooks = append(playbooks, file.Playbooks...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return playbooks, nil
}

// MatchPlaybook finds the first playbook whose keywords appear in the
// issue's category or title.
func MatchPlaybook(playbooks []Playbook, issue types.ComplianceIssue) *Playbook {
	haystack := strings.ToLower(issue.Category + " " + issue.Title)
	for i := range playbooks {
		for _, keyword := range playbooks[i].Match {
			if strings.Contains(haystack, strings.ToLower(keyword)) {
				return &playbooks[i]
			}
		}
	}
	return nil
}
