package bench

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// rulesFile is the structured form of a rules file.
type rulesFile struct {
	Rules []string `json:"rules" yaml:"rules"`
}

// LoadRules reads hidden rules from a file. YAML and JSON files hold either
// a list of rules or an object with a "rules" list; any other file has one
// rule per line, with blank lines and lines starting with '#' ignored.
func LoadRules(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeRules(data, yaml.Unmarshal)
	case ".json":
		return decodeRules(data, json.Unmarshal)
	}

	var rules []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	return rules, sc.Err()
}

func decodeRules(data []byte, unmarshal func([]byte, any) error) ([]string, error) {
	var list []string
	if err := unmarshal(data, &list); err == nil {
		return list, nil
	}
	var f rulesFile
	if err := unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode rules file: %w", err)
	}
	return f.Rules, nil
}
