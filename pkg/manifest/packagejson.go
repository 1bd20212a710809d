package manifest

import (
	"encoding/json"
	"sort"
	"strings"
)

const npmScope = "@zk-kit/"

type packageJSONFile struct {
	Description  any `json:"description"`
	Version      any `json:"version"`
	Dependencies any `json:"dependencies"`
}

// ParsePackageJSON parses an npm-style package.json. Used by the
// typescript, circom, and solidity repositories.
//
// zk-kit dependencies are the runtime dependency keys carrying the
// @zk-kit/ scope; the scope and the .circom/.sol publishing suffixes are
// stripped to recover cross-language ids. Dev and peer dependency tables
// are ignored, they would link test-only siblings into the graph.
func ParsePackageJSON(data []byte) (Info, error) {
	var file packageJSONFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Info{}, err
	}

	var deps []string
	for name := range tableField(file.Dependencies) {
		if !strings.HasPrefix(name, npmScope) {
			continue
		}
		id := strings.TrimPrefix(name, npmScope)
		id = strings.TrimSuffix(id, ".circom")
		id = strings.TrimSuffix(id, ".sol")
		deps = append(deps, id)
	}
	sort.Strings(deps)

	return Info{
		Description:  stringField(file.Description),
		Version:      stringField(file.Version),
		Dependencies: deps,
	}, nil
}
