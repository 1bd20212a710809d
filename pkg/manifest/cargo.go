package manifest

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const cratePrefix = "zk-kit-"

type cargoFile struct {
	Package      any `toml:"package"`
	Dependencies any `toml:"dependencies"`
}

// ParseCargoTOML parses a Cargo.toml. Used by the rust repository.
//
// zk-kit dependencies are the dependency keys carrying the zk-kit- crate
// prefix; the prefix is stripped to recover cross-language ids. Dependency
// values may be version strings or tables, only the keys matter here.
func ParseCargoTOML(data []byte) (Info, error) {
	var file cargoFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Info{}, err
	}

	pkg := tableField(file.Package)

	var deps []string
	for name := range tableField(file.Dependencies) {
		if !strings.HasPrefix(name, cratePrefix) {
			continue
		}
		deps = append(deps, strings.TrimPrefix(name, cratePrefix))
	}
	sort.Strings(deps)

	return Info{
		Description:  stringField(pkg["description"]),
		Version:      stringField(pkg["version"]),
		Dependencies: deps,
	}, nil
}
