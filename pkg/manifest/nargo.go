package manifest

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

type nargoFile struct {
	Package      any `toml:"package"`
	Dependencies any `toml:"dependencies"`
}

// ParseNargoTOML parses a Nargo.toml. Used by the noir repository.
//
// Noir declares dependencies as git tables. A dependency counts as
// zk-kit-internal when its git URL mentions zk-kit; the dependency key is
// a Noir identifier, so underscores map back to hyphens to recover the
// cross-language id.
func ParseNargoTOML(data []byte) (Info, error) {
	var file nargoFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Info{}, err
	}

	pkg := tableField(file.Package)

	var deps []string
	for name, value := range tableField(file.Dependencies) {
		git := stringField(tableField(value)["git"])
		if !strings.Contains(git, "zk-kit") {
			continue
		}
		deps = append(deps, strings.ReplaceAll(name, "_", "-"))
	}
	sort.Strings(deps)

	return Info{
		Description:  stringField(pkg["description"]),
		Version:      stringField(pkg["version"]),
		Dependencies: deps,
	}, nil
}
