package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

// infoCommand creates the info command showing one package's detail card.
func (c *CLI) infoCommand() *cobra.Command {
	var flags registryFlags

	cmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show details for one package",
		Long: `Show the detail card for one package.

The name is matched case-insensitively against package names, names
without their registry prefix (such as @zk-kit/ or zk-kit-), and
directory names. When nothing matches, close names are suggested.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), &flags, args[0])
		},
	}

	addRegistryFlags(cmd, &flags)

	return cmd
}

// runInfo resolves the name and prints the card, or suggestions on a miss.
// A miss is a negative answer, not a failure, so it returns nil.
func (c *CLI) runInfo(ctx context.Context, flags *registryFlags, name string) error {
	reg, cleanup, err := c.loadRegistry(ctx, flags)
	defer cleanup()
	if err != nil {
		return err
	}

	p, ok := reg.GetByName(name)
	if !ok {
		printWarning("No package found matching %q", name)
		if suggestions := reg.Suggest(name, 0); len(suggestions) > 0 {
			printNewline()
			printInfo("Did you mean:")
			for _, s := range suggestions {
				printDetail("%s (%s)", s.Name, s.Language)
			}
		}
		return nil
	}

	printPackageCard(p, reg.All())
	return nil
}

// printPackageCard prints the styled detail card for a package, including
// its implementations in other languages.
func printPackageCard(p catalog.Package, all []catalog.Package) {
	fmt.Println(StyleTitle.Render(p.Name))
	if p.Description != "" {
		printDetail("%s", p.Description)
	}
	printNewline()

	printKeyValue("Language", string(p.Language))
	printKeyValue("Category", string(p.Category))
	if p.Version != "" {
		printKeyValue("Version", p.Version)
	}
	printKeyValue("Install", p.InstallCommand)
	printKeyValue("Repository", StyleLink.Render(p.Repo))
	printKeyValue("Concept", p.CrossLanguageID)
	if len(p.ZKKitDependencies) > 0 {
		printKeyValue("zk-kit deps", strings.Join(p.ZKKitDependencies, ", "))
	}

	if variants := variantsOf(p, all); len(variants) > 0 {
		printNewline()
		printInfo("Also available in:")
		for _, v := range variants {
			printDetail("%s (%s)", v.Name, v.Language)
		}
	}
}

// variantsOf returns the packages sharing p's cross-language id, excluding
// p itself.
func variantsOf(p catalog.Package, all []catalog.Package) []catalog.Package {
	var out []catalog.Package
	for _, other := range all {
		if other.CrossLanguageID != p.CrossLanguageID {
			continue
		}
		if other.Name == p.Name && other.Language == p.Language {
			continue
		}
		out = append(out, other)
	}
	return out
}
