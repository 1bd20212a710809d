package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zk-kit/zk-kit-mcp/pkg/catalog"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		flags    registryFlags
		language string
		category string
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the package catalog",
		Long: `Search the package catalog by name and description.

All query terms must match somewhere in a package's name, directory name
or description. Results are ranked by where the match occurred: package
names rank above directory names, which rank above descriptions. Without
a query, all packages are listed in catalog order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return c.runSearch(cmd.Context(), &flags, query, language, category, limit, asJSON)
		},
	}

	addRegistryFlags(cmd, &flags)
	cmd.Flags().StringVarP(&language, "language", "l", "", "filter by language: "+strings.Join(languageNames(), ", "))
	cmd.Flags().StringVar(&category, "category", "", "filter by category: "+strings.Join(categoryNames(), ", "))
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of results (0 = unlimited)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

// runSearch validates the filters, loads the registry and prints matches.
func (c *CLI) runSearch(ctx context.Context, flags *registryFlags, query, language, category string, limit int, asJSON bool) error {
	if language != "" {
		if _, ok := catalog.ParseLanguage(language); !ok {
			return fmt.Errorf("unknown language %q (expected one of: %s)", language, strings.Join(languageNames(), ", "))
		}
	}
	if category != "" {
		if _, ok := catalog.ParseCategory(category); !ok {
			return fmt.Errorf("unknown category %q (expected one of: %s)", category, strings.Join(categoryNames(), ", "))
		}
	}

	reg, cleanup, err := c.loadRegistry(ctx, flags)
	defer cleanup()
	if err != nil {
		return err
	}

	results := reg.Search(query, language, category)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	if asJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		if query != "" {
			printInfo("No packages found for %q", query)
		} else {
			printInfo("No packages found")
		}
		return nil
	}

	fmt.Println(searchHeading(len(results)))
	printNewline()
	for i, p := range results {
		fmt.Printf("%2d. %s %s\n", i+1,
			StyleHighlight.Render(p.Name),
			StyleDim.Render("("+string(p.Language)+", "+string(p.Category)+")"))
		if p.Description != "" {
			printDetail("%s", p.Description)
		}
		printDetail("%s", p.InstallCommand)
	}

	return nil
}

// searchHeading formats the result count line.
func searchHeading(n int) string {
	noun := "packages"
	if n == 1 {
		noun = "package"
	}
	return "Found " + StyleNumber.Render(fmt.Sprintf("%d", n)) + " " + noun
}

// languageNames returns the catalog languages as strings, in precedence order.
func languageNames() []string {
	names := make([]string, len(catalog.Languages))
	for i, l := range catalog.Languages {
		names[i] = string(l)
	}
	return names
}

// categoryNames returns the catalog categories as strings.
func categoryNames() []string {
	names := make([]string, len(catalog.Categories))
	for i, cat := range catalog.Categories {
		names[i] = string(cat)
	}
	return names
}
