package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ExplorePrompt guides an assistant through a structured tour of the
// ecosystem using the overview and coverage tools.
type ExplorePrompt struct{}

func NewExplorePrompt() *ExplorePrompt {
	return &ExplorePrompt{}
}

func (p *ExplorePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("explore-ecosystem",
		mcp.WithPromptDescription("Tour the zk-kit ecosystem: what exists, in which languages, and how it fits together."),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("Optional topic or language to concentrate on, e.g. \"merkle trees\" or \"noir\"."),
		),
	)
}

func (p *ExplorePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := strings.TrimSpace(req.Params.Arguments["focus"])

	var b strings.Builder
	b.WriteString(`Give me a tour of the zk-kit ecosystem.

1. Call get-ecosystem-overview to see every package grouped by language and category.
2. Call get-cross-language-coverage to see which concepts span which languages.
3. Call get-dependency-graph to see which packages the rest of the ecosystem builds on.

Then summarize: the main building blocks, which languages have the deepest
coverage, and which concepts exist in only one language.`)
	if focus != "" {
		fmt.Fprintf(&b, "\n\nFocus in particular on: %s. Use search-packages to drill into it.", focus)
	}

	return mcp.NewGetPromptResult(
		"Explore the zk-kit ecosystem",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(b.String())),
		},
	), nil
}

// ChoosePrompt guides an assistant from a task description to a concrete
// package recommendation.
type ChoosePrompt struct{}

func NewChoosePrompt() *ChoosePrompt {
	return &ChoosePrompt{}
}

func (p *ChoosePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("choose-package",
		mcp.WithPromptDescription("Pick the right zk-kit package for a task, comparing candidates across languages."),
		mcp.WithArgument("task",
			mcp.ArgumentDescription("What you are building, e.g. \"membership proofs for a voting app\"."),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("language",
			mcp.ArgumentDescription("Optional target language: typescript, circom, solidity, noir or rust."),
		),
	)
}

func (p *ChoosePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	task := strings.TrimSpace(req.Params.Arguments["task"])
	if task == "" {
		return nil, fmt.Errorf("task argument is required")
	}
	language := strings.TrimSpace(req.Params.Arguments["language"])

	var b strings.Builder
	fmt.Fprintf(&b, "Help me choose a zk-kit package for this task: %s.\n\n", task)
	b.WriteString("1. Call search-packages with terms drawn from the task")
	if language != "" {
		fmt.Fprintf(&b, ", filtered to language %q", language)
	}
	b.WriteString(`.
2. For the top candidates, call get-package-info; use compare-packages when
   more than one could fit.
3. Check maturity signals with get-download-stats and get-latest-release.
4. Recommend one package, give its install command, and name the runner-up
   with the tradeoff.`)

	return mcp.NewGetPromptResult(
		"Choose a zk-kit package",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(b.String())),
		},
	), nil
}
