// Package catalog models the zk-kit package ecosystem and implements the
// in-memory registry serving every query the server exposes.
//
// # Overview
//
// zk-kit ships the same zero-knowledge primitives in five languages, one
// repository per language. This package normalizes what discovery finds in
// those repositories into [Package] records and answers questions about
// them:
//
//   - Name resolution across spellings ([Registry.GetByName])
//   - Fuzzy suggestions ([Registry.Suggest]) and ranked search ([Registry.Search])
//   - Side-by-side comparison ([Registry.Compare])
//   - Ecosystem summaries ([Registry.EcosystemOverview], [Registry.CrossLanguageCoverage])
//   - The cross-language dependency graph ([Registry.DependencyGraph],
//     [Registry.ReverseDependencies])
//
// # Naming and Categorization
//
// A package's published name, install command, topic category and source
// URL all derive deterministically from its directory name and language:
//
//	catalog.DeriveName("lean-imt", catalog.LangTypeScript) // "@zk-kit/lean-imt"
//	catalog.DeriveName("lean-imt", catalog.LangNoir)       // "lean_imt"
//	catalog.DeriveName("lean-imt", catalog.LangRust)       // "zk-kit-lean-imt"
//	catalog.InferCategory("lean-imt")                      // merkle-trees
//
// Category inference walks an ordered keyword table; the first matching
// rule wins and keywords only match on hyphen or string boundaries.
//
// # Cross-Language Concepts
//
// Implementations of the same library share a directory name across
// repositories, and that shared name is the concept key
// ([Package.CrossLanguageID]). Intra-ecosystem dependencies are declared
// in concept keys too, so the dependency graph lives at the concept level:
// one node per id, edges unioned across languages, each node classified as
// foundational (something depends on it), leaf (it depends on something)
// or independent. In-degree wins when both apply.
//
// # Registry Lifecycle
//
// [Registry.Load] replaces the whole catalog; packages are never mutated
// or removed individually. Queries read a snapshot under a read lock, so
// a reload never exposes a half-updated catalog. The registry performs no
// I/O; the discovery pipeline owns population.
package catalog
