package main

import (
	"context"
	"fmt"
	"log"

	"github.com/kittclouds/rolegraph/pkg/automaton"
	"github.com/kittclouds/rolegraph/pkg/registry"
	"github.com/kittclouds/rolegraph/pkg/rolegraph"
	"github.com/kittclouds/rolegraph/pkg/thesaurus"
)

func main() {
	fmt.Println("Testing thesaurus + automaton...")
	testThesaurusAndAutomaton()

	fmt.Println("\nTesting role graph...")
	testRoleGraph()

	fmt.Println("\nTesting role registry...")
	testRegistry()

	fmt.Println("\nAll smoke tests passed.")
}

func testThesaurusAndAutomaton() {
	th := thesaurus.New("engineering")
	th.Insert("rust", thesaurus.NormalizedTerm{ID: 1, Value: "Rust", Payload: "https://rust-lang.org"})
	th.Insert("async programming", thesaurus.NormalizedTerm{ID: 2, Value: "Async", Payload: "https://example.org/async"})

	a, err := automaton.Compile(th)
	if err != nil {
		log.Fatalf("automaton.Compile failed: %v", err)
	}
	fmt.Println("  ok compile")

	text := "Rust is great for async programming tasks."
	matches := automaton.FindMatches(text, a)
	if len(matches) != 2 {
		log.Fatalf("expected 2 matches, got %d", len(matches))
	}
	fmt.Println("  ok find_matches")

	rendered := automaton.ReplaceMatches(text, a, automaton.FormatMarkdown)
	fmt.Println("  ok replace_matches:", rendered)

	suggestions := automaton.Autocomplete("rus", a, automaton.Options{Mode: automaton.ModePrefix, Limit: 5})
	if len(suggestions) == 0 {
		log.Fatal("expected at least one autocomplete suggestion")
	}
	fmt.Println("  ok autocomplete")
}

func testRoleGraph() {
	th := thesaurus.New("engineering")
	th.Insert("rust", thesaurus.NormalizedTerm{ID: 1, Value: "Rust"})
	th.Insert("tokio", thesaurus.NormalizedTerm{ID: 2, Value: "Tokio"})

	g, err := rolegraph.BuildGraph("engineering", th)
	if err != nil {
		log.Fatalf("rolegraph.BuildGraph failed: %v", err)
	}

	g.InsertDocument("doc1", map[string]string{
		"title": "Async Rust",
		"body":   "Rust and Tokio power modern async systems. Rust with Tokio is fast.",
	})
	fmt.Println("  ok insert_document")

	stats := g.GetGraphStats()
	fmt.Printf("  ok stats: nodes=%d edges=%d docs=%d\n", stats.NodeCount, stats.EdgeCount, stats.DocumentCount)

	results := g.Query("rust tokio", rolegraph.TerraphimGraph, 10)
	if len(results) == 0 {
		log.Fatal("expected at least one scored document")
	}
	fmt.Println("  ok query:", results[0].DocID, results[0].Score)

	connected := g.IsAllTermsConnectedByPath([]uint64{1, 2})
	fmt.Println("  ok connectivity:", connected)
}

func testRegistry() {
	reg := registry.New()
	th := thesaurus.New("engineering")
	th.Insert("rust", thesaurus.NormalizedTerm{ID: 1, Value: "Rust"})

	err := reg.RegisterRole(context.Background(), registry.RoleSpec{
		Name:              "engineering",
		RelevanceFunction: rolegraph.BM25,
	}, th, map[string]map[string]string{
		"doc1": {"body": "Rust is great for systems programming."},
	})
	if err != nil {
		log.Fatalf("RegisterRole failed: %v", err)
	}
	fmt.Println("  ok register_role")

	if err := reg.SelectRole("engineering"); err != nil {
		log.Fatalf("SelectRole failed: %v", err)
	}
	fmt.Println("  ok select_role")

	results, err := reg.Query("rust systems", rolegraph.BM25, 10)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	if len(results) == 0 {
		log.Fatal("expected at least one scored document")
	}
	fmt.Println("  ok query:", results[0].DocID)

	roles := reg.ListRoles()
	fmt.Printf("  ok list_roles: %d role(s) registered\n", len(roles))
}
