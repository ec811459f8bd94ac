// Playground for trying the word counter on a built-in text.
//
// Run with: go run ./cmd/playground
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"harshagw/wordcount/internal/pipeline"
	"harshagw/wordcount/internal/source"
	"harshagw/wordcount/internal/tally"
)

const sampleText = `The quick brown fox jumps over the lazy dog.
The dog didn't mind; the fox, however, was very pleased (with itself).
Foxes and dogs - dogs and foxes! Who's quicker? The fox.

[Epilogue] The end/the beginning: fox, Fox, FOX.
`

func runLookups(dict *tally.Dictionary, words []string) {
	for _, w := range words {
		n, ok, err := dict.Count(w)
		if err != nil {
			fmt.Printf("  %-8s error: %v\n", w, err)
			continue
		}
		if !ok {
			fmt.Printf("  %-8s -\n", w)
			continue
		}
		fmt.Printf("  %-8s %d\n", w, n)
	}
	fmt.Println()
}

func main() {
	dir, err := os.MkdirTemp("", "wordcount-playground-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	fmt.Println("=== Word Count Playground ===")
	fmt.Printf("Working directory: %s\n\n", dir)

	input := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(input, []byte(sampleText), 0644); err != nil {
		log.Fatal(err)
	}

	res, err := pipeline.Run(pipeline.Options{
		Input:  input,
		Output: filepath.Join(dir, "sample.html"),
		Reader: source.KindMapped,
	}, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Counted %d words, %d distinct\n\n", res.Words, res.Distinct())

	fmt.Println("--- Table Rows ---")
	for _, e := range res.Entries {
		fmt.Printf("  %-10s %d\n", e.Word, e.Count)
	}
	fmt.Println()

	dict, err := tally.NewDictionary(res.Entries)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Lookups (case-sensitive) ---")
	runLookups(dict, []string{"fox", "Fox", "FOX", "foxes", "didn", "t", "cat"})

	fmt.Println("--- Prefix 'do' ---")
	matches, err := dict.Prefix("do")
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range matches {
		fmt.Printf("  %-8s %d\n", e.Word, e.Count)
	}
	fmt.Println()

	fmt.Println("--- Top 5 ---")
	for i, e := range tally.Top(res.Entries, 5) {
		fmt.Printf("  %d. %s (%d)\n", i+1, e.Word, e.Count)
	}

	html, err := os.ReadFile(res.Output)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nReport is %d bytes, %d lines\n", len(html), strings.Count(string(html), "\n"))
}
