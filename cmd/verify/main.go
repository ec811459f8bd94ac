// Verify runs known inputs through the word count pipeline with every reader
// kind and checks the rows of the written report.
//
// Run with: go run ./cmd/verify
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"harshagw/wordcount/internal/pipeline"
	"harshagw/wordcount/internal/source"
	"harshagw/wordcount/internal/tally"
)

// TestCase is an input text with the rows its report must contain.
type TestCase struct {
	Name     string
	Input    string
	Expected []tally.Entry
}

// TestCategory groups related cases.
type TestCategory struct {
	Name  string
	Cases []TestCase
}

var rowPattern = regexp.MustCompile(`<tr>\n<td>(.*)</td>\n<td>(\d+)</td>\n</tr>`)

func main() {
	fmt.Println("Word Count Verification")
	fmt.Println("=======================")

	dir, err := os.MkdirTemp("", "verify-*")
	if err != nil {
		fmt.Printf("Error creating temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	passed := 0
	failed := 0

	for _, kind := range []source.Kind{source.KindBuffered, source.KindMapped} {
		for _, category := range getTestCategories() {
			title := fmt.Sprintf("%s [%s]", category.Name, kind)
			fmt.Printf("\n%s\n", title)
			fmt.Println(strings.Repeat("-", len(title)))

			for i, tc := range category.Cases {
				caseDir := filepath.Join(dir, string(kind), strconv.Itoa(i)+"-"+slug(category.Name))
				if runTestCase(caseDir, kind, tc) {
					passed++
				} else {
					failed++
				}
			}
		}
	}

	fmt.Println()
	fmt.Println("========================================")
	fmt.Printf("Results: %d passed, %d failed, %d total\n", passed, failed, passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
	fmt.Println("\nAll checks passed!")
}

func slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

func runTestCase(dir string, kind source.Kind, tc TestCase) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("  ✗ %s\n    Error: %v\n", tc.Name, err)
		return false
	}
	input := filepath.Join(dir, "input.txt")
	output := filepath.Join(dir, "output.html")
	if err := os.WriteFile(input, []byte(tc.Input), 0644); err != nil {
		fmt.Printf("  ✗ %s\n    Error: %v\n", tc.Name, err)
		return false
	}

	res, err := pipeline.Run(pipeline.Options{Input: input, Output: output, Reader: kind}, nil)
	if err != nil {
		fmt.Printf("  ✗ %s\n    Error: %v\n", tc.Name, err)
		return false
	}

	got, err := readRows(output)
	if err != nil {
		fmt.Printf("  ✗ %s\n    Error: %v\n", tc.Name, err)
		return false
	}

	if !slices.Equal(got, tc.Expected) {
		fmt.Printf("  ✗ %s\n", tc.Name)
		fmt.Printf("    Expected: %v\n", tc.Expected)
		fmt.Printf("    Got:      %v\n", got)
		return false
	}
	words := make([]string, len(got))
	for i, e := range got {
		words[i] = e.Word
	}
	if !tally.IsSorted(words) {
		fmt.Printf("  ✗ %s\n    Rows are out of order: %v\n", tc.Name, words)
		return false
	}
	if total := tally.Total(got); total != res.Words {
		fmt.Printf("  ✗ %s\n    Rows sum to %d, %d words collected\n", tc.Name, total, res.Words)
		return false
	}

	fmt.Printf("  ✓ %s\n", tc.Name)
	return true
}

// readRows parses the data rows back out of a written report.
func readRows(path string) ([]tally.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	html := string(data)
	if !strings.HasPrefix(html, "<html>") || !strings.HasSuffix(html, "</html>\n") {
		return nil, fmt.Errorf("report is not a complete document")
	}

	var entries []tally.Entry
	for _, m := range rowPattern.FindAllStringSubmatch(html, -1) {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, err
		}
		entries = append(entries, tally.Entry{Word: m[1], Count: n})
	}
	return entries, nil
}

func getTestCategories() []TestCategory {
	return []TestCategory{
		{
			Name: "Basic Counting",
			Cases: []TestCase{
				{
					Name:  "two lines with repeated word",
					Input: "the quick, brown fox.\nthe Fox jumps.\n",
					Expected: []tally.Entry{
						{Word: "brown", Count: 1}, {Word: "Fox", Count: 1}, {Word: "fox", Count: 1}, {Word: "jumps", Count: 1}, {Word: "quick", Count: 1}, {Word: "the", Count: 2},
					},
				},
				{
					Name:     "single character",
					Input:    "a",
					Expected: []tally.Entry{{Word: "a", Count: 1}},
				},
				{
					Name:     "same word many times",
					Input:    "go go go\ngo\n",
					Expected: []tally.Entry{{Word: "go", Count: 4}},
				},
			},
		},
		{
			Name: "Separators",
			Cases: []TestCase{
				{
					Name:     "empty input",
					Input:    "",
					Expected: nil,
				},
				{
					Name:     "separator only line",
					Input:    "   ,,,\n",
					Expected: nil,
				},
				{
					Name:  "every separator",
					Input: "a b\tc,d-e.f!g?h[i]j'k;l:m/n(o)p\r\n",
					Expected: []tally.Entry{
						{Word: "a", Count: 1}, {Word: "b", Count: 1}, {Word: "c", Count: 1}, {Word: "d", Count: 1}, {Word: "e", Count: 1}, {Word: "f", Count: 1}, {Word: "g", Count: 1}, {Word: "h", Count: 1},
						{Word: "i", Count: 1}, {Word: "j", Count: 1}, {Word: "k", Count: 1}, {Word: "l", Count: 1}, {Word: "m", Count: 1}, {Word: "n", Count: 1}, {Word: "o", Count: 1}, {Word: "p", Count: 1},
					},
				},
				{
					Name:     "other punctuation stays in words",
					Input:    "\"quoted\" x_y 3.14",
					Expected: []tally.Entry{{Word: "\"quoted\"", Count: 1}, {Word: "14", Count: 1}, {Word: "3", Count: 1}, {Word: "x_y", Count: 1}},
				},
			},
		},
		{
			Name: "Ordering",
			Cases: []TestCase{
				{
					Name:     "case ties broken upper first",
					Input:    "apple Apple APPLE apple",
					Expected: []tally.Entry{{Word: "APPLE", Count: 1}, {Word: "Apple", Count: 1}, {Word: "apple", Count: 2}},
				},
				{
					Name:     "prefix sorts first",
					Input:    "Cart car CAR",
					Expected: []tally.Entry{{Word: "CAR", Count: 1}, {Word: "car", Count: 1}, {Word: "Cart", Count: 1}},
				},
				{
					Name:     "markup is not escaped",
					Input:    "<b>&",
					Expected: []tally.Entry{{Word: "<b>&", Count: 1}},
				},
			},
		},
	}
}
