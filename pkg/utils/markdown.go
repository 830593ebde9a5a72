package utils

import (
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var dayHeadingPattern = regexp.MustCompile(`^Day \d+$`)

// CountDayHeadings parses the itinerary markdown and counts level-2 headings
// of the exact form "## Day N". Day markers inside fenced code blocks or at
// other heading levels do not count.
func CountDayHeadings(markdown string) int {
	source := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	count := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}
		var title []byte
		for c := heading.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				title = append(title, t.Segment.Value(source)...)
			}
		}
		if dayHeadingPattern.Match(title) {
			count++
		}
		return ast.WalkSkipChildren, nil
	})
	return count
}
