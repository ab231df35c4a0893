// Package classify assigns a category to each template slide using an
// ordered table of keyword rules over layout names and slide text.
// Keyword matching is a heuristic: small, language-specific keyword
// sets will mislabel unusual templates, and that is accepted behavior
// rather than something the caller should try to correct silently.
package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Category is an inferred slide type.
type Category string

const (
	CategoryCover   Category = "cover"
	CategoryDivider Category = "divider"
	CategoryTOC     Category = "toc"
	CategoryEnding  Category = "ending"
	CategoryContent Category = "content"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryCover,
	CategoryDivider,
	CategoryTOC,
	CategoryEnding,
	CategoryContent,
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Field selects which slide attribute a rule matches against.
type Field string

const (
	// FieldLayout matches the slide's layout name.
	FieldLayout Field = "layout"
	// FieldText matches the slide's aggregate visible text.
	FieldText Field = "text"
)

// Rule assigns a category when any keyword occurs (case-insensitively)
// in the selected field. Rules are evaluated in table order; the first
// match wins.
type Rule struct {
	Field    Field
	Keywords []string
	Category Category
}

// Validate checks a rule's field, category and keyword list.
func (r Rule) Validate() error {
	if r.Field != FieldLayout && r.Field != FieldText {
		return fmt.Errorf("unknown rule field %q", r.Field)
	}
	if !ValidCategory(string(r.Category)) {
		return fmt.Errorf("unknown rule category %q", r.Category)
	}
	if len(r.Keywords) == 0 {
		return fmt.Errorf("rule for category %q has no keywords", r.Category)
	}
	return nil
}

// SlideFacts is the classifier's view of one slide.
type SlideFacts struct {
	Index      int
	Total      int
	LayoutName string
	Texts      []string
}

// Classifier evaluates the rule table plus two structural rules:
// slide 0 is always the cover, and a slide with few text elements one
// of which is a bare number is a section divider.
type Classifier struct {
	rules []Rule

	// maxDividerElements is the text-element ceiling for the numeric
	// divider rule.
	maxDividerElements int
}

// DefaultMaxDividerElements is the default ceiling for the numeric
// divider rule.
const DefaultMaxDividerElements = 4

// numericToken matches a run of ASCII or full-width digits.
var numericToken = regexp.MustCompile(`^[0-9０-９]+$`)

// DefaultRules mirrors the keyword sets the tool ships with. Templates
// in other languages can replace these via configuration.
func DefaultRules() []Rule {
	return []Rule{
		{Field: FieldLayout, Keywords: []string{"title", "cover", "封面"}, Category: CategoryCover},
		{Field: FieldLayout, Keywords: []string{"section", "divider", "章节"}, Category: CategoryDivider},
		{Field: FieldText, Keywords: []string{"目录", "contents", "agenda"}, Category: CategoryTOC},
		{Field: FieldText, Keywords: []string{"谢谢", "thank", "感谢", "聆听"}, Category: CategoryEnding},
	}
}

// New builds a classifier from an ordered rule table. Rules must be
// valid; use Default for the built-in table.
func New(rules []Rule, maxDividerElements int) (*Classifier, error) {
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}
	if maxDividerElements <= 0 {
		maxDividerElements = DefaultMaxDividerElements
	}
	return &Classifier{rules: rules, maxDividerElements: maxDividerElements}, nil
}

// Default returns a classifier with the built-in rule table.
func Default() *Classifier {
	c, err := New(DefaultRules(), DefaultMaxDividerElements)
	if err != nil {
		panic(err) // built-in rules are statically valid
	}
	return c
}

// Classify returns the category for a slide. It is a pure function of
// its input: equal facts always produce equal categories.
func (c *Classifier) Classify(facts SlideFacts) Category {
	if facts.Index == 0 {
		return CategoryCover
	}

	layout := strings.ToLower(facts.LayoutName)
	text := strings.ToLower(strings.Join(facts.Texts, " "))

	for _, rule := range c.rules {
		subject := layout
		if rule.Field == FieldText {
			subject = text
		}
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(subject, strings.ToLower(kw)) {
				return rule.Category
			}
		}
	}

	if len(facts.Texts) <= c.maxDividerElements {
		for _, t := range facts.Texts {
			if numericToken.MatchString(strings.TrimSpace(t)) {
				return CategoryDivider
			}
		}
	}

	return CategoryContent
}
