package audit

import "strings"

// Category is one of the fixed buckets files are grouped into.
type Category string

// The six fixed categories. CategoryOther is the fallback: it is never
// matched by a rule, only assigned when no rule matches.
const (
	CategoryProxy       Category = "proxy"
	CategoryOptimized   Category = "optimized"
	CategoryRenderCache Category = "render_cache"
	CategoryStills      Category = "stills"
	CategoryBackups     Category = "backups"
	CategoryOther       Category = "other"
)

// Categories returns all categories in fixed display order.
func Categories() []Category {
	return []Category{
		CategoryProxy,
		CategoryOptimized,
		CategoryRenderCache,
		CategoryStills,
		CategoryBackups,
		CategoryOther,
	}
}

// Rule maps directory-name patterns to a category. Patterns are compared
// case-insensitively against whole path segments.
type Rule struct {
	// Category assigned when any pattern matches.
	Category Category
	// Patterns are directory names that identify the category.
	Patterns []string
}

// DefaultRules returns the stock rule table for DaVinci Resolve folder
// layouts. Order matters: the first matching rule wins.
func DefaultRules() []Rule {
	return []Rule{
		{Category: CategoryProxy, Patterns: []string{"Proxy", "ProxyMedia", "Proxies"}},
		{Category: CategoryOptimized, Patterns: []string{"OptimizedMedia", "Optimized Media"}},
		{Category: CategoryRenderCache, Patterns: []string{"CacheClip", "RenderCache", "Render Cache"}},
		{Category: CategoryStills, Patterns: []string{"Gallery", "Stills", "GalleryStills"}},
		{Category: CategoryBackups, Patterns: []string{"Backups", "Project Backups", "Resolve Backups"}},
	}
}

// Classifier assigns categories to file paths using an ordered rule list.
// It is pure and safe for concurrent use once constructed.
type Classifier struct {
	rules []compiledRule
}

// compiledRule holds a rule's patterns lowercased for segment lookup.
type compiledRule struct {
	category Category
	patterns map[string]struct{}
}

// NewClassifier compiles an ordered rule list into a Classifier.
// Rule precedence is first-match-wins: a path matching several rules
// resolves to the earliest rule in the list, regardless of which segment
// sits deeper in the path.
func NewClassifier(rules []Rule) *Classifier {
	compiled := make([]compiledRule, 0, len(rules))

	for _, rule := range rules {
		patterns := make(map[string]struct{}, len(rule.Patterns))
		for _, p := range rule.Patterns {
			patterns[strings.ToLower(p)] = struct{}{}
		}

		compiled = append(compiled, compiledRule{category: rule.Category, patterns: patterns})
	}

	return &Classifier{rules: compiled}
}

// Classify returns the category for path. The path should be relative to
// the scan root so that directories above the root cannot influence the
// result. An empty path classifies as CategoryOther.
func (c *Classifier) Classify(path string) Category {
	if path == "" {
		return CategoryOther
	}

	segments := splitSegments(path)

	for _, rule := range c.rules {
		for _, segment := range segments {
			if _, ok := rule.patterns[segment]; ok {
				return rule.category
			}
		}
	}

	return CategoryOther
}

// splitSegments splits a path into lowercased segments, accepting both
// slash and backslash separators.
func splitSegments(path string) []string {
	return strings.FieldsFunc(strings.ToLower(path), func(r rune) bool {
		return r == '/' || r == '\\'
	})
}
