// Package guard keeps the assistant inside its supported appliance
// scope. Queries are screened before any model call and answers are
// screened after, against configurable term tables.
package guard

import (
	"fmt"
	"regexp"
	"strings"
)

// RedirectMessage replaces any turn the guard rejects.
const RedirectMessage = "I'm sorry, I'm only able to assist with refrigerator and dishwasher parts at this time. I'd be happy to help you find parts, check compatibility, or troubleshoot issues with these specific appliances."

// Config holds the guard's term tables. Zero values fall back to the
// defaults below.
type Config struct {
	// UnsupportedAppliances are appliance names the assistant must not
	// discuss.
	UnsupportedAppliances []string
	// SupportedTerms mark a query as in scope even when an unsupported
	// appliance appears, so comparison questions pass through.
	SupportedTerms []string
	// AnswerAppliances are the appliance names screened in generated
	// answers. Usually a subset of UnsupportedAppliances.
	AnswerAppliances []string
}

// DefaultConfig returns the stock refrigerator-and-dishwasher scope.
func DefaultConfig() Config {
	return Config{
		UnsupportedAppliances: []string{
			"oven", "microwave", "washing machine", "washer", "dryer",
			"stove", "range", "air conditioner", "blender", "toaster",
		},
		SupportedTerms:   []string{"refrigerator", "fridge", "dishwasher"},
		AnswerAppliances: []string{"oven", "microwave", "washer", "dryer", "stove"},
	}
}

// Guard screens queries and answers against its term tables.
type Guard struct {
	queryPatterns   []*regexp.Regexp
	supportedRegexp *regexp.Regexp
	answerPatterns  []*regexp.Regexp
}

// New compiles a guard from cfg. Empty tables take defaults.
func New(cfg Config) *Guard {
	def := DefaultConfig()
	if len(cfg.UnsupportedAppliances) == 0 {
		cfg.UnsupportedAppliances = def.UnsupportedAppliances
	}
	if len(cfg.SupportedTerms) == 0 {
		cfg.SupportedTerms = def.SupportedTerms
	}
	if len(cfg.AnswerAppliances) == 0 {
		cfg.AnswerAppliances = def.AnswerAppliances
	}

	g := &Guard{}
	for _, appliance := range cfg.UnsupportedAppliances {
		quoted := regexp.QuoteMeta(appliance)
		g.queryPatterns = append(g.queryPatterns,
			regexp.MustCompile(`(?i)\b`+quoted+`\b`),
			regexp.MustCompile(`(?i)my\s+`+quoted),
			regexp.MustCompile(`(?i)recommend.*\s+`+quoted),
			regexp.MustCompile(`(?i)best\s+`+quoted),
		)
	}

	supported := make([]string, len(cfg.SupportedTerms))
	for i, t := range cfg.SupportedTerms {
		supported[i] = regexp.QuoteMeta(t)
	}
	g.supportedRegexp = regexp.MustCompile(`(?i)(` + strings.Join(supported, "|") + `)`)

	answer := make([]string, len(cfg.AnswerAppliances))
	for i, a := range cfg.AnswerAppliances {
		answer[i] = regexp.QuoteMeta(a)
	}
	alternation := `\b(` + strings.Join(answer, "|") + `)\b`
	for _, prefix := range []string{`recommend.*`, `best\s+`, `information.*`, `can.*help.*`} {
		g.answerPatterns = append(g.answerPatterns,
			regexp.MustCompile(fmt.Sprintf(`(?i)%s%s`, prefix, alternation)))
	}
	return g
}

// CheckQuery reports whether a user query is out of scope. A query that
// mentions both an unsupported and a supported appliance is treated as
// a comparison and passes.
func (g *Guard) CheckQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, pattern := range g.queryPatterns {
		if pattern.MatchString(lower) {
			if g.supportedRegexp.MatchString(lower) {
				continue
			}
			return true
		}
	}
	return false
}

// CheckAnswer reports whether a generated answer strays into
// unsupported appliance territory.
func (g *Guard) CheckAnswer(content string) bool {
	lower := strings.ToLower(content)
	for _, pattern := range g.answerPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}
