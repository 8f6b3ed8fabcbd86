package docxhtml

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Policy returns the sanitization policy applied by Sanitize. It admits
// exactly the markup the converter produces. The policy is shared and must
// not be modified.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = newPolicy()
	})
	return policy
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("p", "span", "strong", "em", "u", "ul", "ol", "li", "table", "tr", "td")

	p.AllowStyles("color", "font-size").OnElements("span")
	p.AllowStyles("text-align", "padding-top", "padding-bottom").OnElements("p")

	p.AllowAttrs("class").Matching(regexp.MustCompile(`^list-unstyled$`)).OnElements("ul")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^table$`)).OnElements("table")
	p.AllowAttrs("border").Matching(bluemonday.Integer).OnElements("table")
	p.AllowAttrs("colspan").Matching(bluemonday.Integer).OnElements("td")

	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)

	return p
}
