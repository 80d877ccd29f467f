package ddg

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// parseResults extracts organic result anchors from the HTML response.
// DuckDuckGo wraps result links in <a class="result__a" href="...">.
func parseResults(page string) ([]Result, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, eris.Wrap(err, "ddg: parse html")
	}

	var results []Result
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "result__a") {
			href := attr(n, "href")
			if target := resolveRedirect(href); target != "" {
				results = append(results, Result{
					URL:   target,
					Title: strings.TrimSpace(textContent(n)),
				})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

// resolveRedirect unwraps DuckDuckGo's //duckduckgo.com/l/?uddg=... redirect
// wrapper to the real destination URL. Direct links pass through unchanged.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if !strings.Contains(href, "uddg=") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	target := u.Query().Get("uddg")
	if target == "" {
		return ""
	}
	return target
}
