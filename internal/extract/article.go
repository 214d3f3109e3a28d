package extract

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Article is the isolated content of a web page
type Article struct {
	Title string
	Text  string
}

var strippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"iframe":   true,
	"noscript": true,
}

// contentClasses are common CMS article-body class names, ordered by
// reliability. The semantic main container is tried before these, and the
// generic article tag last since it often matches navigation or sidebars.
var contentClasses = []string{
	"article-content",
	"post-content",
	"entry-content",
	"story-body",
	"article-body",
}

// selector matches a candidate article container
type selector struct {
	name  string
	match func(*html.Node) bool
}

func articleSelectors() []selector {
	sels := []selector{
		{name: "main", match: func(n *html.Node) bool { return n.Data == "main" }},
	}
	for _, cls := range contentClasses {
		cls := cls
		sels = append(sels, selector{
			name:  "." + cls,
			match: func(n *html.Node) bool { return hasClass(n, cls) },
		})
	}
	sels = append(sels,
		selector{name: "[role=article]", match: func(n *html.Node) bool { return attrValue(n, "role") == "article" }},
		selector{name: "article", match: func(n *html.Node) bool { return n.Data == "article" }},
	)
	return sels
}

// ParseArticle isolates the title and main body text from raw HTML. The
// candidate threshold is the minimum length at which a container is
// accepted outright; shorter candidates are kept only as best-so-far.
func ParseArticle(body []byte, candidateThreshold int) (*Article, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	title := extractTitle(doc)
	stripNonContent(doc)

	var articleText string
	for _, sel := range articleSelectors() {
		container := findElement(doc, sel.match)
		if container == nil {
			continue
		}

		candidate := strings.Join(collectBlocks(container), "\n\n")
		if len(candidate) > candidateThreshold {
			articleText = candidate
			break
		}
		if len(candidate) > len(articleText) {
			articleText = candidate
		}
	}

	// Fall back to every paragraph on the page
	if len(articleText) < candidateThreshold {
		paragraphs := collectParagraphs(doc)
		if joined := strings.Join(paragraphs, "\n\n"); len(joined) > len(articleText) {
			articleText = joined
		}
	}

	return &Article{
		Title: title,
		Text:  CleanText(articleText),
	}, nil
}

// extractTitle prefers the title element, falling back to the first h1
func extractTitle(doc *html.Node) string {
	if t := findElement(doc, func(n *html.Node) bool { return n.Data == "title" }); t != nil {
		if s := strings.TrimSpace(nodeText(t)); s != "" {
			return s
		}
	}
	if h1 := findElement(doc, func(n *html.Node) bool { return n.Data == "h1" }); h1 != nil {
		return strings.TrimSpace(nodeText(h1))
	}
	return ""
}

// stripNonContent detaches script/style/navigation/chrome subtrees
func stripNonContent(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && strippedTags[c.Data] {
			n.RemoveChild(c)
			continue
		}
		stripNonContent(c)
	}
}

// findElement returns the first element node matching the predicate,
// depth-first
func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

var blockTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true,
}

// collectBlocks gathers the text of heading and paragraph elements under
// the container
func collectBlocks(container *html.Node) []string {
	var blocks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && blockTags[n.Data] {
			if text := strings.TrimSpace(nodeText(n)); text != "" {
				blocks = append(blocks, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(container)
	return blocks
}

// collectParagraphs gathers the text of every p element in the document
func collectParagraphs(doc *html.Node) []string {
	var paragraphs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			if text := strings.TrimSpace(nodeText(n)); text != "" {
				paragraphs = append(paragraphs, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return paragraphs
}

// nodeText concatenates the text nodes under n
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attrValue(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(` {2,}`)
)

// CleanText normalizes whitespace: runs of 3+ newlines collapse to 2, runs
// of spaces collapse to 1, and every line is trimmed. Applying it twice
// yields the same result as applying it once.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = multiNewline.ReplaceAllString(text, "\n\n")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
