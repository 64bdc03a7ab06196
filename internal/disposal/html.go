package disposal

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// breaking tags end a run of text; the words either side must not run together
var breaking = map[atom.Atom]bool{
	atom.P: true, atom.Br: true, atom.Div: true, atom.Li: true,
	atom.Ul: true, atom.Ol: true, atom.Tr: true, atom.Td: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true,
}

// HTMLToText reduces a catalogue body to plain speakable text. Bodies arrive
// with their markup entity-escaped, so entities are decoded before tags are
// dropped.
func HTMLToText(body string) string {
	z := xhtml.NewTokenizer(strings.NewReader(html.UnescapeString(body)))

	var sb strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case xhtml.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case xhtml.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		case xhtml.StartTagToken, xhtml.EndTagToken, xhtml.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == atom.Script || a == atom.Style:
				if tt == xhtml.StartTagToken {
					skip++
				} else if skip > 0 {
					skip--
				}
			case breaking[a]:
				sb.WriteByte(' ')
			}
		}
	}
}
