// Package xmltree parses XML into a tree of nodes that remember the exact
// bytes they were read from.
//
// Serializing an unmodified Document reproduces the input byte for byte.
// Mutation is limited to replacing the character data of an element, so an
// edit changes only the bytes between that element's start and end tags.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	oerrors "github.com/opmodel/pomver/internal/errors"
)

// Kind is the type of a Node.
type Kind int

const (
	// DocumentNode is the synthetic root holding the prolog, the root
	// element and any trailing misc content.
	DocumentNode Kind = iota
	// ElementNode is an XML element.
	ElementNode
	// TextNode is character data, including CDATA sections.
	TextNode
	// CommentNode is an XML comment.
	CommentNode
	// OtherNode covers processing instructions and directives.
	OtherNode
)

// Node is a single node of a Document.
type Node struct {
	Kind     Kind
	Name     xml.Name
	Attr     []xml.Attr
	Children []*Node

	parent *Node
	doc    *Document
	line   int

	// raw holds the start tag for elements and the complete source for
	// every other kind. end holds the end tag and is empty for
	// self-closing elements.
	raw []byte
	end []byte

	// text is the decoded character data of a TextNode.
	text string
}

// Document is a parsed XML document.
type Document struct {
	node    *Node
	charset string
	enc     encoding.Encoding
}

// Parse parses data into a Document. Data that is not well-formed XML, or
// that does not have exactly one root element, yields an
// ErrMalformedDescriptor error.
//
// Documents declaring a charset other than UTF-8 are transcoded to UTF-8 for
// parsing and encoded back on output; the charset must round-trip the input
// exactly.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	doc.node = &Node{Kind: DocumentNode, doc: doc}

	// Nodes slice into src, so keep a private copy.
	src := bytes.Clone(data)
	if label := declaredCharset(data); label != "" {
		enc, err := lookupEncoding(label)
		if err != nil {
			return nil, malformed(1, err)
		}
		if enc != nil {
			decoded, err := enc.NewDecoder().Bytes(data)
			if err != nil {
				return nil, malformed(1, fmt.Errorf("decoding %s: %w", label, err))
			}
			back, err := enc.NewEncoder().Bytes(decoded)
			if err != nil || !bytes.Equal(back, data) {
				return nil, malformed(1, fmt.Errorf("content does not round-trip through %s", label))
			}
			src = decoded
			doc.charset = label
			doc.enc = enc
		}
	}

	dec := xml.NewDecoder(bytes.NewReader(src))
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	stack := []*Node{doc.node}
	var offset int64
	for {
		line, _ := dec.InputPos()
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(line, err)
		}

		next := dec.InputOffset()
		raw := src[offset:next]
		offset = next
		top := stack[len(stack)-1]

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Kind:   ElementNode,
				Name:   t.Name,
				Attr:   append([]xml.Attr(nil), t.Attr...),
				parent: top,
				doc:    doc,
				line:   line,
				raw:    raw,
			}
			top.Children = append(top.Children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if top.Kind != ElementNode || top.Name != t.Name {
				return nil, malformed(line, fmt.Errorf("unexpected end element </%s>", qualified(t.Name)))
			}
			top.end = raw
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.append(&Node{Kind: TextNode, raw: raw, text: string(t), line: line})
		case xml.Comment:
			top.append(&Node{Kind: CommentNode, raw: raw, line: line})
		default:
			top.append(&Node{Kind: OtherNode, raw: raw, line: line})
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1]
		return nil, malformed(open.line, fmt.Errorf("element <%s> is never closed: %w", qualified(open.Name), io.ErrUnexpectedEOF))
	}
	if int(offset) < len(src) {
		doc.node.append(&Node{Kind: OtherNode, raw: src[offset:]})
	}

	roots := 0
	for _, c := range doc.node.Children {
		if c.Kind == ElementNode {
			roots++
		}
	}
	if roots != 1 {
		return nil, oerrors.NewMalformedError(fmt.Sprintf("document has %d root elements, expected 1", roots), "", nil)
	}

	return doc, nil
}

// Root returns the document element.
func (d *Document) Root() *Node {
	for _, c := range d.node.Children {
		if c.Kind == ElementNode {
			return c
		}
	}
	return nil
}

// Charset returns the encoding declared in the XML prolog, or "" when none
// was declared or it was UTF-8.
func (d *Document) Charset() string {
	return d.charset
}

// Bytes serializes the document in its declared charset.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	d.node.write(&buf)
	if d.enc == nil {
		return buf.Bytes()
	}
	out, err := d.enc.NewEncoder().Bytes(buf.Bytes())
	if err != nil {
		// SetText only admits encodable values and the source round-tripped.
		panic(fmt.Sprintf("xmltree: re-encoding %s document: %v", d.charset, err))
	}
	return out
}

// WriteTo writes the serialized document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.Bytes())
	return int64(n), err
}

// encodeText escapes s for use as character data, checking that it can be
// represented in the document's charset.
func (d *Document) encodeText(s string) ([]byte, error) {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return nil, err
	}
	if d.enc != nil {
		if _, err := d.enc.NewEncoder().Bytes(buf.Bytes()); err != nil {
			return nil, fmt.Errorf("encoding %q as %s: %w", s, d.charset, err)
		}
	}
	return buf.Bytes(), nil
}

func (n *Node) append(c *Node) {
	c.parent = n
	c.doc = n.doc
	n.Children = append(n.Children, c)
}

func (n *Node) write(buf *bytes.Buffer) {
	buf.Write(n.raw)
	for _, c := range n.Children {
		c.write(buf)
	}
	buf.Write(n.end)
}

// Line returns the 1-based line the node starts on.
func (n *Node) Line() int {
	if n == nil {
		return 0
	}
	return n.line
}

// Parent returns the enclosing node, or nil for the document node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Elements returns the element children of n.
func (n *Node) Elements() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first element child with the given local name.
func (n *Node) Child(local string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.Name.Local == local {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every element child with the given local name.
func (n *Node) ChildrenNamed(local string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// Find walks down the element path, returning nil when any step is missing.
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, p := range path {
		cur = cur.Child(p)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Text returns the concatenated character data directly inside n.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if n.Kind == TextNode {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.Children {
		if c.Kind == TextNode {
			b.WriteString(c.text)
		}
	}
	return b.String()
}

// TrimmedText returns Text with surrounding whitespace removed.
func (n *Node) TrimmedText() string {
	return strings.TrimSpace(n.Text())
}

// SetText replaces the character data of element n with value, keeping the
// whitespace that surrounded the previous value and leaving comments and
// child elements in place. It reports whether the document changed; setting
// the value an element already holds is a no-op.
func (n *Node) SetText(value string) (bool, error) {
	if n == nil || n.Kind != ElementNode {
		return false, errors.New("xmltree: SetText on a non-element node")
	}
	if n.TrimmedText() == value {
		return false, nil
	}
	encoded, err := n.doc.encodeText(value)
	if err != nil {
		return false, err
	}

	if len(n.end) == 0 {
		// <name/> becomes <name>value</name>.
		start := bytes.TrimSuffix(n.raw, []byte("/>"))
		n.raw = append(append(make([]byte, 0, len(start)+1), start...), '>')
		n.end = []byte("</" + qualified(n.Name) + ">")
	}

	var target *Node
	for _, c := range n.Children {
		if c.Kind != TextNode {
			continue
		}
		if target == nil && strings.TrimSpace(c.text) != "" {
			target = c
			continue
		}
		if target != nil || strings.TrimSpace(c.text) != "" {
			c.setBlank()
		}
	}

	if target == nil {
		// Only whitespace (or nothing) inside: the new value goes in front
		// of the end tag, after any existing content.
		n.append(&Node{Kind: TextNode, raw: encoded, text: value, line: n.line})
		return true, nil
	}

	lead, trail := surroundingSpace(target.raw)
	raw := make([]byte, 0, len(lead)+len(encoded)+len(trail))
	raw = append(raw, lead...)
	raw = append(raw, encoded...)
	raw = append(raw, trail...)
	target.raw = raw
	target.text = string(lead) + value + string(trail)
	return true, nil
}

func (n *Node) setBlank() {
	lead, trail := surroundingSpace(n.raw)
	n.raw = append(append([]byte(nil), lead...), trail...)
	n.text = string(n.raw)
}

// surroundingSpace returns the leading and trailing XML whitespace of raw.
// Whitespace-only input is returned entirely as the leading part.
func surroundingSpace(raw []byte) (lead, trail []byte) {
	trimmedLeft := bytes.TrimLeft(raw, " \t\r\n")
	lead = raw[:len(raw)-len(trimmedLeft)]
	if len(trimmedLeft) == 0 {
		return lead, nil
	}
	trimmed := bytes.TrimRight(trimmedLeft, " \t\r\n")
	trail = trimmedLeft[len(trimmed):]
	return lead, trail
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func malformed(line int, err error) error {
	location := ""
	if line > 0 {
		location = fmt.Sprintf("line %d", line)
	}
	return oerrors.NewMalformedError(err.Error(), location, err)
}

var prologCharset = regexp.MustCompile(`^(?:\x{FEFF})?\s*<\?xml\s[^>]*?\bencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// declaredCharset returns the encoding named in the XML declaration.
func declaredCharset(data []byte) string {
	m := prologCharset.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return string(m[1])
}

func lookupEncoding(label string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc, nil
}
