package navlinks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tailscale/hujson"
)

// Ext is the file extension of a generated table.
const Ext = ".js"

var (
	amdPrefix = []byte("define(")
	utf8BOM   = []byte{0xEF, 0xBB, 0xBF}
)

type wireMenu struct {
	HasChildren bool `json:"hasChildren"`
}

// wireTopic mirrors the generated field order so encoded tables diff cleanly
// against the help generator's output.
type wireTopic struct {
	Title      string            `json:"title"`
	ShortDesc  string            `json:"shortdesc,omitempty"`
	Href       string            `json:"href"`
	Attributes map[string]string `json:"attributes"`
	Menu       *wireMenu         `json:"menu"`
	TocID      string            `json:"tocID"`
	Next       string            `json:"next,omitempty"`
	Topics     *[]wireTopic      `json:"topics,omitempty"`
}

type wireTable struct {
	Topics *[]wireTopic `json:"topics"`
}

// Load reads a whole table from r and parses it. See Parse.
func Load(r io.Reader, name string) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", name, err)
	}
	return Parse(data, name)
}

// Parse decodes one table into a Tree named name.
//
// The input may be wrapped in the AMD define(...) call the help viewer
// expects and may use trailing commas. Containers without inline topics are
// kept as deferred nodes; use a Resolver to attach their tables.
func Parse(data []byte, name string) (*Tree, error) {
	topics, err := parseTopics(data, name)
	if err != nil {
		return nil, err
	}
	t, err := newTree(name, topics)
	if err != nil {
		return nil, err
	}
	t.tables = []string{name}
	if err := t.checkNext(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseTopics(data []byte, table string) ([]*Topic, error) {
	// Standardize rewrites its argument in place.
	std, err := hujson.Standardize(bytes.Clone(unwrap(data)))
	if err != nil {
		return nil, &MalformedDataError{Table: table, Reason: "is not a valid object literal", Err: err}
	}
	var wt wireTable
	if err := json.Unmarshal(std, &wt); err != nil {
		return nil, &MalformedDataError{Table: table, Reason: "cannot be decoded", Err: err}
	}
	if wt.Topics == nil {
		return nil, &MalformedDataError{Table: table, Field: "topics", Reason: "is required"}
	}
	seen := make(map[string]string)
	return convert(*wt.Topics, "topics", table, seen)
}

// unwrap strips the define( ... ); wrapper, if present.
func unwrap(data []byte) []byte {
	b := bytes.TrimPrefix(data, utf8BOM)
	b = bytes.TrimSpace(b)
	rest, ok := bytes.CutPrefix(b, amdPrefix)
	if !ok {
		return b
	}
	rest = bytes.TrimSpace(rest)
	rest = bytes.TrimSuffix(rest, []byte(";"))
	rest = bytes.TrimSpace(rest)
	return bytes.TrimSuffix(rest, []byte(")"))
}

func convert(ws []wireTopic, path, table string, seen map[string]string) ([]*Topic, error) {
	topics := make([]*Topic, 0, len(ws))
	for i := range ws {
		w := &ws[i]
		p := fmt.Sprintf("%s[%d]", path, i)
		malformed := func(field, reason string) error {
			return &MalformedDataError{Table: table, Path: p, TocID: w.TocID, Field: field, Reason: reason}
		}

		if strings.TrimSpace(w.Title) == "" {
			return nil, malformed("title", "is required")
		}
		if strings.TrimSpace(w.Href) == "" {
			return nil, malformed("href", "is required")
		}
		if w.TocID == "" {
			return nil, malformed("tocID", "is required")
		}
		if first, dup := seen[w.TocID]; dup {
			return nil, malformed("tocID", "duplicates "+first)
		}
		seen[w.TocID] = p

		inline := w.Topics != nil
		hasChildren := inline && len(*w.Topics) > 0
		if w.Menu != nil {
			hasChildren = w.Menu.HasChildren
		}
		switch {
		case inline && hasChildren != (len(*w.Topics) > 0):
			return nil, malformed("menu.hasChildren", fmt.Sprintf("is %t but %d inline topics are declared", hasChildren, len(*w.Topics)))
		case !inline && hasChildren && w.Next == "":
			return nil, malformed("next", "is required on a container without inline topics")
		case !inline && hasChildren && w.Next != w.TocID:
			// The child table of a container is always named after it.
			return nil, malformed("next", "must name the container's own table "+w.TocID+", got "+w.Next)
		case !hasChildren && w.Next != "":
			return nil, malformed("next", "is only valid on container topics")
		}

		t := &Topic{
			Title:      w.Title,
			ShortDesc:  w.ShortDesc,
			Href:       w.Href,
			Attributes: w.Attributes,
			Menu:       Menu{HasChildren: hasChildren},
			TocID:      w.TocID,
			Next:       w.Next,
		}
		if inline && len(*w.Topics) > 0 {
			children, err := convert(*w.Topics, p+".topics", table, seen)
			if err != nil {
				return nil, err
			}
			t.Children = children
		}
		topics = append(topics, t)
	}
	return topics, nil
}
