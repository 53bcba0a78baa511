package navlinks

import (
	"bytes"
	"encoding/json"
	"io"
)

// EncodeTable writes one level of topics in generated table form: leaves
// carry an empty topics list, containers carry only their next reference.
func EncodeTable(w io.Writer, topics []*Topic) error {
	data, err := marshal(wireTable{Topics: ptr(toWire(topics, false))})
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.Grow(len(data) + 16)
	buf.Write(amdPrefix)
	buf.Write(data)
	buf.WriteString(");\n")
	_, err = w.Write(buf.Bytes())
	return err
}

// EncodeTree writes the whole tree as a bare JSON object with children
// inlined. Parse accepts the result.
func EncodeTree(w io.Writer, t *Tree) error {
	data, err := marshal(wireTable{Topics: ptr(toWire(t.topics, true))})
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// MarshalTopics returns the nested topics array of t, as embedded by EncodeTree.
func MarshalTopics(t *Tree) ([]byte, error) {
	return marshal(toWire(t.topics, true))
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func toWire(topics []*Topic, nested bool) []wireTopic {
	out := make([]wireTopic, 0, len(topics))
	for _, tp := range topics {
		w := wireTopic{
			Title:      tp.Title,
			ShortDesc:  tp.ShortDesc,
			Href:       tp.Href,
			Attributes: tp.Attributes,
			Menu:       &wireMenu{HasChildren: tp.Menu.HasChildren},
			TocID:      tp.TocID,
		}
		if w.Attributes == nil {
			w.Attributes = map[string]string{}
		}
		if tp.Menu.HasChildren {
			// A container written without its children points at its own table.
			w.Next = tp.TocID
			if nested && len(tp.Children) > 0 {
				w.Topics = ptr(toWire(tp.Children, true))
				if tp.Next != "" {
					w.Next = tp.Next
				}
			}
		} else {
			w.Topics = ptr([]wireTopic{})
		}
		out = append(out, w)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
