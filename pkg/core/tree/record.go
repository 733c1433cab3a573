package tree

// Record is the serialized form of a content node. It is the wire format
// for JSON and YAML files, API payloads and stored documents.
type Record struct {
	Data     RecordData `json:"data" yaml:"data" bson:"data"`
	Children []Record   `json:"children,omitempty" yaml:"children,omitempty" bson:"children,omitempty"`
}

// RecordData is the serialized form of Data. Expand is a pointer so that a
// missing flag can default to expanded.
type RecordData struct {
	ID             string          `json:"uid,omitempty" yaml:"uid,omitempty" bson:"uid,omitempty"`
	Text           string          `json:"text" yaml:"text" bson:"text"`
	Expand         *bool           `json:"expand,omitempty" yaml:"expand,omitempty" bson:"expand,omitempty"`
	Width          float64         `json:"width,omitempty" yaml:"width,omitempty" bson:"width,omitempty"`
	Height         float64         `json:"height,omitempty" yaml:"height,omitempty" bson:"height,omitempty"`
	CustomLeft     *float64        `json:"customLeft,omitempty" yaml:"customLeft,omitempty" bson:"custom_left,omitempty"`
	CustomTop      *float64        `json:"customTop,omitempty" yaml:"customTop,omitempty" bson:"custom_top,omitempty"`
	Generalization *Generalization `json:"generalization,omitempty" yaml:"generalization,omitempty" bson:"generalization,omitempty"`
}

// FromRecord converts a record tree into content nodes.
func FromRecord(r Record) *Node {
	n := &Node{
		Data: Data{
			ID:             r.Data.ID,
			Text:           r.Data.Text,
			Expand:         r.Data.Expand == nil || *r.Data.Expand,
			Width:          r.Data.Width,
			Height:         r.Data.Height,
			CustomLeft:     copyFloat(r.Data.CustomLeft),
			CustomTop:      copyFloat(r.Data.CustomTop),
			Generalization: copyGeneralization(r.Data.Generalization),
		},
	}
	if len(r.Children) > 0 {
		n.Children = make([]*Node, len(r.Children))
		for i, c := range r.Children {
			n.Children[i] = FromRecord(c)
		}
	}
	return n
}

// ToRecord converts content nodes into their serialized form.
func ToRecord(n *Node) Record {
	expand := n.Data.Expand
	r := Record{
		Data: RecordData{
			ID:             n.Data.ID,
			Text:           n.Data.Text,
			Expand:         &expand,
			Width:          n.Data.Width,
			Height:         n.Data.Height,
			CustomLeft:     copyFloat(n.Data.CustomLeft),
			CustomTop:      copyFloat(n.Data.CustomTop),
			Generalization: copyGeneralization(n.Data.Generalization),
		},
	}
	if len(n.Children) > 0 {
		r.Children = make([]Record, 0, len(n.Children))
		for _, c := range n.Children {
			if c != nil {
				r.Children = append(r.Children, ToRecord(c))
			}
		}
	}
	return r
}

// Clone returns a deep copy of the record tree. Nothing in the copy shares
// memory with r.
func (r Record) Clone() Record {
	c := Record{Data: r.Data}
	if r.Data.Expand != nil {
		v := *r.Data.Expand
		c.Data.Expand = &v
	}
	c.Data.CustomLeft = copyFloat(r.Data.CustomLeft)
	c.Data.CustomTop = copyFloat(r.Data.CustomTop)
	c.Data.Generalization = copyGeneralization(r.Data.Generalization)
	if r.Children != nil {
		c.Children = make([]Record, len(r.Children))
		for i, child := range r.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyGeneralization(g *Generalization) *Generalization {
	if g == nil {
		return nil
	}
	v := *g
	return &v
}
