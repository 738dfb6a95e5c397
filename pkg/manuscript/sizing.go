package manuscript

// Sizing holds the upper-bound counts a document assembler uses to pre-size
// its storage. They may overcount but never undercount.
type Sizing struct {
	Chapters   int `json:"chapters" yaml:"chapters"`
	Elements   int `json:"elements" yaml:"elements"`
	References int `json:"references" yaml:"references"`
}

// Add returns the element-wise sum of s and o.
func (s Sizing) Add(o Sizing) Sizing {
	return Sizing{
		Chapters:   s.Chapters + o.Chapters,
		Elements:   s.Elements + o.Elements,
		References: s.References + o.References,
	}
}
