// Package view describes the display payload handed to the transport: text
// blocks plus at most one picker menu.
package view

// Author is the header line of a view.
type Author struct {
	Name    string
	IconURL string
}

// Footer is the trailing line of a view.
type Footer struct {
	Text    string
	IconURL string
}

// Field is a titled block of text.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// MenuOption is one entry of a picker.
type MenuOption struct {
	Label       string
	Description string
	Emoji       string
	Value       string
}

// Menu is a single-choice picker addressed by CustomID.
type Menu struct {
	CustomID    string
	Placeholder string
	Options     []MenuOption
}

// View is a rendered payload.
type View struct {
	Author      Author
	Description string
	Thumbnail   string
	Footer      Footer
	Color       int
	Fields      []Field
	Menu        *Menu
	Ephemeral   bool
}

// Clone returns a copy that shares no slices with v.
func (v *View) Clone() *View {
	if v == nil {
		return nil
	}
	out := *v
	if v.Fields != nil {
		out.Fields = append([]Field(nil), v.Fields...)
	}
	if v.Menu != nil {
		m := *v.Menu
		m.Options = append([]MenuOption(nil), v.Menu.Options...)
		out.Menu = &m
	}
	return &out
}
