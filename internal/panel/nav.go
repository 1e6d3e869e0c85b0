package panel

import (
	"strings"
	"time"
)

// Panel is the root folder plus a cursor over its visible rows.
type Panel struct {
	Folder
	Hidden bool
	Now    func() time.Time

	cursor int
}

func New(title string) *Panel {
	return &Panel{Folder: Folder{Title: title, Expanded: true}, Now: time.Now}
}

// Row is one visible line of the panel.
type Row struct {
	Depth    int
	Item     Item
	Label    string
	Value    string
	Selected bool
}

// Rows flattens the expanded folders into display order.
func (p *Panel) Rows() []Row {
	now := p.Now()
	var rows []Row
	var walk func(f *Folder, depth int)
	walk = func(f *Folder, depth int) {
		for _, it := range f.Items {
			r := Row{Depth: depth, Item: it}
			switch it := it.(type) {
			case *Binding:
				r.Label, r.Value = it.Label, it.Text(now)
			case *Button:
				r.Label = it.Title(now)
			case *Folder:
				mark := "▸"
				if it.Expanded {
					mark = "▾"
				}
				r.Label = mark + " " + it.Title
			}
			rows = append(rows, r)
			if sub, ok := it.(*Folder); ok && sub.Expanded {
				walk(sub, depth+1)
			}
		}
	}
	walk(&p.Folder, 0)
	if len(rows) > 0 {
		p.cursor = wrap(p.cursor, len(rows))
		rows[p.cursor].Selected = true
	}
	return rows
}

func (p *Panel) Selected() Item {
	rows := p.Rows()
	if len(rows) == 0 {
		return nil
	}
	return rows[p.cursor].Item
}

// Move shifts the cursor by dir rows, wrapping at the ends.
func (p *Panel) Move(dir int) {
	n := len(p.Rows())
	if n == 0 {
		return
	}
	p.cursor = wrap(p.cursor+dir, n)
}

// Select moves the cursor to a visible row. It reports false when row is
// out of range.
func (p *Panel) Select(row int) bool {
	if row < 0 || row >= len(p.Rows()) {
		return false
	}
	p.cursor = row
	return true
}

// Adjust nudges the selected binding, or collapses (dir < 0) and expands
// (dir > 0) the selected folder.
func (p *Panel) Adjust(dir int) error {
	switch it := p.Selected().(type) {
	case *Binding:
		if it.ReadOnly || it.Kind == Monitor {
			return nil
		}
		return it.Nudge(dir)
	case *Folder:
		it.Expanded = dir > 0
	}
	return nil
}

// Activate presses the selected button or toggles the selected folder.
func (p *Panel) Activate() {
	switch it := p.Selected().(type) {
	case *Button:
		it.Press()
	case *Folder:
		it.Expanded = !it.Expanded
	}
}

// Find returns the first binding with the given label.
func (p *Panel) Find(label string) *Binding {
	var found *Binding
	var walk func(f *Folder)
	walk = func(f *Folder) {
		for _, it := range f.Items {
			if found != nil {
				return
			}
			switch it := it.(type) {
			case *Binding:
				if strings.EqualFold(it.Label, label) {
					found = it
				}
			case *Folder:
				walk(it)
			}
		}
	}
	walk(&p.Folder)
	return found
}
