// Package panel is the parameter panel a sketch binds its tunables to.
//
// Bindings read and write plain Go variables through pointers; the panel
// owns clamping to the declared range, so nothing else validates values
// edited at runtime. Hosts drive the panel with cursor moves and render it
// through Rows.
package panel

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/san-kum/simlab/internal/view"
)

var ErrReadOnly = errors.New("binding is read-only")

const (
	DefaultInterval = 200 * time.Millisecond
	DefaultFormat   = "%.2f"
	// NoValue is shown by a monitor whose quantity is undefined.
	NoValue = "none"
)

type Kind int

const (
	Number Kind = iota
	Monitor
	Choice
	Color
)

// Item is a Binding, a Button or a Folder.
type Item interface{ item() }

type Binding struct {
	Kind     Kind
	Label    string
	Min, Max float64
	Ranged   bool
	Step     float64
	ReadOnly bool
	Format   string
	Interval time.Duration

	num     *float64
	get     func() float64
	choice  *string
	options []string
	col     *color.RGBA
	palette []color.RGBA

	onChange []func(*Binding)
	polled   time.Time
	cached   string
}

func (*Binding) item() {}

type Option func(*Binding)

// Range clamps edits to [min, max] and sets a default step of 1/100 of it.
func Range(min, max float64) Option {
	return func(b *Binding) {
		b.Min, b.Max, b.Ranged = min, max, true
		if b.Step == 0 {
			b.Step = (max - min) / 100
		}
	}
}

func Step(s float64) Option           { return func(b *Binding) { b.Step = s } }
func ReadOnly() Option                { return func(b *Binding) { b.ReadOnly = true } }
func Format(f string) Option          { return func(b *Binding) { b.Format = f } }
func Interval(d time.Duration) Option { return func(b *Binding) { b.Interval = d } }

func newBinding(kind Kind, label string, opts []Option) *Binding {
	b := &Binding{Kind: kind, Label: label, Format: DefaultFormat, Interval: DefaultInterval}
	for _, o := range opts {
		o(b)
	}
	if b.Step == 0 {
		b.Step = 0.1
	}
	return b
}

// OnChange registers fn to run after every successful edit.
func (b *Binding) OnChange(fn func(*Binding)) *Binding {
	b.onChange = append(b.onChange, fn)
	return b
}

func (b *Binding) changed() {
	b.cached = ""
	for _, fn := range b.onChange {
		fn(b)
	}
}

// Float is the current numeric value of a number or monitor binding.
func (b *Binding) Float() float64 {
	switch b.Kind {
	case Number:
		return *b.num
	case Monitor:
		return b.get()
	}
	return math.NaN()
}

// Set writes v clamped to the binding's range.
func (b *Binding) Set(v float64) error {
	if b.ReadOnly || b.Kind == Monitor {
		return fmt.Errorf("%s: %w", b.Label, ErrReadOnly)
	}
	if b.Kind != Number {
		return fmt.Errorf("%s: not a number binding", b.Label)
	}
	if math.IsNaN(v) {
		return nil
	}
	if b.Ranged {
		v = math.Max(b.Min, math.Min(b.Max, v))
	}
	*b.num = v
	b.changed()
	return nil
}

// Nudge moves a number by dir steps or cycles a choice or color by dir.
func (b *Binding) Nudge(dir int) error {
	if b.ReadOnly || b.Kind == Monitor {
		return fmt.Errorf("%s: %w", b.Label, ErrReadOnly)
	}
	switch b.Kind {
	case Number:
		return b.Set(*b.num + float64(dir)*b.Step)
	case Choice:
		if len(b.options) == 0 {
			return nil
		}
		i := indexOf(b.options, *b.choice)
		*b.choice = b.options[wrap(i+dir, len(b.options))]
	case Color:
		i := 0
		for j, c := range b.palette {
			if c == *b.col {
				i = j
			}
		}
		*b.col = b.palette[wrap(i+dir, len(b.palette))]
	}
	b.changed()
	return nil
}

// Text renders the value. Monitors only re-read their getter once their
// poll interval has elapsed since the last read. A NaN reading means the
// quantity does not exist and renders as NoValue.
func (b *Binding) Text(now time.Time) string {
	switch b.Kind {
	case Monitor:
		if b.cached == "" || now.Sub(b.polled) >= b.Interval {
			if v := b.get(); math.IsNaN(v) {
				b.cached = NoValue
			} else {
				b.cached = fmt.Sprintf(b.Format, v)
			}
			b.polled = now
		}
		return b.cached
	case Choice:
		return *b.choice
	case Color:
		return view.Hex(*b.col)
	}
	return fmt.Sprintf(b.Format, *b.num)
}

// Swatch returns the bound color for color bindings.
func (b *Binding) Swatch() (color.RGBA, bool) {
	if b.Kind != Color {
		return color.RGBA{}, false
	}
	return *b.col, true
}

// Button runs an action when pressed. Flash swaps the title for a short
// confirmation that reverts on the first read after its deadline.
type Button struct {
	title string
	fn    func()
	flash string
	until time.Time
}

func (*Button) item() {}

func (b *Button) Press() {
	if b.fn != nil {
		b.fn()
	}
}

// SetTitle replaces the resting title; an active flash still wins.
func (b *Button) SetTitle(title string) { b.title = title }

func (b *Button) Flash(title string, d time.Duration, now time.Time) {
	b.flash, b.until = title, now.Add(d)
}

func (b *Button) Title(now time.Time) string {
	if b.flash != "" && now.Before(b.until) {
		return b.flash
	}
	b.flash = ""
	return b.title
}

type Folder struct {
	Title    string
	Expanded bool
	Items    []Item
}

func (*Folder) item() {}

func (f *Folder) AddNumber(ptr *float64, label string, opts ...Option) *Binding {
	b := newBinding(Number, label, opts)
	b.num = ptr
	f.Items = append(f.Items, b)
	return b
}

func (f *Folder) AddMonitor(get func() float64, label string, opts ...Option) *Binding {
	b := newBinding(Monitor, label, opts)
	b.get = get
	b.ReadOnly = true
	f.Items = append(f.Items, b)
	return b
}

func (f *Folder) AddChoice(ptr *string, label string, options []string) *Binding {
	b := newBinding(Choice, label, nil)
	b.choice, b.options = ptr, options
	f.Items = append(f.Items, b)
	return b
}

func (f *Folder) AddColor(ptr *color.RGBA, label string, palette ...color.RGBA) *Binding {
	b := newBinding(Color, label, nil)
	b.col = ptr
	if indexOfColor(palette, *ptr) < 0 {
		palette = append([]color.RGBA{*ptr}, palette...)
	}
	b.palette = palette
	f.Items = append(f.Items, b)
	return b
}

func (f *Folder) AddButton(title string, fn func()) *Button {
	b := &Button{title: title, fn: fn}
	f.Items = append(f.Items, b)
	return b
}

func (f *Folder) AddFolder(title string, expanded bool) *Folder {
	sub := &Folder{Title: title, Expanded: expanded}
	f.Items = append(f.Items, sub)
	return sub
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return 0
}

func indexOfColor(s []color.RGBA, v color.RGBA) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
