// ABOUTME: Select and MultiSelect prompts over a paginated, filterable item list
// ABOUTME: Filter text is edited on the prompt line; arrows move between items and pages

package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/mauromedda/pi-prompt/pkg/tui/fuzzy"
	"github.com/mauromedda/pi-prompt/pkg/tui/key"
	"github.com/mauromedda/pi-prompt/pkg/tui/paginator"
	"github.com/mauromedda/pi-prompt/pkg/tui/width"
)

// SelectOptions configures Select.
type SelectOptions[T any] struct {
	Message string
	Items   []T
	// Default preselects the first item with the same text.
	Default *T
	// PageSize overrides the Prompter's page size when positive.
	PageSize int
	// TextSelector turns an item into its display text. Defaults to
	// fmt.Sprint.
	TextSelector func(T) string
	// Fuzzy ranks items by fuzzy match instead of substring filtering.
	Fuzzy bool
}

// Select asks for one item of a list.
func Select[T any](ctx context.Context, p *Prompter, opts SelectOptions[T]) (T, error) {
	var zero T
	if len(opts.Items) == 0 {
		return zero, invalidConfig("select %q has no items", opts.Message)
	}
	if opts.PageSize < 0 {
		return zero, invalidConfig("negative page size %d", opts.PageSize)
	}

	text := textSelector(opts.TextSelector)
	pk := newPicker(p, opts.Items, opts.PageSize, text, opts.Fuzzy)
	if opts.Default != nil {
		pk.preselect(text(*opts.Default))
	}
	s := &selectSession{message: opts.Message, picker: pk}
	if err := p.run(ctx, "select", s); err != nil {
		return zero, err
	}
	return opts.Items[s.chosen], nil
}

// MultiSelectOptions configures MultiSelect.
type MultiSelectOptions[T any] struct {
	Message string
	Items   []T
	// Defaults are checked initially, matched by text.
	Defaults     []T
	PageSize     int
	TextSelector func(T) string
	Fuzzy        bool
	// Minimum and Maximum bound the number of checked items. A zero
	// Maximum means no upper bound.
	Minimum int
	Maximum int
}

// MultiSelect asks for any number of items of a list. The result keeps the
// order of Items.
func MultiSelect[T any](ctx context.Context, p *Prompter, opts MultiSelectOptions[T]) ([]T, error) {
	if err := checkBounds(opts.Minimum, opts.Maximum); err != nil {
		return nil, err
	}
	switch {
	case len(opts.Items) == 0:
		return nil, invalidConfig("multi-select %q has no items", opts.Message)
	case opts.Minimum > len(opts.Items):
		return nil, invalidConfig("minimum %d exceeds %d items", opts.Minimum, len(opts.Items))
	case opts.PageSize < 0:
		return nil, invalidConfig("negative page size %d", opts.PageSize)
	}

	text := textSelector(opts.TextSelector)
	pk := newPicker(p, opts.Items, opts.PageSize, text, opts.Fuzzy)
	s := &multiSelectSession{
		message: opts.Message,
		picker:  pk,
		checked: make([]bool, len(opts.Items)),
		maximum: opts.Maximum,
		minimum: opts.Minimum,
	}
	for _, d := range opts.Defaults {
		want := text(d)
		for i, t := range pk.texts {
			if t == want && !s.checked[i] {
				s.checked[i] = true
				s.count++
				break
			}
		}
	}
	if s.maximum > 0 && s.count > s.maximum {
		return nil, invalidConfig("%d defaults exceed maximum %d", s.count, s.maximum)
	}

	if err := p.run(ctx, "multi-select", s); err != nil {
		return nil, err
	}
	out := make([]T, 0, s.count)
	for i, ok := range s.checked {
		if ok {
			out = append(out, opts.Items[i])
		}
	}
	return out, nil
}

func checkBounds(minimum, maximum int) error {
	switch {
	case minimum < 0:
		return invalidConfig("negative minimum %d", minimum)
	case maximum < 0:
		return invalidConfig("negative maximum %d", maximum)
	case maximum > 0 && minimum > maximum:
		return invalidConfig("minimum %d exceeds maximum %d", minimum, maximum)
	}
	return nil
}

// picker pages over item indexes so selection state can be kept per item
// whatever T is.
type picker struct {
	texts  []string
	pages  *paginator.Paginator[int]
	filter *editor
}

func textSelector[T any](fn func(T) string) func(T) string {
	if fn != nil {
		return fn
	}
	return func(v T) string { return fmt.Sprint(v) }
}

func newPicker[T any](p *Prompter, items []T, pageSize int, text func(T) string, fuzzyMatch bool) *picker {
	texts := make([]string, len(items))
	idx := make([]int, len(items))
	for i, it := range items {
		texts[i] = width.StripANSI(text(it))
		idx[i] = i
	}
	if pageSize == 0 {
		pageSize = p.pageSize
	}

	opts := []paginator.Option[int]{
		paginator.WithTextSelector(func(i int) string { return texts[i] }),
		paginator.WithLoop[int](p.loop),
	}
	if fuzzyMatch {
		opts = append(opts, paginator.WithFilter[int](fuzzy.Filter))
	}
	return &picker{
		texts:  texts,
		pages:  paginator.New(idx, pageSize, opts...),
		filter: newEditor(""),
	}
}

// preselect selects the first item whose text is want.
func (pk *picker) preselect(want string) {
	pk.pages.SelectItem(func(i int) bool { return pk.texts[i] == want })
}

// current returns the highlighted item index.
func (pk *picker) current() (int, bool) {
	return pk.pages.TryGetSelectedItem()
}

func (pk *picker) handle(k key.Key) bool {
	switch {
	case k.Type == key.KeyUp, k.Type == key.KeyBackTab, k.IsCtrl('p'):
		pk.pages.PreviousItem()
	case k.Type == key.KeyDown, k.Type == key.KeyTab, k.IsCtrl('n'):
		pk.pages.NextItem()
	case k.Type == key.KeyLeft, k.Type == key.KeyPageUp:
		pk.pages.PreviousPage()
	case k.Type == key.KeyRight, k.Type == key.KeyPageDown:
		pk.pages.NextPage()
	default:
		before := pk.filter.String()
		if !pk.filter.handle(k) {
			return false
		}
		if after := pk.filter.String(); after != before {
			pk.pages.UpdateFilter(after)
		}
	}
	return true
}

// render draws the prompt line with the filter, the current page and a
// page indicator. mark, when set, prefixes each item.
func (pk *picker) render(f *frame, message string, mark func(i int) string) {
	f.question(message)
	pk.filter.render(f, f.theme.Palette.Answer, nil)

	if pk.pages.Count() == 0 {
		f.WriteLine()
		f.hint(f.theme.Messages.NoItems)
		return
	}

	active, hasActive := pk.current()
	pal, sym := f.theme.Palette, f.theme.Symbols
	pad := strings.Repeat(" ", width.StringWidth(sym.Cursor)+1)
	for _, i := range pk.pages.CurrentItems() {
		f.WriteLine()
		prefix, color := pad, pal.Unselected
		if hasActive && i == active {
			prefix, color = sym.Cursor+" ", pal.Selected
		}
		if mark != nil {
			prefix += mark(i) + " "
		}
		f.Write(prefix, color)
		// One row per item keeps the page height fixed.
		f.Write(width.TruncateToWidth(pk.texts[i], f.Width()-width.StringWidth(prefix)), color)
	}
	if n := pk.pages.PageCount(); n > 1 {
		f.WriteLine()
		f.hint(fmt.Sprintf("(%d/%d)", pk.pages.CurrentPage()+1, n))
	}
}

type selectSession struct {
	message string
	picker  *picker
	chosen  int
}

func (s *selectSession) render(f *frame) {
	s.picker.render(f, s.message, nil)
}

func (s *selectSession) handle(k key.Key) bool {
	return s.picker.handle(k)
}

func (s *selectSession) submit() (bool, error) {
	i, ok := s.picker.current()
	if !ok {
		return false, &ValidationError{Kind: ValidationRequired}
	}
	s.chosen = i
	return true, nil
}

func (s *selectSession) finish(f *frame) {
	f.answered(s.message, s.picker.texts[s.chosen])
}

type multiSelectSession struct {
	message          string
	picker           *picker
	checked          []bool
	count            int
	minimum, maximum int
}

func (s *multiSelectSession) render(f *frame) {
	s.picker.render(f, s.message, func(i int) string {
		if s.checked[i] {
			return f.theme.Symbols.Checked
		}
		return f.theme.Symbols.Unchecked
	})
}

func (s *multiSelectSession) handle(k key.Key) bool {
	switch {
	case k.Type == key.KeyRune && k.Rune == ' ' && !k.Ctrl && !k.Alt:
		i, ok := s.picker.current()
		return ok && s.toggle(i)
	case k.IsCtrl('a'):
		return s.toggleAll()
	}
	return s.picker.handle(k)
}

// toggle flips item i unless checking it would exceed the maximum.
func (s *multiSelectSession) toggle(i int) bool {
	if s.checked[i] {
		s.checked[i] = false
		s.count--
		return true
	}
	if s.maximum > 0 && s.count >= s.maximum {
		return false
	}
	s.checked[i] = true
	s.count++
	return true
}

// toggleAll unchecks every filtered item when all are checked and checks
// them otherwise, within the maximum.
func (s *multiSelectSession) toggleAll() bool {
	visible := s.picker.pages.Filtered()
	if len(visible) == 0 {
		return false
	}
	unchecked := 0
	for _, i := range visible {
		if !s.checked[i] {
			unchecked++
		}
	}
	if unchecked == 0 {
		for _, i := range visible {
			s.checked[i] = false
		}
		s.count -= len(visible)
		return true
	}
	if s.maximum > 0 && s.count+unchecked > s.maximum {
		return false
	}
	for _, i := range visible {
		s.checked[i] = true
	}
	s.count += unchecked
	return true
}

func (s *multiSelectSession) submit() (bool, error) {
	if s.count < s.minimum {
		return false, &ValidationError{Kind: ValidationMinSelected, Limit: s.minimum}
	}
	if s.maximum > 0 && s.count > s.maximum {
		return false, &ValidationError{Kind: ValidationMaxSelected, Limit: s.maximum}
	}
	return true, nil
}

func (s *multiSelectSession) finish(f *frame) {
	var picked []string
	for i, ok := range s.checked {
		if ok {
			picked = append(picked, s.picker.texts[i])
		}
	}
	f.answered(s.message, strings.Join(picked, ", "))
}
