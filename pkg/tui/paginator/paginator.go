// ABOUTME: Generic paginator over an immutable item list with keyword filtering and in-page selection
// ABOUTME: Default filter is a case-folded NFC substring match; a ranked filter such as fuzzy can replace it

package paginator

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MatchFunc reports whether an item's text matches the filter keyword.
type MatchFunc func(text, keyword string) bool

// FilterFunc returns the indexes of texts matching keyword in display order.
type FilterFunc func(keyword string, texts []string) []int

// Option configures a Paginator.
type Option[T any] func(*Paginator[T])

// WithTextSelector sets how an item is turned into the text that is shown,
// filtered on and compared with the default. The default is fmt.Sprint.
func WithTextSelector[T any](fn func(T) string) Option[T] {
	return func(p *Paginator[T]) { p.text = fn }
}

// WithDefault preselects the first item whose text equals value's text.
func WithDefault[T any](value T) Option[T] {
	return func(p *Paginator[T]) {
		p.def = &value
	}
}

// WithMatcher replaces the substring match used by UpdateFilter.
func WithMatcher[T any](fn MatchFunc) Option[T] {
	return func(p *Paginator[T]) {
		p.filter = func(keyword string, texts []string) []int {
			var idx []int
			for i, t := range texts {
				if keyword == "" || fn(t, keyword) {
					idx = append(idx, i)
				}
			}
			return idx
		}
	}
}

// WithFilter replaces filtering altogether; the returned order is kept.
func WithFilter[T any](fn FilterFunc) Option[T] {
	return func(p *Paginator[T]) { p.filter = fn }
}

// WithLoop makes item navigation wrap within the page instead of crossing
// to the neighbouring page.
func WithLoop[T any](loop bool) Option[T] {
	return func(p *Paginator[T]) { p.loop = loop }
}

// Paginator pages through a filtered view of items. The selection index is
// relative to the current page and is -1 when nothing is selected.
type Paginator[T any] struct {
	items  []T
	texts  []string
	folded []string

	text   func(T) string
	filter FilterFunc
	def    *T
	loop   bool
	caser  cases.Caser

	pageSize int
	keyword  string
	filtered []int
	page     int
	selected int
}

// New returns a paginator over items. A pageSize of zero or less shows every
// item on one page; larger sizes are clamped to the number of items.
func New[T any](items []T, pageSize int, opts ...Option[T]) *Paginator[T] {
	p := &Paginator[T]{
		items:    items,
		text:     func(v T) string { return fmt.Sprint(v) },
		caser:    cases.Fold(),
		selected: -1,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.texts = make([]string, len(items))
	for i, it := range items {
		p.texts[i] = p.text(it)
	}
	if p.filter == nil {
		p.folded = make([]string, len(items))
		for i, t := range p.texts {
			p.folded[i] = p.fold(t)
		}
		p.filter = p.substring
	}

	p.pageSize = clampPageSize(pageSize, len(items))
	p.recompute()

	if p.def != nil {
		want := p.text(*p.def)
		p.SelectItem(func(v T) bool { return p.text(v) == want })
	}
	return p
}

func clampPageSize(n, count int) int {
	if n <= 0 || n > count {
		n = count
	}
	return max(n, 1)
}

func (p *Paginator[T]) fold(s string) string {
	return p.caser.String(norm.NFC.String(s))
}

// substring is the default filter: a case-insensitive substring match on
// NFC-normalized text.
func (p *Paginator[T]) substring(keyword string, _ []string) []int {
	kw := p.fold(keyword)
	idx := make([]int, 0, len(p.folded))
	for i, t := range p.folded {
		if strings.Contains(t, kw) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (p *Paginator[T]) recompute() {
	p.filtered = p.filter(p.keyword, p.texts)
	if p.page >= p.PageCount() {
		p.page = 0
	}
}

// Text returns the text of v as used for display and filtering.
func (p *Paginator[T]) Text(v T) string {
	return p.text(v)
}

// PageSize returns the effective page size.
func (p *Paginator[T]) PageSize() int {
	return p.pageSize
}

// PageCount returns the number of pages of the filtered view, at least one.
func (p *Paginator[T]) PageCount() int {
	return max(1, (len(p.filtered)+p.pageSize-1)/p.pageSize)
}

// CurrentPage returns the zero-based current page.
func (p *Paginator[T]) CurrentPage() int {
	return p.page
}

// Count returns the number of items on the current page.
func (p *Paginator[T]) Count() int {
	return max(0, min(len(p.filtered)-p.page*p.pageSize, p.pageSize))
}

// FilteredCount returns the number of items matching the filter.
func (p *Paginator[T]) FilteredCount() int {
	return len(p.filtered)
}

// TotalCount returns the number of items regardless of the filter.
func (p *Paginator[T]) TotalCount() int {
	return len(p.items)
}

// FilterKeyword returns the current filter.
func (p *Paginator[T]) FilterKeyword() string {
	return p.keyword
}

// SelectedIndex returns the selection within the current page, or -1.
func (p *Paginator[T]) SelectedIndex() int {
	return p.selected
}

// CurrentItems returns the items on the current page.
func (p *Paginator[T]) CurrentItems() []T {
	n := p.Count()
	out := make([]T, n)
	start := p.page * p.pageSize
	for i := range n {
		out[i] = p.items[p.filtered[start+i]]
	}
	return out
}

// ToSubset is CurrentItems.
func (p *Paginator[T]) ToSubset() []T {
	return p.CurrentItems()
}

// Filtered returns every item matching the filter, across all pages.
func (p *Paginator[T]) Filtered() []T {
	out := make([]T, len(p.filtered))
	for i, idx := range p.filtered {
		out[i] = p.items[idx]
	}
	return out
}

// TryGetSelectedItem returns the selected item. A filtered view of exactly
// one item counts as selected.
func (p *Paginator[T]) TryGetSelectedItem() (T, bool) {
	var zero T
	if len(p.filtered) == 1 {
		return p.items[p.filtered[0]], true
	}
	if p.selected < 0 || p.selected >= p.Count() {
		return zero, false
	}
	return p.items[p.filtered[p.page*p.pageSize+p.selected]], true
}

// NextItem moves the selection down. With nothing selected the first item
// on the page is selected. At the end of a page the selection wraps when
// looping and otherwise moves to the first item of the next page; it stays
// put on the last item of the last page.
func (p *Paginator[T]) NextItem() {
	n := p.Count()
	if n == 0 {
		return
	}
	switch {
	case p.selected < n-1:
		p.selected++
	case p.loop:
		p.selected = 0
	case p.page < p.PageCount()-1:
		p.page++
		p.selected = 0
	}
}

// PreviousItem moves the selection up. With nothing selected the last item
// on the page is selected. At the start of a page the selection wraps when
// looping and otherwise moves to the last item of the previous page; it
// stays put on the first item of the first page.
func (p *Paginator[T]) PreviousItem() {
	n := p.Count()
	if n == 0 {
		return
	}
	switch {
	case p.selected < 0:
		p.selected = n - 1
	case p.selected > 0:
		p.selected--
	case p.loop:
		p.selected = n - 1
	case p.page > 0:
		p.page--
		p.selected = p.Count() - 1
	}
}

// NextPage moves to the next page, cycling to the first, and clears the
// selection. It does nothing when there is only one page.
func (p *Paginator[T]) NextPage() {
	if p.PageCount() <= 1 {
		return
	}
	p.page = (p.page + 1) % p.PageCount()
	p.selected = -1
}

// PreviousPage moves to the previous page, cycling to the last, and clears
// the selection. It does nothing when there is only one page.
func (p *Paginator[T]) PreviousPage() {
	if p.PageCount() <= 1 {
		return
	}
	p.page = (p.page - 1 + p.PageCount()) % p.PageCount()
	p.selected = -1
}

// UpdateFilter sets the filter keyword and clears the selection. The current
// page is kept unless the filtered view no longer reaches it.
func (p *Paginator[T]) UpdateFilter(keyword string) {
	p.keyword = keyword
	p.selected = -1
	p.recompute()
}

// UpdatePageSize changes the page size. The selected item stays selected;
// without a selection the first item of the current page stays visible.
func (p *Paginator[T]) UpdatePageSize(n int) {
	anchor, hadSelection := p.page*p.pageSize, false
	if p.selected >= 0 && p.selected < p.Count() {
		anchor += p.selected
		hadSelection = true
	}

	p.pageSize = clampPageSize(n, len(p.items))
	p.page = anchor / p.pageSize
	if p.page >= p.PageCount() {
		p.page = 0
	}
	p.selected = -1
	if hadSelection {
		p.selected = anchor % p.pageSize
	}
}

// SelectItem selects the first filtered item for which match returns true,
// moving to its page. It reports whether one was found.
func (p *Paginator[T]) SelectItem(match func(T) bool) bool {
	for pos, idx := range p.filtered {
		if match(p.items[idx]) {
			p.page = pos / p.pageSize
			p.selected = pos % p.pageSize
			return true
		}
	}
	return false
}
