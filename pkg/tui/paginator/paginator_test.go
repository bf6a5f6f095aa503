// ABOUTME: Tests for Paginator paging, filtering, selection and page-size changes
// ABOUTME: Uses twenty sequential integers at page size five as the main fixture

package paginator

import (
	"slices"
	"strings"
	"testing"

	"github.com/mauromedda/pi-prompt/pkg/tui/fuzzy"
)

func twenty() []int {
	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginator_Paging(t *testing.T) {
	t.Parallel()
	p := New(twenty(), 5)

	if got := p.CurrentItems(); !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("first page = %v", got)
	}
	if p.PageCount() != 4 {
		t.Errorf("PageCount() = %d, want 4", p.PageCount())
	}

	p.NextPage()
	if got := p.CurrentItems(); !slices.Equal(got, []int{5, 6, 7, 8, 9}) {
		t.Errorf("second page = %v", got)
	}

	p.PreviousPage()
	p.PreviousPage()
	if p.CurrentPage() != 3 {
		t.Errorf("PreviousPage from first page = %d, want 3", p.CurrentPage())
	}
	p.NextPage()
	if p.CurrentPage() != 0 {
		t.Errorf("NextPage from last page = %d, want 0", p.CurrentPage())
	}
}

func TestPaginator_Filter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keyword string
		want    []int
	}{
		{keyword: "0", want: []int{0, 10}},
		{keyword: "x", want: []int{}},
		{keyword: "1", want: []int{1, 10, 11, 12, 13}},
		{keyword: "", want: []int{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			t.Parallel()
			p := New(twenty(), 5)
			p.UpdateFilter(tt.keyword)
			if got := p.CurrentItems(); !slices.Equal(got, tt.want) {
				t.Errorf("CurrentItems() = %v, want %v", got, tt.want)
			}
			if p.FilterKeyword() != tt.keyword {
				t.Errorf("FilterKeyword() = %q", p.FilterKeyword())
			}
		})
	}
}

func TestPaginator_Selection(t *testing.T) {
	t.Parallel()

	p := New(twenty(), 5)
	if _, ok := p.TryGetSelectedItem(); ok {
		t.Fatal("item selected before any navigation")
	}

	p.NextPage()
	p.NextItem()
	got, ok := p.TryGetSelectedItem()
	if !ok || got != 5 {
		t.Errorf("TryGetSelectedItem() = (%d, %v), want (5, true)", got, ok)
	}

	p.UpdateFilter("x")
	p.NextItem()
	p.PreviousItem()
	if _, ok := p.TryGetSelectedItem(); ok {
		t.Error("empty filter result has a selection")
	}
}

func TestPaginator_SingleMatchAutoSelects(t *testing.T) {
	t.Parallel()
	p := New(twenty(), 5)

	p.UpdateFilter("19")
	got, ok := p.TryGetSelectedItem()
	if !ok || got != 19 {
		t.Errorf("TryGetSelectedItem() = (%d, %v), want (19, true)", got, ok)
	}
	if p.SelectedIndex() != -1 {
		t.Errorf("SelectedIndex() = %d, want -1", p.SelectedIndex())
	}
}

func TestPaginator_UpdateFilterPagePolicy(t *testing.T) {
	t.Parallel()
	p := New(twenty(), 5)

	p.NextPage()
	p.NextItem()
	p.UpdateFilter("1")
	if p.CurrentPage() != 1 {
		t.Errorf("page = %d, want 1 kept while in range", p.CurrentPage())
	}
	if p.SelectedIndex() != -1 {
		t.Errorf("selection kept across filter change: %d", p.SelectedIndex())
	}
	if got := p.CurrentItems(); !slices.Equal(got, []int{14, 15, 16, 17, 18}) {
		t.Errorf("page 1 of filter = %v", got)
	}

	p.NextPage()
	p.UpdateFilter("0")
	if p.CurrentPage() != 0 {
		t.Errorf("page = %d, want reset to 0 when out of range", p.CurrentPage())
	}
}

func TestPaginator_ItemNavigation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		loop  bool
		moves string
		want  int
		page  int
	}{
		{name: "down selects first", moves: "n", want: 0},
		{name: "up selects last on page", moves: "p", want: 4},
		{name: "down crosses page", moves: "nnnnnn", want: 5, page: 1},
		{name: "up crosses page", moves: "nnnnnnp", want: 4},
		{name: "stays at first item", moves: "np", want: 0},
		{name: "loop wraps down", loop: true, moves: "nnnnnn", want: 0},
		{name: "loop wraps up", loop: true, moves: "np", want: 4},
		{name: "stays at last item", moves: strings.Repeat("n", 25), want: 19, page: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := New(twenty(), 5, WithLoop[int](tt.loop))
			for _, m := range tt.moves {
				if m == 'n' {
					p.NextItem()
				} else {
					p.PreviousItem()
				}
			}
			got, ok := p.TryGetSelectedItem()
			if !ok || got != tt.want {
				t.Errorf("selected = (%d, %v), want (%d, true)", got, ok, tt.want)
			}
			if p.CurrentPage() != tt.page {
				t.Errorf("page = %d, want %d", p.CurrentPage(), tt.page)
			}
		})
	}
}

func TestPaginator_PageSizeClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		items    []int
		pageSize int
		want     int
	}{
		{name: "zero shows everything", items: twenty(), pageSize: 0, want: 20},
		{name: "negative shows everything", items: twenty(), pageSize: -3, want: 20},
		{name: "larger than list", items: []int{1, 2, 3}, pageSize: 10, want: 3},
		{name: "empty list", items: nil, pageSize: 5, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := New(tt.items, tt.pageSize)
			if p.PageSize() != tt.want {
				t.Errorf("PageSize() = %d, want %d", p.PageSize(), tt.want)
			}
			if p.PageCount() != 1 {
				t.Errorf("PageCount() = %d, want 1", p.PageCount())
			}
			p.NextPage()
			if p.CurrentPage() != 0 {
				t.Errorf("NextPage moved a single page to %d", p.CurrentPage())
			}
		})
	}
}

func TestPaginator_UpdatePageSize(t *testing.T) {
	t.Parallel()

	p := New(twenty(), 5)
	p.NextPage()
	p.NextPage()
	p.NextItem()
	p.NextItem()
	p.UpdatePageSize(3)

	got, ok := p.TryGetSelectedItem()
	if !ok || got != 11 {
		t.Errorf("selected after resize = (%d, %v), want (11, true)", got, ok)
	}
	if p.CurrentPage() != 3 || p.SelectedIndex() != 2 {
		t.Errorf("page/index = %d/%d, want 3/2", p.CurrentPage(), p.SelectedIndex())
	}

	q := New(twenty(), 5)
	q.NextPage()
	q.UpdatePageSize(10)
	if q.CurrentPage() != 0 || q.SelectedIndex() != -1 {
		t.Errorf("unselected resize page/index = %d/%d, want 0/-1", q.CurrentPage(), q.SelectedIndex())
	}
	if got := q.CurrentItems(); len(got) != 10 || got[5] != 5 {
		t.Errorf("first item of the old page not visible: %v", got)
	}
}

type colour struct {
	Name string
	Hex  string
}

func TestPaginator_TextSelectorAndDefault(t *testing.T) {
	t.Parallel()

	items := []colour{
		{"Red", "#ff0000"}, {"Green", "#00ff00"}, {"Blue", "#0000ff"},
		{"Cyan", "#00ffff"}, {"Magenta", "#ff00ff"},
	}
	p := New(items, 2,
		WithTextSelector(func(c colour) string { return c.Name }),
		WithDefault(colour{Name: "Magenta"}),
	)

	got, ok := p.TryGetSelectedItem()
	if !ok || got.Hex != "#ff00ff" {
		t.Fatalf("default selection = (%+v, %v)", got, ok)
	}
	if p.CurrentPage() != 2 || p.SelectedIndex() != 0 {
		t.Errorf("page/index = %d/%d, want 2/0", p.CurrentPage(), p.SelectedIndex())
	}
	if p.Text(items[0]) != "Red" {
		t.Errorf("Text() = %q", p.Text(items[0]))
	}

	p.UpdateFilter("GREEN")
	if got := p.Filtered(); len(got) != 1 || got[0].Name != "Green" {
		t.Errorf("case-insensitive filter = %+v", got)
	}
}

func TestPaginator_MissingDefault(t *testing.T) {
	t.Parallel()
	p := New([]string{"a", "b"}, 1, WithDefault("z"))
	if _, ok := p.TryGetSelectedItem(); ok {
		t.Error("missing default selected something")
	}
}

func TestPaginator_UnicodeFolding(t *testing.T) {
	t.Parallel()

	items := []string{"Straße", "café", "ÅNGSTRÖM", "plain"}
	tests := []struct {
		keyword string
		want    []string
	}{
		{keyword: "STRASSE", want: []string{"Straße"}},
		{keyword: "café", want: []string{"café"}},
		{keyword: "ångström", want: []string{"ÅNGSTRÖM"}},
	}
	for _, tt := range tests {
		p := New(items, 0)
		p.UpdateFilter(tt.keyword)
		if got := p.Filtered(); !slices.Equal(got, tt.want) {
			t.Errorf("UpdateFilter(%q) = %v, want %v", tt.keyword, got, tt.want)
		}
	}
}

func TestPaginator_CustomMatcher(t *testing.T) {
	t.Parallel()

	prefix := func(text, keyword string) bool { return strings.HasPrefix(text, keyword) }
	p := New(twenty(), 5, WithMatcher[int](prefix))
	p.UpdateFilter("1")
	if got := p.Filtered(); len(got) != 11 || got[0] != 1 || got[1] != 10 {
		t.Errorf("prefix filter = %v", got)
	}
	p.UpdateFilter("")
	if p.FilteredCount() != p.TotalCount() {
		t.Errorf("empty keyword kept %d of %d", p.FilteredCount(), p.TotalCount())
	}
}

func TestPaginator_FuzzyFilter(t *testing.T) {
	t.Parallel()

	items := []string{"banana", "apricot", "apple", "grape"}
	p := New(items, 0, WithFilter[string](fuzzy.Filter))
	if got := p.CurrentItems(); !slices.Equal(got, items) {
		t.Fatalf("unfiltered = %v", got)
	}
	p.UpdateFilter("app")
	if got := p.Filtered(); !slices.Equal(got, []string{"apple"}) {
		t.Errorf("fuzzy filter = %v", got)
	}
}

func BenchmarkPaginator_UpdateFilter(b *testing.B) {
	items := make([]int, 10_000)
	for i := range items {
		items[i] = i
	}
	p := New(items, 10)
	b.ReportAllocs()
	for b.Loop() {
		p.UpdateFilter("42")
	}
}
