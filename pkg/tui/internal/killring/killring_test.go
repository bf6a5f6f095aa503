// ABOUTME: Tests for the kill ring
// ABOUTME: Covers yank order, kill merging in both directions, eviction and the empty ring

package killring

import "testing"

func TestRing_YankAndPop(t *testing.T) {
	t.Parallel()

	r := New(DefaultSize)
	r.Kill("a", false, false)
	r.Kill("b", false, false)
	r.Kill("c", false, false)

	want := []string{"c", "b", "a", "c"}
	got, ok := r.Yank()
	if !ok || got != want[0] {
		t.Fatalf("Yank() = (%q, %v), want %q", got, ok, want[0])
	}
	for _, w := range want[1:] {
		if got, _ := r.YankPop(); got != w {
			t.Errorf("YankPop() = %q, want %q", got, w)
		}
	}
}

func TestRing_Kill(t *testing.T) {
	t.Parallel()

	type kill struct {
		text            string
		backward, merge bool
	}
	tests := []struct {
		name  string
		kills []kill
		want  string
		n     int
	}{
		{name: "separate kills", kills: []kill{{text: "one"}, {text: "two"}}, want: "two", n: 2},
		{name: "forward merge appends", kills: []kill{{text: "foo "}, {text: "bar", merge: true}}, want: "foo bar", n: 1},
		{name: "backward merge prepends", kills: []kill{{text: "bar", backward: true}, {text: "foo ", backward: true, merge: true}}, want: "foo bar", n: 1},
		{name: "merge into empty ring", kills: []kill{{text: "x", merge: true}}, want: "x", n: 1},
		{name: "empty kill ignored", kills: []kill{{text: "x"}, {text: ""}}, want: "x", n: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New(DefaultSize)
			for _, k := range tt.kills {
				r.Kill(k.text, k.backward, k.merge)
			}
			if got, _ := r.Yank(); got != tt.want {
				t.Errorf("Yank() = %q, want %q", got, tt.want)
			}
			if r.Len() != tt.n {
				t.Errorf("Len() = %d, want %d", r.Len(), tt.n)
			}
		})
	}
}

func TestRing_Evicts(t *testing.T) {
	t.Parallel()

	r := New(2)
	r.Kill("1", false, false)
	r.Kill("2", false, false)
	r.Kill("3", false, false)

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	r.Yank()
	if got, _ := r.YankPop(); got != "2" {
		t.Errorf("oldest kept = %q, want %q", got, "2")
	}
}

func TestRing_Empty(t *testing.T) {
	t.Parallel()

	r := New(0)
	if _, ok := r.Yank(); ok {
		t.Error("Yank() on empty ring reported an entry")
	}
	if _, ok := r.YankPop(); ok {
		t.Error("YankPop() on empty ring reported an entry")
	}
}
