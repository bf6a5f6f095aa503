// ABOUTME: Kill ring holding text removed by line-editing kills, newest last
// ABOUTME: Consecutive kills merge into one entry; yank and yank-pop walk back through history

package killring

// DefaultSize is the capacity used by line editors.
const DefaultSize = 32

// Ring is a bounded list of killed text.
type Ring struct {
	entries []string
	size    int
	yank    int
}

// New returns a Ring keeping at most size entries.
func New(size int) *Ring {
	size = max(size, 1)
	return &Ring{entries: make([]string, 0, size), size: size, yank: -1}
}

// Kill records text. With merge set it joins the newest entry instead of
// starting a new one: in front of it for backward kills, after it
// otherwise. Empty text is ignored.
func (r *Ring) Kill(text string, backward, merge bool) {
	if text == "" {
		return
	}
	if merge && len(r.entries) > 0 {
		last := len(r.entries) - 1
		if backward {
			r.entries[last] = text + r.entries[last]
		} else {
			r.entries[last] += text
		}
		r.yank = last
		return
	}
	if len(r.entries) == r.size {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:r.size-1]
	}
	r.entries = append(r.entries, text)
	r.yank = len(r.entries) - 1
}

// Yank returns the newest entry.
func (r *Ring) Yank() (string, bool) {
	if len(r.entries) == 0 {
		return "", false
	}
	r.yank = len(r.entries) - 1
	return r.entries[r.yank], true
}

// YankPop returns the entry before the one last yanked, cycling to the
// newest after the oldest.
func (r *Ring) YankPop() (string, bool) {
	if len(r.entries) == 0 {
		return "", false
	}
	r.yank--
	if r.yank < 0 {
		r.yank = len(r.entries) - 1
	}
	return r.entries[r.yank], true
}

// Len returns the number of entries.
func (r *Ring) Len() int {
	return len(r.entries)
}
