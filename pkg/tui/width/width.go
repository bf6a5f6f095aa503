// ABOUTME: Display width of runes, UTF-8 strings and UTF-16 code units via the range table
// ABOUTME: VisibleWidth strips ANSI and caches non-ASCII measurements in an O(1) LRU

package width

import (
	"container/list"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
)

const cacheSize = 512

// RuneWidth returns the number of terminal columns cp occupies: 2 for wide
// code points, 1 otherwise.
func RuneWidth(cp rune) int {
	if IsWide(cp) {
		return 2
	}
	return 1
}

// StringWidth sums RuneWidth over the code points of s.
// Escape sequences are not recognized; use VisibleWidth for styled text.
func StringWidth(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		w += RuneWidth(r)
		s = s[size:]
	}
	return w
}

// UTF16Width sums the width of the code points encoded in units. A high
// surrogate followed by a low surrogate counts as one code point; a lone
// surrogate is measured as its raw 16-bit value.
func UTF16Width(units []uint16) int {
	w := 0
	for i := 0; i < len(units); i++ {
		cp := rune(units[i])
		if utf16.IsSurrogate(cp) && i+1 < len(units) {
			if combined := utf16.DecodeRune(cp, rune(units[i+1])); combined != utf8.RuneError {
				cp = combined
				i++
			}
		}
		w += RuneWidth(cp)
	}
	return w
}

// Rows returns how many physical terminal rows a line of w columns occupies
// at the given terminal width. An empty line still occupies one row.
func Rows(w, termWidth int) int {
	if termWidth <= 0 {
		return 1
	}
	if w <= 0 {
		return 1
	}
	return (w-1)/termWidth + 1
}

// lruEntry holds a cached width measurement.
type lruEntry struct {
	key   string
	value int
}

// cache is an O(1) LRU cache for non-ASCII string widths.
type cache struct {
	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List
	size  int
}

func newCache(size int) *cache {
	return &cache{
		items: make(map[string]*list.Element, size),
		order: list.New(),
		size:  size,
	}
}

func (c *cache) get(key string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if !ok {
		return 0, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(lruEntry).value, true
}

func (c *cache) put(key string, value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; ok {
		return
	}
	if c.order.Len() >= c.size {
		if back := c.order.Back(); back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(lruEntry).key)
		}
	}
	c.items[key] = c.order.PushFront(lruEntry{key: key, value: value})
}

var widthCache = newCache(cacheSize)

// VisibleWidth returns the display width of s ignoring ANSI escape sequences.
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	if w, ok := widthCache.get(s); ok {
		return w
	}
	w := StringWidth(StripANSI(s))
	widthCache.put(s, w)
	return w
}

// isPlainASCII returns true if s contains only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}
