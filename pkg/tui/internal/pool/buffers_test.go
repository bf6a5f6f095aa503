// ABOUTME: Tests for the buffer pools
// ABOUTME: Checks buffers come back empty and nil or oversized puts are ignored

package pool

import (
	"strings"
	"testing"
)

func TestBytesBuffer(t *testing.T) {
	t.Parallel()

	buf := GetBytesBuffer()
	buf.WriteString("frame")
	PutBytesBuffer(buf)
	PutBytesBuffer(nil)

	if got := GetBytesBuffer(); got.Len() != 0 {
		t.Errorf("pooled buffer not empty: %q", got.String())
	}

	big := GetBytesBuffer()
	big.Grow(maxPooled + 1)
	PutBytesBuffer(big)
}

func TestStringBuilder(t *testing.T) {
	t.Parallel()

	sb := GetStringBuilder()
	sb.WriteString(strings.Repeat("x", 10))
	PutStringBuilder(sb)
	PutStringBuilder(nil)

	if got := GetStringBuilder(); got.Len() != 0 {
		t.Errorf("pooled builder not empty: %q", got.String())
	}
}
