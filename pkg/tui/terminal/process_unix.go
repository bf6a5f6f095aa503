// ABOUTME: Unix-specific SIGWINCH handling and poll-based cancellable reads for ProcessTerminal.
// ABOUTME: Reads poll the input fd with a short interval so a cancelled context is noticed promptly.

//go:build unix

package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

const inputPollInterval = 50 * time.Millisecond

// startResizeListener sets up a SIGWINCH handler that calls the
// resize callback with the new terminal dimensions.
func (t *ProcessTerminal) startResizeListener() {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, syscall.SIGWINCH)

	t.mu.Lock()
	t.stopSig = func() {
		signal.Stop(sigCh)
		close(done)
	}
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-done:
				return
			case <-sigCh:
			}

			t.mu.Lock()
			fn := t.resizeFn
			t.mu.Unlock()

			if fn == nil {
				continue
			}

			w, h, err := t.Size()
			if err != nil {
				continue
			}
			fn(w, h)
		}
	}()
}

// Read waits for input with unix.Poll, re-checking ctx between polls.
func (t *ProcessTerminal) Read(ctx context.Context, p []byte) (int, error) {
	fd := int(t.in.Fd())
	timeout := int(inputPollInterval / time.Millisecond)

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		fds := []unix.PollFd{{
			Fd:     int32(fd),
			Events: unix.POLLIN | unix.POLLHUP | unix.POLLERR,
		}}
		n, err := unix.Poll(fds, timeout)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("polling terminal input: %w", err)
		}
		if n == 0 {
			continue
		}

		revents := fds[0].Revents
		if revents&unix.POLLNVAL != 0 {
			return 0, unix.EBADF
		}
		if revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
			continue
		}

		for {
			n, err := unix.Read(fd, p)
			if err == unix.EINTR {
				continue
			}
			if err == unix.EAGAIN {
				break
			}
			if err != nil {
				return 0, fmt.Errorf("reading terminal input: %w", err)
			}
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
	}
}
