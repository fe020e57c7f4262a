package scpi

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/specialistvlad/k2700go/internal/ctxlog"
)

// Transmitted lines end in CRLF; the instrument ends its responses with LF.
const (
	writeTerminator = "\r\n"
	readTerminator  = '\n'
)

// Conn is a line-framed SCPI connection over an arbitrary byte stream.
// All operations are serialized with an internal mutex so a query's
// response can never be interleaved with another command.
type Conn struct {
	mu     sync.Mutex
	rwc    io.ReadWriteCloser
	reader *bufio.Reader
	closed bool
}

// NewConn wraps an open byte stream in a SCPI connection.
func NewConn(rwc io.ReadWriteCloser) *Conn {
	return &Conn{
		rwc:    rwc,
		reader: bufio.NewReader(rwc),
	}
}

// ioResult passes a read outcome through the done channel.
type ioResult struct {
	line string
	err  error
}

// Write sends a single command, appending the CRLF terminator.
func (c *Conn) Write(ctx context.Context, cmd string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(ctx, cmd)
}

func (c *Conn) writeLocked(ctx context.Context, cmd string) error {
	if c.closed {
		return ErrConnClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("SCPI write.", "cmd", cmd)
	if _, err := io.WriteString(c.rwc, cmd+writeTerminator); err != nil {
		return fmt.Errorf("failed to write command %q: %w", cmd, err)
	}
	return nil
}

// Query sends a command and waits for the single-line response. If the
// context expires before the instrument answers, the underlying stream is
// closed to unblock the pending read and the context error is returned.
func (c *Conn) Query(ctx context.Context, cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.writeLocked(ctx, cmd); err != nil {
		return "", err
	}

	done := make(chan ioResult, 1)
	go func() {
		line, err := c.reader.ReadString(readTerminator)
		done <- ioResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		// The blocked read holds no locks; closing the stream releases it.
		c.closed = true
		c.rwc.Close()
		return "", fmt.Errorf("query %q interrupted: %w", cmd, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("failed to read response to %q: %w", cmd, res.err)
		}
		response := strings.TrimRight(res.line, "\r\n")
		ctxlog.FromContext(ctx).Debug("SCPI query answered.", "cmd", cmd, "response", response)
		return response, nil
	}
}

// Close shuts down the underlying stream. It is safe to call twice.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rwc.Close()
}
