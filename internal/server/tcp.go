package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap"

	"github.com/JakeFAU/flagfetch/internal/index"
	"github.com/JakeFAU/flagfetch/internal/metrics"
)

const (
	prompt = "?> "
	crlf   = "\r\n"
)

var statusRule = strings.Repeat("-", 66)

// TCPServer answers index queries over a line-oriented dialog: it writes a
// prompt, reads one query per line, and streams the matching characters back.
type TCPServer struct {
	index  *index.Index
	logger *zap.Logger
}

// NewTCPServer constructs a TCPServer over the given index.
func NewTCPServer(ix *index.Index, logger *zap.Logger) *TCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TCPServer{index: ix, logger: logger}
}

// Serve accepts connections until ctx is done, handling each dialog on its
// own goroutine. The listener is closed on cancellation to unblock Accept.
func (s *TCPServer) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()
	s.logger.Info("tcp server listening", zap.String("addr", ln.Addr().String()))
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.handle(conn)
	}
}

// handle runs one dialog. The session ends when the client disconnects or
// sends a line starting with a control character.
func (s *TCPServer) handle(conn net.Conn) {
	defer conn.Close() //nolint:errcheck // session teardown
	peer := conn.RemoteAddr().String()
	s.logger.Debug("session opened", zap.String("peer", peer))

	reader := bufio.NewReader(conn)
	for {
		if _, err := fmt.Fprint(conn, prompt); err != nil {
			break
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		if query[0] < 32 {
			break
		}
		count := s.answer(conn, query)
		s.logger.Debug("query answered",
			zap.String("peer", peer),
			zap.String("query", query),
			zap.Int("results", count),
		)
	}
	s.logger.Debug("session closed", zap.String("peer", peer))
}

func (s *TCPServer) answer(conn net.Conn, query string) int {
	metrics.ObserveSearchQuery()
	runes := s.index.Search(query)
	var b strings.Builder
	for _, r := range runes {
		b.WriteString(index.FormatLine(r))
		b.WriteString(crlf)
	}
	fmt.Fprintf(&b, "%s %d found%s", statusRule, len(runes), crlf)
	_, _ = conn.Write([]byte(b.String()))
	return len(runes)
}
