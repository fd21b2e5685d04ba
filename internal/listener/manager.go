package listener

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-mudcore/internal/display"
)

const maxNameTries = 5

// AcceptConnection runs a line-oriented session (telnet, ssh) until the client
// goes away.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	err := m.runLineSession(ctx, conn)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		slog.WarnContext(ctx, "line session", "error", err)
	}
}

func (m *ConnectionManager) runLineSession(ctx context.Context, conn io.ReadWriter) error {
	br := bufio.NewReader(conn)

	s, err := m.login(ctx, conn, br)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go m.writeLoop(ctx, conn, s)

	for {
		line, err := br.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if cerr := s.Command(ctx, line); cerr != nil {
				return cerr
			}
		}
		if err != nil {
			return err
		}
	}
}

func (m *ConnectionManager) login(ctx context.Context, conn io.ReadWriter, br *bufio.Reader) (*Session, error) {
	for range maxNameTries {
		name, err := Prompt(conn, br, "By what name do you wish to be known? ",
			WithMaxTries(maxNameTries),
			WithValidator(func(str string) (bool, string) {
				if ValidateName(str) != nil {
					return false, fmt.Sprintf("Invalid name, please use 1 to %d letters.\n", MaxNameLength)
				}
				return true, ""
			}),
		)
		if err != nil {
			return nil, err
		}

		s, err := m.Open(ctx, name)
		if errors.Is(err, ErrRejected) {
			io.WriteString(conn, "That name cannot be used right now.\n")
			continue
		}
		return s, err
	}
	return nil, ErrTooManyTries
}

func (m *ConnectionManager) writeLoop(ctx context.Context, w io.Writer, s *Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.Done():
			return
		case p := <-s.Payloads():
			if _, err := io.WriteString(w, display.Render(p, m.width)); err != nil {
				slog.WarnContext(ctx, "writing to session", "session", s.Id, "error", err)
				return
			}
		}
	}
}
