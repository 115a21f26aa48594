package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DefaultRecorderCommand streams raw 16 kHz mono S16_LE audio to stdout.
var DefaultRecorderCommand = []string{"arecord", "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "raw"}

// Source produces a raw PCM stream until the context is cancelled or the
// stream is closed.
type Source interface {
	Start(ctx context.Context) (io.ReadCloser, error)
}

// CommandSource runs an external recorder and reads its stdout.
type CommandSource struct {
	Args []string
}

func NewCommandSource(args []string) *CommandSource {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		args = DefaultRecorderCommand
	}
	return &CommandSource{Args: args}
}

var execCommand = exec.CommandContext

func (s *CommandSource) Start(ctx context.Context) (io.ReadCloser, error) {
	args := s.Args
	if len(args) == 0 {
		return nil, errors.New("recorder command is empty")
	}

	cmd := execCommand(ctx, args[0], args[1:]...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting recorder %q: %w", args[0], err)
	}
	return &cmdStream{ReadCloser: out, cmd: cmd}, nil
}

type cmdStream struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (s *cmdStream) Close() error {
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.ReadCloser.Close()
	_ = s.cmd.Wait()
	return nil
}

// ReadChunk reads up to ChunkFrames samples. It returns io.EOF only when no
// samples were read.
func ReadChunk(r io.Reader) ([]int16, error) {
	buf := make([]byte, ChunkFrames*2)
	n, err := io.ReadAtLeast(r, buf, 2)
	if n >= 2 {
		return DecodePCM(buf[:n]), nil
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return nil, err
}
