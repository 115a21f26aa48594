// Package mailer turns a shift report into a mail draft the user reviews
// and sends themselves. Nothing is ever sent automatically.
package mailer

import (
	"context"
	"os/exec"
	"runtime"
)

// Message is an HTML mail draft.
type Message struct {
	To       []string
	Cc       []string
	Subject  string
	HTMLBody string
}

// Drafter creates a draft and returns where it lives: a file path or a
// web link.
type Drafter interface {
	Draft(ctx context.Context, msg *Message) (string, error)
}

// openFn hands a file or URL to the desktop.
var openFn = func(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	case "darwin":
		cmd = exec.Command("open", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	return cmd.Start()
}
