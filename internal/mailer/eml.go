package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/shiftjournal/internal/filex"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

var timeNow = time.Now

func parseAddresses(list []string) ([]*mail.Address, error) {
	addrs := make([]*mail.Address, 0, len(list))
	for _, s := range list {
		a, err := mail.ParseAddress(s)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", s, err)
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}

// WriteEML writes msg as an RFC 5322 message flagged X-Unsent, which mail
// clients open as an editable draft.
func WriteEML(w io.Writer, msg *Message) error {
	to, err := parseAddresses(msg.To)
	if err != nil {
		return err
	}
	cc, err := parseAddresses(msg.Cc)
	if err != nil {
		return err
	}

	var h mail.Header
	h.Set("X-Unsent", "1")
	h.SetDate(timeNow())
	h.SetMessageID(uuid.NewString() + "@shiftjournal")
	h.SetAddressList("To", to)
	h.SetAddressList("Cc", cc)
	h.SetSubject(msg.Subject)
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "base64")

	body, err := mail.CreateSingleInlineWriter(w, h)
	if err != nil {
		return fmt.Errorf("eml header: %w", err)
	}
	if _, err := io.WriteString(body, msg.HTMLBody); err != nil {
		return fmt.Errorf("eml body: %w", err)
	}
	return body.Close()
}

// EMLDrafter saves the draft as an .eml file in Dir and opens it with the
// system mail client.
type EMLDrafter struct {
	Dir string
}

func (d *EMLDrafter) Draft(_ context.Context, msg *Message) (string, error) {
	var buf bytes.Buffer
	if err := WriteEML(&buf, msg); err != nil {
		return "", err
	}

	name := fmt.Sprintf("draft-%s.eml", timeNow().Format("20060102-150405"))
	path := filepath.Join(d.Dir, name)
	if err := filex.WriteFileAtomic(path, buf.Bytes(), 0o600); err != nil {
		return "", err
	}

	if err := openFn(path); err != nil {
		return path, fmt.Errorf("open draft %s: %w", path, err)
	}
	return path, nil
}
