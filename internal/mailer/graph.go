package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/shiftjournal/internal/filex"
	"golang.org/x/oauth2"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

var graphScopes = []string{
	"https://graph.microsoft.com/Mail.ReadWrite",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// GraphDrafter creates the draft in the user's Exchange mailbox through
// Microsoft Graph and opens it in Outlook on the web.
type GraphDrafter struct {
	TenantID  string
	ClientID  string
	TokenPath string
	// Prompt receives the device-code sign-in instructions.
	Prompt io.Writer

	baseURL    string
	httpClient func(ctx context.Context) (*http.Client, error)
}

func NewGraphDrafter(tenantID, clientID, tokenPath string, prompt io.Writer) *GraphDrafter {
	d := &GraphDrafter{TenantID: tenantID, ClientID: clientID, TokenPath: tokenPath, Prompt: prompt, baseURL: graphBaseURL}
	d.httpClient = d.authorizedClient
	return d
}

func (d *GraphDrafter) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID: d.ClientID,
		Scopes:   graphScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(d.TenantID, "devicecode"),
			TokenURL:      msEndpoint(d.TenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

func (d *GraphDrafter) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(d.TokenPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, nil
	}
	return &tok, nil
}

func (d *GraphDrafter) saveToken(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return filex.WriteFileAtomic(d.TokenPath, data, 0o600)
}

// savingTokenSource persists every token it hands out, so refreshes survive
// restarts.
type savingTokenSource struct {
	ts   oauth2.TokenSource
	save func(*oauth2.Token) error
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	_ = s.save(tok)
	return tok, nil
}

func (d *GraphDrafter) authorizedClient(ctx context.Context) (*http.Client, error) {
	cfg := d.oauth2Config()

	tok, err := d.loadToken()
	if err != nil {
		return nil, err
	}

	if tok == nil || (!tok.Valid() && tok.RefreshToken == "") {
		resp, err := cfg.DeviceAuth(ctx)
		if err != nil {
			return nil, fmt.Errorf("device auth request failed: %w", err)
		}
		if d.Prompt != nil {
			fmt.Fprintf(d.Prompt, "To sign in, open %s and enter the code %s\n", resp.VerificationURI, resp.UserCode)
		}
		tok, err = cfg.DeviceAccessToken(ctx, resp)
		if err != nil {
			return nil, fmt.Errorf("device authentication failed: %w", err)
		}
		if err := d.saveToken(tok); err != nil {
			return nil, err
		}
	}

	ts := &savingTokenSource{ts: cfg.TokenSource(ctx, tok), save: d.saveToken}
	return oauth2.NewClient(ctx, ts), nil
}

type graphRecipient struct {
	EmailAddress struct {
		Address string `json:"address"`
	} `json:"emailAddress"`
}

func recipients(addrs []string) []graphRecipient {
	out := make([]graphRecipient, 0, len(addrs))
	for _, a := range addrs {
		var r graphRecipient
		r.EmailAddress.Address = a
		out = append(out, r)
	}
	return out
}

type graphMessage struct {
	Subject string `json:"subject"`
	Body    struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
	ToRecipients []graphRecipient `json:"toRecipients"`
	CcRecipients []graphRecipient `json:"ccRecipients"`
}

func (d *GraphDrafter) Draft(ctx context.Context, msg *Message) (string, error) {
	client, err := d.httpClient(ctx)
	if err != nil {
		return "", err
	}

	var gm graphMessage
	gm.Subject = msg.Subject
	gm.Body.ContentType = "HTML"
	gm.Body.Content = msg.HTMLBody
	gm.ToRecipients = recipients(msg.To)
	gm.CcRecipients = recipients(msg.Cc)

	payload, err := json.Marshal(gm)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/me/messages", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("graph create draft: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("graph create draft: status %d: %s", resp.StatusCode, body)
	}

	var created struct {
		ID      string `json:"id"`
		WebLink string `json:"webLink"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decoding graph response: %w", err)
	}

	if created.WebLink != "" {
		if err := openFn(created.WebLink); err != nil {
			return created.WebLink, fmt.Errorf("open draft: %w", err)
		}
	}
	return created.WebLink, nil
}
