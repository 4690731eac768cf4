package loggen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type Sender struct {
	url    string
	client *http.Client
}

func NewSender(url string, timeout time.Duration) *Sender {
	return &Sender{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *Sender) Send(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}

// Run sends n generated payloads, pausing delay between them. It stops at the
// first failure.
func Run(ctx context.Context, g *Generator, s *Sender, n int, delay time.Duration) (int, error) {
	for i := 0; i < n; i++ {
		p := g.Next()
		if err := s.Send(ctx, p); err != nil {
			return i, fmt.Errorf("send #%d: %w", i+1, err)
		}
		log.WithFields(log.Fields{
			"service": p.Service,
			"level":   p.Level,
		}).Debug("Log sent")

		if delay > 0 && i < n-1 {
			select {
			case <-ctx.Done():
				return i + 1, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return n, nil
}
