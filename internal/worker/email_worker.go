package worker

// email_worker.go
// Processes email jobs from QueueEmail: sends purchase-order documents to
// vendors via SMTP, through the mail circuit breaker.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail    string `json:"toEmail"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	AttachPath string `json:"attachPath,omitempty"`
}

// Sender delivers one message. *infra.Mailer implements it.
type Sender interface {
	SendDocument(to, subject, body, attachPath string) error
}

type EmailWorker struct {
	sender    Sender
	cb        *infra.CircuitBreaker
	attempts  int
	retryBase time.Duration
}

func NewEmailWorker(sender Sender, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{sender: sender, cb: cb, attempts: 3, retryBase: time.Second}
}

// Process sends the email, retrying with backoff. Attempts rejected by an open
// breaker fail fast.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty toEmail, skipping")
		return nil
	}

	err := withRetry(ctx, w.attempts, w.retryBase, func(attempt int) error {
		err := w.cb.Execute(func() error {
			return w.sender.SendDocument(payload.ToEmail, payload.Subject, payload.Body, payload.AttachPath)
		})
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Str("to", payload.ToEmail).Msg("email_worker: send failed")
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("email_worker: %w", err)
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: email sent")
	return nil
}
