// Package dispatch translates normalized intents into Gateway calls and
// records successful sends in the audit log.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"relaybot/internal/audit"
	"relaybot/internal/domain"
	"relaybot/internal/metrics"
)

// Engine performs single send/edit/delete dispatches. Gateway errors are
// returned untouched: no retry, no backoff, no classification.
type Engine struct {
	gw     domain.Gateway
	log    audit.Log
	logger *slog.Logger
}

func NewEngine(gw domain.Gateway, log audit.Log, logger *slog.Logger) *Engine {
	return &Engine{gw: gw, log: log, logger: logger}
}

// Receipt pairs the audit outcome of a send with the platform's
// acknowledgement, which carries the resolved numeric chat ID and the
// platform-reported send time.
type Receipt struct {
	Outcome domain.Outcome
	Sent    domain.SentMessage
}

// Send invokes exactly one Gateway operation, selected by the intent's media
// tag, and appends an outcome to the audit log on success only.
func (e *Engine) Send(ctx context.Context, in domain.SendIntent) (Receipt, error) {
	var sent domain.SentMessage
	var err error

	switch in.Kind {
	case domain.KindPhoto:
		sent, err = e.gw.SendPhoto(ctx, in.Target, in.MediaRef, in.Body, in.ParseMode, in.Silent)
	case domain.KindVideo:
		sent, err = e.gw.SendVideo(ctx, in.Target, in.MediaRef, in.Body, in.ParseMode, in.Silent)
	default:
		sent, err = e.gw.SendText(ctx, in.Target, in.Body, in.ParseMode, in.Silent)
	}
	if err != nil {
		metrics.DispatchFailures.Inc()
		e.logger.Error("send failed", "chat_id", in.Target, "kind", in.Kind, "err", err)
		return Receipt{}, err
	}

	out := domain.Outcome{
		MessageID: sent.MessageID,
		Target:    in.Target,
		Body:      in.Body,
		Kind:      in.Kind,
		Time:      time.Now(),
	}
	if aerr := e.log.Append(ctx, out); aerr != nil {
		// The send already happened; losing the audit entry is logged, not fatal.
		e.logger.Error("audit append failed", "chat_id", in.Target, "err", aerr)
	} else {
		metrics.AuditEntries.Inc()
	}
	metrics.DispatchTotal.Inc()

	e.logger.Info("message sent", "chat_id", in.Target, "message_id", sent.MessageID, "kind", in.Kind)
	return Receipt{Outcome: out, Sent: sent}, nil
}

// Edit replaces a message's text. Edits are not audited.
func (e *Engine) Edit(ctx context.Context, in domain.EditIntent) error {
	if err := e.gw.EditText(ctx, in.Target, in.MessageID, in.Body, in.ParseMode); err != nil {
		e.logger.Error("edit failed", "chat_id", in.Target, "message_id", in.MessageID, "err", err)
		return err
	}
	e.logger.Info("message edited", "chat_id", in.Target, "message_id", in.MessageID)
	return nil
}

// Delete removes a message. Deletes are not audited.
func (e *Engine) Delete(ctx context.Context, in domain.DeleteIntent) error {
	if err := e.gw.DeleteMessage(ctx, in.Target, in.MessageID); err != nil {
		e.logger.Error("delete failed", "chat_id", in.Target, "message_id", in.MessageID, "err", err)
		return err
	}
	e.logger.Info("message deleted", "chat_id", in.Target, "message_id", in.MessageID)
	return nil
}
