package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"relaybot/internal/audit"
	"relaybot/internal/domain"
)

// fakeGateway counts calls per operation and fails targets listed in fail.
type fakeGateway struct {
	textCalls   int
	photoCalls  int
	videoCalls  int
	editCalls   int
	deleteCalls int

	fail   map[string]string // target -> error message
	nextID int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{fail: make(map[string]string)}
}

func (g *fakeGateway) ack(target string) (domain.SentMessage, error) {
	if msg, ok := g.fail[target]; ok {
		return domain.SentMessage{}, errors.New(msg)
	}
	g.nextID++
	return domain.SentMessage{MessageID: g.nextID, ChatID: 42, Date: time.Now()}, nil
}

func (g *fakeGateway) SendText(_ context.Context, target, _, _ string, _ bool) (domain.SentMessage, error) {
	g.textCalls++
	return g.ack(target)
}

func (g *fakeGateway) SendPhoto(_ context.Context, target, _, _, _ string, _ bool) (domain.SentMessage, error) {
	g.photoCalls++
	return g.ack(target)
}

func (g *fakeGateway) SendVideo(_ context.Context, target, _, _, _ string, _ bool) (domain.SentMessage, error) {
	g.videoCalls++
	return g.ack(target)
}

func (g *fakeGateway) EditText(_ context.Context, target string, _ int, _, _ string) error {
	g.editCalls++
	if msg, ok := g.fail[target]; ok {
		return errors.New(msg)
	}
	return nil
}

func (g *fakeGateway) DeleteMessage(_ context.Context, target string, _ int) error {
	g.deleteCalls++
	if msg, ok := g.fail[target]; ok {
		return errors.New(msg)
	}
	return nil
}

func (g *fakeGateway) SelfInfo(context.Context) (domain.SelfInfo, error) {
	return domain.SelfInfo{ID: 1, Username: "relay_bot", FirstName: "Relay"}, nil
}

func (g *fakeGateway) ChatInfo(_ context.Context, target string) (domain.ChatInfo, error) {
	return domain.ChatInfo{ID: 42, Type: "supergroup", Title: "Test"}, nil
}

func (g *fakeGateway) ChatMemberCount(context.Context, string) (int, error) {
	return 7, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine() (*Engine, *fakeGateway, *audit.MemoryLog) {
	gw := newFakeGateway()
	log := audit.NewMemoryLog(0)
	return NewEngine(gw, log, testLogger()), gw, log
}

func TestSend_TextPath(t *testing.T) {
	ctx := context.Background()
	e, gw, log := newTestEngine()

	receipt, err := e.Send(ctx, domain.NewSendIntent("-1001234", "hello", "", "", "", false))
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if gw.textCalls != 1 || gw.photoCalls != 0 || gw.videoCalls != 0 {
		t.Fatalf("expected exactly one text call, got text=%d photo=%d video=%d",
			gw.textCalls, gw.photoCalls, gw.videoCalls)
	}
	if receipt.Outcome.Kind != domain.KindText {
		t.Errorf("expected kind text, got %s", receipt.Outcome.Kind)
	}
	if n, _ := log.Count(ctx); n != 1 {
		t.Errorf("expected audit count 1, got %d", n)
	}
}

func TestSend_PhotoPathWinsWhenBothGiven(t *testing.T) {
	ctx := context.Background()
	e, gw, _ := newTestEngine()

	receipt, err := e.Send(ctx, domain.NewSendIntent("@chan", "caption", "p.jpg", "v.mp4", "", false))
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if gw.photoCalls != 1 {
		t.Fatalf("expected one photo call, got %d", gw.photoCalls)
	}
	if gw.videoCalls != 0 {
		t.Fatal("video path must never be invoked when a photo is present")
	}
	if receipt.Outcome.Kind != domain.KindPhoto {
		t.Errorf("expected kind photo, got %s", receipt.Outcome.Kind)
	}
}

func TestSend_VideoPath(t *testing.T) {
	ctx := context.Background()
	e, gw, _ := newTestEngine()

	receipt, err := e.Send(ctx, domain.NewSendIntent("@chan", "caption", "", "v.mp4", "", false))
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if gw.videoCalls != 1 || gw.photoCalls != 0 {
		t.Fatalf("expected one video call, got video=%d photo=%d", gw.videoCalls, gw.photoCalls)
	}
	if receipt.Outcome.Kind != domain.KindVideo {
		t.Errorf("expected kind video, got %s", receipt.Outcome.Kind)
	}
}

func TestSend_GatewayFailureNotAudited(t *testing.T) {
	ctx := context.Background()
	e, gw, log := newTestEngine()
	gw.fail["bad-target"] = "chat not found"

	_, err := e.Send(ctx, domain.NewSendIntent("bad-target", "hello", "", "", "", false))
	if err == nil {
		t.Fatal("expected gateway error")
	}
	if err.Error() != "chat not found" {
		t.Errorf("gateway error must be surfaced verbatim, got %q", err.Error())
	}
	if n, _ := log.Count(ctx); n != 0 {
		t.Errorf("failed dispatch must not be audited, count=%d", n)
	}
}

func TestEditAndDelete_NotAudited(t *testing.T) {
	ctx := context.Background()
	e, gw, log := newTestEngine()

	if err := e.Edit(ctx, domain.EditIntent{Target: "@chan", MessageID: 5, Body: "new", ParseMode: "HTML"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := e.Delete(ctx, domain.DeleteIntent{Target: "@chan", MessageID: 5}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gw.editCalls != 1 || gw.deleteCalls != 1 {
		t.Fatalf("expected one edit and one delete, got edit=%d delete=%d", gw.editCalls, gw.deleteCalls)
	}
	if n, _ := log.Count(ctx); n != 0 {
		t.Errorf("edit/delete must not be audited, count=%d", n)
	}
}

func TestEdit_NotFoundSurfaced(t *testing.T) {
	ctx := context.Background()
	e, gw, log := newTestEngine()
	gw.fail["@chan"] = "message to edit not found"

	err := e.Edit(ctx, domain.EditIntent{Target: "@chan", MessageID: 999, Body: "new", ParseMode: "HTML"})
	if err == nil {
		t.Fatal("expected edit failure")
	}
	if n, _ := log.Count(ctx); n != 0 {
		t.Errorf("audit count must be unchanged, got %d", n)
	}
}
