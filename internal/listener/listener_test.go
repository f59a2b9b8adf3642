package listener

import (
	"strings"
	"testing"
	"time"

	"relaybot/internal/domain"
)

func TestNewAdminSet(t *testing.T) {
	a := NewAdminSet([]string{"123", " 456 ", "not-a-number", ""})
	if a.Len() != 2 {
		t.Fatalf("expected 2 admins, got %d", a.Len())
	}
	if !a.Contains(123) || !a.Contains(456) {
		t.Error("parsed IDs must be members")
	}
	if a.Contains(789) {
		t.Error("unknown ID must not be a member")
	}
}

func TestNewAdminSet_Empty(t *testing.T) {
	a := NewAdminSet(nil)
	if a.Len() != 0 {
		t.Fatalf("expected empty set, got %d", a.Len())
	}
	if a.Contains(1) {
		t.Error("empty set must contain nobody")
	}
}

func TestStartReply(t *testing.T) {
	got := startReply("Alice")
	if !strings.Contains(got, "Hello, Alice!") {
		t.Errorf("greeting must address the user, got %q", got)
	}
	if !strings.Contains(got, "/help") || !strings.Contains(got, "/info") {
		t.Error("greeting must list the available commands")
	}
}

func TestHelpReply(t *testing.T) {
	got := helpReply()
	for _, want := range []string{"<b>Bot Guide</b>", "Edit messages", "Delete messages"} {
		if !strings.Contains(got, want) {
			t.Errorf("help reply missing %q", want)
		}
	}
}

func TestInfoReply(t *testing.T) {
	self := domain.SelfInfo{ID: 42, Username: "relay_bot", FirstName: "Relay"}
	got := infoReply(self, 17, 3)
	for _, want := range []string{"@relay_bot", "<code>42</code>", "Messages sent: 17", "Admins: 3"} {
		if !strings.Contains(got, want) {
			t.Errorf("info reply missing %q:\n%s", want, got)
		}
	}
}

func TestStatsReply(t *testing.T) {
	when := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	latest := &domain.Outcome{MessageID: 9, Target: "-100999", Time: when}
	last := []domain.Outcome{
		{MessageID: 8, Target: "-100888", Time: when.Add(-time.Minute)},
		{MessageID: 9, Target: "-100999", Time: when},
	}

	got := statsReply(12, latest, 2, last)
	for _, want := range []string{
		"Total messages sent: 12",
		"Last message: 2025-06-01T12:00:00Z",
		"Admins: 2",
		"Last 2 messages:",
		"• 2025-06-01T12:00:00Z - -100999",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("stats reply missing %q:\n%s", want, got)
		}
	}
}

func TestStatsReply_EmptyLog(t *testing.T) {
	got := statsReply(0, nil, 0, nil)
	if !strings.Contains(got, "Last message: none yet") {
		t.Errorf("empty log must report no last message:\n%s", got)
	}
	if !strings.Contains(got, "Last 0 messages:") {
		t.Errorf("empty log must report zero recent messages:\n%s", got)
	}
}
