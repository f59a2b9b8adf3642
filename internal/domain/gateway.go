package domain

import (
	"context"
	"time"
)

// SentMessage is the platform's acknowledgement of a successful send. It
// carries the resolved numeric chat ID, which may differ from the target
// string the caller supplied (e.g. an @handle).
type SentMessage struct {
	MessageID int
	ChatID    int64
	Date      time.Time
}

// SelfInfo describes the bot's own platform identity.
type SelfInfo struct {
	ID                      int64
	Username                string
	FirstName               string
	CanJoinGroups           bool
	CanReadAllGroupMessages bool
	SupportsInlineQueries   bool
}

// ChatInfo describes a chat, group, or channel.
type ChatInfo struct {
	ID          int64
	Title       string
	Username    string
	Type        string
	Description string
}

// Gateway is the external messaging platform's RPC surface. Errors are
// surfaced verbatim to callers; the platform itself is the source of truth
// for target and media validation.
type Gateway interface {
	SendText(ctx context.Context, target, text, parseMode string, silent bool) (SentMessage, error)
	SendPhoto(ctx context.Context, target, photoRef, caption, parseMode string, silent bool) (SentMessage, error)
	SendVideo(ctx context.Context, target, videoRef, caption, parseMode string, silent bool) (SentMessage, error)
	EditText(ctx context.Context, target string, messageID int, text, parseMode string) error
	DeleteMessage(ctx context.Context, target string, messageID int) error
	SelfInfo(ctx context.Context) (SelfInfo, error)
	ChatInfo(ctx context.Context, target string) (ChatInfo, error)
	ChatMemberCount(ctx context.Context, target string) (int, error)
}
