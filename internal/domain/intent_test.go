package domain

import "testing"

func TestNewSendIntent_TextOnly(t *testing.T) {
	in := NewSendIntent("-1001234", "hello", "", "", "", false)
	if in.Kind != KindText {
		t.Fatalf("expected text kind, got %s", in.Kind)
	}
	if in.MediaRef != "" {
		t.Errorf("text intent should carry no media ref, got %q", in.MediaRef)
	}
}

func TestNewSendIntent_Photo(t *testing.T) {
	in := NewSendIntent("@chan", "caption", "https://example.com/a.jpg", "", "", false)
	if in.Kind != KindPhoto {
		t.Fatalf("expected photo kind, got %s", in.Kind)
	}
	if in.MediaRef != "https://example.com/a.jpg" {
		t.Errorf("unexpected media ref: %q", in.MediaRef)
	}
}

func TestNewSendIntent_Video(t *testing.T) {
	in := NewSendIntent("@chan", "caption", "", "https://example.com/a.mp4", "", false)
	if in.Kind != KindVideo {
		t.Fatalf("expected video kind, got %s", in.Kind)
	}
}

func TestNewSendIntent_PhotoWinsOverVideo(t *testing.T) {
	in := NewSendIntent("@chan", "caption", "photo.jpg", "video.mp4", "", false)
	if in.Kind != KindPhoto {
		t.Fatalf("photo must take precedence, got %s", in.Kind)
	}
	if in.MediaRef != "photo.jpg" {
		t.Errorf("expected photo ref, got %q", in.MediaRef)
	}
}

func TestNewSendIntent_DefaultParseMode(t *testing.T) {
	in := NewSendIntent("@chan", "hi", "", "", "", false)
	if in.ParseMode != DefaultParseMode {
		t.Errorf("expected default parse mode %q, got %q", DefaultParseMode, in.ParseMode)
	}

	in = NewSendIntent("@chan", "hi", "", "", "MarkdownV2", false)
	if in.ParseMode != "MarkdownV2" {
		t.Errorf("explicit parse mode must be kept, got %q", in.ParseMode)
	}
}
