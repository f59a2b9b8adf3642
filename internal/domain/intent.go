package domain

// DefaultParseMode is applied when a request does not specify a markup mode.
const DefaultParseMode = "HTML"

// MediaKind tags the payload variant of a SendIntent. The tag is decided once,
// at the API boundary, so the dispatch engine switches on a closed set instead
// of re-deriving the variant from optional fields.
type MediaKind string

const (
	KindText  MediaKind = "text"
	KindPhoto MediaKind = "photo"
	KindVideo MediaKind = "video"
)

// SendIntent is one normalized outbound message request.
type SendIntent struct {
	Target    string // chat/channel destination: numeric ID or @handle
	Body      string // message text, or caption when media is attached
	Kind      MediaKind
	MediaRef  string // photo or video reference (URL or file ID); empty for KindText
	ParseMode string
	Silent    bool // suppress the delivery notification
}

// NewSendIntent normalizes raw request fields into a SendIntent.
// When both a photo and a video reference are present, photo wins.
func NewSendIntent(target, body, photoRef, videoRef, parseMode string, silent bool) SendIntent {
	if parseMode == "" {
		parseMode = DefaultParseMode
	}
	in := SendIntent{
		Target:    target,
		Body:      body,
		Kind:      KindText,
		ParseMode: parseMode,
		Silent:    silent,
	}
	switch {
	case photoRef != "":
		in.Kind = KindPhoto
		in.MediaRef = photoRef
	case videoRef != "":
		in.Kind = KindVideo
		in.MediaRef = videoRef
	}
	return in
}

// EditIntent replaces the text of an existing message.
type EditIntent struct {
	Target    string
	MessageID int
	Body      string
	ParseMode string
}

// DeleteIntent removes an existing message.
type DeleteIntent struct {
	Target    string
	MessageID int
}
