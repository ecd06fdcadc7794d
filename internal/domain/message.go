package domain

// Sender tags a transcript entry as authored by the end user or the bot.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single transcript entry. The transcript is append-only and
// lives for one widget session; it is never persisted.
type Message struct {
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}
