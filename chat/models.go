package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message roles as stored on the wire
const (
	RoleHuman     = "human"
	RoleAssistant = "ai"
)

const (
	// DefaultBotID is the reserved id of the always-present default bot
	DefaultBotID = "default"

	// PlaceholderTitle is the title of a conversation before its first message
	PlaceholderTitle = "New Chat"

	// TitleMaxRunes is the derived-title truncation point
	TitleMaxRunes = 20

	// InstructionsSoftLimit is the advisory cap on bot instructions. It is
	// surfaced for UI feedback only, never enforced as an error.
	InstructionsSoftLimit = 2000
)

// Conversation is a titled, ordered log of messages tied to a model and
// optionally a bot
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Model     string    `json:"model"`
	BotID     string    `json:"botId,omitempty"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is one entry in a conversation log. Immutable once appended;
// ordering is by append position, not timestamp.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Model     string    `json:"model,omitempty"` // assistant messages only
}

// Bot is a named persona whose instructions and file attachments shape
// response context
type Bot struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Avatar       string   `json:"avatar"`
	Description  string   `json:"description"`
	Instructions string   `json:"instructions"`
	DefaultModel string   `json:"defaultModel"`
	Files        []string `json:"files"`
}

// InstructionsOverLimit reports whether the bot's instructions exceed the
// advisory length cap
func (b *Bot) InstructionsOverLimit() bool {
	return len([]rune(b.Instructions)) > InstructionsSoftLimit
}

// FileRecord is stored metadata plus content for one uploaded file. Content
// is filled in asynchronously after registration, so a record can exist with
// an empty payload.
type FileRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"type"`
	Size      int64     `json:"size"`
	DateAdded time.Time `json:"dateAdded"`
	Content   string    `json:"content,omitempty"`
}

// newID builds a collision-resistant id from the creation instant plus a
// random suffix, e.g. "file_1756689000123_3f9c2d1a"
func newID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
