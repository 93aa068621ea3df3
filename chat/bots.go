package chat

import (
	"strings"

	"ai-chat-client/utils"
)

// BotRegistry owns the set of bot personas and the current-bot pointer.
// The default bot always exists; user-created bots are appended after it.
type BotRegistry struct {
	gw        *Gateway
	files     *FileStore
	bots      []*Bot
	currentID string
}

// NewBotRegistry loads persisted bots and guarantees the default one exists
func NewBotRegistry(gw *Gateway, files *FileStore) *BotRegistry {
	r := &BotRegistry{
		gw:        gw,
		files:     files,
		bots:      gw.LoadBots(),
		currentID: DefaultBotID,
	}
	r.EnsureDefault()
	return r
}

// EnsureDefault creates the default bot when the collection is empty or was
// never persisted. Safe to call on every startup.
func (r *BotRegistry) EnsureDefault() {
	if len(r.bots) > 0 {
		return
	}
	r.bots = []*Bot{{
		ID:           DefaultBotID,
		Name:         "Default AI",
		Avatar:       "AI",
		Description:  "General purpose assistant",
		Instructions: "",
		DefaultModel: "claude-3-7-sonnet",
		Files:        []string{},
	}}
	r.gw.SaveBots(r.bots)
}

// Create appends a new user bot. Name is required; description falls back to
// a generic one as the original UI did.
func (r *BotRegistry) Create(name, avatar, description, instructions, defaultModel string) (*Bot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "bot name", Reason: "must not be empty"}
	}
	if description == "" {
		description = "Custom chatbot"
	}

	bot := &Bot{
		ID:           newID("bot"),
		Name:         name,
		Avatar:       avatar,
		Description:  description,
		Instructions: instructions,
		DefaultModel: defaultModel,
		Files:        []string{},
	}
	r.bots = append(r.bots, bot)
	r.gw.SaveBots(r.bots)
	return bot, nil
}

// Get returns the bot for id, if present
func (r *BotRegistry) Get(id string) (*Bot, bool) {
	for _, bot := range r.bots {
		if bot.ID == id {
			return bot, true
		}
	}
	return nil, false
}

// SetCurrent moves the current-bot pointer. A stale id is tolerated;
// Current resolves it to the default bot.
func (r *BotRegistry) SetCurrent(id string) {
	r.currentID = id
}

// Current returns the bot the pointer designates, falling back to the
// default bot when the tracked id no longer resolves
func (r *BotRegistry) Current() *Bot {
	if bot, ok := r.Get(r.currentID); ok {
		return bot
	}
	bot, _ := r.Get(DefaultBotID)
	return bot
}

// All returns the bots in registry order
func (r *BotRegistry) All() []*Bot {
	out := make([]*Bot, len(r.bots))
	copy(out, r.bots)
	return out
}

// AttachFile appends fileID to the bot's file list. Duplicates are allowed;
// DetachFile removes every occurrence.
func (r *BotRegistry) AttachFile(botID, fileID string) error {
	bot, ok := r.Get(botID)
	if !ok {
		return &NotFoundError{Kind: "bot", ID: botID}
	}
	bot.Files = append(bot.Files, fileID)
	r.gw.SaveBots(r.bots)
	return nil
}

// DetachFile removes all occurrences of fileID from the bot's file list
func (r *BotRegistry) DetachFile(botID, fileID string) error {
	bot, ok := r.Get(botID)
	if !ok {
		return &NotFoundError{Kind: "bot", ID: botID}
	}
	kept := bot.Files[:0]
	for _, id := range bot.Files {
		if id != fileID {
			kept = append(kept, id)
		}
	}
	bot.Files = kept
	r.gw.SaveBots(r.bots)
	return nil
}

// BuildContext assembles the deterministic context text for a generation
// request: an instructions line, then one line per attached file that still
// resolves in the file store. Dangling references are skipped. Pure read.
func (r *BotRegistry) BuildContext(bot *Bot) string {
	var sb strings.Builder

	if bot.Instructions != "" {
		sb.WriteString("Instructions for " + bot.Name + ": " + bot.Instructions + "\n\n")
	}

	if len(bot.Files) > 0 {
		sb.WriteString("The bot has access to the following files:\n")
		for _, fileID := range bot.Files {
			if file, ok := r.files.Get(fileID); ok {
				sb.WriteString("- " + file.Name + " (" + utils.FormatFileSize(file.Size) + ")\n")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// SetDefaultModelFromConversation keeps a bot's default model in sync with
// the model last picked while chatting with it. A missing bot is a no-op.
func (r *BotRegistry) SetDefaultModelFromConversation(botID, model string) {
	bot, ok := r.Get(botID)
	if !ok {
		return
	}
	bot.DefaultModel = model
	r.gw.SaveBots(r.bots)
}
