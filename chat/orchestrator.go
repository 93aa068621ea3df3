package chat

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"

	"ai-chat-client/utils"
)

// Orchestrator routes user actions to the stores in the right order and owns
// the two deferred flows (simulated replies, file content reads). Store
// access is serialized behind one mutex; deferred callbacks re-enter through
// store methods that re-check entity existence, so a target deleted while a
// callback was in flight is a silent no-op.
type Orchestrator struct {
	mu            sync.Mutex
	conversations *ConversationStore
	bots          *BotRegistry
	files         *FileStore
	gw            *Gateway
	responder     ResponseGenerator
	reader        FileReader
	logger        *utils.Logger

	// MaxFileSize rejects oversized uploads before registration. Zero
	// disables the check.
	MaxFileSize int64

	pending sync.WaitGroup
}

// NewOrchestrator wires the stores and external collaborators together
func NewOrchestrator(conversations *ConversationStore, bots *BotRegistry, files *FileStore,
	gw *Gateway, responder ResponseGenerator, reader FileReader, logger *utils.Logger) *Orchestrator {
	return &Orchestrator{
		conversations: conversations,
		bots:          bots,
		files:         files,
		gw:            gw,
		responder:     responder,
		reader:        reader,
		logger:        logger,
	}
}

// SendMessage appends a user message to the current conversation, creating
// one from the current bot if none exists, then schedules the simulated
// reply. The user message is persisted before generation starts; the reply
// is merged back only if the conversation still exists when it resolves.
func (o *Orchestrator) SendMessage(ctx context.Context, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "message", Reason: "must not be empty"}
	}

	o.mu.Lock()
	conv := o.conversations.Current()
	if conv == nil {
		bot := o.bots.Current()
		conv = o.conversations.Create(bot.DefaultModel, bot.ID)
	}

	msg, err := o.conversations.AppendUserMessage(conv.ID, text)
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}

	var botContext string
	if conv.BotID != "" {
		if bot, ok := o.bots.Get(conv.BotID); ok {
			botContext = o.bots.BuildContext(bot)
		}
	}

	conversationID := conv.ID
	model := conv.Model
	snapshot := *conv // generator reads outside the lock
	o.mu.Unlock()

	o.pending.Add(1)
	utils.SafeGo(o.logger, "simulated response", func() {
		defer o.pending.Done()

		response, err := o.responder.Generate(ctx, &snapshot, botContext)
		if err != nil {
			o.logger.Warn("Response generation failed for %s: %v", conversationID, err)
			return
		}

		o.mu.Lock()
		defer o.mu.Unlock()
		if _, err := o.conversations.AppendAssistantMessage(conversationID, response, model); err != nil {
			// Conversation deleted mid-flight; drop the reply.
			o.logger.Debug("Dropping reply for %s: %v", conversationID, err)
		}
	})

	return msg, nil
}

// NewChat starts a fresh conversation on the current bot and makes it current
func (o *Orchestrator) NewChat() *Conversation {
	o.mu.Lock()
	defer o.mu.Unlock()
	bot := o.bots.Current()
	return o.conversations.Create(bot.DefaultModel, bot.ID)
}

// SwitchBot makes botID current and resolves or creates its conversation
func (o *Orchestrator) SwitchBot(botID string) (*Conversation, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.bots.SetCurrent(botID)
	return o.conversations.CreateForBot(botID)
}

// CreateBot registers a new persona and switches to it
func (o *Orchestrator) CreateBot(name, avatar, description, instructions, defaultModel string) (*Bot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	bot, err := o.bots.Create(name, avatar, description, instructions, defaultModel)
	if err != nil {
		return nil, err
	}
	o.bots.SetCurrent(bot.ID)
	if _, err := o.conversations.CreateForBot(bot.ID); err != nil {
		return nil, err
	}
	return bot, nil
}

// UploadFiles registers each file, attaches it to the current bot and
// schedules its content read. Files are processed independently; one file's
// failed read rolls back neither its registration nor its attachment.
func (o *Orchestrator) UploadFiles(ctx context.Context, paths []string) []*FileRecord {
	o.mu.Lock()
	bot := o.bots.Current()

	var records []*FileRecord
	for _, path := range paths {
		size, err := utils.GetFileSize(path)
		if err != nil {
			o.logger.Warn("Skipping unreadable file %s: %v", path, err)
			continue
		}
		if o.MaxFileSize > 0 && size > o.MaxFileSize {
			o.logger.Warn("Skipping %s: larger than %s", path, utils.FormatFileSize(o.MaxFileSize))
			continue
		}

		record := o.files.Register(filepath.Base(path), utils.GetMimeType(path), size)
		if err := o.bots.AttachFile(bot.ID, record.ID); err != nil {
			o.logger.Warn("Failed to attach %s to bot %s: %v", record.ID, bot.ID, err)
		}
		records = append(records, record)

		fileID, filePath := record.ID, path
		o.pending.Add(1)
		utils.SafeGo(o.logger, "file content read", func() {
			defer o.pending.Done()

			content, err := o.reader.ReadContent(ctx, filePath)
			if err != nil {
				// Record stays registered with empty content.
				o.logger.Warn("Content read failed for %s: %v", filePath, err)
				return
			}

			o.mu.Lock()
			defer o.mu.Unlock()
			o.files.AttachContent(fileID, content)
		})
	}

	o.mu.Unlock()
	return records
}

// RemoveBotFile detaches fileID from the current bot. The file record itself
// is kept; orphaned records persist.
func (o *Orchestrator) RemoveBotFile(fileID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bots.DetachFile(o.bots.Current().ID, fileID)
}

// DeleteChat removes a conversation
func (o *Orchestrator) DeleteChat(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.conversations.Remove(id)
}

// RenameChat replaces a conversation's title
func (o *Orchestrator) RenameChat(id, title string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conversations.Rename(id, title)
}

// SetModel changes a conversation's model, syncing its bot when present
func (o *Orchestrator) SetModel(id, model string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.conversations.SetModel(id, model)
}

// SelectChat makes a conversation current
func (o *Orchestrator) SelectChat(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.conversations.SetCurrent(id)
}

// Search filters conversations by title or message content
func (o *Orchestrator) Search(query string) []*Conversation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conversations.Search(query)
}

// Conversations returns all conversations, most-recent-first
func (o *Orchestrator) Conversations() []*Conversation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conversations.All()
}

// CurrentConversation returns the current conversation, or nil
func (o *Orchestrator) CurrentConversation() *Conversation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conversations.Current()
}

// CurrentBot returns the current bot persona
func (o *Orchestrator) CurrentBot() *Bot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bots.Current()
}

// Bots returns all personas in registry order
func (o *Orchestrator) Bots() []*Bot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bots.All()
}

// BotFiles resolves a bot's attachments, skipping dangling references
func (o *Orchestrator) BotFiles(bot *Bot) []*FileRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	var records []*FileRecord
	for _, fileID := range bot.Files {
		if record, ok := o.files.Get(fileID); ok {
			records = append(records, record)
		}
	}
	return records
}

// Settings returns the opaque settings blob
func (o *Orchestrator) Settings() json.RawMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gw.LoadSettings()
}

// UpdateSettings replaces the settings blob, passed through unmodified
func (o *Orchestrator) UpdateSettings(settings json.RawMessage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gw.SaveSettings(settings)
}

// ClearConversations drops every conversation
func (o *Orchestrator) ClearConversations() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.conversations.Clear()
}

// Export writes the {conversations, settings} snapshot into dir
func (o *Orchestrator) Export(dir string) (string, error) {
	o.mu.Lock()
	conversations := o.conversations.All()
	settings := o.gw.LoadSettings()
	o.mu.Unlock()
	return ExportData(conversations, settings, dir)
}

// Wait blocks until every in-flight reply and content read has resolved
func (o *Orchestrator) Wait() {
	o.pending.Wait()
}
