package chat

import (
	"encoding/json"

	"ai-chat-client/db"
	"ai-chat-client/utils"
)

// Durable storage keys. One whole JSON document per key, replaced on write.
const (
	KeyConversations = "ai-chat-conversations"
	KeyBots          = "ai-chat-bots"
	KeyFiles         = "ai-chat-files"
	KeySettings      = "ai-chat-settings"
)

// Gateway is the only component touching durable storage. Malformed stored
// text degrades to "absent" with a log line; it never reaches callers.
// Save failures are likewise logged and swallowed so that store mutations
// carry only domain errors.
type Gateway struct {
	kv     *db.KV
	logger *utils.Logger
}

// NewGateway wraps the key-value store
func NewGateway(kv *db.KV, logger *utils.Logger) *Gateway {
	return &Gateway{kv: kv, logger: logger}
}

// loadInto deserializes the document under key into dst. Missing and corrupt
// documents both leave dst untouched and report false.
func (g *Gateway) loadInto(key string, dst interface{}) bool {
	raw, ok, err := g.kv.Get(key)
	if err != nil {
		g.logger.Error("Failed to load %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		g.logger.Warn("Discarding corrupt document under %s: %v", key, err)
		return false
	}
	return true
}

// save serializes value and replaces the document under key
func (g *Gateway) save(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		g.logger.Error("Failed to serialize %s: %v", key, err)
		return
	}
	if err := g.kv.Set(key, string(data)); err != nil {
		g.logger.Error("Failed to save %s: %v", key, err)
	}
}

// LoadConversations returns the persisted conversation collection, or an
// empty one if absent or corrupt
func (g *Gateway) LoadConversations() []*Conversation {
	var conversations []*Conversation
	g.loadInto(KeyConversations, &conversations)
	return conversations
}

// SaveConversations replaces the persisted conversation collection
func (g *Gateway) SaveConversations(conversations []*Conversation) {
	g.save(KeyConversations, conversations)
}

// RemoveConversations drops the conversation collection outright
func (g *Gateway) RemoveConversations() {
	if err := g.kv.Delete(KeyConversations); err != nil {
		g.logger.Error("Failed to remove %s: %v", KeyConversations, err)
	}
}

// LoadBots returns the persisted bot collection, or nil if absent or corrupt
func (g *Gateway) LoadBots() []*Bot {
	var bots []*Bot
	g.loadInto(KeyBots, &bots)
	return bots
}

// SaveBots replaces the persisted bot collection
func (g *Gateway) SaveBots(bots []*Bot) {
	g.save(KeyBots, bots)
}

// LoadFiles returns the persisted file map, never nil
func (g *Gateway) LoadFiles() map[string]*FileRecord {
	files := make(map[string]*FileRecord)
	g.loadInto(KeyFiles, &files)
	if files == nil {
		files = make(map[string]*FileRecord)
	}
	return files
}

// SaveFiles replaces the persisted file map
func (g *Gateway) SaveFiles(files map[string]*FileRecord) {
	g.save(KeyFiles, files)
}

// LoadSettings returns the opaque settings blob, or nil if absent or corrupt.
// The core passes it through unmodified.
func (g *Gateway) LoadSettings() json.RawMessage {
	raw, ok, err := g.kv.Get(KeySettings)
	if err != nil {
		g.logger.Error("Failed to load %s: %v", KeySettings, err)
		return nil
	}
	if !ok {
		return nil
	}
	if !json.Valid([]byte(raw)) {
		g.logger.Warn("Discarding corrupt document under %s", KeySettings)
		return nil
	}
	return json.RawMessage(raw)
}

// SaveSettings replaces the settings blob
func (g *Gateway) SaveSettings(settings json.RawMessage) {
	if err := g.kv.Set(KeySettings, string(settings)); err != nil {
		g.logger.Error("Failed to save %s: %v", KeySettings, err)
	}
}
