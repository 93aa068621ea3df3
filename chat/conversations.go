package chat

import (
	"strings"
	"time"
)

// ConversationStore owns the conversation collection, kept most-recent-first,
// and the single current-conversation pointer.
type ConversationStore struct {
	gw            *Gateway
	bots          *BotRegistry
	conversations []*Conversation
	currentID     string
}

// NewConversationStore loads persisted conversations. No conversation is
// current until one is created or selected.
func NewConversationStore(gw *Gateway, bots *BotRegistry) *ConversationStore {
	return &ConversationStore{
		gw:            gw,
		bots:          bots,
		conversations: gw.LoadConversations(),
	}
}

// Create inserts a new conversation at the front of the collection and makes
// it current
func (s *ConversationStore) Create(model, botID string) *Conversation {
	conv := &Conversation{
		ID:        newID("chat"),
		Title:     PlaceholderTitle,
		Model:     model,
		BotID:     botID,
		Messages:  []Message{},
		CreatedAt: time.Now(),
	}
	s.conversations = append([]*Conversation{conv}, s.conversations...)
	s.currentID = conv.ID
	s.gw.SaveConversations(s.conversations)
	return conv
}

// CreateForBot reuses the first conversation already referencing botID,
// making it current instead of creating a duplicate. Otherwise it creates a
// fresh conversation on that bot's default model.
func (s *ConversationStore) CreateForBot(botID string) (*Conversation, error) {
	for _, conv := range s.conversations {
		if conv.BotID == botID {
			s.currentID = conv.ID
			return conv, nil
		}
	}
	bot, ok := s.bots.Get(botID)
	if !ok {
		return nil, &NotFoundError{Kind: "bot", ID: botID}
	}
	return s.Create(bot.DefaultModel, botID), nil
}

// Get returns the conversation for id, if present
func (s *ConversationStore) Get(id string) (*Conversation, bool) {
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv, true
		}
	}
	return nil, false
}

// SetCurrent moves the current-conversation pointer
func (s *ConversationStore) SetCurrent(id string) {
	s.currentID = id
}

// Current returns the current conversation, or nil when none is selected or
// the pointer no longer resolves
func (s *ConversationStore) Current() *Conversation {
	if s.currentID == "" {
		return nil
	}
	conv, _ := s.Get(s.currentID)
	return conv
}

// All returns the conversations most-recent-first
func (s *ConversationStore) All() []*Conversation {
	out := make([]*Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// AppendUserMessage appends a human message. The first message into a
// still-placeholder-titled conversation also derives the title from its text.
func (s *ConversationStore) AppendUserMessage(conversationID, text string) (*Message, error) {
	conv, ok := s.Get(conversationID)
	if !ok {
		return nil, &NotFoundError{Kind: "conversation", ID: conversationID}
	}

	msg := Message{
		Role:      RoleHuman,
		Content:   text,
		Timestamp: time.Now(),
	}
	conv.Messages = append(conv.Messages, msg)

	if conv.Title == PlaceholderTitle && len(conv.Messages) == 1 {
		conv.Title = deriveTitle(text)
	}

	s.gw.SaveConversations(s.conversations)
	return &conv.Messages[len(conv.Messages)-1], nil
}

// AppendAssistantMessage appends an assistant message produced by the
// response generator. This is the re-entry point for the deferred generation
// callback, so the conversation may be gone by now.
func (s *ConversationStore) AppendAssistantMessage(conversationID, text, model string) (*Message, error) {
	conv, ok := s.Get(conversationID)
	if !ok {
		return nil, &NotFoundError{Kind: "conversation", ID: conversationID}
	}

	msg := Message{
		Role:      RoleAssistant,
		Content:   text,
		Timestamp: time.Now(),
		Model:     model,
	}
	conv.Messages = append(conv.Messages, msg)
	s.gw.SaveConversations(s.conversations)
	return &conv.Messages[len(conv.Messages)-1], nil
}

// Rename replaces a conversation's title
func (s *ConversationStore) Rename(id, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	conv, ok := s.Get(id)
	if !ok {
		return &NotFoundError{Kind: "conversation", ID: id}
	}
	conv.Title = newTitle
	s.gw.SaveConversations(s.conversations)
	return nil
}

// Remove deletes a conversation. If it was current, the most-recent remaining
// conversation becomes current, or none if the collection is now empty.
// Removing an unknown id is a no-op.
func (s *ConversationStore) Remove(id string) {
	index := -1
	for i, conv := range s.conversations {
		if conv.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return
	}

	s.conversations = append(s.conversations[:index], s.conversations[index+1:]...)

	if id == s.currentID {
		if len(s.conversations) > 0 {
			s.currentID = s.conversations[0].ID
		} else {
			s.currentID = ""
		}
	}

	s.gw.SaveConversations(s.conversations)
}

// Clear drops every conversation and the persisted collection with them
func (s *ConversationStore) Clear() {
	s.conversations = nil
	s.currentID = ""
	s.gw.RemoveConversations()
}

// SetModel updates the conversation's model and, for bot conversations,
// keeps the bot's default model in sync. Unknown ids are a no-op.
func (s *ConversationStore) SetModel(id, model string) {
	conv, ok := s.Get(id)
	if !ok {
		return
	}
	conv.Model = model
	s.gw.SaveConversations(s.conversations)

	if conv.BotID != "" {
		s.bots.SetDefaultModelFromConversation(conv.BotID, model)
	}
}

// Search returns conversations whose title or any message body contains the
// query, case-insensitively. An empty query returns the full collection in
// store order. Pure read, nothing is persisted.
func (s *ConversationStore) Search(query string) []*Conversation {
	if query == "" {
		return s.All()
	}

	query = strings.ToLower(query)
	var matches []*Conversation
	for _, conv := range s.conversations {
		if strings.Contains(strings.ToLower(conv.Title), query) {
			matches = append(matches, conv)
			continue
		}
		for _, msg := range conv.Messages {
			if strings.Contains(strings.ToLower(msg.Content), query) {
				matches = append(matches, conv)
				break
			}
		}
	}
	return matches
}

// deriveTitle turns a first message into a display title, truncating long
// text at 20 characters plus an ellipsis marker
func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) > TitleMaxRunes {
		return string(runes[:TitleMaxRunes]) + "..."
	}
	return text
}
