package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"ai-chat-client/chat"
	"ai-chat-client/utils"
)

// MessageView is one rendered message, in append order
type MessageView struct {
	Role    string
	Avatar  string
	Content string
	Time    string
}

// ConversationListItem is one sidebar entry, most-recent-first, with the
// active marker on the current conversation
type ConversationListItem struct {
	ID     string
	Title  string
	Active bool
}

// BotView is the avatar/name/description/file-count projection of a bot
type BotView struct {
	ID          string
	Avatar      string
	Name        string
	Description string
	FileCount   int
}

// FileView is one attached-file row
type FileView struct {
	ID   string
	Name string
	Size string
}

// MessageViews projects a conversation's log into display form
func MessageViews(conv *chat.Conversation) []MessageView {
	if conv == nil {
		return nil
	}
	views := make([]MessageView, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		avatar := "U"
		if msg.Role == chat.RoleAssistant {
			avatar = "AI"
		}
		views = append(views, MessageView{
			Role:    msg.Role,
			Avatar:  avatar,
			Content: msg.Content,
			Time:    formatTime(msg.Timestamp),
		})
	}
	return views
}

// ConversationList projects the collection into sidebar entries
func ConversationList(conversations []*chat.Conversation, currentID string) []ConversationListItem {
	items := make([]ConversationListItem, 0, len(conversations))
	for _, conv := range conversations {
		items = append(items, ConversationListItem{
			ID:     conv.ID,
			Title:  conv.Title,
			Active: conv.ID == currentID,
		})
	}
	return items
}

// BotViewOf projects a single bot
func BotViewOf(bot *chat.Bot) BotView {
	return BotView{
		ID:          bot.ID,
		Avatar:      bot.Avatar,
		Name:        bot.Name,
		Description: bot.Description,
		FileCount:   len(bot.Files),
	}
}

// FileViews projects resolved file records into display rows
func FileViews(records []*chat.FileRecord) []FileView {
	views := make([]FileView, 0, len(records))
	for _, record := range records {
		views = append(views, FileView{
			ID:   record.ID,
			Name: record.Name,
			Size: utils.FormatFileSize(record.Size),
		})
	}
	return views
}

func formatTime(t time.Time) string {
	return t.Format("15:04")
}

// Console styles
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	activeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	humanStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func renderMessage(v MessageView) string {
	style := humanStyle
	if v.Role == chat.RoleAssistant {
		style = assistantStyle
	}
	return fmt.Sprintf("%s %s %s", style.Render(v.Avatar+":"), v.Content, dimStyle.Render(v.Time))
}
