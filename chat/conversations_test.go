package chat

import (
	"strings"
	"testing"
)

func TestConversationStore_CreateBecomesCurrent(t *testing.T) {
	env := newTestEnv(t)

	first := env.conversations.Create("claude-3-7-sonnet", "")
	if first.Title != PlaceholderTitle {
		t.Errorf("expected placeholder title, got %q", first.Title)
	}
	if current := env.conversations.Current(); current == nil || current.ID != first.ID {
		t.Errorf("new conversation should be current")
	}

	second := env.conversations.Create("gpt-4o", "")
	all := env.conversations.All()
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Errorf("collection should be most-recent-first")
	}
}

func TestConversationStore_PersistedMatchesInMemory(t *testing.T) {
	env := newTestEnv(t)

	a := env.conversations.Create("claude-3-7-sonnet", "")
	env.conversations.Create("claude-3-7-sonnet", "")
	c := env.conversations.Create("gpt-4o", "")
	env.conversations.Remove(a.ID)

	inMemory := env.conversations.All()
	persisted := env.gw.LoadConversations()

	if len(persisted) != len(inMemory) {
		t.Fatalf("persisted %d, in-memory %d", len(persisted), len(inMemory))
	}
	for i := range inMemory {
		if persisted[i].ID != inMemory[i].ID {
			t.Errorf("position %d: persisted %s, in-memory %s", i, persisted[i].ID, inMemory[i].ID)
		}
	}
	if persisted[0].ID != c.ID {
		t.Errorf("most recent should be first, got %s", persisted[0].ID)
	}
}

func TestConversationStore_TitleDerivedFromFirstMessage(t *testing.T) {
	env := newTestEnv(t)

	short := env.conversations.Create("claude-3-7-sonnet", "")
	if _, err := env.conversations.AppendUserMessage(short.ID, "Hello there"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if short.Title != "Hello there" {
		t.Errorf("short message should become the full title, got %q", short.Title)
	}

	long := env.conversations.Create("claude-3-7-sonnet", "")
	text := "This message is well over twenty characters long"
	if _, err := env.conversations.AppendUserMessage(long.ID, text); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	want := text[:20] + "..."
	if long.Title != want {
		t.Errorf("expected %q, got %q", want, long.Title)
	}

	// A renamed conversation keeps its title on later messages
	renamed := env.conversations.Create("claude-3-7-sonnet", "")
	if err := env.conversations.Rename(renamed.ID, "Kept"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if _, err := env.conversations.AppendUserMessage(renamed.ID, "first message"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if renamed.Title != "Kept" {
		t.Errorf("title should survive first message after rename, got %q", renamed.Title)
	}
}

func TestConversationStore_AppendToMissingConversation(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.conversations.AppendUserMessage("chat_missing", "hi"); !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	if _, err := env.conversations.AppendAssistantMessage("chat_missing", "hi", "gpt-4o"); !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestConversationStore_AssistantAppendAfterRemoveIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	conv := env.conversations.Create("claude-3-7-sonnet", "")
	env.conversations.Remove(conv.ID)

	if _, err := env.conversations.AppendAssistantMessage(conv.ID, "late reply", "claude-3-7-sonnet"); !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	if len(env.conversations.All()) != 0 {
		t.Errorf("late append must not recreate the conversation")
	}
}

func TestConversationStore_Rename(t *testing.T) {
	env := newTestEnv(t)
	conv := env.conversations.Create("claude-3-7-sonnet", "")

	if err := env.conversations.Rename(conv.ID, "   "); !IsValidation(err) {
		t.Errorf("blank title should be a validation error, got %v", err)
	}
	if err := env.conversations.Rename("chat_missing", "Title"); !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	if err := env.conversations.Rename(conv.ID, "  Quarterly review  "); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if conv.Title != "Quarterly review" {
		t.Errorf("expected trimmed title, got %q", conv.Title)
	}
}

func TestConversationStore_RemoveRepointsCurrent(t *testing.T) {
	env := newTestEnv(t)

	a := env.conversations.Create("claude-3-7-sonnet", "")
	b := env.conversations.Create("claude-3-7-sonnet", "")

	// b is current and at the front
	env.conversations.Remove(b.ID)
	if current := env.conversations.Current(); current == nil || current.ID != a.ID {
		t.Errorf("current should repoint to the most-recent remaining conversation")
	}

	env.conversations.Remove(a.ID)
	if current := env.conversations.Current(); current != nil {
		t.Errorf("current should be none after the last conversation is removed")
	}

	// Unknown id is a silent no-op
	env.conversations.Remove("chat_missing")
}

func TestConversationStore_CreateForBotReusesConversation(t *testing.T) {
	env := newTestEnv(t)

	bot, err := env.bots.Create("Analyst", "📚", "", "", "gpt-4o")
	if err != nil {
		t.Fatalf("bot create failed: %v", err)
	}

	first, err := env.conversations.CreateForBot(bot.ID)
	if err != nil {
		t.Fatalf("createForBot failed: %v", err)
	}
	if first.Model != "gpt-4o" {
		t.Errorf("conversation should inherit the bot's default model, got %q", first.Model)
	}
	if first.BotID != bot.ID {
		t.Errorf("conversation should reference the bot")
	}

	second, err := env.conversations.CreateForBot(bot.ID)
	if err != nil {
		t.Fatalf("createForBot failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call should reuse the existing conversation: %s vs %s", second.ID, first.ID)
	}
	if current := env.conversations.Current(); current == nil || current.ID != first.ID {
		t.Errorf("reused conversation should become current")
	}

	if _, err := env.conversations.CreateForBot("bot_missing"); !IsNotFound(err) {
		t.Errorf("expected NotFoundError for unknown bot, got %v", err)
	}
}

func TestConversationStore_SetModelSyncsBot(t *testing.T) {
	env := newTestEnv(t)

	bot, err := env.bots.Create("Coder", "💻", "", "", "claude-3-5-sonnet")
	if err != nil {
		t.Fatalf("bot create failed: %v", err)
	}
	conv, err := env.conversations.CreateForBot(bot.ID)
	if err != nil {
		t.Fatalf("createForBot failed: %v", err)
	}

	env.conversations.SetModel(conv.ID, "claude-3-opus")
	if conv.Model != "claude-3-opus" {
		t.Errorf("conversation model not updated, got %q", conv.Model)
	}
	if bot.DefaultModel != "claude-3-opus" {
		t.Errorf("bot default model should follow the conversation, got %q", bot.DefaultModel)
	}

	// Conversations without a bot leave the registry alone
	plain := env.conversations.Create("gpt-4o", "")
	env.conversations.SetModel(plain.ID, "gpt-4-turbo")
	if bot.DefaultModel != "claude-3-opus" {
		t.Errorf("unrelated model change must not touch the bot")
	}
}

func TestConversationStore_Search(t *testing.T) {
	env := newTestEnv(t)

	groceries := env.conversations.Create("claude-3-7-sonnet", "")
	if _, err := env.conversations.AppendUserMessage(groceries.ID, "remember to buy milk"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	travel := env.conversations.Create("claude-3-7-sonnet", "")
	if err := env.conversations.Rename(travel.ID, "Trip to Lisbon"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	// Empty query returns everything in store order
	all := env.conversations.Search("")
	if len(all) != 2 || all[0].ID != travel.ID || all[1].ID != groceries.ID {
		t.Errorf("empty query should return the full collection in order")
	}

	// Title match, case-insensitive
	if got := env.conversations.Search("lisbon"); len(got) != 1 || got[0].ID != travel.ID {
		t.Errorf("title search failed: %v", got)
	}

	// Message-body-only match
	if got := env.conversations.Search("MILK"); len(got) != 1 || got[0].ID != groceries.ID {
		t.Errorf("message body search failed")
	}

	if got := env.conversations.Search("xyz"); len(got) != 0 {
		t.Errorf("no-match query should return empty, got %d", len(got))
	}
}

func TestConversationStore_Clear(t *testing.T) {
	env := newTestEnv(t)

	env.conversations.Create("claude-3-7-sonnet", "")
	env.conversations.Create("claude-3-7-sonnet", "")
	env.conversations.Clear()

	if len(env.conversations.All()) != 0 {
		t.Errorf("expected no conversations after clear")
	}
	if env.conversations.Current() != nil {
		t.Errorf("expected no current conversation after clear")
	}
	if got := env.gw.LoadConversations(); len(got) != 0 {
		t.Errorf("persisted collection should be gone after clear")
	}
}

func TestDeriveTitle_MultiByte(t *testing.T) {
	text := strings.Repeat("é", 25)
	got := deriveTitle(text)
	if got != strings.Repeat("é", 20)+"..." {
		t.Errorf("truncation must not split runes, got %q", got)
	}
}
