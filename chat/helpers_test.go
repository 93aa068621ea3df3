package chat

import (
	"context"
	"path/filepath"
	"testing"

	"ai-chat-client/db"
	"ai-chat-client/utils"
)

func newTestLogger(t *testing.T) *utils.Logger {
	t.Helper()
	logger, err := utils.NewLogger(filepath.Join(t.TempDir(), "test.log"))
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	logger.SetConsole(false)
	t.Cleanup(func() { logger.Close() })
	return logger
}

func newTestKV(t *testing.T) *db.KV {
	t.Helper()
	kv, err := db.Open(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	return NewGateway(newTestKV(t), newTestLogger(t))
}

// testEnv wires a full set of stores over one gateway
type testEnv struct {
	gw            *Gateway
	files         *FileStore
	bots          *BotRegistry
	conversations *ConversationStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gw := newTestGateway(t)
	files := NewFileStore(gw)
	bots := NewBotRegistry(gw, files)
	return &testEnv{
		gw:            gw,
		files:         files,
		bots:          bots,
		conversations: NewConversationStore(gw, bots),
	}
}

// staticResponder returns a fixed reply, optionally blocking until released
type staticResponder struct {
	reply   string
	release chan struct{}
}

func (r *staticResponder) Generate(ctx context.Context, conv *Conversation, botContext string) (string, error) {
	if r.release != nil {
		<-r.release
	}
	return r.reply, nil
}

// staticReader resolves content per path; missing paths fail the read
type staticReader struct {
	content map[string]string
}

func (r *staticReader) ReadContent(ctx context.Context, path string) (string, error) {
	if content, ok := r.content[path]; ok {
		return content, nil
	}
	return "", &NotFoundError{Kind: "file", ID: path}
}
