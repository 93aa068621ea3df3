package chat

import "testing"

func TestFileStore_RegisterThenAttachContent(t *testing.T) {
	env := newTestEnv(t)

	record := env.files.Register("report.pdf", "application/pdf", 4096)
	if record.ID == "" {
		t.Fatalf("expected an id")
	}
	if record.Content != "" {
		t.Errorf("content should be empty until the read completes")
	}

	env.files.AttachContent(record.ID, "data:application/pdf;base64,AAAA")
	got, ok := env.files.Get(record.ID)
	if !ok || got.Content != "data:application/pdf;base64,AAAA" {
		t.Errorf("content not attached: %+v", got)
	}

	// The filled-in record is persisted
	persisted := env.gw.LoadFiles()
	if persisted[record.ID] == nil || persisted[record.ID].Content == "" {
		t.Errorf("attached content should be persisted")
	}
}

func TestFileStore_AttachContentAfterRemoveIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	record := env.files.Register("gone.txt", "text/plain", 10)
	env.files.Remove(record.ID)

	env.files.AttachContent(record.ID, "late content")

	if _, ok := env.files.Get(record.ID); ok {
		t.Errorf("late content attach must not resurrect the record")
	}
	if env.files.Len() != 0 {
		t.Errorf("store should be empty, has %d", env.files.Len())
	}
}

func TestFileStore_UniqueIDs(t *testing.T) {
	env := newTestEnv(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		record := env.files.Register("same-name.txt", "text/plain", 1)
		if seen[record.ID] {
			t.Fatalf("duplicate id %s", record.ID)
		}
		seen[record.ID] = true
	}
}

func TestFileStore_SurvivesReload(t *testing.T) {
	gw := newTestGateway(t)

	first := NewFileStore(gw)
	record := first.Register("keep.md", "text/markdown", 321)
	first.AttachContent(record.ID, "data:text/markdown;base64,aGk=")

	second := NewFileStore(gw)
	got, ok := second.Get(record.ID)
	if !ok {
		t.Fatalf("record should survive a reload")
	}
	if got.Name != "keep.md" || got.Size != 321 || got.Content == "" {
		t.Errorf("record fields lost across reload: %+v", got)
	}
}
