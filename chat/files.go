package chat

import "time"

// FileStore owns uploaded-file records, keyed by id. Bots hold only
// reference lists; removing a reference never touches the record here.
type FileStore struct {
	gw    *Gateway
	files map[string]*FileRecord
}

// NewFileStore loads the persisted file collection
func NewFileStore(gw *Gateway) *FileStore {
	return &FileStore{
		gw:    gw,
		files: gw.LoadFiles(),
	}
}

// Register creates a record with empty content and returns it immediately,
// without waiting for the content read to complete
func (s *FileStore) Register(name, mimeType string, size int64) *FileRecord {
	record := &FileRecord{
		ID:        newID("file"),
		Name:      name,
		MimeType:  mimeType,
		Size:      size,
		DateAdded: time.Now(),
	}
	s.files[record.ID] = record
	s.gw.SaveFiles(s.files)
	return record
}

// AttachContent fills in a record's content once the external read completes.
// The record may have been removed while the read was in flight; that case is
// a silent no-op.
func (s *FileStore) AttachContent(id, encodedContent string) {
	record, ok := s.files[id]
	if !ok {
		return
	}
	record.Content = encodedContent
	s.gw.SaveFiles(s.files)
}

// Get returns the record for id, if present
func (s *FileStore) Get(id string) (*FileRecord, bool) {
	record, ok := s.files[id]
	return record, ok
}

// Remove deletes the record outright. It does not check whether any bot
// still references it.
func (s *FileStore) Remove(id string) {
	delete(s.files, id)
	s.gw.SaveFiles(s.files)
}

// Len returns the number of stored records
func (s *FileStore) Len() int {
	return len(s.files)
}
