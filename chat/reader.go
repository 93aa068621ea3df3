package chat

import (
	"context"

	"ai-chat-client/utils"
)

// FileReader yields an uploaded file's content as an encoded string. Reads
// complete asynchronously after the file record is registered; a failed read
// simply leaves the record without content.
type FileReader interface {
	ReadContent(ctx context.Context, path string) (string, error)
}

// DataURLReader reads local files into data URLs, the encoding the stored
// file content uses
type DataURLReader struct{}

// ReadContent encodes the file at path as a data URL
func (DataURLReader) ReadContent(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return utils.ReadFileAsDataURL(path)
}
