package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type UploadResult struct {
	FileID   string
	Filename string
	Bytes    int64
}

type Uploader interface {
	Upload(ctx context.Context, path string) (*UploadResult, error)
}

// openaiFiles is the part of openai.FileService used here.
type openaiFiles interface {
	New(ctx context.Context, body openai.FileNewParams, opts ...option.RequestOption) (*openai.FileObject, error)
}

type openaiUploader struct {
	files openaiFiles
}

func NewOpenAIUploader(apiKey string, opts ...option.RequestOption) (Uploader, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &openaiUploader{files: &client.Files}, nil
}

// Upload sends the transcript file to OpenAI Files for fine-tuning.
func (u *openaiUploader) Upload(ctx context.Context, path string) (*UploadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close()

	res, err := u.files.New(ctx, openai.FileNewParams{
		File:    file,
		Purpose: openai.FilePurposeFineTune,
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}

	return &UploadResult{
		FileID:   res.ID,
		Filename: res.Filename,
		Bytes:    res.Bytes,
	}, nil
}
