package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"google.golang.org/genai"

	"media-scribe/internal/logger"
	"media-scribe/internal/transcribe"
)

type implService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  logger.Logger
}

func (s *implService) Upload(ctx context.Context, path string) (*FileHandle, error) {
	var uploadCfg *genai.UploadFileConfig
	if mtype, err := mimetype.DetectFile(path); err == nil {
		uploadCfg = &genai.UploadFileConfig{MIMEType: mtype.String()}
	}

	f, err := s.client.Files.UploadFromPath(ctx, path, uploadCfg)
	if err != nil {
		return nil, wrapRemoteErr("upload file", err)
	}

	return &FileHandle{
		Name:     f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
	}, nil
}

func (s *implService) State(ctx context.Context, name string) (FileState, error) {
	f, err := s.client.Files.Get(ctx, name, nil)
	if err != nil {
		return StateProcessing, wrapRemoteErr("get file", err)
	}

	switch f.State {
	case genai.FileStateActive:
		return StateActive, nil
	case genai.FileStateFailed:
		return StateFailed, nil
	default:
		return StateProcessing, nil
	}
}

func (s *implService) Generate(ctx context.Context, prompt string, file *FileHandle) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromURI(file.URI, file.MIMEType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		SafetySettings: safetySettings(),
	})
	if err != nil {
		return "", wrapRemoteErr("generate content", err)
	}

	return extractText(result)
}

func (s *implService) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", wrapRemoteErr("generate content", err)
	}

	return extractText(result)
}

func (s *implService) Delete(ctx context.Context, name string) error {
	if _, err := s.client.Files.Delete(ctx, name, nil); err != nil {
		return wrapRemoteErr("delete file", err)
	}
	return nil
}

func extractText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("response contained no text, finish reason: %s", result.Candidates[0].FinishReason)
	}

	return text, nil
}

// safetySettings mirrors the relaxed thresholds needed so ordinary speech
// in the source media does not get blocked outright.
func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
		})
	}
	return settings
}

func wrapRemoteErr(op string, err error) error {
	if transcribe.IsQuota(err) {
		return fmt.Errorf("%s: %w: %v", op, transcribe.ErrQuotaExhausted, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
