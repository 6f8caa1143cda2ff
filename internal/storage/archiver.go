package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// VideoArchiver copies a completed video from the provider's download URL
// into the object store and returns the archived URL.
type VideoArchiver struct {
	Store  ObjectStore
	Client *http.Client
	Logger zerolog.Logger
}

func NewVideoArchiver(store ObjectStore, logger zerolog.Logger) *VideoArchiver {
	return &VideoArchiver{
		Store:  store,
		Client: &http.Client{Timeout: 2 * time.Minute},
		Logger: logger,
	}
}

// Archive downloads sourceURL and stores it under videos/<videoID>.mp4.
func (a *VideoArchiver) Archive(ctx context.Context, videoID, sourceURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("archive: build request: %w", err)
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("archive: download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("archive: download status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}
	key := fmt.Sprintf("videos/%s.mp4", videoID)
	archivedURL, err := a.Store.Put(ctx, key, contentType, resp.Body)
	if err != nil {
		return "", err
	}
	a.Logger.Info().Str("video_id", videoID).Str("url", archivedURL).Msg("video archived")
	return archivedURL, nil
}
