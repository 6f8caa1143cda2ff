package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"emoticare/internal/domain"
	"emoticare/internal/providers/heygen"
)

type videoCreateRequest struct {
	Text            string `json:"text"`
	AvatarID        string `json:"avatar_id,omitempty"`
	VoiceID         string `json:"voice_id,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
}

// VideosCreate submits an avatar-video generation job to the provider and
// returns immediately; callers poll VideoStatus until a terminal state.
func (a *App) VideosCreate(w http.ResponseWriter, r *http.Request) {
	var req videoCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation", "invalid JSON payload")
		return
	}
	if req.Text == "" {
		a.error(w, http.StatusBadRequest, "validation", "text: is required")
		return
	}
	if req.AvatarID == "" {
		req.AvatarID = a.Cfg.DefaultAvatarID
	}
	if req.VoiceID == "" {
		req.VoiceID = a.Cfg.DefaultVoiceID
	}

	job, err := a.HeyGen.Generate(r.Context(), heygen.GenerateRequest{
		InputText:       req.Text,
		AvatarID:        req.AvatarID,
		VoiceID:         req.VoiceID,
		BackgroundColor: req.BackgroundColor,
		Width:           req.Width,
		Height:          req.Height,
	})
	if err != nil {
		a.failure(w, r, err)
		return
	}
	a.json(w, http.StatusAccepted, job)
}

// VideoStatus relays the provider-reported state of a job.
func (a *App) VideoStatus(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "video_id")
	if videoID == "" {
		a.error(w, http.StatusBadRequest, "validation", "video_id: is required")
		return
	}
	job, err := a.HeyGen.Status(r.Context(), videoID)
	if err != nil {
		a.failure(w, r, err)
		return
	}
	a.json(w, http.StatusOK, job)
}

// VideoArchive copies a completed video into durable object storage. The
// provider URL expires after a short window, so archiving is the only way to
// keep a video past that.
func (a *App) VideoArchive(w http.ResponseWriter, r *http.Request) {
	if a.Archiver == nil {
		a.error(w, http.StatusServiceUnavailable, "storage_disabled", "object storage is not configured")
		return
	}
	videoID := chi.URLParam(r, "video_id")
	if videoID == "" {
		a.error(w, http.StatusBadRequest, "validation", "video_id: is required")
		return
	}
	job, err := a.HeyGen.Status(r.Context(), videoID)
	if err != nil {
		a.failure(w, r, err)
		return
	}
	if job.Status != domain.VideoCompleted || job.ResultURL == "" {
		a.error(w, http.StatusConflict, "not_ready", "video is not completed yet")
		return
	}

	archivedURL, err := a.Archiver.Archive(r.Context(), videoID, job.ResultURL)
	if err != nil {
		a.failure(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{
		"video_id":     videoID,
		"archived_url": archivedURL,
	})
}
