package domain

// VideoStatus is the provider-reported lifecycle state of a video job.
// Transitions are relayed from the provider only: Queued -> Processing ->
// Completed | Failed.
type VideoStatus string

const (
	VideoQueued     VideoStatus = "queued"
	VideoProcessing VideoStatus = "processing"
	VideoCompleted  VideoStatus = "completed"
	VideoFailed     VideoStatus = "failed"
)

func (s VideoStatus) Terminal() bool {
	return s == VideoCompleted || s == VideoFailed
}

// VideoJob tracks an asynchronous avatar-video generation at the provider.
// The service only passes it through; callers poll for status and must impose
// their own polling timeout.
type VideoJob struct {
	ID               string      `json:"video_id"`
	Status           VideoStatus `json:"status"`
	Message          string      `json:"message,omitempty"`
	ResultURL        string      `json:"video_url,omitempty"`
	EstimatedSeconds int         `json:"estimated_time,omitempty"`
}
