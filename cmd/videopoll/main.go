// Command videopoll submits an avatar-video job and polls the provider until
// it reaches a terminal state, printing the download URL on success. It is a
// manual smoke check for the video integration.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"emoticare/internal/domain"
	"emoticare/internal/infra"
	"emoticare/internal/providers/heygen"
)

func main() {
	_ = godotenv.Load()

	text := flag.String("text", "", "text to speak; submits a new job when set")
	videoID := flag.String("video-id", "", "existing job to poll instead of submitting")
	interval := flag.Duration("interval", 5*time.Second, "polling interval")
	timeout := flag.Duration("timeout", 10*time.Minute, "give up after this long")
	out := flag.String("out", "", "download the finished video to this file")
	flag.Parse()

	if *text == "" && *videoID == "" {
		fmt.Fprintln(os.Stderr, "either -text or -video-id is required")
		os.Exit(2)
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !cfg.VideoEnabled() {
		fmt.Fprintln(os.Stderr, "HEYGEN_API_KEY is not set")
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	client, err := heygen.NewClient(heygen.Options{
		APIKey:  cfg.HeyGenAPIKey,
		BaseURL: cfg.HeyGenBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	id := *videoID
	if id == "" {
		job, err := client.Generate(ctx, heygen.GenerateRequest{
			InputText: *text,
			AvatarID:  cfg.DefaultAvatarID,
			VoiceID:   cfg.DefaultVoiceID,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		id = job.ID
		fmt.Printf("submitted video %s\n", id)
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		job, err := client.Status(ctx, id)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("status: %s\n", job.Status)
		if job.Status.Terminal() {
			if job.ResultURL != "" {
				fmt.Printf("video url: %s\n", job.ResultURL)
			}
			if job.Message != "" {
				fmt.Printf("message: %s\n", job.Message)
			}
			if *out != "" && job.Status == domain.VideoCompleted && job.ResultURL != "" {
				if err := download(ctx, job.ResultURL, *out); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
				fmt.Printf("saved to %s\n", *out)
			}
			return
		}
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "timed out waiting for video")
			os.Exit(1)
		case <-ticker.C:
		}
	}
}

func download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download status %d", resp.StatusCode)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, resp.Body)
	return err
}
