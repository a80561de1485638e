package utils

import (
	"log"
	"time"

	"olc/config"

	"github.com/go-resty/resty/v2"
)

// NotifyEvent posts a platform event to the configured webhook URL. Like
// email, this is fire-and-forget: a missing URL disables it and a failed
// delivery is only logged.
func NotifyEvent(event string, payload map[string]interface{}) {
	webhookURL := config.AppConfig.WebhookURL
	if webhookURL == "" {
		return
	}

	go func() {
		client := resty.New().SetTimeout(10 * time.Second)

		resp, err := client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]interface{}{
				"event":     event,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"data":      payload,
			}).
			Post(webhookURL)
		if err != nil {
			log.Printf("Webhook delivery failed for %s: %v", event, err)
			return
		}
		if resp.IsError() {
			log.Printf("Webhook delivery for %s returned %s", event, resp.Status())
		}
	}()
}
