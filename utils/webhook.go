package utils

import (
	"coursehub/config"
	"coursehub/models"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyPaymentWebhook pushes a terminal payment to the configured webhook
// endpoint. Fire-and-forget: delivery failures are logged, never retried.
func NotifyPaymentWebhook(pay models.Payment) {
	webhookURL := config.AppConfig.PaymentWebhookURL
	if webhookURL == "" {
		return
	}

	go func() {
		client := resty.New().SetTimeout(10 * time.Second)

		resp, err := client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]interface{}{
				"event":            "payment." + pay.Status,
				"paymentReference": pay.PaymentReference,
				"userId":           pay.UserID,
				"courseId":         pay.CourseID,
				"amount":           pay.Amount,
				"method":           pay.PaymentMethod,
				"status":           pay.Status,
			}).
			Post(webhookURL)
		if err != nil {
			log.Printf("[WEBHOOK] Error notifying %s: %v", webhookURL, err)
			return
		}

		if resp.StatusCode() >= 300 {
			log.Printf("[WEBHOOK] Notification rejected by %s: %d", webhookURL, resp.StatusCode())
		}
	}()
}
