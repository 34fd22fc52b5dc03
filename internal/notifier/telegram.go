package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kakarot0105/JobBot/internal/model"
)

const telegramBaseURL = "https://api.telegram.org"

// Ensure TelegramNotifier implements model.Notifier.
var _ model.Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier sends job cards to recipients via the Telegram Bot API.
// The recipient ID is the Telegram chat ID.
type TelegramNotifier struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewTelegramNotifier returns a notifier that posts each job as a Markdown
// message to the recipient's chat.
func NewTelegramNotifier(token string, httpClient *http.Client, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		baseURL:    telegramBaseURL,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}
}

type telegramMessage struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Send posts one job card. On 429 it waits out Retry-After once and retries;
// any other non-200 is an error, so the caller will not record a delivery.
func (n *TelegramNotifier) Send(ctx context.Context, recipientID string, job model.Job) error {
	msg := telegramMessage{
		ChatID:                recipientID,
		Text:                  formatJob(job),
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal telegram message: %w", err)
	}

	resp, err := n.post(ctx, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := resp.Header.Get("Retry-After")
		secs, _ := strconv.Atoi(retryAfter)
		if secs <= 0 {
			secs = 1
		}
		n.logger.Warn("telegram rate limited, retrying", "retry_after_secs", secs)

		select {
		case <-ctx.Done():
			return fmt.Errorf("telegram send: %w", ctx.Err())
		case <-time.After(time.Duration(secs) * time.Second):
		}

		resp2, err := n.post(ctx, body)
		if err != nil {
			return fmt.Errorf("telegram send (retry): %w", err)
		}
		defer resp2.Body.Close()

		if resp2.StatusCode != http.StatusOK {
			return fmt.Errorf("telegram returned %d on retry", resp2.StatusCode)
		}
		n.logger.Info("telegram message sent", "recipient", recipientID, "title", job.Title, "retried", true)
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned %d", resp.StatusCode)
	}
	n.logger.Info("telegram message sent", "recipient", recipientID, "title", job.Title)
	return nil
}

func (n *TelegramNotifier) post(ctx context.Context, body []byte) (*http.Response, error) {
	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("telegram send: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram send: %w", err)
	}
	return resp, nil
}

// formatJob renders the Markdown job card.
func formatJob(job model.Job) string {
	salary := job.SalaryDisplay
	if salary == "" {
		salary = "Not listed"
	}
	text := fmt.Sprintf("💼 *%s*\n🏢 %s\n📍 %s\n💰 %s\n⏰ %s\n\n[Apply Here](%s)",
		job.Title, job.Company, job.Location, salary, job.Type, job.URL)
	if job.Source != "" {
		text += "\n_via " + job.Source + "_"
	}
	return text
}

// SendTestMessage sends a dummy job through the notifier to verify the
// integration works end to end.
func SendTestMessage(ctx context.Context, n model.Notifier, recipientID string) error {
	now := time.Now()
	testJob := model.Job{
		Title:         "Test Notification — Integration Verified",
		Company:       "JobBot Test",
		Location:      "Everywhere",
		Type:          model.JobTypeFullTime,
		SalaryDisplay: "Not listed",
		Source:        "test",
		URL:           "https://remoteok.com",
		PostedAt:      &now,
	}
	return n.Send(ctx, recipientID, testJob)
}
