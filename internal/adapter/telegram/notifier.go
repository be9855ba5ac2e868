package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/su-perfume/storefront/internal/core/port"
)

var _ port.OrderNotifier = (*Notifier)(nil)

// Notifier delivers order notifications through the Telegram bot API.
// A single sendMessage call per order, no structured response consumed
// beyond the status.
type Notifier struct {
	endpoint string
	chatID   string
	http     *http.Client
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func NewNotifier(apiURL, botToken, chatID string, timeout time.Duration) Notifier {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(apiURL, "/"), botToken)
	return Notifier{
		endpoint: endpoint,
		chatID:   chatID,
		http:     &http.Client{Timeout: timeout},
	}
}

func (n Notifier) NotifyOrder(ctx context.Context, text string) error {
	const op = "telegram.NotifyOrder"
	log := slog.With("op", op)

	body, err := json.Marshal(sendMessageRequest{ChatID: n.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, n.endpoint, bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s: bot api responded %d: %s",
			op, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	log.Info("order notification delivered")
	return nil
}
