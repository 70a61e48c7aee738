package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// HTTPDispatcher клиент сервиса уведомлений
type HTTPDispatcher struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewHTTPDispatcher создает новый экземпляр HTTP-клиента сервиса уведомлений
func NewHTTPDispatcher(baseURL string, timeout time.Duration, log Logger) *HTTPDispatcher {
	return &HTTPDispatcher{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Dispatch отправляет уведомление POST-запросом
func (d *HTTPDispatcher) Dispatch(ctx context.Context, eventID string, n domain.Notification) error {
	url := fmt.Sprintf("%s/internal/notifications", d.baseURL)

	body, err := json.Marshal(Message{EventID: eventID, Notification: n})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", eventID)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusCreated, resp.StatusCode == http.StatusAccepted:
		d.log.Info("Notification %s delivered: type=%s, recipient=%d", eventID, n.Type, n.RecipientID)
		return nil
	case resp.StatusCode == http.StatusConflict:
		// Сервис уже получил событие с этим eventId
		d.log.Info("Notification %s already delivered", eventID)
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var errResp ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, errResp.Message)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
