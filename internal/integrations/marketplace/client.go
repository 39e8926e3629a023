package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody ограничение на чтение тела ошибки
const maxErrorBody = 64 << 10

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для REST API маркетплейса
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента маркетплейса
// token - сервисный bearer-токен, пустая строка отключает авторизацию
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCleaner получает клинера по ID
func (c *Client) GetCleaner(ctx context.Context, cleanerID string) (*Cleaner, error) {
	path := fmt.Sprintf("/cleaners/%s", url.PathEscape(cleanerID))

	var cleaner Cleaner
	status, err := c.do(ctx, http.MethodGet, path, nil, nil, &cleaner)
	if status == http.StatusNotFound {
		return nil, ErrCleanerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cleaner, nil
}

// GetHoliday проверяет, является ли дата праздником
// Возвращает nil без ошибки, если праздника нет
func (c *Client) GetHoliday(ctx context.Context, date string) (*Holiday, error) {
	path := "/holidays?date=" + url.QueryEscape(date)

	var resp HolidayResponse
	status, err := c.do(ctx, http.MethodGet, path, nil, nil, &resp)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resp.Holiday, nil
}

// EstimatePrice запрашивает оценку цены бронирования
func (c *Client) EstimatePrice(ctx context.Context, req *EstimateRequest) (*Estimate, error) {
	var estimate Estimate
	if _, err := c.do(ctx, http.MethodPost, "/bookings/price-estimate", req, nil, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}

// CreateBooking создает бронирование
// Ключ идемпотентности передаётся и в теле, и в заголовке Idempotency-Key
func (c *Client) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	headers := map[string]string{"Idempotency-Key": req.IdempotencyKey}

	var booking Booking
	if _, err := c.do(ctx, http.MethodPost, "/bookings", req, headers, &booking); err != nil {
		return nil, err
	}

	c.log.Info("Marketplace booking created: id=%s, cleaner_id=%s", booking.ID, booking.CleanerID)
	return &booking, nil
}

// do выполняет запрос и декодирует ответ в out
// Возвращает HTTP статус (0, если запрос не дошёл до сервера)
func (c *Client) do(ctx context.Context, method, path string, body interface{}, headers map[string]string, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to execute request %s %s: %v", ErrInternal, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, decodeError(resp)
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return resp.StatusCode, nil
}

// decodeError разбирает конверт ошибки; если его нет, возвращает ErrInvalidResponse
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope ErrorResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && strings.TrimSpace(envelope.Error.Message) != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error.Message}
	}

	return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, strings.TrimSpace(string(raw)))
}
