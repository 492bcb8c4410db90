package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Recognizer is the contract the presenter needs from the recognition service.
type Recognizer interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*PredictionResult, error)
	PredictFromScreenshot(ctx context.Context, png []byte) (*PredictionResult, error)
	EditText(ctx context.Context, text string) (*PredictionResult, error)
}

// Client talks to the recognition service over HTTP. It never retries: every
// failure is terminal for the call that produced it.
type Client struct {
	http     *resty.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// NewClient returns a client for the service rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	rc.JSONMarshal = json.Marshal
	rc.JSONUnmarshal = json.Unmarshal
	return &Client{http: rc, validate: validator.New(), logger: logger}
}

var _ Recognizer = (*Client)(nil)

// Upload posts an image file as multipart form data.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (*PredictionResult, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no image", ErrInvalidRequest)
	}
	req := c.request(ctx).SetFileReader(uploadField, filename, r)
	return c.do(req, http.MethodPost, pathUpload, slog.String("file", filename))
}

// PredictFromScreenshot posts a PNG crop as base64 JSON.
func (c *Client) PredictFromScreenshot(ctx context.Context, png []byte) (*PredictionResult, error) {
	body := ScreenshotRequest{Image: encodeBase64(png)}
	if err := c.validate.Struct(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req := c.request(ctx).SetHeader("Content-Type", "application/json").SetBody(body)
	return c.do(req, http.MethodPost, pathScreenshot, slog.String("payload", humanize.Bytes(uint64(len(png)))))
}

// EditText submits corrected OCR text for re-evaluation.
func (c *Client) EditText(ctx context.Context, text string) (*PredictionResult, error) {
	body := EditTextRequest{Text: text}
	if err := c.validate.Struct(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req := c.request(ctx).SetHeader("Content-Type", "application/json").SetBody(body)
	return c.do(req, http.MethodPost, pathEditText, slog.Int("chars", len(text)))
}

// Health checks that the service answers at all.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.request(ctx).Get(pathHealth)
	if err != nil {
		return &TransportError{Endpoint: pathHealth, Err: err}
	}
	if resp.IsError() {
		return &TransportError{Endpoint: pathHealth, Status: resp.StatusCode(), Err: errors.New("unhealthy")}
	}
	return nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetHeader(headerRequestID, uuid.NewString())
}

func (c *Client) do(req *resty.Request, method, path string, attrs ...any) (*PredictionResult, error) {
	requestID := req.Header.Get(headerRequestID)
	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.log(slog.LevelError, "request failed", path, requestID, append(attrs, "error", err)...)
		return nil, &TransportError{Endpoint: path, Err: err}
	}
	var wire wireResult
	if err := json.Unmarshal(resp.Body(), &wire); err != nil {
		c.log(slog.LevelError, "unreadable response", path, requestID, "status", resp.StatusCode(), "error", err)
		return nil, &TransportError{Endpoint: path, Status: resp.StatusCode(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if wire.Error != "" {
		c.log(slog.LevelWarn, "service rejected request", path, requestID, "status", resp.StatusCode(), "error", wire.Error)
		return nil, &ServiceError{Endpoint: path, Status: resp.StatusCode(), Message: wire.Error}
	}
	if resp.IsError() {
		c.log(slog.LevelError, "request failed", path, requestID, "status", resp.StatusCode())
		return nil, &TransportError{Endpoint: path, Status: resp.StatusCode(), Err: errors.New(http.StatusText(resp.StatusCode()))}
	}
	// a prediction of 0 is never produced by the service; treat it as absent
	if wire.Prediction == nil || *wire.Prediction == 0 {
		c.log(slog.LevelWarn, "response without prediction", path, requestID, "status", resp.StatusCode())
		return nil, &ServiceError{Endpoint: path, Status: resp.StatusCode(), Message: msgMissingPrediction}
	}
	out := wire.result()
	c.log(slog.LevelInfo, "prediction received", path, requestID, append(attrs,
		"status", resp.StatusCode(),
		"multipliers", len(out.Multipliers),
		"prediction", out.Prediction,
		"took", time.Since(start),
	)...)
	return out, nil
}

func (c *Client) log(level slog.Level, msg, path, requestID string, attrs ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Log(context.Background(), level, msg, append([]any{"endpoint", path, "request_id", requestID}, attrs...)...)
}

func encodeBase64(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}
