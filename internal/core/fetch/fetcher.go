package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"clothing-combiner/internal/infrastructure/config"
	"clothing-combiner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Error 圖片下載失敗
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("status code %d for url: %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("%v (url: %s)", e.Err, e.URL)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	errEmptyBody   = errors.New("empty response body")
	errInvalidURL  = errors.New("invalid image url")
	errBodyTooLong = errors.New("image size exceeds maximum limit")
)

// Fetcher 以 HTTP 下載圖片原始位元組
type Fetcher struct {
	client       *resty.Client
	maxSizeBytes int64
}

// NewFetcher 創建下載器
func NewFetcher(cfg config.FetchConfig) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "image/*").
		SetHeader("User-Agent", cfg.UserAgent)

	return &Fetcher{
		client:       client,
		maxSizeBytes: cfg.MaxSizeBytes,
	}
}

// Fetch 下載圖片，非 2xx、空內容或超過大小上限都視為失敗
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &Error{URL: rawURL, Err: errInvalidURL}
	}

	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		common.LogWarn("圖片下載失敗",
			zap.String("url", common.Truncate(rawURL, 80)),
			zap.Error(err),
		)
		return nil, &Error{URL: rawURL, Err: err}
	}

	raw := resp.RawBody()
	defer raw.Close()

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		common.LogWarn("圖片下載回應錯誤",
			zap.String("url", common.Truncate(rawURL, 80)),
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, &Error{URL: rawURL, StatusCode: resp.StatusCode()}
	}

	body, err := f.readBody(raw)
	if err != nil {
		common.LogWarn("圖片內容讀取失敗",
			zap.String("url", common.Truncate(rawURL, 80)),
			zap.Error(err),
		)
		return nil, &Error{URL: rawURL, Err: err}
	}
	if len(body) == 0 {
		return nil, &Error{URL: rawURL, Err: errEmptyBody}
	}

	common.LogDebug("圖片下載完成",
		zap.String("url", common.Truncate(rawURL, 80)),
		zap.Int("bytes", len(body)),
		zap.String("content_type", resp.Header().Get("Content-Type")),
		zap.Duration("latency", time.Since(start)),
	)

	return body, nil
}

// readBody 最多讀取 maxSizeBytes+1 位元組，超過上限即停止
func (f *Fetcher) readBody(r io.Reader) ([]byte, error) {
	if f.maxSizeBytes <= 0 {
		return io.ReadAll(r)
	}

	body, err := io.ReadAll(io.LimitReader(r, f.maxSizeBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxSizeBytes {
		return nil, fmt.Errorf("%w of %d bytes", errBodyTooLong, f.maxSizeBytes)
	}
	return body, nil
}
