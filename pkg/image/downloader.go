package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-pkgz/repeater/v2"
)

// defaultUserAgents is the pool rotated per download attempt when none configured
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
}

// DownloaderParams defines image downloader settings
type DownloaderParams struct {
	Retries      int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Timeout      time.Duration
	MaxSize      int64
	UserAgents   []string
}

// HTTPDownloader downloads images with retries, accepting only image content
type HTTPDownloader struct {
	client     *http.Client
	retries    int
	delay      time.Duration
	maxDelay   time.Duration
	maxSize    int64
	userAgents []string
}

// permanentError stops retries, the same request won't succeed on repeat
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Is makes any permanentError match, repeater stops on it
func (e *permanentError) Is(target error) bool {
	_, ok := target.(*permanentError)
	return ok
}

// NewDownloader makes an image downloader, zero params get defaults
func NewDownloader(p DownloaderParams) *HTTPDownloader {
	if p.Retries <= 0 {
		p.Retries = 3
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = 500 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 5 * time.Second
	}
	if p.Timeout <= 0 {
		p.Timeout = 30 * time.Second
	}
	if p.MaxSize <= 0 {
		p.MaxSize = 5 * 1024 * 1024
	}
	if len(p.UserAgents) == 0 {
		p.UserAgents = defaultUserAgents
	}
	return &HTTPDownloader{
		client:     &http.Client{Timeout: p.Timeout},
		retries:    p.Retries,
		delay:      p.InitialDelay,
		maxDelay:   p.MaxDelay,
		maxSize:    p.MaxSize,
		userAgents: p.UserAgents,
	}
}

// Download gets the image with exponential backoff, rotating user agents per attempt
func (d *HTTPDownloader) Download(ctx context.Context, imageURL string) (*Image, error) {
	var img *Image
	attempt := 0
	retrier := repeater.NewBackoff(d.retries, d.delay, repeater.WithMaxDelay(d.maxDelay))
	err := retrier.Do(ctx, func() error {
		ua := d.userAgents[attempt%len(d.userAgents)]
		attempt++
		res, err := d.get(ctx, imageURL, ua)
		if err != nil {
			return err
		}
		img = res
		return nil
	}, &permanentError{})

	if err != nil {
		var pe *permanentError
		if errors.As(err, &pe) {
			err = pe.err
		}
		return nil, fmt.Errorf("download image %s: %w", imageURL, err)
	}
	return img, nil
}

func (d *HTTPDownloader) get(ctx context.Context, imageURL, userAgent string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, http.NoBody)
	if err != nil {
		return nil, &permanentError{err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		// client errors won't change on retry, except throttling and timeouts
		if resp.StatusCode >= 400 && resp.StatusCode < 500 &&
			resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusRequestTimeout {
			return nil, &permanentError{err: err}
		}
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > d.maxSize {
		return nil, &permanentError{err: fmt.Errorf("image exceeds %d bytes", d.maxSize)}
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, &permanentError{err: fmt.Errorf("not an image, detected %s", mtype.String())}
	}

	return &Image{URL: imageURL, ContentType: mtype.String(), Data: data}, nil
}
