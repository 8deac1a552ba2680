package analyzer

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultServiceURL = "http://localhost:5000/api/parse-resume"
	DefaultTimeout    = 60 * time.Second

	userAgent       = "spigell/resume-matcher"
	contentEncoding = "gzip"
)

// Service uploads resumes to an HTTP analysis service.
type Service struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	URL        string
}

func NewService(logger *zap.Logger, url string, timeout time.Duration) *Service {
	if url == "" {
		url = DefaultServiceURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger: logger,
		URL:    url,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
	}
}

func (s *Service) Name() string { return "service" }

// Analyze posts the document as multipart form data and returns the response body.
func (s *Service) Analyze(ctx context.Context, doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is required")
	}

	body, contentType, err := encodeForm(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)
	req.Header.Set("Accept", "application/json")

	s.logger.Debug("make request", zap.String("url", req.URL.String()), zap.String("file", doc.Name))
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	s.logger.Debug("got response from analysis service", zap.Int("bytes", len(data)))
	return data, nil
}

func encodeForm(doc *Document) (*bytes.Buffer, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	part, err := w.CreateFormFile("file", doc.Name)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(doc.Content); err != nil {
		return nil, "", err
	}

	if doc.JobDescription != "" {
		if err := w.WriteField("job_description", doc.JobDescription); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &b, w.FormDataContentType(), nil
}
