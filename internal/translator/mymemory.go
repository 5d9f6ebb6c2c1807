package translator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/valpere/tlpad/internal/language"
)

const (
	DefaultMyMemoryURL = "https://api.mymemory.translated.net"

	// MyMemory answers are small; anything past this is not a translation payload.
	maxMyMemoryBody = 1 << 20
)

type MyMemoryService struct {
	email   string
	baseURL string
	client  *http.Client
}

func NewMyMemoryService(email, baseURL string, timeout time.Duration) *MyMemoryService {
	if baseURL == "" {
		baseURL = DefaultMyMemoryURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MyMemoryService{
		email:   email,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *MyMemoryService) Name() string {
	return "mymemory"
}

// Translate issues a single GET to the MyMemory /get endpoint. The source
// language must already be resolved: MyMemory rejects "auto".
func (s *MyMemoryService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	baseURL := s.baseURL
	if cfg.BaseURL != "" {
		baseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	params := url.Values{}
	params.Set("q", req.Text)
	params.Set("langpair", req.LangPair())
	if s.email != "" {
		params.Set("de", s.email)
	}
	apiURL := baseURL + "/get?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result, fmt.Errorf("%w: failed to create request: %v", ErrServiceFailure, err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result, fmt.Errorf("%w: request failed: %w", ErrServiceFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMyMemoryBody))
	if err != nil {
		result.Error = fmt.Sprintf("failed to read response: %v", err)
		return result, fmt.Errorf("%w: failed to read response: %w", ErrServiceFailure, err)
	}

	if !gjson.ValidBytes(body) {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
			return result, fmt.Errorf("%w: HTTP %d", ErrServiceFailure, resp.StatusCode)
		}
		result.Error = "response is not JSON"
		return result, fmt.Errorf("%w: response is not JSON", ErrMalformedResponse)
	}

	status, ok := responseStatus(gjson.GetBytes(body, "responseStatus"))
	if !ok {
		result.Error = "missing responseStatus"
		return result, fmt.Errorf("%w: missing responseStatus", ErrMalformedResponse)
	}

	// Text in responseData wins over the status code: MyMemory reports some
	// conditions, such as an unsupported pair, as non-200 with a readable text.
	translated := gjson.GetBytes(body, "responseData.translatedText")
	usable := translated.Type == gjson.String && (status == http.StatusOK || translated.Str != "")
	if !usable && status != http.StatusOK {
		details := gjson.GetBytes(body, "responseDetails").String()
		result.Error = fmt.Sprintf("API error: %s (%d)", details, status)
		return result, fmt.Errorf("%w: API error: %s (%d)", ErrServiceFailure, details, status)
	}
	if !usable {
		result.Error = "missing responseData.translatedText"
		return result, fmt.Errorf("%w: missing responseData.translatedText", ErrMalformedResponse)
	}

	result.TranslatedText = translated.String()
	result.Confidence = gjson.GetBytes(body, "responseData.match").Float()

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}

	result.Metadata = map[string]string{"langpair": req.LangPair()}

	return result, nil
}

// responseStatus accepts both the numeric form and the quoted form MyMemory
// uses on some error paths.
func responseStatus(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		return int(v.Int()), true
	case gjson.String:
		n, err := strconv.Atoi(v.Str)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (s *MyMemoryService) IsAvailable(ctx context.Context) error {
	return nil
}

func (s *MyMemoryService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return slices.Clone(language.Supported), nil
}
