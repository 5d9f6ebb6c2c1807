package translator

import (
	"context"

	"github.com/valpere/tlpad/internal/cache"
)

// CachedService answers repeated requests from a TranslationCache and only
// calls the wrapped service on a miss. Failures are never cached.
type CachedService struct {
	next  TranslationService
	cache cache.TranslationCache
}

func NewCachedService(next TranslationService, c cache.TranslationCache) *CachedService {
	return &CachedService{next: next, cache: c}
}

func (s *CachedService) Name() string {
	return s.next.Name()
}

func (s *CachedService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	key := cache.Key(req.Text, req.SourceLang, req.TargetLang, s.next.Name())

	if text, ok := s.cache.Get(ctx, key); ok {
		return &ServiceResult{
			ServiceName:    s.next.Name(),
			TranslatedText: text,
			Confidence:     1,
			Metadata:       map[string]string{"cache": "hit"},
		}, nil
	}

	result, err := s.next.Translate(ctx, cfg, req)
	if err != nil {
		return result, err
	}

	// A cache write failure must not fail a translation that already succeeded.
	_ = s.cache.Set(ctx, key, result.TranslatedText)
	return result, nil
}

func (s *CachedService) IsAvailable(ctx context.Context) error {
	return s.next.IsAvailable(ctx)
}

func (s *CachedService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return s.next.SupportedLanguages(ctx)
}
