package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"todos/config"
	"todos/infras/otel/mocks"
	"todos/shared/cache"
	cacheMocks "todos/shared/cache/mocks"
	"todos/shared/constant"
	"todos/shared/logger"
	"todos/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func limiterConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(mockCache *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name: "first request",
			setupMock: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Get(gomock.Any(), "limiter:10.0.0.1:curl", gomock.Any()).Return(cache.Nil)
				mockCache.EXPECT().Save(gomock.Any(), "limiter:10.0.0.1:curl", 1, 60).Return(nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "1",
		},
		{
			name: "over the limit",
			setupMock: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*int) = 2

						return nil
					})
			},
			wantCode: http.StatusTooManyRequests,
		},
		{
			name: "cache failure lets the request through",
			setupMock: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(mockCache)

			mw := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(), mockCache)

			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1, 192.168.0.1")
			req.Header.Set(constant.RequestHeaderUserAgent, "curl")

			rec := httptest.NewRecorder()
			mw.RateLimit()(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mw := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl))

	rec := httptest.NewRecorder()
	mw.RateLimit()(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID(t *testing.T) {
	mw := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cache.NewNoop())

	var seen string

	handler := mw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(constant.RequestHeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constant.RequestHeaderRequestID, "abc-123")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(constant.RequestHeaderRequestID))
}

func TestTracing_PassesThrough(t *testing.T) {
	mw := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cache.NewNoop())

	rec := httptest.NewRecorder()
	mw.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
