package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"buyback/pkg/logx"
	"buyback/pkg/middlewarex"
	"buyback/pkg/ratelimit"
)

// Server объединяет HTTP сервера отдельных сущностей.
type Server struct {
	BuyRequestServer
	ModelPriceServer

	options Options
}

type limiter interface {
	Allow(ctx context.Context, key string) ratelimit.Result
}

// Options задают аутентификацию и лимиты /v1.
type Options struct {
	AdminToken      string
	UserEmailHeader string
	LogFieldMaxLen  int
	CreateLimiter   limiter
	AdminLimiter    limiter
}

func NewServer(
	buyRequestServer BuyRequestServer,
	modelPriceServer ModelPriceServer,
	options Options,
) Server {
	if options.UserEmailHeader == "" {
		options.UserEmailHeader = "X-User-Email"
	}

	return Server{
		BuyRequestServer: buyRequestServer,
		ModelPriceServer: modelPriceServer,
		options:          options,
	}
}

// Handler собирает роутер вместе с общей цепочкой middleware.
func (s Server) Handler() http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, s.options.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, s.options.LogFieldMaxLen),
		middlewarex.Recovery,
	)

	s.RegisterRoutes(r)

	return r
}

func throttle(l limiter) func(http.Handler) http.Handler {
	if l == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return middlewarex.Throttle(l)
}
