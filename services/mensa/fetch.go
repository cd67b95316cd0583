package mensa

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mensa-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/mensa")

// ErrSourceUnavailable marks a cycle where the canteen page could not
// be retrieved or decoded; callers skip the cycle and keep serving the
// previous snapshot.
var ErrSourceUnavailable = errors.New("menu source unavailable")

const fetchTimeout = time.Second * 30

type Fetcher struct {
	url  string
	http *resty.Client
}

func NewFetcher(sourceURL string) *Fetcher {
	client := resty.New()
	client.SetTimeout(fetchTimeout)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")

	telemetry.InstrumentResty(client, "mensa/fetch")

	return &Fetcher{
		url:  sourceURL,
		http: client,
	}
}

// Fetch retrieves the menu page and returns it as repaired utf-8 text.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()

	res, err := f.http.R().
		SetContext(ctx).
		Get(f.url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if res.StatusCode() >= 300 {
		err := fmt.Errorf("%w: status %d", ErrSourceUnavailable, res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return "", err
	}

	repaired, err := repairEncoding(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode")
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return string(repaired), nil
}
