package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/2beens/roundtracker/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrBridgeUnavailable = errors.New("health bridge unavailable")

type bridgeResponse struct {
	Entries []Entry `json:"entries"`
}

// Bridge reads health data from the platform health API. Responses are cached in redis
// per user and date range.
type Bridge struct {
	endpoint    string
	token       string
	cacheTTL    time.Duration
	httpClient  *http.Client
	redisClient *redis.Client
}

func NewBridge(
	endpoint, token string,
	cacheTTL time.Duration,
	httpClient *http.Client,
	redisClient *redis.Client,
) *Bridge {
	return &Bridge{
		endpoint:    endpoint,
		token:       token,
		cacheTTL:    cacheTTL,
		httpClient:  httpClient,
		redisClient: redisClient,
	}
}

func cacheKey(userKey, from, to string) string {
	return fmt.Sprintf("health-bridge::%s:%s:%s", userKey, from, to)
}

// Fetch returns raw entries between from and to (inclusive). Entries are passed on
// unvalidated, some may lack a date.
func (b *Bridge) Fetch(ctx context.Context, userKey, from, to string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "healthBridge.fetch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", from), attribute.String("to", to))

	key := cacheKey(userKey, from, to)
	cached, err := b.redisClient.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		span.SetAttributes(attribute.Bool("from-cache", false))
	case err != nil:
		log.Errorf("failed to get cached health data [%s]: %s", key, err)
	default:
		var resp bridgeResponse
		uErr := json.Unmarshal(cached, &resp)
		if uErr == nil {
			span.SetAttributes(attribute.Bool("from-cache", true))
			log.Tracef("found health data for [%s] in redis cache", key)
			return resp.Entries, nil
		}
		log.Errorf("failed to unmarshal cached health data [%s]: %s", key, uErr)
	}

	query := url.Values{}
	query.Set("user", userKey)
	query.Set("from", from)
	query.Set("to", to)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint+"/v1/health?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBridgeUnavailable, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read health bridge response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrBridgeUnavailable, resp.StatusCode)
	}

	var bridgeResp bridgeResponse
	if err := json.Unmarshal(respBytes, &bridgeResp); err != nil {
		return nil, fmt.Errorf("unmarshal health bridge response: %w", err)
	}

	if err := b.redisClient.Set(ctx, key, respBytes, b.cacheTTL).Err(); err != nil {
		log.Errorf("failed to cache health data [%s]: %s", key, err)
	} else {
		log.Debugf("health data cached for [%s]", key)
	}

	return bridgeResp.Entries, nil
}
