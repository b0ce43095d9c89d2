// Package ebi implements the ChEBI web-service client used as the network
// fallback for identifiers absent from the local tables.
package ebi

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domaingrounding "github.com/biotext/bioground/internal/domain/grounding"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
)

// maxResponseBytes caps how much of a response body is read; entity records
// are a few KB and anything larger is not a ChEBI entry.
const maxResponseBytes = 1 << 20

// ─────────────────────────────────────────────────────────────────────────────
// rate limiter — token bucket refilled on a ticker
// ─────────────────────────────────────────────────────────────────────────────

type rateLimiter struct {
	tokens chan struct{}
	done   chan struct{}
}

func newRateLimiter(perSecond int) *rateLimiter {
	if perSecond < 1 {
		perSecond = 1
	}
	rl := &rateLimiter{
		tokens: make(chan struct{}, perSecond),
		done:   make(chan struct{}),
	}
	for i := 0; i < perSecond; i++ {
		rl.tokens <- struct{}{}
	}
	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(perSecond))
		defer ticker.Stop()
		for {
			select {
			case <-rl.done:
				return
			case <-ticker.C:
				select {
				case rl.tokens <- struct{}{}:
				default:
				}
			}
		}
	}()
	return rl
}

func (rl *rateLimiter) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-rl.tokens:
		return nil
	}
}

func (rl *rateLimiter) close() { close(rl.done) }

// ─────────────────────────────────────────────────────────────────────────────
// Client
// ─────────────────────────────────────────────────────────────────────────────

// LookupObserver counts remote round trips and cache-served answers.  The
// prometheus metric set satisfies it.
type LookupObserver interface {
	RemoteLookup()
	CacheHit()
}

type nopLookupObserver struct{}

func (nopLookupObserver) RemoteLookup() {}
func (nopLookupObserver) CacheHit()     {}

// Config carries the client's tunables.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond int

	// Observer counts round trips; nil discards them.
	Observer LookupObserver
}

// Client fetches ChEBI entries via the getCompleteEntity endpoint.  It
// implements grounding.RemoteEntryClient: a non-200 response or a payload
// that does not parse as an entity record is a not-found result, never an
// error; errors are reserved for transport failures and cancellation.
type Client struct {
	base    string
	httpc   *http.Client
	limiter *rateLimiter
	obs     LookupObserver
	log     logging.Logger
}

// NewClient constructs a rate-limited Client.
func NewClient(cfg Config, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewNopLogger()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	obs := cfg.Observer
	if obs == nil {
		obs = nopLookupObserver{}
	}
	return &Client{
		base:    cfg.BaseURL,
		httpc:   &http.Client{Timeout: timeout},
		limiter: newRateLimiter(cfg.RatePerSecond),
		obs:     obs,
		log:     log.Named("ebi-chebi"),
	}
}

// Close releases the limiter's refill goroutine.
func (c *Client) Close() { c.limiter.close() }

// entityEnvelope mirrors the SOAP response shape; namespaces are matched by
// local element name.
type entityEnvelope struct {
	XMLName xml.Name
	Body    struct {
		Response struct {
			Return struct {
				ChebiID  string `xml:"chebiId"`
				Name     string `xml:"chebiAsciiName"`
				InChIKey string `xml:"inchiKey"`
			} `xml:"return"`
		} `xml:"getCompleteEntityResponse"`
	} `xml:"Body"`
}

// FetchChEBIEntry queries the web service for id (bare or prefixed form).
func (c *Client) FetchChEBIEntry(ctx context.Context, id string) (*domaingrounding.ChEBIEntry, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}
	c.obs.RemoteLookup()

	bare := domaingrounding.StripChEBIPrefix(id)
	q := url.Values{}
	q.Set("chebiId", "CHEBI:"+bare)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("ChEBI entity query returned non-200",
			logging.String("chebi_id", bare), logging.Int("status", resp.StatusCode))
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	var env entityEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		c.log.Debug("ChEBI entity response did not parse",
			logging.String("chebi_id", bare), logging.Err(err))
		return nil, nil
	}

	ret := env.Body.Response.Return
	if ret.ChebiID == "" {
		return nil, nil
	}
	return &domaingrounding.ChEBIEntry{
		ID:       strings.TrimSpace(ret.ChebiID),
		Name:     ret.Name,
		InChIKey: ret.InChIKey,
	}, nil
}

//Personal.AI order the ending
