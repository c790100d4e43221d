package vendorlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/unkn0wn-root/gdprconsent"
	"github.com/unkn0wn-root/gdprconsent/codec"
	"github.com/unkn0wn-root/gdprconsent/store"
)

// DefaultBaseURL is the public host serving the global vendor list.
const DefaultBaseURL = "https://vendorlist.consensu.org"

// ClientOptions tune the vendor-list client. Everything has a sensible
// default; the zero value fetches from the public host without caching.
type ClientOptions struct {
	BaseURL    string       // default DefaultBaseURL
	HTTPClient *http.Client // default: 30s timeout client

	// Store enables read-through caching of fetched lists. Nil disables
	// caching entirely; Latest/Version then always hit the network.
	Store store.Store

	// Codec serializes lists into the store. Default is JSON. Wrapped in
	// codec.Limit when MaxCachedPayload > 0.
	Codec codec.Codec[*VendorList]

	// MaxCachedPayload rejects cache entries larger than this many bytes on
	// read. 0 disables the limit.
	MaxCachedPayload int

	Logger    gdprconsent.Logger // nil disables logging
	LatestTTL time.Duration      // cache TTL for the "latest" list; 0 => 1h
}

// Client fetches vendor lists over HTTP, optionally caching them in a
// pluggable byte store. A specific version of the list is immutable once
// published, so versioned entries are cached without expiry; "latest" rolls
// over and is cached under LatestTTL.
type Client struct {
	base      string
	httpc     *http.Client
	store     store.Store
	codec     codec.Codec[*VendorList]
	log       gdprconsent.Logger
	latestTTL time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	c := &Client{
		base:      coalesce(opts.BaseURL, DefaultBaseURL),
		httpc:     opts.HTTPClient,
		store:     opts.Store,
		log:       opts.Logger,
		latestTTL: coalesce(opts.LatestTTL, time.Hour),
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: 30 * time.Second}
	}
	if c.log == nil {
		c.log = gdprconsent.NopLogger{}
	}

	c.codec = opts.Codec
	if c.codec == nil {
		c.codec = codec.JSON[*VendorList]{}
	}
	if opts.MaxCachedPayload > 0 {
		c.codec = codec.Limit[*VendorList]{Inner: c.codec, MaxDecode: opts.MaxCachedPayload}
	}
	return c, nil
}

// Latest returns the most recently published vendor list.
func (c *Client) Latest(ctx context.Context) (*VendorList, error) {
	key := "vendorlist:latest"
	if l, ok := c.cached(ctx, key); ok {
		return l, nil
	}
	l, err := c.fetch(ctx, c.base+"/vendorlist.json")
	if err != nil {
		return nil, err
	}
	c.cache(ctx, key, l, c.latestTTL)
	// the fetched list is also a concrete immutable version; seed it
	c.cache(ctx, versionKey(l.Version), l, 0)
	return l, nil
}

// Version returns a specific archived vendor-list version.
func (c *Client) Version(ctx context.Context, version uint16) (*VendorList, error) {
	key := versionKey(version)
	if l, ok := c.cached(ctx, key); ok {
		return l, nil
	}
	l, err := c.fetch(ctx, fmt.Sprintf("%s/v-%d/vendorlist.json", c.base, version))
	if err != nil {
		return nil, err
	}
	if l.Version != version {
		return nil, fmt.Errorf("vendorlist: requested version %d, got %d", version, l.Version)
	}
	c.cache(ctx, key, l, 0) // immutable once published
	return l, nil
}

func versionKey(v uint16) string {
	return fmt.Sprintf("vendorlist:v:%d", v)
}

// cached reads a list from the store. Undecodable entries are deleted and
// treated as a miss.
func (c *Client) cached(ctx context.Context, key string) (*VendorList, bool) {
	if c.store == nil {
		return nil, false
	}
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("vendorlist cache read failed", gdprconsent.Fields{"key": key, "err": err})
		return nil, false
	}
	if !ok {
		return nil, false
	}
	l, err := c.codec.Decode(raw)
	if err != nil {
		_ = c.store.Del(ctx, key) // self-heal corrupt
		c.log.Debug("dropped corrupt vendorlist cache entry", gdprconsent.Fields{"key": key, "err": err})
		return nil, false
	}
	return l, true
}

func (c *Client) cache(ctx context.Context, key string, l *VendorList, ttl time.Duration) {
	if c.store == nil {
		return
	}
	raw, err := c.codec.Encode(l)
	if err != nil {
		c.log.Warn("vendorlist cache encode failed", gdprconsent.Fields{"key": key, "err": err})
		return
	}
	ok, err := c.store.Set(ctx, key, raw, ttl)
	if err != nil {
		c.log.Warn("vendorlist cache write failed", gdprconsent.Fields{"key": key, "err": err})
		return
	}
	if !ok {
		c.log.Debug("vendorlist cache write rejected (pressure)", gdprconsent.Fields{"key": key})
	}
}

func (c *Client) fetch(ctx context.Context, url string) (*VendorList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vendorlist: GET %s: unexpected status %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	l := &VendorList{}
	if err := json.Unmarshal(body, l); err != nil {
		return nil, fmt.Errorf("vendorlist: decode %s: %w", url, err)
	}
	c.log.Debug("fetched vendor list", gdprconsent.Fields{"url": url, "version": l.Version})
	return l, nil
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
