package wb

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"
)

// superObservationsPath is the endpoint we page through. Super observations
// are lower resolution than raw ones, which works better for most NWP use.
const superObservationsPath = "/super_observations.json"

// errConsumed is returned when a page sequence is ranged over twice.
var errConsumed = errors.New("wb: page sequence already consumed")

// Pages returns the pages of super observations between start and end.
// If end is zero there is no upper bound.
//
// The sequence is lazy: each page is requested only when the previous one
// has been handled. It stops after the page that reports no further pages,
// or after the first error. It can be ranged over only once.
func (c *Client) Pages(ctx context.Context, start, end time.Time) iter.Seq2[Page, error] {
	var used atomic.Bool
	return func(yield func(Page, error) bool) {
		if used.Swap(true) {
			yield(Page{}, errConsumed)
			return
		}
		u, err := c.pageURL(c.baseURL+superObservationsPath, start, end)
		if err != nil {
			yield(Page{}, err)
			return
		}
		seen := map[string]bool{}
		for n := 1; ; n++ {
			if seen[u] {
				yield(Page{}, fmt.Errorf("%w: next_page %s was already fetched", ErrMalformedResponse, u))
				return
			}
			seen[u] = true

			body, err := c.get(ctx, u)
			if err != nil {
				yield(Page{}, err)
				return
			}
			page, err := decodePage(body)
			if err != nil {
				yield(Page{}, fmt.Errorf("page %d: %w", n, err))
				return
			}
			c.logger.Info("fetched page", "page", n, "observations", len(page.Observations))
			if !yield(page, nil) {
				return
			}
			if !page.HasNextPage {
				return
			}
			u, err = c.pageURL(page.NextPage, start, end)
			if err != nil {
				yield(Page{}, err)
				return
			}
		}
	}
}

// Observations flattens Pages into individual observations, in the order
// the service returned them.
func (c *Client) Observations(ctx context.Context, start, end time.Time) iter.Seq2[Observation, error] {
	pages := c.Pages(ctx, start, end)
	return func(yield func(Observation, error) bool) {
		for page, err := range pages {
			if err != nil {
				yield(Observation{}, err)
				return
			}
			for _, o := range page.Observations {
				if !yield(o, nil) {
					return
				}
			}
		}
	}
}

// pageURL resolves ref against the base URL and applies the query
// parameters every page request must carry.
func (c *Client) pageURL(ref string, start, end time.Time) (string, error) {
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("bad base URL %q: %w", c.baseURL, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: bad next_page %q: %w", ErrMalformedResponse, ref, err)
	}
	u := base.ResolveReference(r)
	q := u.Query()
	q.Set("include_ids", "true")
	q.Set("include_mission_name", "true")
	q.Set("min_time", strconv.FormatInt(start.Unix(), 10))
	if !end.IsZero() {
		q.Set("max_time", strconv.FormatInt(end.Unix(), 10))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
