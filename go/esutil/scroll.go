// Copyright 2021 The Rode Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package esutil

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"
)

// ScrollSession tracks one server-side scroll context: its continuation
// token, its TTL, and whether it has been closed. The session doesn't own a
// transport; callers pass the Client into every operation, or wrap the
// session in a ScrollIterator which holds it for them.
//
// The token is replaced after every page fetch, so pages must be requested
// one at a time, in order, by a single caller.
type ScrollSession struct {
	scrollId  string
	keepalive time.Duration
	closed    bool
}

// ScrollId returns the current continuation token. Tokens are not stable
// across pages.
func (s *ScrollSession) ScrollId() string {
	return s.scrollId
}

func (s *ScrollSession) Closed() bool {
	return s.closed
}

// FetchPage requests the next page and swaps in the fresh continuation
// token. An empty page means the result set is exhausted; the session stays
// open until Close is called. Calling FetchPage on a closed session fails
// with ErrSessionClosed before any request is made.
func (s *ScrollSession) FetchPage(ctx context.Context, client Client) (*EsSearchResponse, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}

	response, err := client.Scroll(ctx, s.scrollId, s.keepalive)
	if err != nil {
		return nil, err
	}

	if response.ScrollId == "" {
		return nil, ErrMissingScrollId
	}
	s.scrollId = response.ScrollId

	return response, nil
}

// Close releases the server-side scroll context. The session transitions to
// closed unconditionally, even when the release request fails, and a second
// Close is a no-op that sends nothing.
func (s *ScrollSession) Close(ctx context.Context, client Client) error {
	if s.closed {
		return nil
	}
	s.closed = true

	return client.ClearScroll(ctx, s.scrollId)
}

// Iterator wraps the session and its first page in a ScrollIterator. The
// iterator has exclusive use of the client until it's done.
func (s *ScrollSession) Iterator(ctx context.Context, client Client, initial *EsSearchResponse) *ScrollIterator {
	iterator := &ScrollIterator{
		ctx:     ctx,
		client:  client,
		session: s,
	}
	if initial != nil && initial.Hits != nil {
		iterator.page = initial.Hits.Hits
	}

	return iterator
}

// OpenScrollIterator opens a scroll session and returns an iterator over
// every hit in the result set.
func OpenScrollIterator(ctx context.Context, client Client, request *ScrollRequest) (*ScrollIterator, error) {
	session, initial, err := client.OpenScroll(ctx, request)
	if err != nil {
		return nil, err
	}

	return session.Iterator(ctx, client, initial), nil
}

// ScrollIterator is a lazy, non-restartable sequence over the hits of a
// scroll session, flattening pages into individual hits. It closes the
// session exactly once: when the result set is exhausted, when an error
// stops iteration, or when the consumer abandons it through Close.
//
// Usage follows the scanner pattern:
//
//	it, err := esutil.OpenScrollIterator(ctx, client, request)
//	if err != nil { ... }
//	defer it.Close()
//	for it.Next() {
//	    hit := it.Hit()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
type ScrollIterator struct {
	ctx     context.Context
	client  Client
	session *ScrollSession

	page    []*EsSearchResponseHit
	current *EsSearchResponseHit
	err     error
	done    bool
}

// Next advances to the next hit, fetching pages on demand. It returns false
// once the session is exhausted or an error occurred, in either case after
// closing the session.
func (it *ScrollIterator) Next() bool {
	if it.done {
		return false
	}

	if len(it.page) == 0 {
		response, err := it.session.FetchPage(it.ctx, it.client)
		if err != nil {
			it.err = err
			it.finish()

			return false
		}

		if response.Hits == nil || len(response.Hits.Hits) == 0 {
			it.finish()

			return false
		}

		it.page = response.Hits.Hits
	}

	it.current = it.page[0]
	it.page = it.page[1:]

	return true
}

// Hit returns the hit advanced to by the last successful Next.
func (it *ScrollIterator) Hit() *EsSearchResponseHit {
	return it.current
}

// Err returns the error that stopped iteration, if any. A failure to
// release the session is folded in alongside it.
func (it *ScrollIterator) Err() error {
	return it.err
}

// Close releases the session early. It's safe to call at any point and
// after exhaustion; the release request is only ever sent once.
func (it *ScrollIterator) Close() error {
	if it.done {
		return nil
	}
	it.done = true

	return it.session.Close(it.ctx, it.client)
}

func (it *ScrollIterator) finish() {
	it.done = true

	if closeErr := it.session.Close(it.ctx, it.client); closeErr != nil {
		if it.err != nil {
			it.err = multierror.Append(it.err, closeErr)
		} else {
			it.err = closeErr
		}
	}
}
