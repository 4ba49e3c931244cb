package esutil

import (
	"context"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/google/uuid"
	"github.com/rode/es-query/go/query"
	"go.uber.org/zap"
)

// SearchRequest describes a single-page search. A nil Query lets the engine
// default to matching everything.
type SearchRequest struct {
	Index string
	Query query.Query
	Sort  []query.Sorter
	Size  int
}

// ScrollRequest opens a scan/scroll session over the full result set of a
// search. Keepalive is the server-side TTL of the scroll context, refreshed
// by every page fetch; it defaults to five minutes.
type ScrollRequest struct {
	Index     string
	Query     query.Query
	Sort      []query.Sorter
	Size      int
	Keepalive time.Duration
}

const defaultScrollKeepalive = 5 * time.Minute

type Client interface {
	// Search executes the query and returns a single page of results.
	Search(ctx context.Context, request *SearchRequest) (*EsSearchResponse, error)

	// OpenScroll executes the query with a scroll TTL, returning the session
	// and the first page of results.
	OpenScroll(ctx context.Context, request *ScrollRequest) (*ScrollSession, *EsSearchResponse, error)

	// Scroll fetches the next page for a continuation token, re-asserting
	// the TTL.
	Scroll(ctx context.Context, scrollId string, keepalive time.Duration) (*EsSearchResponse, error)

	// ClearScroll releases the server-side resources behind a continuation
	// token. A token the engine no longer knows is not an error.
	ClearScroll(ctx context.Context, scrollId string) error
}

type client struct {
	logger   *zap.Logger
	esClient *elasticsearch.Client
}

func NewClient(logger *zap.Logger, esClient *elasticsearch.Client) Client {
	return &client{
		logger,
		esClient,
	}
}

func (c *client) Search(ctx context.Context, request *SearchRequest) (*EsSearchResponse, error) {
	log := c.logger.Named("Search").With(zap.String("requestId", uuid.New().String()))

	encodedBody, requestJson, err := encodeSearchBody(request.Query, request.Sort)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("request", requestJson))

	searchOptions := []func(*esapi.SearchRequest){
		c.esClient.Search.WithContext(ctx),
		c.esClient.Search.WithIndex(request.Index),
		c.esClient.Search.WithBody(encodedBody),
	}
	if request.Size > 0 {
		searchOptions = append(searchOptions, c.esClient.Search.WithSize(request.Size))
	}

	res, err := c.esClient.Search(searchOptions...)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, errorFromResponse(res)
	}

	searchResponse := EsSearchResponse{}
	if err := DecodeResponse(res.Body, &searchResponse); err != nil {
		return nil, err
	}

	log.Debug("search executed", zap.Int("total", searchResponse.Hits.Total.Value))

	return &searchResponse, nil
}

func (c *client) OpenScroll(ctx context.Context, request *ScrollRequest) (*ScrollSession, *EsSearchResponse, error) {
	log := c.logger.Named("OpenScroll").With(zap.String("requestId", uuid.New().String()))

	keepalive := request.Keepalive
	if keepalive == 0 {
		keepalive = defaultScrollKeepalive
	}

	encodedBody, requestJson, err := encodeSearchBody(request.Query, request.Sort)
	if err != nil {
		return nil, nil, err
	}
	log = log.With(zap.String("request", requestJson))

	searchOptions := []func(*esapi.SearchRequest){
		c.esClient.Search.WithContext(ctx),
		c.esClient.Search.WithIndex(request.Index),
		c.esClient.Search.WithBody(encodedBody),
		c.esClient.Search.WithScroll(keepalive),
	}
	if request.Size > 0 {
		searchOptions = append(searchOptions, c.esClient.Search.WithSize(request.Size))
	}

	res, err := c.esClient.Search(searchOptions...)
	if err != nil {
		return nil, nil, err
	}
	if res.IsError() {
		return nil, nil, errorFromResponse(res)
	}

	searchResponse := EsSearchResponse{}
	if err := DecodeResponse(res.Body, &searchResponse); err != nil {
		return nil, nil, err
	}

	if searchResponse.ScrollId == "" {
		return nil, nil, ErrMissingScrollId
	}

	log.Debug("scroll opened", zap.String("scrollId", searchResponse.ScrollId))

	session := &ScrollSession{
		scrollId:  searchResponse.ScrollId,
		keepalive: keepalive,
	}

	return session, &searchResponse, nil
}

func (c *client) Scroll(ctx context.Context, scrollId string, keepalive time.Duration) (*EsSearchResponse, error) {
	log := c.logger.Named("Scroll").With(zap.String("requestId", uuid.New().String()))

	encodedBody, _ := EncodeRequest(&EsScrollRequest{
		Scroll:   formatKeepalive(keepalive),
		ScrollId: scrollId,
	})

	res, err := c.esClient.Scroll(
		c.esClient.Scroll.WithContext(ctx),
		c.esClient.Scroll.WithBody(encodedBody),
	)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, errorFromResponse(res)
	}

	searchResponse := EsSearchResponse{}
	if err := DecodeResponse(res.Body, &searchResponse); err != nil {
		return nil, err
	}

	log.Debug("scroll continued", zap.Int("hits", len(searchResponse.Hits.Hits)))

	return &searchResponse, nil
}

func (c *client) ClearScroll(ctx context.Context, scrollId string) error {
	log := c.logger.Named("ClearScroll").With(zap.String("requestId", uuid.New().String()))

	encodedBody, _ := EncodeRequest(&EsClearScrollRequest{
		ScrollId: []string{scrollId},
	})

	res, err := c.esClient.ClearScroll(
		c.esClient.ClearScroll.WithContext(ctx),
		c.esClient.ClearScroll.WithBody(encodedBody),
	)
	if err != nil {
		return err
	}
	if res.IsError() {
		releaseErr := errorFromResponse(res)
		// the engine already dropped the context, nothing left to release
		if IsScrollExpired(releaseErr) {
			log.Debug("scroll already released", zap.String("scrollId", scrollId))
			return nil
		}

		return releaseErr
	}

	log.Debug("scroll released", zap.String("scrollId", scrollId))

	return nil
}

func encodeSearchBody(q query.Query, sort []query.Sorter) (io.Reader, string, error) {
	body := map[string]interface{}{}

	if q != nil {
		querySource, err := q.Source()
		if err != nil {
			return nil, "", err
		}

		body["query"] = querySource
	}

	if len(sort) != 0 {
		sortSources, err := query.SortSources(sort)
		if err != nil {
			return nil, "", err
		}

		body["sort"] = sortSources
	}

	reader, requestJson := EncodeRequest(body)

	return reader, requestJson, nil
}
