package esutil

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// fakeScrollClient satisfies Client for session and iterator specs without a
// transport, recording how it was called.
type fakeScrollClient struct {
	scrollCalls      []string
	clearScrollCalls []string

	scrollResponses []*EsSearchResponse
	scrollErr       error
	clearScrollErr  error
}

func (c *fakeScrollClient) Search(ctx context.Context, request *SearchRequest) (*EsSearchResponse, error) {
	panic("not used")
}

func (c *fakeScrollClient) OpenScroll(ctx context.Context, request *ScrollRequest) (*ScrollSession, *EsSearchResponse, error) {
	panic("not used")
}

func (c *fakeScrollClient) Scroll(ctx context.Context, scrollId string, keepalive time.Duration) (*EsSearchResponse, error) {
	c.scrollCalls = append(c.scrollCalls, scrollId)

	if c.scrollErr != nil {
		return nil, c.scrollErr
	}

	response := c.scrollResponses[0]
	c.scrollResponses = c.scrollResponses[1:]

	return response, nil
}

func (c *fakeScrollClient) ClearScroll(ctx context.Context, scrollId string) error {
	c.clearScrollCalls = append(c.clearScrollCalls, scrollId)

	return c.clearScrollErr
}

func scrollPage(scrollId string, ids ...string) *EsSearchResponse {
	hits := make([]*EsSearchResponseHit, 0, len(ids))
	for _, id := range ids {
		hits = append(hits, &EsSearchResponseHit{
			ID:     id,
			Source: json.RawMessage(`{}`),
		})
	}

	return &EsSearchResponse{
		ScrollId: scrollId,
		Hits:     &EsSearchResponseHits{Hits: hits},
	}
}

var _ = Describe("scroll session", func() {
	var (
		ctx        context.Context
		fakeClient *fakeScrollClient
		session    *ScrollSession
	)

	BeforeEach(func() {
		ctx = context.Background()
		fakeClient = &fakeScrollClient{}
		session = &ScrollSession{
			scrollId:  "token-1",
			keepalive: time.Minute,
		}
	})

	Context("FetchPage", func() {
		It("should swap in the fresh continuation token after each page", func() {
			fakeClient.scrollResponses = []*EsSearchResponse{
				scrollPage("token-2", "a"),
				scrollPage("token-3", "b"),
			}

			_, err := session.FetchPage(ctx, fakeClient)
			Expect(err).ToNot(HaveOccurred())
			Expect(session.ScrollId()).To(Equal("token-2"))

			_, err = session.FetchPage(ctx, fakeClient)
			Expect(err).ToNot(HaveOccurred())
			Expect(session.ScrollId()).To(Equal("token-3"))

			Expect(fakeClient.scrollCalls).To(Equal([]string{"token-1", "token-2"}))
		})

		It("should keep the session open on an empty page", func() {
			fakeClient.scrollResponses = []*EsSearchResponse{scrollPage("token-2")}

			response, err := session.FetchPage(ctx, fakeClient)

			Expect(err).ToNot(HaveOccurred())
			Expect(response.Hits.Hits).To(BeEmpty())
			Expect(session.Closed()).To(BeFalse())
		})

		It("should fail without a request once the session is closed", func() {
			Expect(session.Close(ctx, fakeClient)).To(Succeed())

			_, err := session.FetchPage(ctx, fakeClient)

			Expect(err).To(MatchError(ErrSessionClosed))
			Expect(fakeClient.scrollCalls).To(BeEmpty())
		})

		It("should reject a page that arrives without a token", func() {
			fakeClient.scrollResponses = []*EsSearchResponse{scrollPage("", "a")}

			_, err := session.FetchPage(ctx, fakeClient)

			Expect(err).To(MatchError(ErrMissingScrollId))
		})
	})

	Context("Close", func() {
		It("should release the current token exactly once", func() {
			Expect(session.Close(ctx, fakeClient)).To(Succeed())
			Expect(session.Close(ctx, fakeClient)).To(Succeed())

			Expect(session.Closed()).To(BeTrue())
			Expect(fakeClient.clearScrollCalls).To(Equal([]string{"token-1"}))
		})

		It("should transition to closed even when the release fails", func() {
			fakeClient.clearScrollErr = errors.New("connection refused")

			Expect(session.Close(ctx, fakeClient)).ToNot(Succeed())
			Expect(session.Closed()).To(BeTrue())

			Expect(session.Close(ctx, fakeClient)).To(Succeed())
			Expect(fakeClient.clearScrollCalls).To(HaveLen(1))
		})
	})
})

var _ = Describe("scroll iterator", func() {
	var (
		ctx        context.Context
		fakeClient *fakeScrollClient
		session    *ScrollSession
	)

	BeforeEach(func() {
		ctx = context.Background()
		fakeClient = &fakeScrollClient{}
		session = &ScrollSession{
			scrollId:  "token-1",
			keepalive: time.Minute,
		}
	})

	It("should flatten pages into individual hits, initial page first", func() {
		fakeClient.scrollResponses = []*EsSearchResponse{
			scrollPage("token-2", "c", "d"),
			scrollPage("token-3"),
		}

		it := session.Iterator(ctx, fakeClient, scrollPage("token-1", "a", "b"))

		var ids []string
		for it.Next() {
			ids = append(ids, it.Hit().ID)
		}

		Expect(it.Err()).ToNot(HaveOccurred())
		Expect(ids).To(Equal([]string{"a", "b", "c", "d"}))
	})

	It("should close the session exactly once on exhaustion", func() {
		fakeClient.scrollResponses = []*EsSearchResponse{scrollPage("token-2")}

		it := session.Iterator(ctx, fakeClient, scrollPage("token-1", "a"))
		for it.Next() {
		}

		Expect(session.Closed()).To(BeTrue())
		Expect(fakeClient.clearScrollCalls).To(HaveLen(1))

		// a later Close sends nothing
		Expect(it.Close()).To(Succeed())
		Expect(fakeClient.clearScrollCalls).To(HaveLen(1))
	})

	It("should return false from Next after exhaustion", func() {
		fakeClient.scrollResponses = []*EsSearchResponse{scrollPage("token-2")}

		it := session.Iterator(ctx, fakeClient, nil)

		Expect(it.Next()).To(BeFalse())
		Expect(it.Next()).To(BeFalse())
		Expect(fakeClient.scrollCalls).To(HaveLen(1))
	})

	It("should close the session when a page fetch fails", func() {
		fakeClient.scrollErr = errors.New("connection reset")

		it := session.Iterator(ctx, fakeClient, scrollPage("token-1", "a"))

		Expect(it.Next()).To(BeTrue())
		Expect(it.Next()).To(BeFalse())

		Expect(it.Err()).To(MatchError(fakeClient.scrollErr))
		Expect(session.Closed()).To(BeTrue())
	})

	It("should fold a release failure in alongside the fetch error", func() {
		fakeClient.scrollErr = errors.New("connection reset")
		fakeClient.clearScrollErr = errors.New("connection refused")

		it := session.Iterator(ctx, fakeClient, nil)

		Expect(it.Next()).To(BeFalse())

		Expect(it.Err()).To(HaveOccurred())
		Expect(it.Err().Error()).To(ContainSubstring("connection reset"))
		Expect(it.Err().Error()).To(ContainSubstring("connection refused"))
	})

	It("should release the session on early close", func() {
		it := session.Iterator(ctx, fakeClient, scrollPage("token-1", "a", "b"))

		Expect(it.Next()).To(BeTrue())
		Expect(it.Close()).To(Succeed())

		Expect(session.Closed()).To(BeTrue())
		Expect(it.Next()).To(BeFalse())
		Expect(fakeClient.scrollCalls).To(BeEmpty())
	})
})
