package query

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("compound queries", func() {
	Context("BoolQuery", func() {
		It("should preserve clause order within must", func() {
			result := sourceJson(NewBoolQuery().Must(
				NewTermQuery("field_a", "value"),
				NewRangeQuery("field_b").Gte(5).Lt(10),
			))

			Expect(result).To(MatchJSON(`{
				"bool": {
					"must": [
						{"term": {"field_a": {"value": "value"}}},
						{"range": {"field_b": {"gte": 5, "lt": 10}}}
					]
				}
			}`))
		})

		It("should accumulate clauses across calls", func() {
			result := sourceJson(NewBoolQuery().
				Must(NewTermQuery("a", 1)).
				Must(NewTermQuery("b", 2)).
				Should(NewTermQuery("c", 3)).
				MustNot(NewExistsQuery("d")))

			Expect(result).To(MatchJSON(`{
				"bool": {
					"must": [
						{"term": {"a": {"value": 1}}},
						{"term": {"b": {"value": 2}}}
					],
					"should": [{"term": {"c": {"value": 3}}}],
					"must_not": [{"exists": {"field": "d"}}]
				}
			}`))
		})

		It("should carry filter clauses from the filter family", func() {
			result := sourceJson(NewBoolQuery().
				Must(NewMatchQuery("title", "hello")).
				Filter(NewTermFilter("status", "published")))

			Expect(result).To(MatchJSON(`{
				"bool": {
					"must": [{"match": {"title": {"query": "hello"}}}],
					"filter": [{"term": {"status": "published"}}]
				}
			}`))
		})

		It("should include minimum_should_match and boost once set", func() {
			result := sourceJson(NewBoolQuery().Should(NewTermQuery("a", 1)).MinimumShouldMatch(1).Boost(1.5))

			Expect(result).To(MatchJSON(`{
				"bool": {
					"should": [{"term": {"a": {"value": 1}}}],
					"minimum_should_match": 1,
					"boost": 1.5
				}
			}`))
		})

		It("should encode identically on repeated calls", func() {
			node := NewBoolQuery().
				Must(NewTermQuery("field_a", "value")).
				Should(NewMatchQuery("field_b", "text"))

			Expect(sourceJson(node)).To(Equal(sourceJson(node)))
		})
	})

	Context("ConstantScoreQuery", func() {
		It("should wrap a filter", func() {
			result := sourceJson(NewConstantScoreQuery(NewTermFilter("status", "active")).Boost(2))

			Expect(result).To(MatchJSON(`{
				"constant_score": {
					"filter": {"term": {"status": "active"}},
					"boost": 2
				}
			}`))
		})
	})

	Context("DisMaxQuery", func() {
		It("should preserve sub-query order", func() {
			result := sourceJson(NewDisMaxQuery(
				NewTermQuery("a", 1),
				NewTermQuery("b", 2),
			).TieBreaker(0.7))

			Expect(result).To(MatchJSON(`{
				"dis_max": {
					"queries": [
						{"term": {"a": {"value": 1}}},
						{"term": {"b": {"value": 2}}}
					],
					"tie_breaker": 0.7
				}
			}`))
		})
	})

	Context("BoostingQuery", func() {
		It("should carry positive and negative queries", func() {
			result := sourceJson(NewBoostingQuery(
				NewTermQuery("a", 1),
				NewTermQuery("b", 2),
			).NegativeBoost(0.2))

			Expect(result).To(MatchJSON(`{
				"boosting": {
					"positive": {"term": {"a": {"value": 1}}},
					"negative": {"term": {"b": {"value": 2}}},
					"negative_boost": 0.2
				}
			}`))
		})
	})

	Context("FunctionScoreQuery", func() {
		It("should render functions in order, with filters alongside", func() {
			result := sourceJson(NewFunctionScoreQuery().
				Query(NewMatchAllQuery()).
				FilteredFunction(NewTermFilter("status", "vip"), NewWeightFunction(3)).
				Function(NewRandomScoreFunction().Seed(42)).
				ScoreMode(ScoreModeSum).
				BoostMode(BoostModeMultiply))

			Expect(result).To(MatchJSON(`{
				"function_score": {
					"query": {"match_all": {}},
					"functions": [
						{"filter": {"term": {"status": "vip"}}, "weight": 3},
						{"random_score": {"seed": 42}}
					],
					"score_mode": "sum",
					"boost_mode": "multiply"
				}
			}`))
		})
	})

	Context("span queries", func() {
		It("should preserve span_near clause order", func() {
			result := sourceJson(NewSpanNearQuery(5,
				NewSpanTermQuery("body", "quick"),
				NewSpanTermQuery("body", "fox"),
			).InOrder(true))

			Expect(result).To(MatchJSON(`{
				"span_near": {
					"clauses": [
						{"span_term": {"body": {"value": "quick"}}},
						{"span_term": {"body": {"value": "fox"}}}
					],
					"slop": 5,
					"in_order": true
				}
			}`))
		})

		It("should render span_or unions", func() {
			result := sourceJson(NewSpanOrQuery(
				NewSpanTermQuery("body", "quick"),
				NewSpanTermQuery("body", "fast"),
			))

			Expect(result).To(MatchJSON(`{
				"span_or": {
					"clauses": [
						{"span_term": {"body": {"value": "quick"}}},
						{"span_term": {"body": {"value": "fast"}}}
					]
				}
			}`))
		})

		It("should render span_first with its boundary", func() {
			result := sourceJson(NewSpanFirstQuery(NewSpanTermQuery("body", "quick"), 3))

			Expect(result).To(MatchJSON(`{
				"span_first": {
					"match": {"span_term": {"body": {"value": "quick"}}},
					"end": 3
				}
			}`))
		})
	})

	Context("joining queries", func() {
		It("should render nested queries with their path", func() {
			result := sourceJson(NewNestedQuery("comments", NewTermQuery("comments.author", "kim")).ScoreMode(ScoreModeAvg))

			Expect(result).To(MatchJSON(`{
				"nested": {
					"path": "comments",
					"query": {"term": {"comments.author": {"value": "kim"}}},
					"score_mode": "avg"
				}
			}`))
		})

		It("should serialize the has_child document type under its wire name", func() {
			result := sourceJson(NewHasChildQuery("comment", NewMatchAllQuery()).MinChildren(2))

			Expect(result).To(MatchJSON(`{
				"has_child": {
					"type": "comment",
					"query": {"match_all": {}},
					"min_children": 2
				}
			}`))
		})

		It("should render has_parent with the parent type", func() {
			result := sourceJson(NewHasParentQuery("post", NewTermQuery("tag", "go")))

			Expect(result).To(MatchJSON(`{
				"has_parent": {
					"parent_type": "post",
					"query": {"term": {"tag": {"value": "go"}}}
				}
			}`))
		})
	})

	Context("randomized structure", func() {
		It("should encode deterministically for an arbitrary field name", func() {
			field := fake.LetterN(12)
			node := NewBoolQuery().Must(NewTermQuery(field, fake.LetterN(8)))

			first := sourceJson(node)
			second := sourceJson(node)

			Expect(first).To(Equal(second))
		})
	})
})
