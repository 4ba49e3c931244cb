package filtering

import (
	"encoding/json"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/rode/es-query/go/query"
)

func parseToJson(filter string) string {
	parsed, err := NewFilterer().ParseExpression(filter)
	Expect(err).ToNot(HaveOccurred())

	source, err := parsed.Source()
	Expect(err).ToNot(HaveOccurred())

	b, err := json.Marshal(source)
	Expect(err).ToNot(HaveOccurred())

	return string(b)
}

var _ = Describe("filterer", func() {
	Context("comparisons", func() {
		It("should map equality to a term query", func() {
			Expect(parseToJson(`name=="scanner"`)).To(MatchJSON(`{
				"term": {"name": {"value": "scanner"}}
			}`))
		})

		It("should accept identifiers on both sides", func() {
			Expect(parseToJson(`name==scanner`)).To(MatchJSON(`{
				"term": {"name": {"value": "scanner"}}
			}`))
		})

		It("should map inequality to a negated term query", func() {
			Expect(parseToJson(`name!="scanner"`)).To(MatchJSON(`{
				"bool": {"must_not": [{"term": {"name": {"value": "scanner"}}}]}
			}`))
		})

		It("should map ordering operators to range queries", func() {
			Expect(parseToJson(`severity>3`)).To(MatchJSON(`{"range": {"severity": {"gt": 3}}}`))
			Expect(parseToJson(`severity>=3`)).To(MatchJSON(`{"range": {"severity": {"gte": 3}}}`))
			Expect(parseToJson(`severity<3`)).To(MatchJSON(`{"range": {"severity": {"lt": 3}}}`))
			Expect(parseToJson(`severity<=3`)).To(MatchJSON(`{"range": {"severity": {"lte": 3}}}`))
		})

		It("should carry numeric literal types through", func() {
			Expect(parseToJson(`ratio>0.5`)).To(MatchJSON(`{"range": {"ratio": {"gt": 0.5}}}`))
		})
	})

	Context("boolean operators", func() {
		It("should map conjunction to a bool must", func() {
			Expect(parseToJson(`name=="a"&&kind=="b"`)).To(MatchJSON(`{
				"bool": {
					"must": [
						{"term": {"name": {"value": "a"}}},
						{"term": {"kind": {"value": "b"}}}
					]
				}
			}`))
		})

		It("should map disjunction to a bool should", func() {
			Expect(parseToJson(`name=="a"||kind=="b"`)).To(MatchJSON(`{
				"bool": {
					"should": [
						{"term": {"name": {"value": "a"}}},
						{"term": {"kind": {"value": "b"}}}
					]
				}
			}`))
		})

		It("should nest grouped sub-expressions", func() {
			Expect(parseToJson(`(name=="a"||name=="b")&&kind=="c"`)).To(MatchJSON(`{
				"bool": {
					"must": [
						{
							"bool": {
								"should": [
									{"term": {"name": {"value": "a"}}},
									{"term": {"name": {"value": "b"}}}
								]
							}
						},
						{"term": {"kind": {"value": "c"}}}
					]
				}
			}`))
		})
	})

	Context("field paths", func() {
		It("should join selected fields with dots", func() {
			Expect(parseToJson(`vulnerability.severity=="HIGH"`)).To(MatchJSON(`{
				"term": {"vulnerability.severity": {"value": "HIGH"}}
			}`))
		})
	})

	Context("functions", func() {
		It("should map startsWith to a prefix query", func() {
			Expect(parseToJson(`resource.uri.startsWith("https://")`)).To(MatchJSON(`{
				"prefix": {"resource.uri": {"value": "https://"}}
			}`))
		})

		It("should map contains to a wildcard query string", func() {
			Expect(parseToJson(`name.contains("scan")`)).To(MatchJSON(`{
				"query_string": {
					"query": "*scan*",
					"default_field": "name"
				}
			}`))
		})

		It("should escape reserved characters in contains arguments", func() {
			Expect(parseToJson(`uri.contains("a/b")`)).To(MatchJSON(`{
				"query_string": {
					"query": "*a\\/b*",
					"default_field": "uri"
				}
			}`))
		})

		It("should map nestedFilter to a nested query scoped to the path", func() {
			Expect(parseToJson(`occurrences.nestedFilter(occurrences.kind=="VULNERABILITY")`)).To(MatchJSON(`{
				"nested": {
					"path": "occurrences",
					"query": {"term": {"occurrences.kind": {"value": "VULNERABILITY"}}}
				}
			}`))
		})

		It("should prefix identifiers inside a nested filter with its path", func() {
			Expect(parseToJson(`occurrences.nestedFilter(kind=="BUILD")`)).To(MatchJSON(`{
				"nested": {
					"path": "occurrences",
					"query": {"term": {"occurrences.kind": {"value": "BUILD"}}}
				}
			}`))
		})
	})

	Context("invalid expressions", func() {
		It("should aggregate parse issues with their positions", func() {
			_, err := NewFilterer().ParseExpression(`name==`)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("error parsing filter"))
		})

		It("should reject expressions that don't form a query", func() {
			_, err := NewFilterer().ParseExpression(`"just a string"`)

			Expect(err).To(HaveOccurred())
		})

		It("should reject unsupported functions", func() {
			_, err := NewFilterer().ParseExpression(`name.endsWith("x")`)

			Expect(err).To(HaveOccurred())
		})

		It("should reject a comparison against a nested expression", func() {
			_, err := NewFilterer().ParseExpression(`name==(kind=="build")`)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("scalar"))
		})

		It("should reject a range comparison against a nested expression", func() {
			_, err := NewFilterer().ParseExpression(`severity>(kind=="build")`)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("scalar"))
		})
	})
})

var _ = Describe("parsed queries", func() {
	It("should compose with hand-built queries", func() {
		parsed, err := NewFilterer().ParseExpression(`kind=="VULNERABILITY"`)
		Expect(err).ToNot(HaveOccurred())

		combined := query.NewBoolQuery().
			Must(parsed).
			Filter(query.NewTermFilter("resource", "docker.io/library/alpine"))

		source, err := combined.Source()
		Expect(err).ToNot(HaveOccurred())

		b, err := json.Marshal(source)
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(MatchJSON(`{
			"bool": {
				"must": [{"term": {"kind": {"value": "VULNERABILITY"}}}],
				"filter": [{"term": {"resource": "docker.io/library/alpine"}}]
			}
		}`))
	})
})
