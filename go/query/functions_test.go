package query

import (
	"math"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("score functions", func() {
	Context("WeightFunction", func() {
		It("should render a bare weight", func() {
			result := sourceJson(NewWeightFunction(2.5))

			Expect(result).To(MatchJSON(`{"weight": 2.5}`))
		})
	})

	Context("ScriptScoreFunction", func() {
		It("should surface a typed error for a non-finite value inside a parameter map", func() {
			function := NewScriptScoreFunction("doc['votes'].value * weights.a").
				Param("weights", map[string]interface{}{"a": math.NaN()})

			_, err := NewFunctionScoreQuery().Function(function).Source()

			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&ValueError{}))
		})

		It("should include language and parameters once set", func() {
			result := sourceJson(NewScriptScoreFunction("doc['votes'].value * factor").
				Lang("painless").
				Param("factor", 1.2))

			Expect(result).To(MatchJSON(`{
				"script_score": {
					"script": "doc['votes'].value * factor",
					"lang": "painless",
					"params": {"factor": 1.2}
				}
			}`))
		})
	})

	Context("RandomScoreFunction", func() {
		It("should render an empty body when unseeded", func() {
			result := sourceJson(NewRandomScoreFunction())

			Expect(result).To(MatchJSON(`{"random_score": {}}`))
		})

		It("should carry the seed", func() {
			result := sourceJson(NewRandomScoreFunction().Seed(1337))

			Expect(result).To(MatchJSON(`{"random_score": {"seed": 1337}}`))
		})
	})

	Context("FieldValueFactorFunction", func() {
		It("should include only the options that were set", func() {
			result := sourceJson(NewFieldValueFactorFunction("votes").
				Factor(1.5).
				Modifier("log1p").
				Missing(1))

			Expect(result).To(MatchJSON(`{
				"field_value_factor": {
					"field": "votes",
					"factor": 1.5,
					"modifier": "log1p",
					"missing": 1
				}
			}`))
		})
	})

	Context("decay functions", func() {
		It("should nest origin and scale under the field for gauss", func() {
			result := sourceJson(NewGaussDecayFunction("publish_date", "2021-01-01", "10d").
				Offset("2d").
				Decay(0.5))

			Expect(result).To(MatchJSON(`{
				"gauss": {
					"publish_date": {
						"origin": "2021-01-01",
						"scale": "10d",
						"offset": "2d",
						"decay": 0.5
					}
				}
			}`))
		})

		It("should use the exp envelope name", func() {
			result := sourceJson(NewExpDecayFunction("location", "40,-70", "5km"))

			Expect(result).To(MatchJSON(`{
				"exp": {
					"location": {"origin": "40,-70", "scale": "5km"}
				}
			}`))
		})

		It("should render multi_value_mode next to the field", func() {
			result := sourceJson(NewLinearDecayFunction("price", 100, 50).MultiValueMode("avg"))

			Expect(result).To(MatchJSON(`{
				"linear": {
					"price": {"origin": 100, "scale": 50},
					"multi_value_mode": "avg"
				}
			}`))
		})
	})
})
