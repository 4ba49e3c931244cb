package query

import (
	"encoding/json"
	"math"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("sort", func() {
	Context("FieldSort", func() {
		It("should render an empty body for a bare field", func() {
			result := sourceJson(NewFieldSort("created_at"))

			Expect(result).To(MatchJSON(`{"created_at": {}}`))
		})

		It("should include only the options that were set", func() {
			result := sourceJson(NewFieldSort("created_at").
				Order(SortDescending).
				Mode(SortModeMax).
				Missing("_last").
				UnmappedType("date"))

			Expect(result).To(MatchJSON(`{
				"created_at": {
					"order": "desc",
					"mode": "max",
					"missing": "_last",
					"unmapped_type": "date"
				}
			}`))
		})

		It("should nest a filter for nested sorting", func() {
			result := sourceJson(NewFieldSort("comments.votes").
				Order(SortAscending).
				NestedPath("comments").
				NestedFilter(NewTermFilter("comments.approved", true)))

			Expect(result).To(MatchJSON(`{
				"comments.votes": {
					"order": "asc",
					"nested_path": "comments",
					"nested_filter": {"term": {"comments.approved": true}}
				}
			}`))
		})
	})

	Context("SortByField", func() {
		It("should be equivalent to a field sort with an order", func() {
			Expect(sourceJson(SortByField("age", SortAscending))).
				To(Equal(sourceJson(NewFieldSort("age").Order(SortAscending))))
		})
	})

	Context("GeoDistanceSort", func() {
		It("should emit a single point bare, as lon then lat", func() {
			result := sourceJson(NewGeoDistanceSort("pin.location", 40, -70).
				Order(SortAscending).
				Unit("km"))

			Expect(result).To(MatchJSON(`{
				"_geo_distance": {
					"pin.location": [-70, 40],
					"order": "asc",
					"unit": "km"
				}
			}`))
		})

		It("should emit multiple points as a list of pairs", func() {
			result := sourceJson(NewGeoDistanceSort("pin.location", 40, -70).
				Point(41, -71))

			Expect(result).To(MatchJSON(`{
				"_geo_distance": {
					"pin.location": [[-70, 40], [-71, 41]]
				}
			}`))
		})
	})

	Context("ScriptSort", func() {
		It("should carry the script, its type and parameters", func() {
			result := sourceJson(NewScriptSort("doc['weight'].value * factor", "number").
				Order(SortDescending).
				Param("factor", 2))

			Expect(result).To(MatchJSON(`{
				"_script": {
					"script": "doc['weight'].value * factor",
					"type": "number",
					"order": "desc",
					"params": {"factor": 2}
				}
			}`))
		})
	})

	Context("SortSources", func() {
		It("should preserve sorter order", func() {
			sources, err := SortSources([]Sorter{
				SortByField("severity", SortDescending),
				SortByField("created_at", SortAscending),
			})
			Expect(err).NotTo(HaveOccurred())

			actual, err := json.Marshal(sources)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(actual)).To(MatchJSON(`[
				{"severity": {"order": "desc"}},
				{"created_at": {"order": "asc"}}
			]`))
		})

		It("should surface serialization failures", func() {
			_, err := SortSources([]Sorter{NewFieldSort("score").Missing(math.NaN())})

			Expect(err).To(BeAssignableToTypeOf(&ValueError{}))
		})
	})
})
