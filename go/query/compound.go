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

package query

// BoolQuery combines sub-queries with boolean clauses. Clause setters append
// and clause order is preserved on the wire.
type BoolQuery struct {
	must    []Query
	should  []Query
	mustNot []Query
	filter  []Filter

	minimumShouldMatch interface{}
	boost              *float64
	disableCoord       *bool
}

func NewBoolQuery() *BoolQuery {
	return &BoolQuery{}
}

func (q *BoolQuery) Must(queries ...Query) *BoolQuery {
	q.must = append(q.must, queries...)
	return q
}

func (q *BoolQuery) Should(queries ...Query) *BoolQuery {
	q.should = append(q.should, queries...)
	return q
}

func (q *BoolQuery) MustNot(queries ...Query) *BoolQuery {
	q.mustNot = append(q.mustNot, queries...)
	return q
}

// Filter adds non-scoring clauses that documents must satisfy.
func (q *BoolQuery) Filter(filters ...Filter) *BoolQuery {
	q.filter = append(q.filter, filters...)
	return q
}

func (q *BoolQuery) MinimumShouldMatch(minimumShouldMatch interface{}) *BoolQuery {
	q.minimumShouldMatch = minimumShouldMatch
	return q
}

func (q *BoolQuery) Boost(boost float64) *BoolQuery {
	q.boost = &boost
	return q
}

func (q *BoolQuery) DisableCoord(disableCoord bool) *BoolQuery {
	q.disableCoord = &disableCoord
	return q
}

func (q *BoolQuery) isQuery() {}

func (q *BoolQuery) Source() (interface{}, error) {
	body := params{}
	if len(q.must) != 0 {
		if err := body.setQueries("must", q.must); err != nil {
			return nil, err
		}
	}
	if len(q.should) != 0 {
		if err := body.setQueries("should", q.should); err != nil {
			return nil, err
		}
	}
	if len(q.mustNot) != 0 {
		if err := body.setQueries("must_not", q.mustNot); err != nil {
			return nil, err
		}
	}
	if len(q.filter) != 0 {
		if err := body.setFilters("filter", q.filter); err != nil {
			return nil, err
		}
	}
	if q.minimumShouldMatch != nil {
		if err := body.setValue("minimum_should_match", q.minimumShouldMatch); err != nil {
			return nil, err
		}
	}
	if q.boost != nil {
		if err := body.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}
	if q.disableCoord != nil {
		body.set("disable_coord", *q.disableCoord)
	}

	return flatSource("bool", body), nil
}

// ConstantScoreQuery gives every document matching the wrapped filter the
// same score.
type ConstantScoreQuery struct {
	filter Filter

	boost *float64
}

func NewConstantScoreQuery(filter Filter) *ConstantScoreQuery {
	return &ConstantScoreQuery{filter: filter}
}

func (q *ConstantScoreQuery) Boost(boost float64) *ConstantScoreQuery {
	q.boost = &boost
	return q
}

func (q *ConstantScoreQuery) isQuery() {}

func (q *ConstantScoreQuery) Source() (interface{}, error) {
	body := params{}
	if err := body.setFilter("filter", q.filter); err != nil {
		return nil, err
	}
	if q.boost != nil {
		if err := body.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}

	return flatSource("constant_score", body), nil
}

// DisMaxQuery scores with the best of its sub-queries instead of summing
// them.
type DisMaxQuery struct {
	queries []Query

	tieBreaker *float64
	boost      *float64
}

func NewDisMaxQuery(queries ...Query) *DisMaxQuery {
	return &DisMaxQuery{queries: queries}
}

func (q *DisMaxQuery) Query(queries ...Query) *DisMaxQuery {
	q.queries = append(q.queries, queries...)
	return q
}

func (q *DisMaxQuery) TieBreaker(tieBreaker float64) *DisMaxQuery {
	q.tieBreaker = &tieBreaker
	return q
}

func (q *DisMaxQuery) Boost(boost float64) *DisMaxQuery {
	q.boost = &boost
	return q
}

func (q *DisMaxQuery) isQuery() {}

func (q *DisMaxQuery) Source() (interface{}, error) {
	body := params{}
	if err := body.setQueries("queries", q.queries); err != nil {
		return nil, err
	}
	if q.tieBreaker != nil {
		if err := body.setValue("tie_breaker", *q.tieBreaker); err != nil {
			return nil, err
		}
	}
	if q.boost != nil {
		if err := body.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}

	return flatSource("dis_max", body), nil
}

// BoostingQuery promotes documents matching the positive query and demotes
// those matching the negative one.
type BoostingQuery struct {
	positive Query
	negative Query

	negativeBoost *float64
}

func NewBoostingQuery(positive, negative Query) *BoostingQuery {
	return &BoostingQuery{positive: positive, negative: negative}
}

func (q *BoostingQuery) NegativeBoost(negativeBoost float64) *BoostingQuery {
	q.negativeBoost = &negativeBoost
	return q
}

func (q *BoostingQuery) isQuery() {}

func (q *BoostingQuery) Source() (interface{}, error) {
	body := params{}
	if err := body.setQuery("positive", q.positive); err != nil {
		return nil, err
	}
	if err := body.setQuery("negative", q.negative); err != nil {
		return nil, err
	}
	if q.negativeBoost != nil {
		if err := body.setValue("negative_boost", *q.negativeBoost); err != nil {
			return nil, err
		}
	}

	return flatSource("boosting", body), nil
}

type scoreFunctionClause struct {
	filter   Filter
	function ScoreFunction
}

// FunctionScoreQuery reshapes the scores of a wrapped query through a list
// of scoring functions, each optionally gated by a filter. Function order is
// preserved.
type FunctionScoreQuery struct {
	functions []scoreFunctionClause

	query     Query
	scoreMode *ScoreMode
	boostMode *BoostMode
	maxBoost  *float64
	minScore  *float64
	boost     *float64
}

func NewFunctionScoreQuery() *FunctionScoreQuery {
	return &FunctionScoreQuery{}
}

func (q *FunctionScoreQuery) Query(query Query) *FunctionScoreQuery {
	q.query = query
	return q
}

func (q *FunctionScoreQuery) Function(function ScoreFunction) *FunctionScoreQuery {
	q.functions = append(q.functions, scoreFunctionClause{function: function})
	return q
}

// FilteredFunction applies the function only to documents matching the
// filter.
func (q *FunctionScoreQuery) FilteredFunction(filter Filter, function ScoreFunction) *FunctionScoreQuery {
	q.functions = append(q.functions, scoreFunctionClause{filter: filter, function: function})
	return q
}

func (q *FunctionScoreQuery) ScoreMode(scoreMode ScoreMode) *FunctionScoreQuery {
	q.scoreMode = &scoreMode
	return q
}

func (q *FunctionScoreQuery) BoostMode(boostMode BoostMode) *FunctionScoreQuery {
	q.boostMode = &boostMode
	return q
}

func (q *FunctionScoreQuery) MaxBoost(maxBoost float64) *FunctionScoreQuery {
	q.maxBoost = &maxBoost
	return q
}

func (q *FunctionScoreQuery) MinScore(minScore float64) *FunctionScoreQuery {
	q.minScore = &minScore
	return q
}

func (q *FunctionScoreQuery) Boost(boost float64) *FunctionScoreQuery {
	q.boost = &boost
	return q
}

func (q *FunctionScoreQuery) isQuery() {}

func (q *FunctionScoreQuery) Source() (interface{}, error) {
	body := params{}
	if q.query != nil {
		if err := body.setQuery("query", q.query); err != nil {
			return nil, err
		}
	}

	functions := make([]interface{}, 0, len(q.functions))
	for _, clause := range q.functions {
		entry, err := clause.function.Source()
		if err != nil {
			return nil, err
		}

		// all score functions render as a params envelope
		envelope := entry.(params)
		if clause.filter != nil {
			if err := envelope.setFilter("filter", clause.filter); err != nil {
				return nil, err
			}
		}

		functions = append(functions, envelope)
	}
	body.set("functions", functions)

	if q.scoreMode != nil {
		body.set("score_mode", *q.scoreMode)
	}
	if q.boostMode != nil {
		body.set("boost_mode", *q.boostMode)
	}
	if q.maxBoost != nil {
		if err := body.setValue("max_boost", *q.maxBoost); err != nil {
			return nil, err
		}
	}
	if q.minScore != nil {
		if err := body.setValue("min_score", *q.minScore); err != nil {
			return nil, err
		}
	}
	if q.boost != nil {
		if err := body.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}

	return flatSource("function_score", body), nil
}
