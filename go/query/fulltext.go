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

// MatchAllQuery matches every document, optionally with a fixed boost.
type MatchAllQuery struct {
	boost *float64
}

func NewMatchAllQuery() *MatchAllQuery {
	return &MatchAllQuery{}
}

func (q *MatchAllQuery) Boost(boost float64) *MatchAllQuery {
	q.boost = &boost
	return q
}

func (q *MatchAllQuery) isQuery() {}

func (q *MatchAllQuery) Source() (interface{}, error) {
	body := params{}
	if q.boost != nil {
		if err := body.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}

	return flatSource("match_all", body), nil
}

// MatchQuery analyzes its input text and matches documents containing the
// resulting terms in a single field.
type MatchQuery struct {
	field string
	text  interface{}

	matchType *string
	matchOptions
}

func NewMatchQuery(field string, text interface{}) *MatchQuery {
	return &MatchQuery{field: field, text: text}
}

// Type sets the match type, e.g. "phrase" or "phrase_prefix".
func (q *MatchQuery) Type(matchType string) *MatchQuery {
	q.matchType = &matchType
	return q
}

func (q *MatchQuery) Analyzer(analyzer string) *MatchQuery {
	q.analyzer = &analyzer
	return q
}

func (q *MatchQuery) Boost(boost float64) *MatchQuery {
	q.boost = &boost
	return q
}

func (q *MatchQuery) Operator(operator Operator) *MatchQuery {
	q.operator = &operator
	return q
}

// MinimumShouldMatch accepts an absolute count, a percentage string, or a
// combination built with CombinedMinimumShouldMatch.
func (q *MatchQuery) MinimumShouldMatch(minimumShouldMatch interface{}) *MatchQuery {
	q.minimumShouldMatch = minimumShouldMatch
	return q
}

// Fuzziness accepts an edit distance or the string "AUTO".
func (q *MatchQuery) Fuzziness(fuzziness interface{}) *MatchQuery {
	q.fuzziness = fuzziness
	return q
}

func (q *MatchQuery) PrefixLength(prefixLength int) *MatchQuery {
	q.prefixLength = &prefixLength
	return q
}

func (q *MatchQuery) MaxExpansions(maxExpansions int) *MatchQuery {
	q.maxExpansions = &maxExpansions
	return q
}

func (q *MatchQuery) CutoffFrequency(cutoffFrequency float64) *MatchQuery {
	q.cutoffFrequency = &cutoffFrequency
	return q
}

func (q *MatchQuery) ZeroTermsQuery(zeroTermsQuery ZeroTermsQuery) *MatchQuery {
	q.zeroTermsQuery = &zeroTermsQuery
	return q
}

func (q *MatchQuery) Lenient(lenient bool) *MatchQuery {
	q.lenient = &lenient
	return q
}

func (q *MatchQuery) Slop(slop int) *MatchQuery {
	q.slop = &slop
	return q
}

func (q *MatchQuery) isQuery() {}

func (q *MatchQuery) Source() (interface{}, error) {
	inner := params{}
	if err := inner.setValue("query", q.text); err != nil {
		return nil, err
	}
	if q.matchType != nil {
		inner.set("type", *q.matchType)
	}
	if err := q.mergeSource(inner); err != nil {
		return nil, err
	}

	return fieldSource("match", q.field, inner, nil), nil
}

// MultiMatchQuery runs a match query against several fields at once.
type MultiMatchQuery struct {
	text   interface{}
	fields []string

	matchType  *string
	tieBreaker *float64
	matchOptions
}

func NewMultiMatchQuery(text interface{}, fields ...string) *MultiMatchQuery {
	return &MultiMatchQuery{text: text, fields: fields}
}

func (q *MultiMatchQuery) Type(matchType string) *MultiMatchQuery {
	q.matchType = &matchType
	return q
}

func (q *MultiMatchQuery) TieBreaker(tieBreaker float64) *MultiMatchQuery {
	q.tieBreaker = &tieBreaker
	return q
}

func (q *MultiMatchQuery) Analyzer(analyzer string) *MultiMatchQuery {
	q.analyzer = &analyzer
	return q
}

func (q *MultiMatchQuery) Boost(boost float64) *MultiMatchQuery {
	q.boost = &boost
	return q
}

func (q *MultiMatchQuery) Operator(operator Operator) *MultiMatchQuery {
	q.operator = &operator
	return q
}

func (q *MultiMatchQuery) MinimumShouldMatch(minimumShouldMatch interface{}) *MultiMatchQuery {
	q.minimumShouldMatch = minimumShouldMatch
	return q
}

func (q *MultiMatchQuery) Fuzziness(fuzziness interface{}) *MultiMatchQuery {
	q.fuzziness = fuzziness
	return q
}

func (q *MultiMatchQuery) PrefixLength(prefixLength int) *MultiMatchQuery {
	q.prefixLength = &prefixLength
	return q
}

func (q *MultiMatchQuery) MaxExpansions(maxExpansions int) *MultiMatchQuery {
	q.maxExpansions = &maxExpansions
	return q
}

func (q *MultiMatchQuery) CutoffFrequency(cutoffFrequency float64) *MultiMatchQuery {
	q.cutoffFrequency = &cutoffFrequency
	return q
}

func (q *MultiMatchQuery) ZeroTermsQuery(zeroTermsQuery ZeroTermsQuery) *MultiMatchQuery {
	q.zeroTermsQuery = &zeroTermsQuery
	return q
}

func (q *MultiMatchQuery) Lenient(lenient bool) *MultiMatchQuery {
	q.lenient = &lenient
	return q
}

func (q *MultiMatchQuery) Slop(slop int) *MultiMatchQuery {
	q.slop = &slop
	return q
}

func (q *MultiMatchQuery) isQuery() {}

func (q *MultiMatchQuery) Source() (interface{}, error) {
	body := params{}
	if err := body.setValue("query", q.text); err != nil {
		return nil, err
	}

	fields := make([]interface{}, 0, len(q.fields))
	for _, field := range q.fields {
		fields = append(fields, field)
	}
	body.set("fields", fields)

	if q.matchType != nil {
		body.set("type", *q.matchType)
	}
	if q.tieBreaker != nil {
		if err := body.setValue("tie_breaker", *q.tieBreaker); err != nil {
			return nil, err
		}
	}
	if err := q.mergeSource(body); err != nil {
		return nil, err
	}

	return flatSource("multi_match", body), nil
}

// QueryStringQuery parses its input with the engine's query string syntax.
type QueryStringQuery struct {
	query string

	defaultField         *string
	defaultOperator      *Operator
	analyzer             *string
	boost                *float64
	lenient              *bool
	allowLeadingWildcard *bool
	minimumShouldMatch   interface{}
}

func NewQueryStringQuery(query string) *QueryStringQuery {
	return &QueryStringQuery{query: query}
}

func (q *QueryStringQuery) DefaultField(defaultField string) *QueryStringQuery {
	q.defaultField = &defaultField
	return q
}

func (q *QueryStringQuery) DefaultOperator(defaultOperator Operator) *QueryStringQuery {
	q.defaultOperator = &defaultOperator
	return q
}

func (q *QueryStringQuery) Analyzer(analyzer string) *QueryStringQuery {
	q.analyzer = &analyzer
	return q
}

func (q *QueryStringQuery) Boost(boost float64) *QueryStringQuery {
	q.boost = &boost
	return q
}

func (q *QueryStringQuery) Lenient(lenient bool) *QueryStringQuery {
	q.lenient = &lenient
	return q
}

func (q *QueryStringQuery) AllowLeadingWildcard(allowLeadingWildcard bool) *QueryStringQuery {
	q.allowLeadingWildcard = &allowLeadingWildcard
	return q
}

func (q *QueryStringQuery) MinimumShouldMatch(minimumShouldMatch interface{}) *QueryStringQuery {
	q.minimumShouldMatch = minimumShouldMatch
	return q
}

func (q *QueryStringQuery) isQuery() {}

func (q *QueryStringQuery) Source() (interface{}, error) {
	body := params{}
	body.set("query", q.query)
	if q.defaultField != nil {
		body.set("default_field", *q.defaultField)
	}
	if q.defaultOperator != nil {
		body.set("default_operator", *q.defaultOperator)
	}
	if q.analyzer != nil {
		body.set("analyzer", *q.analyzer)
	}
	if q.boost != nil {
		if err := body.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}
	if q.lenient != nil {
		body.set("lenient", *q.lenient)
	}
	if q.allowLeadingWildcard != nil {
		body.set("allow_leading_wildcard", *q.allowLeadingWildcard)
	}
	if q.minimumShouldMatch != nil {
		if err := body.setValue("minimum_should_match", q.minimumShouldMatch); err != nil {
			return nil, err
		}
	}

	return flatSource("query_string", body), nil
}
