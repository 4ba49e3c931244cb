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

// TermQuery matches documents containing the exact, unanalyzed value.
type TermQuery struct {
	field string
	value interface{}

	boost *float64
}

func NewTermQuery(field string, value interface{}) *TermQuery {
	return &TermQuery{field: field, value: value}
}

func (q *TermQuery) Boost(boost float64) *TermQuery {
	q.boost = &boost
	return q
}

func (q *TermQuery) isQuery() {}

func (q *TermQuery) Source() (interface{}, error) {
	inner := params{}
	if err := inner.setValue("value", q.value); err != nil {
		return nil, err
	}
	if q.boost != nil {
		if err := inner.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}

	return fieldSource("term", q.field, inner, nil), nil
}

// TermsLookup fetches the term list for a terms query from another document.
// The internal docType field serializes under the engine's reserved "type"
// key.
type TermsLookup struct {
	id   interface{}
	path string

	index   *string
	docType *string
	routing *string
}

func NewTermsLookup(id interface{}, path string) *TermsLookup {
	return &TermsLookup{id: id, path: path}
}

func (l *TermsLookup) Index(index string) *TermsLookup {
	l.index = &index
	return l
}

func (l *TermsLookup) Type(docType string) *TermsLookup {
	l.docType = &docType
	return l
}

func (l *TermsLookup) Routing(routing string) *TermsLookup {
	l.routing = &routing
	return l
}

func (l *TermsLookup) source() (interface{}, error) {
	body := params{}
	if err := body.setValue("id", l.id); err != nil {
		return nil, err
	}
	body.set("path", l.path)
	if l.index != nil {
		body.set("index", *l.index)
	}
	if l.docType != nil {
		body.set("type", *l.docType)
	}
	if l.routing != nil {
		body.set("routing", *l.routing)
	}

	return body, nil
}

// TermsQuery matches documents containing any of the listed values. The
// inner object is the value list itself, directly under the field key.
type TermsQuery struct {
	field  string
	values []interface{}

	lookup *TermsLookup
}

func NewTermsQuery(field string, values ...interface{}) *TermsQuery {
	return &TermsQuery{field: field, values: values}
}

// Lookup replaces the literal value list with a terms lookup.
func (q *TermsQuery) Lookup(lookup *TermsLookup) *TermsQuery {
	q.lookup = lookup
	return q
}

func (q *TermsQuery) isQuery() {}

func (q *TermsQuery) Source() (interface{}, error) {
	if q.lookup != nil {
		inner, err := q.lookup.source()
		if err != nil {
			return nil, err
		}

		return fieldSource("terms", q.field, inner, nil), nil
	}

	values, err := jsonValues(q.values)
	if err != nil {
		return nil, err
	}

	return fieldSource("terms", q.field, values, nil), nil
}

// RangeQuery matches documents whose field value falls inside the given
// bounds. All bounds are optional; an unbounded range query is legal and
// serializes as an empty inner object.
type RangeQuery struct {
	field string

	gt       interface{}
	gte      interface{}
	lt       interface{}
	lte      interface{}
	boost    *float64
	format   *string
	timeZone *string
}

func NewRangeQuery(field string) *RangeQuery {
	return &RangeQuery{field: field}
}

func (q *RangeQuery) Gt(value interface{}) *RangeQuery {
	q.gt = value
	return q
}

func (q *RangeQuery) Gte(value interface{}) *RangeQuery {
	q.gte = value
	return q
}

func (q *RangeQuery) Lt(value interface{}) *RangeQuery {
	q.lt = value
	return q
}

func (q *RangeQuery) Lte(value interface{}) *RangeQuery {
	q.lte = value
	return q
}

func (q *RangeQuery) Boost(boost float64) *RangeQuery {
	q.boost = &boost
	return q
}

func (q *RangeQuery) Format(format string) *RangeQuery {
	q.format = &format
	return q
}

func (q *RangeQuery) TimeZone(timeZone string) *RangeQuery {
	q.timeZone = &timeZone
	return q
}

func (q *RangeQuery) isQuery() {}

func (q *RangeQuery) Source() (interface{}, error) {
	inner, err := q.innerSource()
	if err != nil {
		return nil, err
	}

	return fieldSource("range", q.field, inner, nil), nil
}

func (q *RangeQuery) innerSource() (params, error) {
	inner := params{}
	if q.gt != nil {
		if err := inner.setValue("gt", q.gt); err != nil {
			return nil, err
		}
	}
	if q.gte != nil {
		if err := inner.setValue("gte", q.gte); err != nil {
			return nil, err
		}
	}
	if q.lt != nil {
		if err := inner.setValue("lt", q.lt); err != nil {
			return nil, err
		}
	}
	if q.lte != nil {
		if err := inner.setValue("lte", q.lte); err != nil {
			return nil, err
		}
	}
	if q.boost != nil {
		if err := inner.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}
	if q.format != nil {
		inner.set("format", *q.format)
	}
	if q.timeZone != nil {
		inner.set("time_zone", *q.timeZone)
	}

	return inner, nil
}

// PrefixQuery matches documents whose field value starts with the prefix.
type PrefixQuery struct {
	field string
	value interface{}

	boost   *float64
	rewrite *string
}

func NewPrefixQuery(field string, value interface{}) *PrefixQuery {
	return &PrefixQuery{field: field, value: value}
}

func (q *PrefixQuery) Boost(boost float64) *PrefixQuery {
	q.boost = &boost
	return q
}

func (q *PrefixQuery) Rewrite(rewrite string) *PrefixQuery {
	q.rewrite = &rewrite
	return q
}

func (q *PrefixQuery) isQuery() {}

func (q *PrefixQuery) Source() (interface{}, error) {
	inner := params{}
	if err := inner.setValue("value", q.value); err != nil {
		return nil, err
	}
	if q.boost != nil {
		if err := inner.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}
	if q.rewrite != nil {
		inner.set("rewrite", *q.rewrite)
	}

	return fieldSource("prefix", q.field, inner, nil), nil
}

// WildcardQuery matches documents against a pattern with * and ?
// placeholders.
type WildcardQuery struct {
	field string
	value interface{}

	boost   *float64
	rewrite *string
}

func NewWildcardQuery(field string, value interface{}) *WildcardQuery {
	return &WildcardQuery{field: field, value: value}
}

func (q *WildcardQuery) Boost(boost float64) *WildcardQuery {
	q.boost = &boost
	return q
}

func (q *WildcardQuery) Rewrite(rewrite string) *WildcardQuery {
	q.rewrite = &rewrite
	return q
}

func (q *WildcardQuery) isQuery() {}

func (q *WildcardQuery) Source() (interface{}, error) {
	inner := params{}
	if err := inner.setValue("value", q.value); err != nil {
		return nil, err
	}
	if q.boost != nil {
		if err := inner.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}
	if q.rewrite != nil {
		inner.set("rewrite", *q.rewrite)
	}

	return fieldSource("wildcard", q.field, inner, nil), nil
}

// RegexpQuery matches documents against a regular expression.
type RegexpQuery struct {
	field string
	value interface{}

	boost                 *float64
	flags                 []string
	maxDeterminizedStates *int
}

func NewRegexpQuery(field string, value interface{}) *RegexpQuery {
	return &RegexpQuery{field: field, value: value}
}

func (q *RegexpQuery) Boost(boost float64) *RegexpQuery {
	q.boost = &boost
	return q
}

// Flags joins the given operator flags with "|" on the wire.
func (q *RegexpQuery) Flags(flags ...string) *RegexpQuery {
	q.flags = flags
	return q
}

func (q *RegexpQuery) MaxDeterminizedStates(maxDeterminizedStates int) *RegexpQuery {
	q.maxDeterminizedStates = &maxDeterminizedStates
	return q
}

func (q *RegexpQuery) isQuery() {}

func (q *RegexpQuery) Source() (interface{}, error) {
	inner := params{}
	if err := inner.setValue("value", q.value); err != nil {
		return nil, err
	}
	if q.boost != nil {
		if err := inner.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}
	if len(q.flags) != 0 {
		inner.set("flags", joinFlags(q.flags))
	}
	if q.maxDeterminizedStates != nil {
		inner.set("max_determinized_states", *q.maxDeterminizedStates)
	}

	return fieldSource("regexp", q.field, inner, nil), nil
}

func joinFlags(flags []string) string {
	joined := ""
	for i, flag := range flags {
		if i > 0 {
			joined += "|"
		}
		joined += flag
	}

	return joined
}

// FuzzyQuery matches documents within an edit distance of the value.
type FuzzyQuery struct {
	field string
	value interface{}

	boost         *float64
	fuzziness     interface{}
	prefixLength  *int
	maxExpansions *int
}

func NewFuzzyQuery(field string, value interface{}) *FuzzyQuery {
	return &FuzzyQuery{field: field, value: value}
}

func (q *FuzzyQuery) Boost(boost float64) *FuzzyQuery {
	q.boost = &boost
	return q
}

func (q *FuzzyQuery) Fuzziness(fuzziness interface{}) *FuzzyQuery {
	q.fuzziness = fuzziness
	return q
}

func (q *FuzzyQuery) PrefixLength(prefixLength int) *FuzzyQuery {
	q.prefixLength = &prefixLength
	return q
}

func (q *FuzzyQuery) MaxExpansions(maxExpansions int) *FuzzyQuery {
	q.maxExpansions = &maxExpansions
	return q
}

func (q *FuzzyQuery) isQuery() {}

func (q *FuzzyQuery) Source() (interface{}, error) {
	inner := params{}
	if err := inner.setValue("value", q.value); err != nil {
		return nil, err
	}
	if q.boost != nil {
		if err := inner.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}
	if q.fuzziness != nil {
		if err := inner.setValue("fuzziness", q.fuzziness); err != nil {
			return nil, err
		}
	}
	if q.prefixLength != nil {
		inner.set("prefix_length", *q.prefixLength)
	}
	if q.maxExpansions != nil {
		inner.set("max_expansions", *q.maxExpansions)
	}

	return fieldSource("fuzzy", q.field, inner, nil), nil
}

// ExistsQuery matches documents that have any value in the field.
type ExistsQuery struct {
	field string
}

func NewExistsQuery(field string) *ExistsQuery {
	return &ExistsQuery{field: field}
}

func (q *ExistsQuery) isQuery() {}

func (q *ExistsQuery) Source() (interface{}, error) {
	body := params{}
	body.set("field", q.field)

	return flatSource("exists", body), nil
}

// IdsQuery matches documents by their _id values. The internal docType field
// serializes under the reserved "type" key.
type IdsQuery struct {
	values []interface{}

	docType *string
}

func NewIdsQuery(values ...interface{}) *IdsQuery {
	return &IdsQuery{values: values}
}

func (q *IdsQuery) Type(docType string) *IdsQuery {
	q.docType = &docType
	return q
}

func (q *IdsQuery) isQuery() {}

func (q *IdsQuery) Source() (interface{}, error) {
	values, err := jsonValues(q.values)
	if err != nil {
		return nil, err
	}

	body := params{}
	body.set("values", values)
	if q.docType != nil {
		body.set("type", *q.docType)
	}

	return flatSource("ids", body), nil
}

// TypeQuery matches documents of the given mapping type.
type TypeQuery struct {
	docType string
}

func NewTypeQuery(docType string) *TypeQuery {
	return &TypeQuery{docType: docType}
}

func (q *TypeQuery) isQuery() {}

func (q *TypeQuery) Source() (interface{}, error) {
	body := params{}
	body.set("value", q.docType)

	return flatSource("type", body), nil
}
