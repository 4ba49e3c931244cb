package query

// SpanTermQuery is the span-query counterpart of a term query, usable as a
// clause inside the other span variants.
type SpanTermQuery struct {
	field string
	value interface{}

	boost *float64
}

func NewSpanTermQuery(field string, value interface{}) *SpanTermQuery {
	return &SpanTermQuery{field: field, value: value}
}

func (q *SpanTermQuery) Boost(boost float64) *SpanTermQuery {
	q.boost = &boost
	return q
}

func (q *SpanTermQuery) isQuery() {}

func (q *SpanTermQuery) Source() (interface{}, error) {
	inner := params{}
	if err := inner.setValue("value", q.value); err != nil {
		return nil, err
	}
	if q.boost != nil {
		if err := inner.setValue("boost", *q.boost); err != nil {
			return nil, err
		}
	}

	return fieldSource("span_term", q.field, inner, nil), nil
}

// SpanNearQuery matches spans that occur within slop positions of each
// other. Clause order is significant and preserved.
type SpanNearQuery struct {
	slop    int
	clauses []Query

	inOrder         *bool
	collectPayloads *bool
}

func NewSpanNearQuery(slop int, clauses ...Query) *SpanNearQuery {
	return &SpanNearQuery{slop: slop, clauses: clauses}
}

func (q *SpanNearQuery) Clause(clauses ...Query) *SpanNearQuery {
	q.clauses = append(q.clauses, clauses...)
	return q
}

func (q *SpanNearQuery) InOrder(inOrder bool) *SpanNearQuery {
	q.inOrder = &inOrder
	return q
}

func (q *SpanNearQuery) CollectPayloads(collectPayloads bool) *SpanNearQuery {
	q.collectPayloads = &collectPayloads
	return q
}

func (q *SpanNearQuery) isQuery() {}

func (q *SpanNearQuery) Source() (interface{}, error) {
	body := params{}
	if err := body.setQueries("clauses", q.clauses); err != nil {
		return nil, err
	}
	body.set("slop", q.slop)
	if q.inOrder != nil {
		body.set("in_order", *q.inOrder)
	}
	if q.collectPayloads != nil {
		body.set("collect_payloads", *q.collectPayloads)
	}

	return flatSource("span_near", body), nil
}

// SpanOrQuery matches the union of its span clauses.
type SpanOrQuery struct {
	clauses []Query
}

func NewSpanOrQuery(clauses ...Query) *SpanOrQuery {
	return &SpanOrQuery{clauses: clauses}
}

func (q *SpanOrQuery) Clause(clauses ...Query) *SpanOrQuery {
	q.clauses = append(q.clauses, clauses...)
	return q
}

func (q *SpanOrQuery) isQuery() {}

func (q *SpanOrQuery) Source() (interface{}, error) {
	body := params{}
	if err := body.setQueries("clauses", q.clauses); err != nil {
		return nil, err
	}

	return flatSource("span_or", body), nil
}

// SpanFirstQuery matches spans near the beginning of a field.
type SpanFirstQuery struct {
	match Query
	end   int
}

func NewSpanFirstQuery(match Query, end int) *SpanFirstQuery {
	return &SpanFirstQuery{match: match, end: end}
}

func (q *SpanFirstQuery) isQuery() {}

func (q *SpanFirstQuery) Source() (interface{}, error) {
	body := params{}
	if err := body.setQuery("match", q.match); err != nil {
		return nil, err
	}
	body.set("end", q.end)

	return flatSource("span_first", body), nil
}
