package query

// NestedQuery runs a query against documents nested under a path, scoring
// the parent from its matching children.
type NestedQuery struct {
	path  string
	query Query

	scoreMode *ScoreMode
}

func NewNestedQuery(path string, query Query) *NestedQuery {
	return &NestedQuery{path: path, query: query}
}

func (q *NestedQuery) ScoreMode(scoreMode ScoreMode) *NestedQuery {
	q.scoreMode = &scoreMode
	return q
}

func (q *NestedQuery) isQuery() {}

func (q *NestedQuery) Source() (interface{}, error) {
	body := params{}
	body.set("path", q.path)
	if err := body.setQuery("query", q.query); err != nil {
		return nil, err
	}
	if q.scoreMode != nil {
		body.set("score_mode", *q.scoreMode)
	}

	return flatSource("nested", body), nil
}

// HasChildQuery matches parent documents whose children of the given type
// match the wrapped query. The internal docType field serializes under the
// reserved "type" key.
type HasChildQuery struct {
	docType string
	query   Query

	scoreMode   *ScoreMode
	minChildren *int
	maxChildren *int
}

func NewHasChildQuery(docType string, query Query) *HasChildQuery {
	return &HasChildQuery{docType: docType, query: query}
}

func (q *HasChildQuery) ScoreMode(scoreMode ScoreMode) *HasChildQuery {
	q.scoreMode = &scoreMode
	return q
}

func (q *HasChildQuery) MinChildren(minChildren int) *HasChildQuery {
	q.minChildren = &minChildren
	return q
}

func (q *HasChildQuery) MaxChildren(maxChildren int) *HasChildQuery {
	q.maxChildren = &maxChildren
	return q
}

func (q *HasChildQuery) isQuery() {}

func (q *HasChildQuery) Source() (interface{}, error) {
	body := params{}
	body.set("type", q.docType)
	if err := body.setQuery("query", q.query); err != nil {
		return nil, err
	}
	if q.scoreMode != nil {
		body.set("score_mode", *q.scoreMode)
	}
	if q.minChildren != nil {
		body.set("min_children", *q.minChildren)
	}
	if q.maxChildren != nil {
		body.set("max_children", *q.maxChildren)
	}

	return flatSource("has_child", body), nil
}

// HasParentQuery matches child documents whose parent of the given type
// matches the wrapped query.
type HasParentQuery struct {
	parentType string
	query      Query

	scoreMode *ScoreMode
}

func NewHasParentQuery(parentType string, query Query) *HasParentQuery {
	return &HasParentQuery{parentType: parentType, query: query}
}

func (q *HasParentQuery) ScoreMode(scoreMode ScoreMode) *HasParentQuery {
	q.scoreMode = &scoreMode
	return q
}

func (q *HasParentQuery) isQuery() {}

func (q *HasParentQuery) Source() (interface{}, error) {
	body := params{}
	body.set("parent_type", q.parentType)
	if err := body.setQuery("query", q.query); err != nil {
		return nil, err
	}
	if q.scoreMode != nil {
		body.set("score_mode", *q.scoreMode)
	}

	return flatSource("has_parent", body), nil
}
