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

// Package query builds Elasticsearch query DSL bodies without hand-assembled
// JSON. Every variant is constructed through a builder: required fields are
// constructor arguments, optional fields have fluent setters and are omitted
// from the serialized form unless set.
package query

// Query is the scoring family of the DSL. The set of implementations is
// closed; the unexported method keeps filters and score functions from being
// used where a query is expected.
type Query interface {
	// Source returns the JSON-marshalable representation of the query,
	// including its variant envelope, e.g. {"term": {...}}.
	Source() (interface{}, error)

	isQuery()
}

// Filter is the non-scoring family. Field-scoped filters additionally carry
// the cache-directive options serialized at the outer envelope.
type Filter interface {
	Source() (interface{}, error)

	isFilter()
}

// ScoreFunction is one scoring clause of a function_score query.
type ScoreFunction interface {
	Source() (interface{}, error)

	isScoreFunction()
}

type params map[string]interface{}

// set records a raw, already-converted value.
func (p params) set(name string, value interface{}) {
	p[name] = value
}

// setValue converts a caller-supplied value before recording it, surfacing a
// *ValueError for values with no JSON representation.
func (p params) setValue(name string, value interface{}) error {
	converted, err := jsonValue(value)
	if err != nil {
		return err
	}
	p[name] = converted

	return nil
}

func (p params) setQuery(name string, query Query) error {
	source, err := query.Source()
	if err != nil {
		return err
	}
	p[name] = source

	return nil
}

func (p params) setFilter(name string, filter Filter) error {
	source, err := filter.Source()
	if err != nil {
		return err
	}
	p[name] = source

	return nil
}

// setQueries serializes a clause list, preserving input order.
func (p params) setQueries(name string, queries []Query) error {
	sources := make([]interface{}, 0, len(queries))
	for _, query := range queries {
		source, err := query.Source()
		if err != nil {
			return err
		}

		sources = append(sources, source)
	}
	p[name] = sources

	return nil
}

func (p params) setFilters(name string, filters []Filter) error {
	sources := make([]interface{}, 0, len(filters))
	for _, filter := range filters {
		source, err := filter.Source()
		if err != nil {
			return err
		}

		sources = append(sources, source)
	}
	p[name] = sources

	return nil
}

// flatSource renders the {"name": {...fields...}} envelope used by variants
// that aren't scoped to a single field.
func flatSource(name string, body params) interface{} {
	return params{name: body}
}

// fieldSource renders the {"name": {"field": {...inner...}, ...core...}}
// envelope: the target field name becomes the object key and any core
// options sit alongside it rather than inside the inner object.
func fieldSource(name, field string, inner interface{}, core params) interface{} {
	body := params{field: inner}
	for key, value := range core {
		body[key] = value
	}

	return params{name: body}
}
