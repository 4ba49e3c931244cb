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

// TermFilter matches documents containing the exact value, without scoring.
// The value sits directly under the field key; cache directives render at
// the outer envelope.
type TermFilter struct {
	field string
	value interface{}

	filterCoreOptions
}

func NewTermFilter(field string, value interface{}) *TermFilter {
	return &TermFilter{field: field, value: value}
}

func (f *TermFilter) Cache(cache bool) *TermFilter {
	f.cache = &cache
	return f
}

func (f *TermFilter) CacheKey(cacheKey string) *TermFilter {
	f.cacheKey = &cacheKey
	return f
}

func (f *TermFilter) FilterName(filterName string) *TermFilter {
	f.filterName = &filterName
	return f
}

func (f *TermFilter) isFilter() {}

func (f *TermFilter) Source() (interface{}, error) {
	value, err := jsonValue(f.value)
	if err != nil {
		return nil, err
	}

	return fieldSource("term", f.field, value, f.coreSource()), nil
}

// TermsFilter matches documents containing any of the listed values.
type TermsFilter struct {
	field  string
	values []interface{}

	execution *string
	filterCoreOptions
}

func NewTermsFilter(field string, values ...interface{}) *TermsFilter {
	return &TermsFilter{field: field, values: values}
}

func (f *TermsFilter) Execution(execution string) *TermsFilter {
	f.execution = &execution
	return f
}

func (f *TermsFilter) Cache(cache bool) *TermsFilter {
	f.cache = &cache
	return f
}

func (f *TermsFilter) CacheKey(cacheKey string) *TermsFilter {
	f.cacheKey = &cacheKey
	return f
}

func (f *TermsFilter) FilterName(filterName string) *TermsFilter {
	f.filterName = &filterName
	return f
}

func (f *TermsFilter) isFilter() {}

func (f *TermsFilter) Source() (interface{}, error) {
	values, err := jsonValues(f.values)
	if err != nil {
		return nil, err
	}

	core := f.coreSource()
	if f.execution != nil {
		core.set("execution", *f.execution)
	}

	return fieldSource("terms", f.field, values, core), nil
}

// RangeFilter matches documents whose field value falls inside the given
// bounds.
type RangeFilter struct {
	field string

	gt  interface{}
	gte interface{}
	lt  interface{}
	lte interface{}
	filterCoreOptions
}

func NewRangeFilter(field string) *RangeFilter {
	return &RangeFilter{field: field}
}

func (f *RangeFilter) Gt(value interface{}) *RangeFilter {
	f.gt = value
	return f
}

func (f *RangeFilter) Gte(value interface{}) *RangeFilter {
	f.gte = value
	return f
}

func (f *RangeFilter) Lt(value interface{}) *RangeFilter {
	f.lt = value
	return f
}

func (f *RangeFilter) Lte(value interface{}) *RangeFilter {
	f.lte = value
	return f
}

func (f *RangeFilter) Cache(cache bool) *RangeFilter {
	f.cache = &cache
	return f
}

func (f *RangeFilter) CacheKey(cacheKey string) *RangeFilter {
	f.cacheKey = &cacheKey
	return f
}

func (f *RangeFilter) FilterName(filterName string) *RangeFilter {
	f.filterName = &filterName
	return f
}

func (f *RangeFilter) isFilter() {}

func (f *RangeFilter) Source() (interface{}, error) {
	inner := params{}
	if f.gt != nil {
		if err := inner.setValue("gt", f.gt); err != nil {
			return nil, err
		}
	}
	if f.gte != nil {
		if err := inner.setValue("gte", f.gte); err != nil {
			return nil, err
		}
	}
	if f.lt != nil {
		if err := inner.setValue("lt", f.lt); err != nil {
			return nil, err
		}
	}
	if f.lte != nil {
		if err := inner.setValue("lte", f.lte); err != nil {
			return nil, err
		}
	}

	return fieldSource("range", f.field, inner, f.coreSource()), nil
}

// PrefixFilter matches documents whose field value starts with the prefix.
type PrefixFilter struct {
	field string
	value interface{}

	filterCoreOptions
}

func NewPrefixFilter(field string, value interface{}) *PrefixFilter {
	return &PrefixFilter{field: field, value: value}
}

func (f *PrefixFilter) Cache(cache bool) *PrefixFilter {
	f.cache = &cache
	return f
}

func (f *PrefixFilter) CacheKey(cacheKey string) *PrefixFilter {
	f.cacheKey = &cacheKey
	return f
}

func (f *PrefixFilter) FilterName(filterName string) *PrefixFilter {
	f.filterName = &filterName
	return f
}

func (f *PrefixFilter) isFilter() {}

func (f *PrefixFilter) Source() (interface{}, error) {
	value, err := jsonValue(f.value)
	if err != nil {
		return nil, err
	}

	return fieldSource("prefix", f.field, value, f.coreSource()), nil
}

// ExistsFilter matches documents that have any value in the field.
type ExistsFilter struct {
	field string
}

func NewExistsFilter(field string) *ExistsFilter {
	return &ExistsFilter{field: field}
}

func (f *ExistsFilter) isFilter() {}

func (f *ExistsFilter) Source() (interface{}, error) {
	body := params{}
	body.set("field", f.field)

	return flatSource("exists", body), nil
}

// MissingFilter matches documents with no value in the field.
type MissingFilter struct {
	field string

	existence *bool
	nullValue *bool
}

func NewMissingFilter(field string) *MissingFilter {
	return &MissingFilter{field: field}
}

func (f *MissingFilter) Existence(existence bool) *MissingFilter {
	f.existence = &existence
	return f
}

func (f *MissingFilter) NullValue(nullValue bool) *MissingFilter {
	f.nullValue = &nullValue
	return f
}

func (f *MissingFilter) isFilter() {}

func (f *MissingFilter) Source() (interface{}, error) {
	body := params{}
	body.set("field", f.field)
	if f.existence != nil {
		body.set("existence", *f.existence)
	}
	if f.nullValue != nil {
		body.set("null_value", *f.nullValue)
	}

	return flatSource("missing", body), nil
}

// BoolFilter combines sub-filters with boolean clauses.
type BoolFilter struct {
	must    []Filter
	should  []Filter
	mustNot []Filter

	cache *bool
}

func NewBoolFilter() *BoolFilter {
	return &BoolFilter{}
}

func (f *BoolFilter) Must(filters ...Filter) *BoolFilter {
	f.must = append(f.must, filters...)
	return f
}

func (f *BoolFilter) Should(filters ...Filter) *BoolFilter {
	f.should = append(f.should, filters...)
	return f
}

func (f *BoolFilter) MustNot(filters ...Filter) *BoolFilter {
	f.mustNot = append(f.mustNot, filters...)
	return f
}

func (f *BoolFilter) Cache(cache bool) *BoolFilter {
	f.cache = &cache
	return f
}

func (f *BoolFilter) isFilter() {}

func (f *BoolFilter) Source() (interface{}, error) {
	body := params{}
	if len(f.must) != 0 {
		if err := body.setFilters("must", f.must); err != nil {
			return nil, err
		}
	}
	if len(f.should) != 0 {
		if err := body.setFilters("should", f.should); err != nil {
			return nil, err
		}
	}
	if len(f.mustNot) != 0 {
		if err := body.setFilters("must_not", f.mustNot); err != nil {
			return nil, err
		}
	}
	if f.cache != nil {
		body.set("_cache", *f.cache)
	}

	return flatSource("bool", body), nil
}

// NestedFilter applies a filter to documents nested under a path.
type NestedFilter struct {
	path   string
	filter Filter

	join *bool
	filterCoreOptions
}

func NewNestedFilter(path string, filter Filter) *NestedFilter {
	return &NestedFilter{path: path, filter: filter}
}

func (f *NestedFilter) Join(join bool) *NestedFilter {
	f.join = &join
	return f
}

func (f *NestedFilter) Cache(cache bool) *NestedFilter {
	f.cache = &cache
	return f
}

func (f *NestedFilter) FilterName(filterName string) *NestedFilter {
	f.filterName = &filterName
	return f
}

func (f *NestedFilter) isFilter() {}

func (f *NestedFilter) Source() (interface{}, error) {
	body := params{}
	body.set("path", f.path)
	if err := body.setFilter("filter", f.filter); err != nil {
		return nil, err
	}
	if f.join != nil {
		body.set("join", *f.join)
	}
	for key, value := range f.coreSource() {
		body.set(key, value)
	}

	return flatSource("nested", body), nil
}

// GeoDistanceFilter matches documents whose geo point lies within the given
// distance of a location. The location nests under the field key while the
// distance itself stays at the outer envelope.
type GeoDistanceFilter struct {
	field    string
	distance string
	lat      float64
	lon      float64

	distanceType *string
	optimizeBbox *string
	filterCoreOptions
}

func NewGeoDistanceFilter(field, distance string, lat, lon float64) *GeoDistanceFilter {
	return &GeoDistanceFilter{field: field, distance: distance, lat: lat, lon: lon}
}

func (f *GeoDistanceFilter) DistanceType(distanceType string) *GeoDistanceFilter {
	f.distanceType = &distanceType
	return f
}

func (f *GeoDistanceFilter) OptimizeBbox(optimizeBbox string) *GeoDistanceFilter {
	f.optimizeBbox = &optimizeBbox
	return f
}

func (f *GeoDistanceFilter) Cache(cache bool) *GeoDistanceFilter {
	f.cache = &cache
	return f
}

func (f *GeoDistanceFilter) CacheKey(cacheKey string) *GeoDistanceFilter {
	f.cacheKey = &cacheKey
	return f
}

func (f *GeoDistanceFilter) FilterName(filterName string) *GeoDistanceFilter {
	f.filterName = &filterName
	return f
}

func (f *GeoDistanceFilter) isFilter() {}

func (f *GeoDistanceFilter) Source() (interface{}, error) {
	location := params{}
	if err := location.setValue("lat", f.lat); err != nil {
		return nil, err
	}
	if err := location.setValue("lon", f.lon); err != nil {
		return nil, err
	}

	core := f.coreSource()
	core.set("distance", f.distance)
	if f.distanceType != nil {
		core.set("distance_type", *f.distanceType)
	}
	if f.optimizeBbox != nil {
		core.set("optimize_bbox", *f.optimizeBbox)
	}

	return fieldSource("geo_distance", f.field, location, core), nil
}

// QueryFilter bridges a scoring query into filter context.
type QueryFilter struct {
	query Query
}

func NewQueryFilter(query Query) *QueryFilter {
	return &QueryFilter{query: query}
}

func (f *QueryFilter) isFilter() {}

func (f *QueryFilter) Source() (interface{}, error) {
	source, err := f.query.Source()
	if err != nil {
		return nil, err
	}

	return params{"query": source}, nil
}
