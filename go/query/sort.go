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

// SortOrder is the direction of one sort term.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// SortMode picks the value used for sorting when the field is multi-valued.
type SortMode string

const (
	SortModeMin SortMode = "min"
	SortModeMax SortMode = "max"
	SortModeSum SortMode = "sum"
	SortModeAvg SortMode = "avg"
)

// Sorter is one term of a sort specification. A search request carries an
// ordered list of sorters; list order defines tie-break precedence.
type Sorter interface {
	Source() (interface{}, error)
}

// FieldSort orders results by a document field.
type FieldSort struct {
	field string

	order        *SortOrder
	mode         *SortMode
	missing      interface{}
	unmappedType *string
	nestedPath   *string
	nestedFilter Filter
}

func NewFieldSort(field string) *FieldSort {
	return &FieldSort{field: field}
}

func (s *FieldSort) Order(order SortOrder) *FieldSort {
	s.order = &order
	return s
}

func (s *FieldSort) Mode(mode SortMode) *FieldSort {
	s.mode = &mode
	return s
}

// Missing places documents without the field, accepting "_first", "_last"
// or a literal substitute value.
func (s *FieldSort) Missing(missing interface{}) *FieldSort {
	s.missing = missing
	return s
}

func (s *FieldSort) UnmappedType(unmappedType string) *FieldSort {
	s.unmappedType = &unmappedType
	return s
}

func (s *FieldSort) NestedPath(nestedPath string) *FieldSort {
	s.nestedPath = &nestedPath
	return s
}

func (s *FieldSort) NestedFilter(nestedFilter Filter) *FieldSort {
	s.nestedFilter = nestedFilter
	return s
}

func (s *FieldSort) Source() (interface{}, error) {
	inner := params{}
	if s.order != nil {
		inner.set("order", *s.order)
	}
	if s.mode != nil {
		inner.set("mode", *s.mode)
	}
	if s.missing != nil {
		if err := inner.setValue("missing", s.missing); err != nil {
			return nil, err
		}
	}
	if s.unmappedType != nil {
		inner.set("unmapped_type", *s.unmappedType)
	}
	if s.nestedPath != nil {
		inner.set("nested_path", *s.nestedPath)
	}
	if s.nestedFilter != nil {
		if err := inner.setFilter("nested_filter", s.nestedFilter); err != nil {
			return nil, err
		}
	}

	return params{s.field: inner}, nil
}

// SortByField is shorthand for the common field-plus-direction sort term.
func SortByField(field string, order SortOrder) *FieldSort {
	return NewFieldSort(field).Order(order)
}

// GeoDistanceSort orders results by distance from one or more reference
// points, given as [lon, lat] pairs.
type GeoDistanceSort struct {
	field  string
	points [][]float64

	order        *SortOrder
	unit         *string
	distanceType *string
	mode         *SortMode
}

// NewGeoDistanceSort requires the first reference point; further points can
// be added with Point.
func NewGeoDistanceSort(field string, lat, lon float64) *GeoDistanceSort {
	return (&GeoDistanceSort{field: field}).Point(lat, lon)
}

func (s *GeoDistanceSort) Point(lat, lon float64) *GeoDistanceSort {
	s.points = append(s.points, []float64{lon, lat})
	return s
}

func (s *GeoDistanceSort) Order(order SortOrder) *GeoDistanceSort {
	s.order = &order
	return s
}

func (s *GeoDistanceSort) Unit(unit string) *GeoDistanceSort {
	s.unit = &unit
	return s
}

func (s *GeoDistanceSort) DistanceType(distanceType string) *GeoDistanceSort {
	s.distanceType = &distanceType
	return s
}

func (s *GeoDistanceSort) Mode(mode SortMode) *GeoDistanceSort {
	s.mode = &mode
	return s
}

func (s *GeoDistanceSort) Source() (interface{}, error) {
	inner := params{}
	if len(s.points) == 1 {
		inner.set(s.field, s.points[0])
	} else {
		inner.set(s.field, s.points)
	}
	if s.order != nil {
		inner.set("order", *s.order)
	}
	if s.unit != nil {
		inner.set("unit", *s.unit)
	}
	if s.distanceType != nil {
		inner.set("distance_type", *s.distanceType)
	}
	if s.mode != nil {
		inner.set("mode", *s.mode)
	}

	return params{"_geo_distance": inner}, nil
}

// ScriptSort orders results by a script-computed value.
type ScriptSort struct {
	script     string
	scriptType string

	order  *SortOrder
	lang   *string
	params map[string]interface{}
}

// NewScriptSort requires the script source and its value type, "string" or
// "number".
func NewScriptSort(script, scriptType string) *ScriptSort {
	return &ScriptSort{script: script, scriptType: scriptType}
}

func (s *ScriptSort) Order(order SortOrder) *ScriptSort {
	s.order = &order
	return s
}

func (s *ScriptSort) Lang(lang string) *ScriptSort {
	s.lang = &lang
	return s
}

func (s *ScriptSort) Param(name string, value interface{}) *ScriptSort {
	if s.params == nil {
		s.params = map[string]interface{}{}
	}
	s.params[name] = value

	return s
}

func (s *ScriptSort) Source() (interface{}, error) {
	inner := params{}
	inner.set("script", s.script)
	inner.set("type", s.scriptType)
	if s.order != nil {
		inner.set("order", *s.order)
	}
	if s.lang != nil {
		inner.set("lang", *s.lang)
	}
	if len(s.params) != 0 {
		scriptParams := params{}
		for name, value := range s.params {
			if err := scriptParams.setValue(name, value); err != nil {
				return nil, err
			}
		}
		inner.set("params", scriptParams)
	}

	return params{"_script": inner}, nil
}

// SortSources serializes an ordered sort specification for inclusion in a
// request body.
func SortSources(sorters []Sorter) ([]interface{}, error) {
	sources := make([]interface{}, 0, len(sorters))
	for _, sorter := range sorters {
		source, err := sorter.Source()
		if err != nil {
			return nil, err
		}

		sources = append(sources, source)
	}

	return sources, nil
}
