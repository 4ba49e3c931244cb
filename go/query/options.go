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

import "fmt"

// ScoreMode controls how scores from multiple matching clauses or functions
// combine.
type ScoreMode string

const (
	ScoreModeMultiply ScoreMode = "multiply"
	ScoreModeSum      ScoreMode = "sum"
	ScoreModeAvg      ScoreMode = "avg"
	ScoreModeFirst    ScoreMode = "first"
	ScoreModeMax      ScoreMode = "max"
	ScoreModeMin      ScoreMode = "min"
	ScoreModeNone     ScoreMode = "none"
)

// BoostMode controls how the computed function score combines with the query
// score in a function_score query.
type BoostMode string

const (
	BoostModeMultiply BoostMode = "multiply"
	BoostModeReplace  BoostMode = "replace"
	BoostModeSum      BoostMode = "sum"
	BoostModeAvg      BoostMode = "avg"
	BoostModeMax      BoostMode = "max"
	BoostModeMin      BoostMode = "min"
)

// Operator is the boolean operator applied between analyzed terms of a match
// query.
type Operator string

const (
	OperatorAnd Operator = "and"
	OperatorOr  Operator = "or"
)

// ZeroTermsQuery determines match behavior when the analyzer removes every
// token.
type ZeroTermsQuery string

const (
	ZeroTermsQueryAll  ZeroTermsQuery = "all"
	ZeroTermsQueryNone ZeroTermsQuery = "none"
)

// CombinedMinimumShouldMatch builds the "N<M" form of minimum_should_match,
// where a different specification applies once the clause count exceeds the
// first value.
func CombinedMinimumShouldMatch(first, second interface{}) string {
	return fmt.Sprintf("%v<%v", first, second)
}

// matchOptions is the option set shared by the match-style full text
// queries. Each host variant declares its own fluent setters delegating
// here, so the wire names stay declared in exactly one place.
type matchOptions struct {
	analyzer           *string
	boost              *float64
	operator           *Operator
	minimumShouldMatch interface{}
	fuzziness          interface{}
	prefixLength       *int
	maxExpansions      *int
	cutoffFrequency    *float64
	zeroTermsQuery     *ZeroTermsQuery
	lenient            *bool
	slop               *int
}

func (o *matchOptions) mergeSource(p params) error {
	if o.analyzer != nil {
		p.set("analyzer", *o.analyzer)
	}
	if o.boost != nil {
		if err := p.setValue("boost", *o.boost); err != nil {
			return err
		}
	}
	if o.operator != nil {
		p.set("operator", *o.operator)
	}
	if o.minimumShouldMatch != nil {
		if err := p.setValue("minimum_should_match", o.minimumShouldMatch); err != nil {
			return err
		}
	}
	if o.fuzziness != nil {
		if err := p.setValue("fuzziness", o.fuzziness); err != nil {
			return err
		}
	}
	if o.prefixLength != nil {
		p.set("prefix_length", *o.prefixLength)
	}
	if o.maxExpansions != nil {
		p.set("max_expansions", *o.maxExpansions)
	}
	if o.cutoffFrequency != nil {
		if err := p.setValue("cutoff_frequency", *o.cutoffFrequency); err != nil {
			return err
		}
	}
	if o.zeroTermsQuery != nil {
		p.set("zero_terms_query", *o.zeroTermsQuery)
	}
	if o.lenient != nil {
		p.set("lenient", *o.lenient)
	}
	if o.slop != nil {
		p.set("slop", *o.slop)
	}

	return nil
}

// filterCoreOptions is the option set shared by field-scoped filters. The
// wire names carry the reserved underscore prefix and are rendered at the
// outer envelope, next to the field key, rather than inside the inner
// object.
type filterCoreOptions struct {
	cache      *bool
	cacheKey   *string
	filterName *string
}

func (o *filterCoreOptions) coreSource() params {
	core := params{}
	if o.cache != nil {
		core.set("_cache", *o.cache)
	}
	if o.cacheKey != nil {
		core.set("_cache_key", *o.cacheKey)
	}
	if o.filterName != nil {
		core.set("_name", *o.filterName)
	}

	return core
}
