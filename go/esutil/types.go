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

package esutil

import "encoding/json"

// Elasticsearch /_search response

type EsSearchResponse struct {
	Took     int                   `json:"took"`
	TimedOut bool                  `json:"timed_out"`
	ScrollId string                `json:"_scroll_id,omitempty"`
	Hits     *EsSearchResponseHits `json:"hits"`
}

type EsSearchResponseHits struct {
	Total    *EsSearchResponseTotal `json:"total"`
	MaxScore *float64               `json:"max_score"`
	Hits     []*EsSearchResponseHit `json:"hits"`
}

type EsSearchResponseTotal struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}

// EsSearchResponseHit carries the raw source document; decoding it into a
// caller-defined type is the caller's concern.
type EsSearchResponseHit struct {
	Index  string          `json:"_index"`
	ID     string          `json:"_id"`
	Score  *float64        `json:"_score"`
	Source json.RawMessage `json:"_source"`
	Sort   []interface{}   `json:"sort,omitempty"`
}

// Elasticsearch /_search/scroll request bodies

type EsScrollRequest struct {
	Scroll   string `json:"scroll"`
	ScrollId string `json:"scroll_id"`
}

type EsClearScrollRequest struct {
	ScrollId []string `json:"scroll_id"`
}

// DELETE /_search/scroll response

type EsClearScrollResponse struct {
	Succeeded bool `json:"succeeded"`
	NumFreed  int  `json:"num_freed"`
}

// Elasticsearch error response

type EsErrorResponse struct {
	Error  *EsErrorCause `json:"error"`
	Status int           `json:"status"`
}

type EsErrorCause struct {
	Type      string          `json:"type"`
	Reason    string          `json:"reason"`
	RootCause []*EsErrorCause `json:"root_cause,omitempty"`
}
