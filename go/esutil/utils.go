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

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

func DecodeResponse(r io.ReadCloser, i interface{}) error {
	err := json.NewDecoder(r).Decode(i)
	if err != nil {
		return errors.New(fmt.Sprintf("error decoding elasticsearch response: %s", err))
	}

	return nil
}

func EncodeRequest(body interface{}) (io.Reader, string) {
	b, err := json.Marshal(body)
	if err != nil {
		// request bodies are validated while they're assembled, so a
		// marshaling failure here is a bug
		panic(err)
	}

	return bytes.NewReader(b), string(b)
}

// formatKeepalive renders a duration the way esapi renders its scroll
// parameter, as integer milliseconds. The engine rejects "0ms", so
// sub-millisecond durations are clamped to 1ms.
func formatKeepalive(d time.Duration) string {
	ms := int64(d) / int64(time.Millisecond)
	if ms < 1 {
		ms = 1
	}

	return strconv.FormatInt(ms, 10) + "ms"
}
