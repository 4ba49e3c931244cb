package esutil

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
)

type TransportAction = func(req *http.Request) (*http.Response, error)

// MockEsTransport stands in for the Elasticsearch transport in tests,
// recording every request and replaying prepared responses in order.
type MockEsTransport struct {
	ReceivedHttpRequests  []*http.Request
	PreparedHttpResponses []*http.Response
	Actions               []TransportAction
}

func (m *MockEsTransport) Perform(req *http.Request) (*http.Response, error) {
	m.ReceivedHttpRequests = append(m.ReceivedHttpRequests, req)

	// actions take precedence, they can simulate transport-level failures
	if len(m.Actions) != 0 {
		action := m.Actions[0]
		if action != nil {
			m.Actions = append(m.Actions[:0], m.Actions[1:]...)
			return action(req)
		}
	}

	if len(m.PreparedHttpResponses) != 0 {
		res := m.PreparedHttpResponses[0]
		m.PreparedHttpResponses = append(m.PreparedHttpResponses[:0], m.PreparedHttpResponses[1:]...)

		return res, nil
	}

	return nil, nil
}

// mockEsResponse builds an *http.Response with a JSON-encoded body, for
// seeding PreparedHttpResponses.
func mockEsResponse(statusCode int, body interface{}) *http.Response {
	b, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}

	return &http.Response{
		StatusCode: statusCode,
		Body:       ioutil.NopCloser(bytes.NewReader(b)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}
