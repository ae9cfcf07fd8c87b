package hitbtc

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/thrasher-corp/hitbtc/encoding/json"
	"github.com/thrasher-corp/hitbtc/exchanges/request"
)

var nullPayload = Payload("null")

// Normalize maps a raw response onto a Response. Public bodies are the payload
// themselves; private bodies are {"result": ..., "error": ...} envelopes whose
// non-empty error is passed through verbatim.
func Normalize(private bool, raw *request.Response) *Response {
	if raw == nil {
		return &Response{failure: &Failure{Kind: DecodingFailure, Message: "empty response"}}
	}
	resp := &Response{StatusCode: raw.StatusCode, Raw: raw.Body}
	body := bytes.TrimSpace(raw.Body)

	var check json.RawMessage
	if err := json.Unmarshal(body, &check); err != nil {
		resp.failure = &Failure{Kind: DecodingFailure, Message: err.Error()}
		return resp
	}

	if !private {
		if !statusOK(raw.StatusCode) {
			resp.failure = statusFailure(raw.StatusCode, body)
			return resp
		}
		resp.payload = Payload(body)
		return resp
	}

	if body[0] != '{' {
		resp.failure = &Failure{Kind: DecodingFailure, Message: "private response is not an object envelope"}
		return resp
	}

	if f := envelopeError(body); f != nil {
		resp.failure = f
		return resp
	}

	if !statusOK(raw.StatusCode) {
		resp.failure = statusFailure(raw.StatusCode, body)
		return resp
	}

	result, _, ok := getRaw(body, "result")
	if !ok {
		resp.payload = nullPayload
		return resp
	}
	resp.payload = Payload(result)
	return resp
}

// envelopeError returns the application failure described by the error field,
// nil when the field is absent or empty
func envelopeError(body []byte) *Failure {
	v, typ, ok := getRaw(body, "error")
	if !ok {
		return nil
	}
	switch typ {
	case jsonparser.Null:
		return nil
	case jsonparser.String:
		msg, err := jsonparser.ParseString(v[1 : len(v)-1])
		if err != nil {
			msg = string(v[1 : len(v)-1])
		}
		if msg == "" {
			return nil
		}
		return &Failure{Kind: ApplicationFailure, Message: msg, Detail: json.RawMessage(v)}
	case jsonparser.Object, jsonparser.Array:
		if compact := bytes.Join(bytes.Fields(v), nil); len(compact) == 2 {
			return nil
		}
	}
	return &Failure{Kind: ApplicationFailure, Message: string(v), Detail: json.RawMessage(v)}
}

func statusFailure(code int, body []byte) *Failure {
	if f := envelopeError(body); f != nil {
		return f
	}
	return &Failure{
		Kind:    ApplicationFailure,
		Message: strconv.Itoa(code) + " " + http.StatusText(code) + ": " + string(body),
		Detail:  json.RawMessage(body),
	}
}

func statusOK(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
