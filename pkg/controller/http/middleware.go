package http

import (
	"encoding/json"
	"net/http"

	"github.com/secmon-lab/qainfo/pkg/utils/logging"
)

const redacted = "***"

// requestDumper logs the verified Slack payload at debug level. Verification
// tokens are redacted.
func requestDumper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.From(ctx)

		if body, ok := ctx.Value(slackBodyKey).([]byte); ok {
			logger.Debug("Dumping request data for debugging",
				"path", r.URL.Path,
				"content_type", r.Header.Get("Content-Type"),
				"payload", dumpSlackPayload(r, body),
			)
		}

		next.ServeHTTP(w, r)
		logger.Debug("request handling completed", "path", r.URL.Path)
	})
}

// dumpSlackPayload decodes the body into a map for logging. Form bodies are
// flattened and an interaction "payload" field is decoded as JSON.
func dumpSlackPayload(r *http.Request, body []byte) map[string]any {
	dump := map[string]any{}

	if json.Unmarshal(body, &dump) == nil {
		return redactTokens(dump)
	}

	if err := r.ParseForm(); err != nil {
		return map[string]any{"raw_size": len(body)}
	}
	for k := range r.PostForm {
		dump[k] = r.PostForm.Get(k)
	}

	if payload, ok := dump["payload"].(string); ok {
		decoded := map[string]any{}
		if json.Unmarshal([]byte(payload), &decoded) == nil {
			dump["payload"] = redactTokens(decoded)
		}
	}

	return redactTokens(dump)
}

func redactTokens(m map[string]any) map[string]any {
	if _, ok := m["token"]; ok {
		m["token"] = redacted
	}
	return m
}
