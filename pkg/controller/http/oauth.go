package http

import (
	"errors"
	"net/http"

	"github.com/secmon-lab/qainfo/pkg/usecase"
	"github.com/secmon-lab/qainfo/pkg/utils/errutil"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
)

// oauthCallbackHandler completes the user token flow started by /qa-info auth
func oauthCallbackHandler(oauthUC OAuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		code := r.URL.Query().Get("code")

		status := http.StatusOK
		body := usecase.MsgOAuthCompleted

		if _, err := oauthUC.HandleOAuthCallback(ctx, code); err != nil {
			errutil.Handle(ctx, err, "oauth callback failed")
			status = http.StatusInternalServerError
			if errors.Is(err, usecase.ErrMissingCode) {
				status = http.StatusBadRequest
			}
			body = usecase.MsgOAuthFailed
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			logging.From(ctx).Error("failed to write oauth response", "error", err)
		}
	}
}
