package handlers

import (
	"encoding/json"
	stderrors "errors"
	"explorerhub/middleware"
	"explorerhub/services"
	"explorerhub/utils/errors"
	"io"
	"log"
	"net/http"
)

const maxFormBody = 1 << 20

// writeJSON encodes v before any header is sent, so an unencodable value
// still gets a proper 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("response_encode_failed status=%d error=%q", status, err)
		middleware.WriteError(w, errors.ErrInternal)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// relay writes a backend reply with its own status and body.
func relay(w http.ResponseWriter, resp *services.BackendResponse) {
	if resp.Status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	body := []byte(resp.Body)
	if len(body) == 0 {
		if resp.OK() {
			body = []byte("{}")
		} else {
			body, _ = json.Marshal(map[string]string{"detail": http.StatusText(resp.Status)})
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	w.Write(body)
}

// respond relays resp, or writes err. Upstream errors carry the backend
// reply and are relayed too.
func respond(w http.ResponseWriter, resp *services.BackendResponse, err error) {
	if err != nil {
		var upstream *services.UpstreamError
		if stderrors.As(err, &upstream) {
			relay(w, upstream.Response)
			return
		}
		middleware.WriteError(w, err)
		return
	}
	relay(w, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxFormBody))
	if err := dec.Decode(v); err != nil {
		middleware.WriteError(w, errors.NewAPIError(errors.ErrInvalidInput.Code, errors.ErrInvalidInput.Message, http.StatusBadRequest, err.Error()))
		return false
	}
	return true
}
