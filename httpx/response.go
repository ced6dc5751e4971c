package httpx

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// FormResponse carries the feedback of a rejected or failed form submission.
type FormResponse struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			// avoid writing partial JSON
			w.Header().Set("Content-Type", "application/json")
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	Raw(w, status, body)
}

// Raw writes an already encoded JSON document.
func Raw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// Form writes a form feedback document.
func Form(w http.ResponseWriter, status int, errs map[string][]string, msg string) {
	JSON(w, status, FormResponse{Errors: errs, Message: msg})
}

// Marshal encodes payload for a cached render.
func Marshal(payload any) ([]byte, error) {
	return json.Marshal(payload)
}
