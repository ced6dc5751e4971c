package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Arhonist/nextjs-dashboard/httpx"
	"github.com/Arhonist/nextjs-dashboard/internal/services"
)

// writeResult maps a mutation outcome onto the response: a 303 redirect on
// success, 422 with field errors when rejected, 500 when the store failed.
func writeResult(w http.ResponseWriter, r *http.Request, res services.Result) {
	switch res.Kind {
	case services.ResultOK:
		http.Redirect(w, r, res.Redirect, http.StatusSeeOther)
	case services.ResultInvalid:
		httpx.Form(w, http.StatusUnprocessableEntity, res.Errors, res.Message)
	default:
		httpx.Form(w, http.StatusInternalServerError, nil, res.Message)
	}
}

// writeFetchError answers a failed read without exposing the store error.
func writeFetchError(w http.ResponseWriter, err error) {
	var fe *services.FetchError
	if errors.As(err, &fe) {
		httpx.Form(w, http.StatusInternalServerError, nil, fe.Error())
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
}

// readParams extracts the search term and 1-based page of a list request.
func readParams(r *http.Request) (string, int) {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return q.Get("query"), page
}

// parseForm reads a urlencoded or multipart form body.
func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}
