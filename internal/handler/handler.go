package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// validate checks request DTOs against their struct tags. A single instance
// caches the parsed tags.
var validate = validator.New()

// pageParam reads the one-indexed page number from the query string.
// Missing or unparseable values default to page 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
