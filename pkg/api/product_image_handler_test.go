package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateImage_Validation(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing product", `{"url":"https://img.example.com/a.jpg"}`},
		{"missing url", `{"product_id":"p1"}`},
		{"invalid url", `{"product_id":"p1","url":"not a url"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(s.createImage, tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestUpdateImage_Validation(t *testing.T) {
	s := newTestServer()

	w := postJSON(s.updateImage, `{"url":"not a url"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
