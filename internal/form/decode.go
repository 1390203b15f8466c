// Package form implements the investor-form submission pipeline: decoding
// a request body from any supported encoding into a flat field map,
// sanitizing and validating the fields, and rendering the notification
// email.
package form

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// HoneypotField is invisible to human visitors; a non-empty value marks
// the submission as automated. The legitimate "company" field is separate.
const HoneypotField = "website_url"

// maxBodyBytes bounds how much of a request body is read. Form payloads
// are a few hundred bytes; anything near this limit is not a real visitor.
const maxBodyBytes = 1 << 20

// Decode reads the request body and normalizes it into a flat string map.
// JSON objects, urlencoded forms, and multipart forms are supported; with
// no usable content type it tries JSON first and falls back to urlencoded.
// Decoding never fails: any malformed body degrades to an empty map, which
// then fails validation the ordinary way.
func Decode(r *http.Request) map[string]string {
	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			mediaType = mt
		}
	}

	switch mediaType {
	case "application/json":
		fields, _ := decodeJSON(readBody(r))
		return fields
	case "application/x-www-form-urlencoded":
		return decodeURLEncoded(string(readBody(r)))
	case "multipart/form-data":
		return decodeMultipart(r)
	default:
		body := readBody(r)
		if fields, ok := decodeJSON(body); ok {
			return fields
		}
		return decodeURLEncoded(string(body))
	}
}

func readBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil
	}
	return body
}

// decodeJSON flattens a JSON object one level deep: nested objects become
// dotted keys (utm.source), arrays of strings are comma-joined, and
// scalars are stringified. The second return reports whether the body was
// valid JSON at all, so the fallback path can distinguish an empty object
// from a parse failure.
func decodeJSON(body []byte) (map[string]string, bool) {
	fields := make(map[string]string)
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return fields, false
	}
	for k, v := range raw {
		switch val := v.(type) {
		case map[string]interface{}:
			for sk, sv := range val {
				if s, ok := scalarString(sv); ok {
					fields[k+"."+sk] = s
				}
			}
		case []interface{}:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				if s, ok := scalarString(item); ok {
					parts = append(parts, s)
				}
			}
			fields[k] = strings.Join(parts, ", ")
		default:
			if s, ok := scalarString(v); ok {
				fields[k] = s
			}
		}
	}
	return fields, true
}

func scalarString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return "", false
	}
}

// decodeURLEncoded keeps the last occurrence of a repeated key, matching
// standard form-decoding semantics.
func decodeURLEncoded(body string) map[string]string {
	fields := make(map[string]string)
	values, err := url.ParseQuery(body)
	if err != nil {
		return map[string]string{}
	}
	for k, vs := range values {
		if len(vs) > 0 {
			fields[k] = vs[len(vs)-1]
		}
	}
	return fields
}

// decodeMultipart takes text parts verbatim; file parts contribute their
// file name as a placeholder value.
func decodeMultipart(r *http.Request) map[string]string {
	fields := make(map[string]string)
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		return fields
	}
	for k, vs := range r.MultipartForm.Value {
		if len(vs) > 0 {
			fields[k] = vs[len(vs)-1]
		}
	}
	for k, fhs := range r.MultipartForm.File {
		if len(fhs) > 0 {
			fields[k] = fhs[len(fhs)-1].Filename
		}
	}
	return fields
}
