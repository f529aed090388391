// Copyright (c) 2026 OpsDesk. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away common body decoding and query-string patterns, ensuring
consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/opsdesk/portal/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Query retrieves a named query-string parameter from the request.

The reset-password view reads its token this way; an empty string means
the parameter is absent.
*/
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}
