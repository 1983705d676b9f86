package query

// SetParam overwrites key with value in currentQuery and returns the new
// query string with a leading "?". The caller prefixes the path.
//
// Nil values already present are dropped from the output.
//
//	SetParam("page=1&sort=asc", "page", "2") == "?page=2&sort=asc"
func SetParam(currentQuery, key, value string) string {
	params := Decode(currentQuery)
	params.Set(key, value)

	return "?" + Encode(params, EncodeOptions{SkipNulls: true})
}

// RemoveParams deletes keysToRemove from currentQuery, then scrubs any
// remaining top-level key whose value is nil (a bare key such as "draft").
// The literal string "null" and the empty string are kept.
//
// It returns the query with a leading "?", or "" when nothing is left.
func RemoveParams(currentQuery string, keysToRemove []string) string {
	params := Decode(currentQuery)
	for _, key := range keysToRemove {
		params.Del(key)
	}

	for _, key := range params.Keys() {
		if val, _ := params.Get(key); isNull(val) {
			params.Del(key)
		}
	}

	encoded := Encode(params, EncodeOptions{})
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}
