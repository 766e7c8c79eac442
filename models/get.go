package models

import "net/url"

// GetPostRequest is the form submitted to POST /get.
type GetPostRequest struct {
	// Msg is the user's question.
	Msg string
}

func (r GetPostRequest) Form() url.Values {
	return url.Values{"msg": {r.Msg}}
}
