package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel decoding errors.
var (
	ErrMissingUser = errors.New("contributions response has no user")
	ErrMissingYear = errors.New("payload has no year")
	ErrUpstream    = errors.New("upstream reported errors")
)

// GraphQLError is one entry of a GraphQL errors array.
type GraphQLError struct {
	Message string `json:"message"`
}

// UnmarshalJSON accepts both the bare query result and the full GraphQL
// envelope with a "data" member.
func (r *ContributionsResponse) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Data *struct {
			User *User `json:"user"`
		} `json:"data"`
		Errors []GraphQLError `json:"errors"`
		User   *User          `json:"user"`
	}

	err := json.Unmarshal(data, &envelope)
	if err != nil {
		return fmt.Errorf("decode contributions response: %w", err)
	}

	if len(envelope.Errors) > 0 && (envelope.Data == nil || envelope.Data.User == nil) {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}

		return fmt.Errorf("%w: %s", ErrUpstream, strings.Join(messages, "; "))
	}

	r.User = envelope.User
	if envelope.Data != nil {
		r.User = envelope.Data.User
	}

	return nil
}

// Decode reads one year payload and checks the fields every summary needs.
func Decode(r io.Reader) (YearPayload, error) {
	var payload YearPayload

	err := json.NewDecoder(r).Decode(&payload)
	if err != nil {
		return YearPayload{}, fmt.Errorf("decode year payload: %w", err)
	}

	err = payload.Validate()
	if err != nil {
		return YearPayload{}, err
	}

	return payload, nil
}

// Validate checks that the payload names a user and a year.
func (p YearPayload) Validate() error {
	if p.Contributions.User == nil {
		return ErrMissingUser
	}

	if p.Year <= 0 {
		return fmt.Errorf("%w: %d", ErrMissingYear, p.Year)
	}

	return nil
}
