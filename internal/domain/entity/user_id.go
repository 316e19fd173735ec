package entity

import (
	"bytes"
	"encoding/json"

	"exposure/internal/errors"
)

// UserID identifies a mobile network user. Clients send either external
// identifiers such as "10001@domain.com" or small integer IDs; both are kept
// in their textual form.
type UserID string

// UnmarshalJSON accepts a JSON string or a JSON integer.
func (u *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.WithStack(err)
		}
		*u = UserID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "user id must be a string or an integer")
	}
	if _, err := n.Int64(); err != nil {
		return errors.Errorf("user id must be an integer, got %s", n)
	}
	*u = UserID(n.String())

	return nil
}

func (u UserID) String() string {
	return string(u)
}
