// Package session owns the client-side session state: durable persistence of
// the bearer token and user record, the derived authentication predicate, and
// an in-memory observable mirror of the user record for pages and guards.
package session

import "encoding/json"

// UserRecord is the authenticated principal as returned by the API. Beyond
// the required fields the server may attach arbitrary extension keys; those
// are kept verbatim in Extra so a round trip through local storage does not
// lose them. Records are replaced wholesale, never patched field by field.
type UserRecord struct {
	ID    int64
	Name  string
	Email string
	Extra map[string]json.RawMessage
}

type userRecordJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MarshalJSON flattens Extra back into the top-level object alongside the
// required fields.
func (u UserRecord) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(u.Extra)+3)
	for k, v := range u.Extra {
		obj[k] = v
	}

	known, err := json.Marshal(userRecordJSON{ID: u.ID, Name: u.Name, Email: u.Email})
	if err != nil {
		return nil, err
	}
	var knownObj map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownObj); err != nil {
		return nil, err
	}
	for k, v := range knownObj {
		obj[k] = v
	}

	return json.Marshal(obj)
}

// UnmarshalJSON picks out the required fields and collects every unknown key
// into Extra.
func (u *UserRecord) UnmarshalJSON(data []byte) error {
	var known userRecordJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	delete(obj, "id")
	delete(obj, "name")
	delete(obj, "email")
	if len(obj) == 0 {
		obj = nil
	}

	u.ID = known.ID
	u.Name = known.Name
	u.Email = known.Email
	u.Extra = obj
	return nil
}
