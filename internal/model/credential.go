package model

import "encoding/json"

// Credential is the locally persisted user session record.
type Credential struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
	Guest bool   `json:"isGuest,omitempty"`
}

func (c *Credential) UnmarshalJSON(data []byte) error {
	type alias Credential
	aux := struct {
		*alias
		LegacyID string `json:"id"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = aux.LegacyID
	}
	return nil
}

// ProfilePatch carries a partial profile update.
type ProfilePatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (p ProfilePatch) Apply(c *Credential) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
}
