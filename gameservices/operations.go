package gameservices

import (
	"fmt"

	sdk "github.com/explay-project/sdk"
	"github.com/explay-project/sdk/protocol"
)

// IsSignedIn reports whether a user session is active. This is the only
// operation that succeeds while signed out.
func (c *Client) IsSignedIn() (bool, error) {
	res := c.call(protocol.CommandIsUserSignedIn, protocol.EmptyPayload)
	if res.Err != nil {
		return false, res.Err
	}

	var out protocol.SignedIn
	if err := protocol.DecodePayload(res.Data, &out); err != nil {
		return false, fmt.Errorf("%w: %v", sdk.ErrHostResponseInvalid, err)
	}
	return out.SignedIn, nil
}

// UserDetails returns the authenticated user's identity.
func (c *Client) UserDetails() (*protocol.User, error) {
	res := c.call(protocol.CommandGetUserDetails, protocol.EmptyPayload)
	if res.Err != nil {
		return nil, res.Err
	}

	var user protocol.User
	if err := protocol.DecodePayload(res.Data, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", sdk.ErrHostResponseInvalid, err)
	}
	return &user, nil
}

// Get returns the record stored under key.
func (c *Client) Get(key string) (*protocol.Data, error) {
	payload, err := protocol.EncodePayload(protocol.KeyRequest{Key: key})
	if err != nil {
		return nil, err
	}

	res := c.call(protocol.CommandGetUserData, payload)
	if res.Err != nil {
		return nil, res.Err
	}

	var data protocol.Data
	if err := protocol.DecodePayload(res.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", sdk.ErrHostResponseInvalid, err)
	}
	return &data, nil
}

// Set upserts a value under key and returns the stored record.
func (c *Client) Set(key, value string, public bool) (*protocol.Data, error) {
	payload, err := protocol.EncodePayload(protocol.SetRequest{Key: key, Value: value, Public: public})
	if err != nil {
		return nil, err
	}

	res := c.call(protocol.CommandSetUserData, payload)
	if res.Err != nil {
		return nil, res.Err
	}

	var data protocol.Data
	if err := protocol.DecodePayload(res.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", sdk.ErrHostResponseInvalid, err)
	}
	return &data, nil
}

// List returns all records stored for the current user. Order is stable for
// a given store snapshot but otherwise unspecified.
func (c *Client) List() ([]protocol.Data, error) {
	res := c.call(protocol.CommandListUserData, protocol.EmptyPayload)
	if res.Err != nil {
		return nil, res.Err
	}

	var list protocol.DataList
	if err := protocol.DecodePayload(res.Data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", sdk.ErrHostResponseInvalid, err)
	}
	return list.Data, nil
}

// Delete removes the record stored under key.
func (c *Client) Delete(key string) error {
	payload, err := protocol.EncodePayload(protocol.KeyRequest{Key: key})
	if err != nil {
		return err
	}

	res := c.call(protocol.CommandDeleteUserData, payload)
	return res.Err
}
