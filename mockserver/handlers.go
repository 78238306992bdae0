package mockserver

import (
	"errors"
	"fmt"

	"github.com/explay-project/sdk/mockserver/store"
	"github.com/explay-project/sdk/protocol"
)

func (s *Server) handleIsUserSignedIn() (string, string) {
	data, err := protocol.EncodePayload(protocol.SignedIn{SignedIn: s.store.Identity().SignedIn})
	if err != nil {
		return "", fmt.Sprintf("Error: %v", err)
	}
	return data, ""
}

func (s *Server) handleGetUserDetails() (string, string) {
	identity := s.store.Identity()
	if !identity.SignedIn {
		return "", msgNotSignedIn
	}

	data, err := protocol.EncodePayload(protocol.User{
		ID:       identity.UserID,
		Username: identity.Username,
		Avatar:   identity.Avatar,
	})
	if err != nil {
		return "", fmt.Sprintf("Error: %v", err)
	}
	return data, ""
}

func (s *Server) handleGetUserData(payload string) (string, string) {
	if !s.store.Identity().SignedIn {
		return "", msgNotSignedIn
	}

	var req protocol.KeyRequest
	if err := protocol.DecodePayload(payload, &req); err != nil {
		return "", fmt.Sprintf("Error: %v", err)
	}

	record, err := s.store.Get(req.Key)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) || errors.Is(err, store.ErrInvalidKey) {
			return "", msgKeyNotFound
		}
		return "", fmt.Sprintf("Error: %v", err)
	}

	data, err := protocol.EncodePayload(protocol.Data{Key: record.Key, Value: record.Value, Public: record.Public})
	if err != nil {
		return "", fmt.Sprintf("Error: %v", err)
	}
	return data, ""
}

func (s *Server) handleSetUserData(payload string) (string, string) {
	if !s.store.Identity().SignedIn {
		return "", msgNotSignedIn
	}

	var req protocol.SetRequest
	if err := protocol.DecodePayload(payload, &req); err != nil {
		return "", fmt.Sprintf("Error: %v", err)
	}

	record := store.Record{Key: req.Key, Value: req.Value, Public: req.Public}
	if err := s.store.Set(record); err != nil {
		return "", fmt.Sprintf("Error: %v", err)
	}

	data, err := protocol.EncodePayload(protocol.Data{Key: record.Key, Value: record.Value, Public: record.Public})
	if err != nil {
		return "", fmt.Sprintf("Error: %v", err)
	}
	return data, ""
}

func (s *Server) handleListUserData() (string, string) {
	if !s.store.Identity().SignedIn {
		return "", msgNotSignedIn
	}

	records := s.store.Records()
	list := protocol.DataList{Data: make([]protocol.Data, 0, len(records))}
	for _, record := range records {
		list.Data = append(list.Data, protocol.Data{Key: record.Key, Value: record.Value, Public: record.Public})
	}

	data, err := protocol.EncodePayload(list)
	if err != nil {
		return "", fmt.Sprintf("Error: %v", err)
	}
	return data, ""
}

func (s *Server) handleDeleteUserData(payload string) (string, string) {
	if !s.store.Identity().SignedIn {
		return "", msgNotSignedIn
	}

	var req protocol.KeyRequest
	if err := protocol.DecodePayload(payload, &req); err != nil {
		return "", fmt.Sprintf("Error: %v", err)
	}

	if err := s.store.Delete(req.Key); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) || errors.Is(err, store.ErrInvalidKey) {
			return "", msgKeyNotFound
		}
		return "", fmt.Sprintf("Error: %v", err)
	}

	data, err := protocol.EncodePayload(protocol.DeleteResult{Success: true})
	if err != nil {
		return "", fmt.Sprintf("Error: %v", err)
	}
	return data, ""
}
