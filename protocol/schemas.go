package protocol

// SignedIn is the success payload of IS_USER_SIGNED_IN.
type SignedIn struct {
	SignedIn bool `json:"signedIn"`
}

// User is the success payload of GET_USER_DETAILS.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Data is a stored key/value record with its visibility flag. It is the
// success payload of GET_USER_DATA and SET_USER_DATA.
type Data struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Public bool   `json:"isPublic"`
}

// DataList is the success payload of LIST_USER_DATA.
type DataList struct {
	Data []Data `json:"data"`
}

// KeyRequest is the request payload of GET_USER_DATA and DELETE_USER_DATA.
type KeyRequest struct {
	Key string `json:"key"`
}

// SetRequest is the request payload of SET_USER_DATA.
type SetRequest struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Public bool   `json:"isPublic"`
}

// DeleteResult is the success payload of DELETE_USER_DATA.
type DeleteResult struct {
	Success bool `json:"success"`
}
