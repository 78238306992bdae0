/*
Package store implements the durable record store backing the mock
GameServices counterpart.

State is a single JSON document on disk holding the mock identity fields and
the full list of key/value records. The whole document is rewritten on every
mutation; expected key counts are small, so simplicity wins over delta
persistence. Record enumeration is sorted by key, which keeps iteration
stable for a given snapshot without promising insertion order.
*/
package store
