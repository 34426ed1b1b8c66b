// Package models defines the documents stored by the Healthy Living Support API
// and the schemas that turn inbound JSON bodies into them.
//
// # Documents
//
// Each model maps onto one collection of the document database:
//   - User: a community member ("user" collection)
//   - Group: a support group with a topic ("group" collection)
//   - Message: a post inside a group ("message" collection)
//
// Identifiers are ObjectIDs assigned by the storage layer. They never appear in
// inbound bodies and are rendered as 24-character lowercase hex strings in
// responses.
//
// # Schemas
//
// DecodeUser, DecodeGroup and DecodeMessage decode a JSON object field by
// field, apply defaults and the few allowed coercions, then run the validator
// rules declared on the struct tags. Every problem found is collected into a
// single *ValidationError so callers can report all offending fields at once.
//
// # Relationships
//
// A Message references its Group by the group's identifier string
// (Message.GroupID). The reference is checked when the message is created and
// never again: deleting groups is out of scope and nothing cascades.
package models
