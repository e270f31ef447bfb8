// Package common contains shared constants and sentinel errors used across
// Sense & Say components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// LocalPhrasesKey is the metadata key under which the device keeps its
// phrase list.
const LocalPhrasesKey = "local_phrases_v1"
