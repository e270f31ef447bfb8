// Package rpc is the wire contract between the Sense & Say client and server:
// the gRPC service description, the client stub, and the document field
// names. Messages are protobuf well-known types; documents travel as
// google.protobuf.Struct keyed by the names below.
package rpc

// Profile document fields.
const (
	FieldName             = "name"
	FieldAge              = "age"
	FieldPreferredMode    = "preferredMode"
	FieldFavoriteSound    = "favoriteSound"
	FieldColorSensitive   = "colorSensitive"
	FieldGoals            = "goals"
	FieldDailyBreaks      = "dailyBreaks"
	FieldDailyComms       = "dailyComms"
	FieldEmergencyContact = "emergencyContact"
)

// Phrase document fields.
const (
	FieldID         = "id"
	FieldText       = "text"
	FieldColorIndex = "colorIndex"
	FieldIconName   = "iconName"
)

// Credential and token fields.
const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldUserID       = "userId"
	FieldAccessToken  = "accessToken"
	FieldRefreshToken = "refreshToken"
)

// PingOK is the Ping reply of a healthy server.
const PingOK = "OK"
