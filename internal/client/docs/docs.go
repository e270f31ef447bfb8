// Package docs converts between wire documents (google.protobuf.Struct) and
// client models. Decoding never fails: missing or mistyped fields fall back to
// their defaults, and phrase entries without usable text are dropped.
package docs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/senseandsay/internal/client/models"
	"github.com/dmitrijs2005/senseandsay/internal/rpc"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

func stringField(f map[string]*structpb.Value, name string, def string) string {
	if v, ok := f[name].GetKind().(*structpb.Value_StringValue); ok {
		return v.StringValue
	}
	return def
}

func intField(f map[string]*structpb.Value, name string, def int) int {
	if v, ok := f[name].GetKind().(*structpb.Value_NumberValue); ok {
		return int(v.NumberValue)
	}
	return def
}

func boolField(f map[string]*structpb.Value, name string, def bool) bool {
	if v, ok := f[name].GetKind().(*structpb.Value_BoolValue); ok {
		return v.BoolValue
	}
	return def
}

// ProfileFromStruct decodes a profile document on top of models.DefaultProfile.
func ProfileFromStruct(s *structpb.Struct) models.Profile {
	p := models.DefaultProfile()
	f := s.GetFields()

	p.Name = stringField(f, rpc.FieldName, p.Name)
	p.Age = stringField(f, rpc.FieldAge, p.Age)
	p.PreferredMode = stringField(f, rpc.FieldPreferredMode, p.PreferredMode)
	p.FavoriteSound = stringField(f, rpc.FieldFavoriteSound, p.FavoriteSound)
	p.ColorSensitive = boolField(f, rpc.FieldColorSensitive, p.ColorSensitive)
	p.DailyBreaks = intField(f, rpc.FieldDailyBreaks, p.DailyBreaks)
	p.DailyComms = intField(f, rpc.FieldDailyComms, p.DailyComms)
	p.EmergencyContact = stringField(f, rpc.FieldEmergencyContact, p.EmergencyContact)

	if goals, ok := f[rpc.FieldGoals].GetKind().(*structpb.Value_ListValue); ok {
		for _, v := range goals.ListValue.GetValues() {
			if g, ok := v.GetKind().(*structpb.Value_StringValue); ok {
				p.Goals = append(p.Goals, g.StringValue)
			}
		}
	}

	return p
}

func ProfileToStruct(p models.Profile) *structpb.Struct {
	goals := make([]*structpb.Value, 0, len(p.Goals))
	for _, g := range p.Goals {
		goals = append(goals, structpb.NewStringValue(g))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		rpc.FieldName:             structpb.NewStringValue(p.Name),
		rpc.FieldAge:              structpb.NewStringValue(p.Age),
		rpc.FieldPreferredMode:    structpb.NewStringValue(p.PreferredMode),
		rpc.FieldFavoriteSound:    structpb.NewStringValue(p.FavoriteSound),
		rpc.FieldColorSensitive:   structpb.NewBoolValue(p.ColorSensitive),
		rpc.FieldGoals:            structpb.NewListValue(&structpb.ListValue{Values: goals}),
		rpc.FieldDailyBreaks:      structpb.NewNumberValue(float64(p.DailyBreaks)),
		rpc.FieldDailyComms:       structpb.NewNumberValue(float64(p.DailyComms)),
		rpc.FieldEmergencyContact: structpb.NewStringValue(p.EmergencyContact),
	}}
}

// PhraseFromStruct decodes one phrase document. ok is false when the text is
// missing or blank. A missing id is generated; a negative color becomes 0.
// Colors past the palette are kept and wrap when drawn.
func PhraseFromStruct(s *structpb.Struct) (p models.Phrase, ok bool) {
	f := s.GetFields()

	p.Text = stringField(f, rpc.FieldText, "")
	if strings.TrimSpace(p.Text) == "" {
		return models.Phrase{}, false
	}

	p.ID = stringField(f, rpc.FieldID, "")
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	p.ColorIndex = intField(f, rpc.FieldColorIndex, 0)
	if p.ColorIndex < 0 {
		p.ColorIndex = 0
	}

	p.IconName = stringField(f, rpc.FieldIconName, "")
	return p, true
}

func PhraseToStruct(p models.Phrase) *structpb.Struct {
	fields := map[string]*structpb.Value{
		rpc.FieldID:         structpb.NewStringValue(p.ID),
		rpc.FieldText:       structpb.NewStringValue(p.Text),
		rpc.FieldColorIndex: structpb.NewNumberValue(float64(p.ColorIndex)),
	}
	if p.IconName != "" {
		fields[rpc.FieldIconName] = structpb.NewStringValue(p.IconName)
	}
	return &structpb.Struct{Fields: fields}
}

// PhrasesFromList decodes a list of phrase documents in order, skipping
// entries that are not objects or have no text.
func PhrasesFromList(l *structpb.ListValue) []models.Phrase {
	out := make([]models.Phrase, 0, len(l.GetValues()))
	for _, v := range l.GetValues() {
		s, isStruct := v.GetKind().(*structpb.Value_StructValue)
		if !isStruct {
			continue
		}
		if p, ok := PhraseFromStruct(s.StructValue); ok {
			out = append(out, p)
		}
	}
	return out
}

// DecodeLocal reads the Local Store blob, a JSON array of phrase objects.
// generatedIDs reports that some kept record had no id and was given one, so
// the caller should write the list back.
func DecodeLocal(data []byte) (phrases []models.Phrase, generatedIDs bool, err error) {
	l := &structpb.ListValue{}
	if err := protojson.Unmarshal(data, l); err != nil {
		return nil, false, fmt.Errorf("decode local phrases: %w", err)
	}

	phrases = make([]models.Phrase, 0, len(l.GetValues()))
	for _, v := range l.GetValues() {
		s, isStruct := v.GetKind().(*structpb.Value_StructValue)
		if !isStruct {
			continue
		}
		p, ok := PhraseFromStruct(s.StructValue)
		if !ok {
			continue
		}
		if stringField(s.StructValue.GetFields(), rpc.FieldID, "") == "" {
			generatedIDs = true
		}
		phrases = append(phrases, p)
	}
	return phrases, generatedIDs, nil
}

// EncodeLocal writes phrases in the Local Store blob format.
func EncodeLocal(phrases []models.Phrase) ([]byte, error) {
	if phrases == nil {
		phrases = []models.Phrase{}
	}
	return json.Marshal(phrases)
}
