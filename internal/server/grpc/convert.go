package grpc

import (
	"github.com/dmitrijs2005/senseandsay/internal/rpc"
	"github.com/dmitrijs2005/senseandsay/internal/server/models"
	"google.golang.org/protobuf/types/known/structpb"
)

func profileToStruct(p *models.Profile) *structpb.Struct {
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

// profileFromStruct reads the fields it recognizes. Missing or mistyped
// fields are left at their zero value; the client always writes the whole
// document.
func profileFromStruct(userID string, s *structpb.Struct) *models.Profile {
	f := s.GetFields()
	p := &models.Profile{
		UserID:           userID,
		Name:             f[rpc.FieldName].GetStringValue(),
		Age:              f[rpc.FieldAge].GetStringValue(),
		PreferredMode:    f[rpc.FieldPreferredMode].GetStringValue(),
		FavoriteSound:    f[rpc.FieldFavoriteSound].GetStringValue(),
		ColorSensitive:   f[rpc.FieldColorSensitive].GetBoolValue(),
		DailyBreaks:      int(f[rpc.FieldDailyBreaks].GetNumberValue()),
		DailyComms:       int(f[rpc.FieldDailyComms].GetNumberValue()),
		EmergencyContact: f[rpc.FieldEmergencyContact].GetStringValue(),
	}
	for _, v := range f[rpc.FieldGoals].GetListValue().GetValues() {
		if g, ok := v.GetKind().(*structpb.Value_StringValue); ok {
			p.Goals = append(p.Goals, g.StringValue)
		}
	}
	return p
}

func phraseToStruct(p *models.Phrase) *structpb.Struct {
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

func phraseFromStruct(userID string, s *structpb.Struct) *models.Phrase {
	f := s.GetFields()
	return &models.Phrase{
		UserID:     userID,
		ID:         f[rpc.FieldID].GetStringValue(),
		Text:       f[rpc.FieldText].GetStringValue(),
		ColorIndex: int(f[rpc.FieldColorIndex].GetNumberValue()),
		IconName:   f[rpc.FieldIconName].GetStringValue(),
	}
}

func tokenPairToStruct(userID, access, refresh string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		rpc.FieldUserID:       structpb.NewStringValue(userID),
		rpc.FieldAccessToken:  structpb.NewStringValue(access),
		rpc.FieldRefreshToken: structpb.NewStringValue(refresh),
	}}
}
