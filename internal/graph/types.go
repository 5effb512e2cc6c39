package graph

import (
	"time"

	"github.com/graphql-go/graphql"
	"gopkg.in/guregu/null.v3"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
)

// fieldOf resolves a field from a source of type *T. Embedded structs and
// nullable scalars need this since the default resolver only sees direct fields.
func fieldOf[T any](typ graphql.Output, fn func(*T) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			src, ok := p.Source.(*T)
			if !ok || src == nil {
				return nil, nil
			}
			return fn(src), nil
		},
	}
}

func nullString(s null.String) interface{} {
	if !s.Valid {
		return nil
	}
	return s.String
}

func nonNull(t graphql.Type) *graphql.NonNull {
	return graphql.NewNonNull(t)
}

var syncStateEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "SyncState",
	Values: graphql.EnumValueConfigMap{
		"UNSYNCED": &graphql.EnumValueConfig{Value: model.SyncStateUnsynced},
		"SYNCED":   &graphql.EnumValueConfig{Value: model.SyncStateSynced},
	},
})

var syncOutcomeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "SyncOutcome",
	Values: graphql.EnumValueConfigMap{
		string(types.SyncOutcomeCreatedLocal):  &graphql.EnumValueConfig{Value: types.SyncOutcomeCreatedLocal},
		string(types.SyncOutcomeCreatedSynced): &graphql.EnumValueConfig{Value: types.SyncOutcomeCreatedSynced},
		string(types.SyncOutcomePromoted):      &graphql.EnumValueConfig{Value: types.SyncOutcomePromoted},
		string(types.SyncOutcomeAlreadySynced): &graphql.EnumValueConfig{Value: types.SyncOutcomeAlreadySynced},
	},
})

var sourceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Source",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: nonNull(graphql.ID)},
		"name": &graphql.Field{Type: nonNull(graphql.String)},
		"createdAt": fieldOf(graphql.DateTime, func(s *model.Source) interface{} {
			return s.CreatedAt
		}),
	},
})

var scheduleType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Schedule",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: nonNull(graphql.ID)},
		"name": &graphql.Field{Type: nonNull(graphql.String)},
		"document": fieldOf(graphql.String, func(s *model.Schedule) interface{} {
			if len(s.Document) == 0 {
				return nil
			}
			return string(s.Document)
		}),
	},
})

var patientType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Patient",
	Fields: graphql.Fields{
		"id":  &graphql.Field{Type: nonNull(graphql.ID)},
		"pid": &graphql.Field{Type: nonNull(graphql.String)},
		"externalId": fieldOf(graphql.String, func(p *model.Patient) interface{} {
			return nullString(p.ExternalID)
		}),
		"source":       &graphql.Field{Type: sourceType},
		"drawSchedule": &graphql.Field{Type: scheduleType},
		"synced":       &graphql.Field{Type: nonNull(graphql.Boolean)},
		"syncDate":     &graphql.Field{Type: graphql.DateTime},
		"syncState": fieldOf(nonNull(syncStateEnum), func(p *model.Patient) interface{} {
			return p.SyncState()
		}),
		"createdAt": fieldOf(graphql.DateTime, func(p *model.Patient) interface{} {
			return p.CreatedAt
		}),
		"modifiedAt": fieldOf(graphql.DateTime, func(p *model.Patient) interface{} {
			return p.ModifiedAt
		}),
	},
})

var eventType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Event",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: nonNull(graphql.ID)},
		"event": &graphql.Field{Type: nonNull(graphql.String)},
		"order": &graphql.Field{Type: nonNull(graphql.Int)},
	},
})

var visitType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Visit",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: nonNull(graphql.ID)},
		"label": &graphql.Field{Type: nonNull(graphql.String)},
	},
})

var specimenTypeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SpecimenType",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: nonNull(graphql.ID)},
		"type": &graphql.Field{Type: nonNull(graphql.String)},
	},
})

var specimenType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Specimen",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: nonNull(graphql.ID)},
		"patient":     &graphql.Field{Type: patientType},
		"type":        &graphql.Field{Type: specimenTypeType},
		"collectedAt": &graphql.Field{Type: graphql.DateTime},
		"volume":      &graphql.Field{Type: graphql.Float},
		"notes": fieldOf(graphql.String, func(s *model.Specimen) interface{} {
			return nullString(s.Notes)
		}),
		"display": fieldOf(graphql.String, func(s *model.Specimen) interface{} {
			return s.String()
		}),
	},
})

var aliquotTypeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AliquotType",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: nonNull(graphql.ID)},
		"type":  &graphql.Field{Type: nonNull(graphql.String)},
		"units": &graphql.Field{Type: graphql.String},
	},
})

var aliquotType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Aliquot",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: nonNull(graphql.ID)},
		"specimen":    &graphql.Field{Type: specimenType},
		"type":        &graphql.Field{Type: aliquotTypeType},
		"visit":       &graphql.Field{Type: visitType},
		"collectedAt": &graphql.Field{Type: graphql.DateTime},
		"volume":      &graphql.Field{Type: graphql.Float},
		"notes": fieldOf(graphql.String, func(a *model.Aliquot) interface{} {
			return nullString(a.Notes)
		}),
		"display": fieldOf(graphql.String, func(a *model.Aliquot) interface{} {
			return a.String()
		}),
	},
})

func storageLocationFields() graphql.Fields {
	loc := func(fn func(*model.StorageLocation) interface{}) func(*types.StorageNode) interface{} {
		return func(n *types.StorageNode) interface{} {
			return fn(n.StorageLocation)
		}
	}
	return graphql.Fields{
		"id": fieldOf(nonNull(graphql.ID), loc(func(s *model.StorageLocation) interface{} {
			return s.StorageLocationID
		})),
		"name": fieldOf(nonNull(graphql.String), loc(func(s *model.StorageLocation) interface{} {
			return s.Name
		})),
		"description": fieldOf(graphql.String, loc(func(s *model.StorageLocation) interface{} {
			return s.Description
		})),
		"containerId": fieldOf(graphql.Int, loc(func(s *model.StorageLocation) interface{} {
			return s.ContainerID
		})),
		"icon": fieldOf(graphql.String, loc(func(s *model.StorageLocation) interface{} {
			return nullString(s.Icon)
		})),
	}
}

var storageLocationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "StorageLocation",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: nonNull(graphql.ID)},
		"name":        &graphql.Field{Type: nonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"containerId": &graphql.Field{Type: graphql.Int},
		"icon": fieldOf(graphql.String, func(s *model.StorageLocation) interface{} {
			return nullString(s.Icon)
		}),
		"isTopLevel": fieldOf(nonNull(graphql.Boolean), func(s *model.StorageLocation) interface{} {
			return s.IsTopLevel()
		}),
	},
})

var boxTypeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BoxType",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: nonNull(graphql.ID)},
		"name":        &graphql.Field{Type: nonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"length":      &graphql.Field{Type: nonNull(graphql.Int)},
		"height":      &graphql.Field{Type: nonNull(graphql.Int)},
		"lengthLabel": fieldOf(graphql.String, func(t *model.BoxType) interface{} {
			return string(t.LengthLabel)
		}),
		"heightLabel": fieldOf(graphql.String, func(t *model.BoxType) interface{} {
			return string(t.HeightLabel)
		}),
		"lengthInverted": &graphql.Field{Type: graphql.Boolean},
		"heightInverted": &graphql.Field{Type: graphql.Boolean},
	},
})

var boxType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Box",
	Fields: graphql.Fields{
		"id":                &graphql.Field{Type: nonNull(graphql.ID)},
		"name":              &graphql.Field{Type: nonNull(graphql.String)},
		"description":       &graphql.Field{Type: graphql.String},
		"boxType":           &graphql.Field{Type: boxTypeType},
		"storageLocationId": &graphql.Field{Type: graphql.Int},
		"shipmentId":        &graphql.Field{Type: graphql.Int},
	},
})

var storageNodeType = graphql.NewObject(graphql.ObjectConfig{
	Name:   "StorageNode",
	Fields: storageNodeFields(),
})

func storageNodeFields() graphql.Fields {
	fields := storageLocationFields()
	fields["isTopLevel"] = &graphql.Field{Type: nonNull(graphql.Boolean)}
	fields["boxes"] = &graphql.Field{Type: graphql.NewList(boxType)}
	return fields
}

// children refers back to StorageNode, so it can only be added once the type exists.
func init() {
	storageNodeType.AddFieldConfig("children", &graphql.Field{Type: graphql.NewList(storageNodeType)})
}

var boxSlotType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BoxSlot",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: nonNull(graphql.ID)},
		"boxId":   &graphql.Field{Type: nonNull(graphql.Int)},
		"row":     &graphql.Field{Type: nonNull(graphql.Int)},
		"column":  &graphql.Field{Type: nonNull(graphql.Int)},
		"content": &graphql.Field{Type: aliquotType},
	},
})

var gridCellType = graphql.NewObject(graphql.ObjectConfig{
	Name: "GridCell",
	Fields: graphql.Fields{
		"index":     &graphql.Field{Type: nonNull(graphql.Int)},
		"label":     &graphql.Field{Type: nonNull(graphql.String)},
		"aliquotId": &graphql.Field{Type: graphql.Int},
		"content":   &graphql.Field{Type: graphql.String},
	},
})

var gridRowType = graphql.NewObject(graphql.ObjectConfig{
	Name: "GridRow",
	Fields: graphql.Fields{
		"index":   &graphql.Field{Type: nonNull(graphql.Int)},
		"label":   &graphql.Field{Type: nonNull(graphql.String)},
		"columns": &graphql.Field{Type: graphql.NewList(gridCellType)},
	},
})

// jsonScalar passes maps through to the response untouched. It is output only.
var jsonScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "JSON",
	Description: "An arbitrary JSON value.",
	Serialize: func(value interface{}) interface{} {
		return value
	},
})

var boxGridType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BoxGrid",
	Fields: graphql.Fields{
		"mapping": fieldOf(jsonScalar, func(g *types.BoxGrid) interface{} {
			return g.Mapping()
		}),
		"boxId":       &graphql.Field{Type: nonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"length":      &graphql.Field{Type: graphql.Int},
		"height":      &graphql.Field{Type: graphql.Int},
		"rows":        &graphql.Field{Type: graphql.NewList(gridRowType)},
	},
})

var carrierType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Carrier",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: nonNull(graphql.ID)},
		"name": &graphql.Field{Type: nonNull(graphql.String)},
	},
})

var destinationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Destination",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: nonNull(graphql.ID)},
		"name": &graphql.Field{Type: nonNull(graphql.String)},
	},
})

var shipmentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Shipment",
	Fields: graphql.Fields{
		"id":             &graphql.Field{Type: nonNull(graphql.ID)},
		"shipmentNumber": &graphql.Field{Type: nonNull(graphql.String)},
		"carrier":        &graphql.Field{Type: carrierType},
		"destination":    &graphql.Field{Type: destinationType},
		"sentDate":       &graphql.Field{Type: graphql.DateTime},
		"receivedDate":   &graphql.Field{Type: graphql.DateTime},
		"notes": fieldOf(graphql.String, func(s *model.Shipment) interface{} {
			return nullString(s.Notes)
		}),
	},
})

var manifestEntryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ManifestEntry",
	Fields: graphql.Fields{
		"boxId":    &graphql.Field{Type: nonNull(graphql.Int)},
		"boxName":  &graphql.Field{Type: graphql.String},
		"aliquots": &graphql.Field{Type: nonNull(graphql.NewList(aliquotType))},
	},
})

var manifestType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Manifest",
	Fields: graphql.Fields{
		"shipment": &graphql.Field{Type: shipmentType},
		"entries":  &graphql.Field{Type: nonNull(graphql.NewList(manifestEntryType))},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: nonNull(graphql.ID)},
		"username":   &graphql.Field{Type: nonNull(graphql.String)},
		"email":      &graphql.Field{Type: graphql.String},
		"isStaff":    &graphql.Field{Type: nonNull(graphql.Boolean)},
		"isActive":   &graphql.Field{Type: nonNull(graphql.Boolean)},
		"dateJoined": &graphql.Field{Type: graphql.DateTime},
		"lastLogin":  &graphql.Field{Type: graphql.DateTime},
	},
})

var tokenPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TokenPayload",
	Fields: graphql.Fields{
		"username": &graphql.Field{Type: nonNull(graphql.String)},
		"exp":      &graphql.Field{Type: graphql.DateTime},
		"origIat":  &graphql.Field{Type: graphql.DateTime},
		"jti":      &graphql.Field{Type: graphql.String},
	},
})

type tokenResult struct {
	Token            string              `json:"token"`
	Payload          *types.TokenPayload `json:"payload"`
	RefreshExpiresIn time.Time           `json:"refreshExpiresIn"`
	User             *model.User         `json:"user"`
}

var tokenResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TokenResult",
	Fields: graphql.Fields{
		"token":            &graphql.Field{Type: nonNull(graphql.String)},
		"payload":          &graphql.Field{Type: tokenPayloadType},
		"refreshExpiresIn": &graphql.Field{Type: graphql.DateTime},
		"user":             &graphql.Field{Type: userType},
	},
})

var verifyResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "VerifyResult",
	Fields: graphql.Fields{
		"payload": &graphql.Field{Type: tokenPayloadType},
	},
})

var deleteCookieResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DeleteCookieResult",
	Fields: graphql.Fields{
		"deleted": &graphql.Field{Type: nonNull(graphql.Boolean)},
	},
})

var patientSyncResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreatePatientResult",
	Fields: graphql.Fields{
		"patient": &graphql.Field{Type: patientType},
		"outcome": &graphql.Field{Type: nonNull(syncOutcomeEnum)},
		"created": &graphql.Field{Type: nonNull(graphql.Boolean)},
	},
})

var storageDeleteResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "StorageDeleteResult",
	Fields: graphql.Fields{
		"id":                  &graphql.Field{Type: nonNull(graphql.ID)},
		"reparentedLocations": &graphql.Field{Type: nonNull(graphql.Int)},
		"reparentedBoxes":     &graphql.Field{Type: nonNull(graphql.Int)},
	},
})
