package graph

import (
	"context"

	"github.com/graphql-go/graphql"
)

func (r Resolver) queries() graphql.Fields {
	idArgs := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: nonNull(graphql.ID)},
	}

	return graphql.Fields{
		"allPatients": &graphql.Field{
			Type: graphql.NewList(patientType),
			Args: graphql.FieldConfigArgument{
				"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
			},
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Patient.GetPatients(ctx, intArg(p, "offset"), intArg(p, "limit"))
			}),
		},
		"patientCount": &graphql.Field{
			Type: nonNull(graphql.Int),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Patient.CountPatients(ctx)
			}),
		},
		"patient": &graphql.Field{
			Type: patientType,
			Args: graphql.FieldConfigArgument{
				"id":         &graphql.ArgumentConfig{Type: graphql.ID},
				"pid":        &graphql.ArgumentConfig{Type: graphql.String},
				"externalId": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, hasID, err := idArg(p, "id")
				if err != nil {
					return nil, err
				}
				if hasID {
					return r.Patient.GetPatient(ctx, &id, nil, nil)
				}
				var pidp, extp *string
				if pid, ok := stringArg(p, "pid"); ok {
					pidp = &pid
				}
				if ext, ok := stringArg(p, "externalId"); ok {
					extp = &ext
				}
				return r.Patient.GetPatient(ctx, nil, pidp, extp)
			}),
		},
		"allSources": &graphql.Field{
			Type: graphql.NewList(sourceType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Catalog.GetSources(ctx)
			}),
		},
		"allSpecimens": &graphql.Field{
			Type: graphql.NewList(specimenType),
			Args: graphql.FieldConfigArgument{
				"patientId": &graphql.ArgumentConfig{Type: graphql.ID},
			},
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, ok, err := idArg(p, "patientId")
				if err != nil {
					return nil, err
				}
				if !ok {
					return r.Specimen.GetSpecimens(ctx, nil)
				}
				return r.Specimen.GetSpecimens(ctx, &id)
			}),
		},
		"specimen": &graphql.Field{
			Type: specimenType,
			Args: idArgs,
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, err := requiredID(p, "id")
				if err != nil {
					return nil, err
				}
				return r.Specimen.GetSpecimenByID(ctx, id)
			}),
		},
		"allAliquots": &graphql.Field{
			Type: graphql.NewList(aliquotType),
			Args: graphql.FieldConfigArgument{
				"specimenId": &graphql.ArgumentConfig{Type: graphql.ID},
			},
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, ok, err := idArg(p, "specimenId")
				if err != nil {
					return nil, err
				}
				if !ok {
					return r.Aliquot.GetAliquots(ctx, nil)
				}
				return r.Aliquot.GetAliquots(ctx, &id)
			}),
		},
		"aliquot": &graphql.Field{
			Type: aliquotType,
			Args: idArgs,
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, err := requiredID(p, "id")
				if err != nil {
					return nil, err
				}
				return r.Aliquot.GetAliquotByID(ctx, id)
			}),
		},
		"allSpecimenTypes": &graphql.Field{
			Type: graphql.NewList(specimenTypeType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Catalog.GetSpecimenTypes(ctx)
			}),
		},
		"allAliquotTypes": &graphql.Field{
			Type: graphql.NewList(aliquotTypeType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Catalog.GetAliquotTypes(ctx)
			}),
		},
		"allVisits": &graphql.Field{
			Type: graphql.NewList(visitType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Catalog.GetVisits(ctx)
			}),
		},
		"allEvents": &graphql.Field{
			Type: graphql.NewList(eventType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Catalog.GetEvents(ctx)
			}),
		},
		"allSchedules": &graphql.Field{
			Type: graphql.NewList(scheduleType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Catalog.GetSchedules(ctx)
			}),
		},
		"allStorage": &graphql.Field{
			Type: graphql.NewList(storageLocationType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Storage.GetStorageLocations(ctx)
			}),
		},
		"storage": &graphql.Field{
			Type: storageLocationType,
			Args: idArgs,
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, err := requiredID(p, "id")
				if err != nil {
					return nil, err
				}
				return r.Storage.GetStorageLocationByID(ctx, id)
			}),
		},
		"storageUi": &graphql.Field{
			Type: graphql.NewList(storageNodeType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Storage.Tree(ctx)
			}),
		},
		"allBoxTypes": &graphql.Field{
			Type: graphql.NewList(boxTypeType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Shipment.GetBoxTypes(ctx)
			}),
		},
		"allBoxes": &graphql.Field{
			Type: graphql.NewList(boxType),
			Args: graphql.FieldConfigArgument{
				"storageId": &graphql.ArgumentConfig{Type: graphql.ID},
			},
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, ok, err := idArg(p, "storageId")
				if err != nil {
					return nil, err
				}
				if !ok {
					return r.Shipment.GetBoxes(ctx, nil)
				}
				return r.Shipment.GetBoxes(ctx, &id)
			}),
		},
		"box": &graphql.Field{
			Type: boxType,
			Args: idArgs,
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, err := requiredID(p, "id")
				if err != nil {
					return nil, err
				}
				return r.Shipment.GetBoxByID(ctx, id)
			}),
		},
		"boxGrid": &graphql.Field{
			Type: boxGridType,
			Args: graphql.FieldConfigArgument{
				"boxId": &graphql.ArgumentConfig{Type: nonNull(graphql.ID)},
			},
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, err := requiredID(p, "boxId")
				if err != nil {
					return nil, err
				}
				return r.Grid.BoxGrid(ctx, id)
			}),
		},
		"allShipments": &graphql.Field{
			Type: graphql.NewList(shipmentType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Shipment.GetShipments(ctx)
			}),
		},
		"shipment": &graphql.Field{
			Type: shipmentType,
			Args: idArgs,
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, err := requiredID(p, "id")
				if err != nil {
					return nil, err
				}
				return r.Shipment.GetShipmentByID(ctx, id)
			}),
		},
		"manifest": &graphql.Field{
			Type: manifestType,
			Args: graphql.FieldConfigArgument{
				"shipmentId": &graphql.ArgumentConfig{Type: nonNull(graphql.ID)},
			},
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, err := requiredID(p, "shipmentId")
				if err != nil {
					return nil, err
				}
				return r.Manifest.BuildManifest(ctx, id)
			}),
		},
		"allCarriers": &graphql.Field{
			Type: graphql.NewList(carrierType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Catalog.GetCarriers(ctx)
			}),
		},
		"allDestinations": &graphql.Field{
			Type: graphql.NewList(destinationType),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return r.Catalog.GetDestinations(ctx)
			}),
		},
		"me": &graphql.Field{
			Type: userType,
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				return requireViewer(ctx)
			}),
		},
	}
}
