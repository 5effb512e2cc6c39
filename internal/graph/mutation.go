package graph

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/util/rekuest"
)

func args(pairs ...interface{}) graphql.FieldConfigArgument {
	out := graphql.FieldConfigArgument{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i].(string)] = &graphql.ArgumentConfig{Type: pairs[i+1].(graphql.Input)}
	}
	return out
}

func (r Resolver) mutations() graphql.Fields {
	return graphql.Fields{
		"createPatient": &graphql.Field{
			Type: patientSyncResultType,
			Args: args(
				"pid", nonNull(graphql.String),
				"externalId", graphql.String,
				"source", graphql.String,
				"drawScheduleId", graphql.Int,
				"synced", graphql.Boolean,
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				var req types.CreatePatientRequest
				if err := decodeArgs(ctx, p.Args, &req); err != nil {
					return nil, err
				}
				return r.PatientSync.Create(ctx, &req)
			}),
		},
		"editPatientPid": &graphql.Field{
			Type: patientType,
			Args: args(
				"id", nonNull(graphql.ID),
				"pid", nonNull(graphql.String),
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, err := requiredID(p, "id")
				if err != nil {
					return nil, err
				}
				pid, _ := stringArg(p, "pid")
				req := types.EditPIDRequest{ID: id, PID: pid}
				if err := rekuest.ValidCtx(ctx, &req); err != nil {
					return nil, err
				}
				return r.Patient.EditPID(ctx, req.ID, req.PID)
			}),
		},
		"createSpecimen": &graphql.Field{
			Type: specimenType,
			Args: args(
				"patientId", nonNull(graphql.Int),
				"typeId", nonNull(graphql.Int),
				"collectedAt", nonNull(graphql.DateTime),
				"volume", graphql.Float,
				"notes", graphql.String,
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				var req types.CreateSpecimenRequest
				if err := decodeArgs(ctx, p.Args, &req); err != nil {
					return nil, err
				}
				return r.Specimen.CreateSpecimen(ctx, &req)
			}),
		},
		"createAliquot": &graphql.Field{
			Type: graphql.NewList(aliquotType),
			Args: args(
				"specimenId", nonNull(graphql.Int),
				"typeId", nonNull(graphql.Int),
				"visitId", graphql.Int,
				"collectedAt", nonNull(graphql.DateTime),
				"volume", graphql.Float,
				"notes", graphql.String,
				"times", graphql.Int,
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				var req types.CreateAliquotRequest
				if err := decodeArgs(ctx, p.Args, &req); err != nil {
					return nil, err
				}
				return r.Aliquot.CreateAliquots(ctx, &req)
			}),
		},
		"createEvent": &graphql.Field{
			Type: eventType,
			Args: args(
				"event", nonNull(graphql.String),
				"order", nonNull(graphql.Int),
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				var req types.CreateEventRequest
				if err := decodeArgs(ctx, p.Args, &req); err != nil {
					return nil, err
				}
				return r.Catalog.CreateEvent(ctx, req.Name, req.Order)
			}),
		},
		"createStorage": &graphql.Field{
			Type: storageLocationType,
			Args: args(
				"name", nonNull(graphql.String),
				"description", graphql.String,
				"containerId", graphql.Int,
				"icon", graphql.String,
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				var req types.CreateStorageRequest
				if err := decodeArgs(ctx, p.Args, &req); err != nil {
					return nil, err
				}
				return r.Storage.CreateStorageLocation(ctx, &req)
			}),
		},
		"deleteStorage": &graphql.Field{
			Type: storageDeleteResultType,
			Args: args("id", nonNull(graphql.ID)),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				id, err := requiredID(p, "id")
				if err != nil {
					return nil, err
				}
				return r.Storage.DeleteStorageLocation(ctx, id)
			}),
		},
		"createBoxType": &graphql.Field{
			Type: boxTypeType,
			Args: args(
				"name", nonNull(graphql.String),
				"description", graphql.String,
				"length", nonNull(graphql.Int),
				"height", nonNull(graphql.Int),
				"lengthLabel", graphql.String,
				"heightLabel", graphql.String,
				"lengthInverted", graphql.Boolean,
				"heightInverted", graphql.Boolean,
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				var req types.CreateBoxTypeRequest
				if err := decodeArgs(ctx, p.Args, &req); err != nil {
					return nil, err
				}
				return r.Shipment.CreateBoxType(ctx, &req)
			}),
		},
		"createBox": &graphql.Field{
			Type: boxType,
			Args: args(
				"name", nonNull(graphql.String),
				"description", graphql.String,
				"boxTypeId", nonNull(graphql.Int),
				"storageLocationId", graphql.Int,
				"shipmentId", graphql.Int,
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				var req types.CreateBoxRequest
				if err := decodeArgs(ctx, p.Args, &req); err != nil {
					return nil, err
				}
				return r.Shipment.CreateBox(ctx, &req)
			}),
		},
		"assignShipment": &graphql.Field{
			Type: boxType,
			Args: args(
				"boxId", nonNull(graphql.Int),
				"shipmentId", graphql.Int,
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				var req types.AssignShipmentRequest
				if err := decodeArgs(ctx, p.Args, &req); err != nil {
					return nil, err
				}
				return r.Shipment.AssignShipment(ctx, req.BoxID, req.ShipmentID)
			}),
		},
		"placeAliquot": &graphql.Field{
			Type: boxSlotType,
			Args: args(
				"boxId", nonNull(graphql.Int),
				"row", nonNull(graphql.String),
				"column", nonNull(graphql.String),
				"aliquotId", nonNull(graphql.Int),
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				var req types.PlaceAliquotRequest
				if err := decodeArgs(ctx, p.Args, &req); err != nil {
					return nil, err
				}
				return r.Shipment.PlaceAliquot(ctx, &req)
			}),
		},
		"createShipment": &graphql.Field{
			Type: shipmentType,
			Args: args(
				"shipmentNumber", nonNull(graphql.String),
				"carrierId", graphql.Int,
				"destinationId", graphql.Int,
				"sentDate", graphql.DateTime,
				"receivedDate", graphql.DateTime,
				"notes", graphql.String,
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				var req types.CreateShipmentRequest
				if err := decodeArgs(ctx, p.Args, &req); err != nil {
					return nil, err
				}
				return r.Shipment.CreateShipment(ctx, &req)
			}),
		},
		"createUser": &graphql.Field{
			Type: userType,
			Args: args(
				"username", nonNull(graphql.String),
				"email", graphql.String,
				"password", nonNull(graphql.String),
				"isStaff", graphql.Boolean,
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				viewer, err := requireViewer(ctx)
				if err != nil {
					return nil, err
				}
				if !viewer.IsStaff {
					return nil, limserr.ErrForbidden.Msg("only staff may create users")
				}
				var req types.CreateUserRequest
				if err := decodeArgs(ctx, p.Args, &req); err != nil {
					return nil, err
				}
				return r.User.CreateUser(ctx, &req)
			}),
		},
		"tokenAuth": &graphql.Field{
			Type: tokenResultType,
			Args: args(
				"username", nonNull(graphql.String),
				"password", nonNull(graphql.String),
			),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				username, _ := stringArg(p, "username")
				password, _ := stringArg(p, "password")
				issued, user, err := r.Auth.TokenAuth(ctx, username, password)
				if err != nil {
					return nil, err
				}
				CookieJarFrom(ctx).SetToken(issued)
				return &tokenResult{
					Token:            issued.Token,
					Payload:          issued.Payload,
					RefreshExpiresIn: issued.RefreshExpiresIn,
					User:             user,
				}, nil
			}),
		},
		"verifyToken": &graphql.Field{
			Type: verifyResultType,
			Args: args("token", graphql.String),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				payload, err := r.Auth.Verify(ctx, tokenOrCookie(ctx, p))
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"payload": payload}, nil
			}),
		},
		"refreshToken": &graphql.Field{
			Type: tokenResultType,
			Args: args("token", graphql.String),
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				issued, err := r.Auth.Refresh(ctx, tokenOrCookie(ctx, p))
				if err != nil {
					return nil, err
				}
				CookieJarFrom(ctx).SetToken(issued)
				return &tokenResult{
					Token:            issued.Token,
					Payload:          issued.Payload,
					RefreshExpiresIn: issued.RefreshExpiresIn,
					User:             ViewerFrom(ctx),
				}, nil
			}),
		},
		"deleteTokenCookie": &graphql.Field{
			Type: deleteCookieResultType,
			Resolve: resolver(func(ctx context.Context, p graphql.ResolveParams) (interface{}, error) {
				token := TokenFrom(ctx)
				if err := r.Auth.Revoke(ctx, token); err != nil {
					return nil, err
				}
				CookieJarFrom(ctx).Clear()
				return map[string]interface{}{"deleted": token != ""}, nil
			}),
		},
	}
}

func tokenOrCookie(ctx context.Context, p graphql.ResolveParams) string {
	if token, ok := stringArg(p, "token"); ok && token != "" {
		return token
	}
	return TokenFrom(ctx)
}
