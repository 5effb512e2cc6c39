package graph

import (
	"context"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/graphql-go/graphql"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/service"
	"github.com/labtrack/lims/internal/util/rekuest"
)

type Resolver struct {
	fx.In

	PatientSync *service.PatientSync
	Patient     *service.Patient
	Specimen    *service.Specimen
	Aliquot     *service.Aliquot
	Catalog     *service.Catalog
	Storage     *service.Storage
	Grid        *service.Grid
	Manifest    *service.Manifest
	Shipment    *service.Shipment
	User        *service.User
	Auth        *service.Auth
}

// Request is a GraphQL request as posted by clients.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type Schema struct {
	schema graphql.Schema
}

func NewSchema(r Resolver) (*Schema, error) {
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: r.queries(),
		}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: r.mutations(),
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "graph: failed to build schema")
	}
	return &Schema{schema: schema}, nil
}

func (s *Schema) Do(ctx context.Context, req *Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})
}

// resolver adapts a context-first function to graphql.FieldResolveFn and
// presents its errors to clients.
func resolver(fn func(ctx context.Context, p graphql.ResolveParams) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		v, err := fn(p.Context, p)
		if err != nil {
			return nil, clientError(err)
		}
		return v, nil
	}
}

// decodeArgs maps field arguments onto a request struct through their JSON
// names and validates the result.
func decodeArgs(ctx context.Context, args map[string]interface{}, dest any) error {
	b, err := json.Marshal(args)
	if err != nil {
		return limserr.ErrInvalidReq.Msg("malformed arguments: %s", err)
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return limserr.ErrInvalidReq.Msg("malformed arguments: %s", err)
	}
	return rekuest.ValidCtx(ctx, dest)
}

// idArg reads an ID argument. ok is false when the argument is absent.
func idArg(p graphql.ResolveParams, name string) (id int64, ok bool, err error) {
	v, present := p.Args[name]
	if !present || v == nil {
		return 0, false, nil
	}
	var s string
	switch v := v.(type) {
	case string:
		s = v
	case int:
		return int64(v), true, nil
	default:
		return 0, false, limserr.ErrInvalidReq.Msg("invalid %s", name)
	}
	id, err = strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, limserr.ErrInvalidReq.Msg("invalid %s: %q", name, s)
	}
	return id, true, nil
}

func requiredID(p graphql.ResolveParams, name string) (int64, error) {
	id, ok, err := idArg(p, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, limserr.ErrInvalidReq.Msg("%s is required", name)
	}
	return id, nil
}

func intArg(p graphql.ResolveParams, name string) int {
	v, _ := p.Args[name].(int)
	return v
}

func stringArg(p graphql.ResolveParams, name string) (string, bool) {
	v, ok := p.Args[name].(string)
	return v, ok
}

func requireViewer(ctx context.Context) (*model.User, error) {
	viewer := ViewerFrom(ctx)
	if viewer == nil {
		return nil, limserr.ErrUnauthenticated
	}
	return viewer, nil
}
