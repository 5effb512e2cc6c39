package web

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/labtrack/lims/internal/app/appconfig"
	"github.com/labtrack/lims/internal/graph"
	"github.com/labtrack/lims/internal/pkg/cachectrl"
	"github.com/labtrack/lims/internal/pkg/flog"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/server/svr"
	"github.com/labtrack/lims/internal/service"
)

type GraphQL struct {
	fx.In

	Schema      *graph.Schema
	AuthService *service.Auth
	Config      *appconfig.Config
}

func RegisterGraphQL(root *svr.Root, c GraphQL) {
	root.Get("/graphql/", c.Viewer, c.Execute)
	root.Post("/graphql/", c.Viewer, c.Execute)
}

// Viewer resolves the session token of the request, if any, into the viewer.
// Invalid tokens leave the request anonymous.
func (c *GraphQL) Viewer(ctx *fiber.Ctx) error {
	token := tokenFrom(ctx, c.Config.JWTCookieName)
	if token == "" {
		return ctx.Next()
	}

	uctx := graph.WithToken(ctx.UserContext(), token)
	viewer, err := c.AuthService.Viewer(uctx, token)
	if err != nil {
		if _, ok := limserr.From(err); !ok {
			return err
		}
		flog.DebugFrom(ctx).
			Err(err).
			Str("evt.name", "graphql.viewer").
			Msg("ignoring invalid session token")
	} else {
		uctx = graph.WithViewer(uctx, viewer)
	}
	ctx.SetUserContext(uctx)
	return ctx.Next()
}

func (c *GraphQL) parseRequest(ctx *fiber.Ctx) (*graph.Request, error) {
	req := &graph.Request{}
	if ctx.Method() == fiber.MethodGet {
		req.Query = ctx.Query("query")
		req.OperationName = ctx.Query("operationName")
		if vars := ctx.Query("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				return nil, limserr.ErrInvalidReq.Msg("variables are invalid JSON")
			}
		}
	} else if err := ctx.BodyParser(req); err != nil {
		return nil, limserr.ErrInvalidReq.Msg("request body is invalid: %s", err)
	}

	if req.Query == "" {
		return nil, limserr.ErrInvalidReq.Msg("must provide query string")
	}
	return req, nil
}

// mutates reports whether the operation to run is a mutation. Parse errors are
// left to the executor to report.
func mutates(req *graph.Request) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: req.Query})
	if err != nil {
		return false
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if req.OperationName != "" && (op.Name == nil || op.Name.Value != req.OperationName) {
			continue
		}
		if op.Operation == ast.OperationTypeMutation {
			return true
		}
	}
	return false
}

func (c *GraphQL) Execute(ctx *fiber.Ctx) error {
	cachectrl.OptOut(ctx)

	req, err := c.parseRequest(ctx)
	if err != nil {
		return err
	}
	if ctx.Method() == fiber.MethodGet && mutates(req) {
		return limserr.New(fiber.StatusMethodNotAllowed, limserr.CodeInvalidRequest, "mutations can only be performed via POST")
	}

	jar := &graph.CookieJar{}
	result := c.Schema.Do(graph.WithCookieJar(ctx.UserContext(), jar), req)

	token, clear := jar.Pending()
	switch {
	case token != nil:
		setTokenCookie(ctx, c.Config, token)
	case clear:
		clearTokenCookie(ctx, c.Config)
	}

	if len(result.Errors) > 0 {
		log.Debug().
			Str("evt.name", "graphql.errors").
			Str("operation", req.OperationName).
			Int("count", len(result.Errors)).
			Msg("graphql request completed with errors")
	}
	return ctx.JSON(result)
}
