package meta

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/labtrack/lims/internal/pkg/cachectrl"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/server/svr"
	"github.com/labtrack/lims/internal/service"
)

type AdminController struct {
	fx.In

	AdminService *service.Admin
}

func RegisterAdmin(admin *svr.Admin, c AdminController) {
	admin.Use(func(ctx *fiber.Ctx) error {
		cachectrl.OptOut(ctx)
		return ctx.Next()
	})

	admin.Get("/", c.GetEntities)
	admin.Get("/:entity", c.List)
	admin.Get("/:entity/:id", c.Get)
	admin.Post("/:entity", c.Create)
	admin.Patch("/:entity/:id", c.Update)
	admin.Delete("/:entity/:id", c.Delete)
}

func recordID(ctx *fiber.Ctx) (int64, error) {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, limserr.ErrInvalidReq.Msg("invalid or missing id")
	}
	return int64(id), nil
}

func (c *AdminController) GetEntities(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"entities": c.AdminService.Entities(),
	})
}

func (c *AdminController) List(ctx *fiber.Ctx) error {
	rows, err := c.AdminService.List(ctx.UserContext(), ctx.Params("entity"), ctx.QueryInt("offset"), ctx.QueryInt("limit"))
	if err != nil {
		return err
	}
	return ctx.JSON(rows)
}

func (c *AdminController) Get(ctx *fiber.Ctx) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}
	row, err := c.AdminService.Get(ctx.UserContext(), ctx.Params("entity"), id)
	if err != nil {
		return err
	}
	return ctx.JSON(row)
}

func (c *AdminController) Create(ctx *fiber.Ctx) error {
	row, err := c.AdminService.Create(ctx.UserContext(), ctx.Params("entity"), ctx.Body())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(row)
}

func (c *AdminController) Update(ctx *fiber.Ctx) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}
	row, err := c.AdminService.Update(ctx.UserContext(), ctx.Params("entity"), id, ctx.Body())
	if err != nil {
		return err
	}
	return ctx.JSON(row)
}

func (c *AdminController) Delete(ctx *fiber.Ctx) error {
	id, err := recordID(ctx)
	if err != nil {
		return err
	}
	out, err := c.AdminService.Delete(ctx.UserContext(), ctx.Params("entity"), id)
	if err != nil {
		return err
	}
	return ctx.JSON(out)
}
