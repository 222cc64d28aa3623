package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/portal/core/notice"
	"github.com/trezcool/portal/core/support"
)

type siteApi struct {
	noticeSvc  *notice.Service
	supportSvc *support.Service
}

func registerSiteAPI(g *echo.Group, noticeSvc *notice.Service, supportSvc *support.Service) {
	api := siteApi{noticeSvc: noticeSvc, supportSvc: supportSvc}
	g.GET("/config", api.siteConfig)
	g.POST("/support", api.siteSupport)
}

func (api siteApi) siteConfig(ctx echo.Context) error {
	pub, err := api.noticeSvc.Public(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pub)
}

func (api siteApi) siteSupport(ctx echo.Context) error {
	var req support.Request
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	ticket, err := api.supportSvc.Submit(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ticket)
}
