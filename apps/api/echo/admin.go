package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/portal/core"
	"github.com/trezcool/portal/core/notice"
	"github.com/trezcool/portal/core/student"
)

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (l *LoginRequest) Validate(validate *validator.Validate) error {
	l.Username = core.CleanString(l.Username)
	return validate.Struct(l)
}

type adminApi struct {
	auth       *authenticator
	studentSvc *student.Service
	noticeSvc  *notice.Service
	validate   *validator.Validate
}

func registerAdminAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	auth *authenticator,
	studentSvc *student.Service,
	noticeSvc *notice.Service,
	validate *validator.Validate,
) {
	api := adminApi{auth: auth, studentSvc: studentSvc, noticeSvc: noticeSvc, validate: validate}

	admin := g.Group("/admin")
	admin.POST("/login", api.adminLogin)

	restricted := admin.Group("", jwt, adminMiddleware(auth))
	restricted.POST("/token-refresh", api.adminRefreshToken)
	restricted.GET("/students", api.adminStudentQuery)
	restricted.PUT("/students", api.adminStudentImport)
	restricted.GET("/radar", api.adminRadar)
	restricted.GET("/notice", api.adminNoticeRetrieve)
	restricted.PUT("/notice", api.adminNoticeUpdate)
}

func (api adminApi) adminLogin(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := api.auth.authenticate(data.Username, data.Password)
	if err != nil {
		return err
	}
	token, err := GenerateToken(api.auth.conf, claims)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api adminApi) adminRefreshToken(ctx echo.Context) error {
	token, err := api.auth.refreshToken(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api adminApi) adminStudentQuery(ctx echo.Context) error {
	entries, err := api.studentSvc.Directory(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}

// adminStudentImport replaces the whole student directory with the request body.
func (api adminApi) adminStudentImport(ctx echo.Context) error {
	var rows []student.NewStudent
	if err := ctx.Bind(&rows); err != nil {
		return err
	}
	summary, err := api.studentSvc.Import(ctx.Request().Context(), rows)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api adminApi) adminRadar(ctx echo.Context) error {
	entries, err := api.studentSvc.Radar(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api adminApi) adminNoticeRetrieve(ctx echo.Context) error {
	n, err := api.noticeSvc.Current(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api adminApi) adminNoticeUpdate(ctx echo.Context) error {
	var data notice.UpdateNotice
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	n, err := api.noticeSvc.Save(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, n)
}
