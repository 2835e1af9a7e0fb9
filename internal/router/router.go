package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"healthmon/internal/auth"
	apperrors "healthmon/internal/errors"
	"healthmon/internal/handler"
	"healthmon/internal/service"
	"healthmon/internal/web"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	metricHandler *handler.MetricHandler,
	goalHandler *handler.GoalHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Embedded dashboard
	e.FileFS("/", "static/index.html", web.Assets)
	e.StaticFS("/static", echo.MustSubFS(web.Assets, "static"))

	// Public routes
	e.POST("/users", authHandler.Register)
	e.POST("/token", authHandler.Token)

	// Secured routes (require JWT authentication). Signature, signing
	// method and expiry are checked here; resolveUser then maps the
	// claims to a user.
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
	}), resolveUser(authService))

	secured.GET("/users/me", authHandler.Me)
	secured.POST("/auth/logout", authHandler.Logout)

	// Metric routes
	secured.POST("/metrics", metricHandler.CreateMetric)
	secured.GET("/metrics", metricHandler.ListMetrics)
	secured.DELETE("/metrics/:id", metricHandler.DeleteMetric)

	// Goal routes
	secured.POST("/goals", goalHandler.UpsertGoal)
	secured.GET("/goals/progress", goalHandler.Progress)
}

// resolveUser turns validated claims into the owning user record and places
// both on the context. Runs after the JWT middleware.
func resolveUser(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid claims")
			}

			user, err := authService.ResolveUser(c.Request().Context(), claims)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(handler.ContextUserKey, user)
			c.Set(handler.ContextClaimsKey, claims)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
