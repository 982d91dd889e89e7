package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/portfolio-rotation-api/internal/api/handler/router"
	"github.com/vfg2006/portfolio-rotation-api/internal/config"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/authenticating"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/registering"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/reporting"
	"github.com/vfg2006/portfolio-rotation-api/internal/usecases/rotating"
	"github.com/vfg2006/portfolio-rotation-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Salespeople(service registering.Registry) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/salespeople",
			Method:      http.MethodGet,
			Handler:     ListSalespeople(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/salespeople",
			Method:      http.MethodPost,
			Handler:     CreateSalesperson(service),
			Middlewares: middlewares{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/salespeople/sync",
			Method:      http.MethodPost,
			Handler:     SyncSalespeople(service),
			Middlewares: middlewares{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/salespeople/:name",
			Method:      http.MethodDelete,
			Handler:     DeleteSalesperson(service),
			Middlewares: middlewares{middleware.OperatorOnly()},
		},
	}
}

func Rotations(service rotating.Rotator, cfg config.Rotation) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/rotations/:group/run",
			Method:      http.MethodPost,
			Handler:     RunRotation(service, cfg),
			Middlewares: middlewares{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/rotations/:group/last",
			Method:      http.MethodGet,
			Handler:     GetLastRotation(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/rotations/:group/download",
			Method:      http.MethodGet,
			Handler:     DownloadRotated(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/manual-rotations",
			Method:      http.MethodPost,
			Handler:     RecordManualRotation(service),
			Middlewares: middlewares{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/rotation-history",
			Method:      http.MethodGet,
			Handler:     ListRotationHistory(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.Reporter, cfg config.Rotation) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/:group",
			Method:      http.MethodPost,
			Handler:     GenerateReports(service, cfg),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}
