//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/singhHarcharan/trip-planner-agent/internal/bootstrap"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/auth"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/holiday"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/trip"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/weather"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/config"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/weather/openweathermap"
	httpiface "github.com/singhHarcharan/trip-planner-agent/internal/interface/http"
	"github.com/singhHarcharan/trip-planner-agent/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideWeatherConfig,
		provideWeatherProvider,
		provideWeatherCache,
		provideHolidayRepository,
		provideCompleter,
		provideTripCompleter,
		provideHotelPrefCompleter,
		provideEmbedder,
		provideDocumentSource,
		provideVectorIndex,
		provideHotelPrefConfig,
		provideTravelDesk,
		provideTripConfig,
		provideAuthConfig,
		provideDefaultEmployeeID,
		wire.Bind(new(weather.Geocoder), new(*openweathermap.RateLimitedClient)),
		wire.Bind(new(weather.ForecastClient), new(*openweathermap.RateLimitedClient)),
		weather.NewService,
		holiday.NewService,
		hotelpref.NewService,
		trip.NewExtractor,
		trip.NewPlanner,
		auth.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
