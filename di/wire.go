//go:build wireinject
// +build wireinject

package di

import (
	"huddle/config"
	"huddle/infras/jwt"
	"huddle/infras/otel"
	"huddle/infras/postgres"
	"huddle/infras/redis"
	"huddle/infras/scheduler"
	"huddle/shared/cache"
	"huddle/shared/clock"
	"huddle/transport/http"
	"huddle/transport/http/middleware"
	"huddle/transport/http/router"

	meetingRepository "huddle/internal/domains/meeting/repository"
	meetingService "huddle/internal/domains/meeting/service"
	"huddle/internal/domains/meeting/sweeper"
	meetingHandler "huddle/internal/handlers/meeting"

	roomRepository "huddle/internal/domains/room/repository"
	roomService "huddle/internal/domains/room/service"
	roomHandler "huddle/internal/handlers/room"

	resourceRepository "huddle/internal/domains/resource/repository"
	resourceService "huddle/internal/domains/resource/service"
	resourceHandler "huddle/internal/handlers/resource"

	authService "huddle/internal/domains/auth/service"
	userRepository "huddle/internal/domains/user/repository"
	authHandler "huddle/internal/handlers/auth"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	scheduler.New,
	clock.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var meetingDomain = wire.NewSet(
	meetingRepository.New,
	meetingService.New,
	sweeper.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewRoomResource,
	roomService.New,
	wire.Bind(new(meetingService.RoomGate), new(roomService.Room)),
)

var resourceDomain = wire.NewSet(
	resourceRepository.New,
	resourceService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	meetingDomain,
	roomDomain,
	resourceDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	meetingHandler.New,
	roomHandler.New,
	resourceHandler.New,
	authHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
