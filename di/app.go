package di

import (
	"huddle/internal/domains/meeting/sweeper"
	"huddle/transport/http"
)

// App bundles the long-running pieces of the service: the HTTP server and
// the lifecycle sweeper.
type App struct {
	HTTP    *http.HTTP
	Sweeper *sweeper.Sweeper
}
