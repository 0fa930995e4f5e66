package constants

// Base Routes
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"
	RoutesPath  = "/api/routes"
)

// Economy Routes
const (
	StatsPath         = "/api/stats"
	LeaderboardPath   = "/api/leaderboard"
	PlayerPath        = "/api/player/{name}"
	PlayerAdvicePath  = "/api/player/{name}/advice"
	PlayerRoutePrefix = "/api/player"
)

// URL Parameters
const (
	ParamPlayerName = "name"
)

// Context Key Names
const (
	RequestIDContextKey = "request_id"
)
