package handler

// Path prefixes shared by handlers and tests.
const (
	APIPrefix    = "/api"
	AdminPrefix  = "/admin"
	StaticPrefix = "/static"
	LoginPath    = "/login"
)
