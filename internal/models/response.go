package models

type SessionCreatedResponse struct {
	SessionID string `json:"session_id"`
}

type AirportsResponse struct {
	Airports []Airport `json:"airports"`
	CacheHit bool      `json:"cache_hit"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
