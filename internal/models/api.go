package models

// APIInfo describes the service and the endpoints it exposes
type APIInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// ErrorDetail is the body of every non-2xx response produced by the API
type ErrorDetail struct {
	Detail string `json:"detail"`
}
