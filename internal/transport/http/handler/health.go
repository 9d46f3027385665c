package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger is a reachability probe for an external dependency.
type Pinger func(ctx context.Context) error

// HealthHandler reports server, DynamoDB and Redis health.
type HealthHandler struct {
	startedAt time.Time
	dynamo    Pinger
	redis     Pinger
}

func NewHealthHandler(dynamo, redis Pinger) *HealthHandler {
	return &HealthHandler{startedAt: time.Now(), dynamo: dynamo, redis: redis}
}

type dependencyStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type healthReport struct {
	Server struct {
		Status string  `json:"status"`
		Uptime float64 `json:"uptime"`
	} `json:"server"`
	DynamoDB  dependencyStatus `json:"dynamodb"`
	Redis     dependencyStatus `json:"redis"`
	Timestamp string           `json:"timestamp"`
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	report := healthReport{Timestamp: time.Now().UTC().Format(time.RFC3339)}
	report.Server.Status = "healthy"
	report.Server.Uptime = time.Since(h.startedAt).Seconds()
	report.DynamoDB = probe(ctx, h.dynamo)
	report.Redis = probe(ctx, h.redis)

	writeJSON(w, http.StatusOK, DataEnvelope{Message: "System health check completed", Data: report})
}

func probe(ctx context.Context, p Pinger) dependencyStatus {
	if p == nil {
		return dependencyStatus{Status: "unknown", Details: "not configured"}
	}
	if err := p(ctx); err != nil {
		return dependencyStatus{Status: "unhealthy", Details: err.Error()}
	}
	return dependencyStatus{Status: "healthy", Details: "Connected"}
}
