package driven

import (
	"context"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// AnsweringService sends questions to the remote answering service.
type AnsweringService interface {
	// Consult submits a question and returns the decoded success payload.
	// Non-2xx responses and network failures return *domain.TransportError.
	// No timeout is imposed here; callers control cancellation through ctx.
	Consult(ctx context.Context, question string) (*domain.AnswerResponse, error)
}

// ArtifactSource exposes answer files the service persisted on its side.
type ArtifactSource interface {
	// ListArtifacts returns the persisted artifacts in server order.
	ListArtifacts(ctx context.Context) ([]domain.Artifact, error)

	// DownloadArtifact returns the raw bytes of a persisted artifact.
	DownloadArtifact(ctx context.Context, name string) ([]byte, error)
}

// MetricsSource fetches the remote usage metrics snapshot.
type MetricsSource interface {
	// FetchMetrics returns a partial snapshot. Absent fields stay nil.
	FetchMetrics(ctx context.Context) (*domain.RemoteMetrics, error)
}
