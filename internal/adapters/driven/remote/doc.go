// Package remote provides the HTTP client for the IA-JUR answering service.
//
// One Client implements driven.AnsweringService, driven.ArtifactSource and
// driven.MetricsSource:
//
//	POST /api/consulta            {"pergunta": "..."}
//	GET  /api/arquivos-txt        {"arquivos": [...]}
//	GET  /api/download-txt/{nome} raw artifact bytes
//	GET  /api/metricas            partial metrics snapshot
//
// Requests pass through a token-bucket rate limiter. Non-2xx responses and
// network failures are returned as *domain.TransportError.
package remote
