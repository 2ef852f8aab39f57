package auth

import (
	"context"
	"log/slog"

	"github.com/ferdiebergado/credkit/internal/pkg/message"
	"github.com/ferdiebergado/credkit/internal/pkg/security"
	"github.com/ferdiebergado/credkit/internal/platform/metrics"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const authorizationKey = "authorization"

// UnaryServerInterceptor requires a bearer token in the authorization metadata
// of every call except publicMethods.
func UnaryServerInterceptor(tokens *TokenService, recorder metrics.Recorder, publicMethods ...string) grpc.UnaryServerInterceptor {
	public := make(map[string]struct{}, len(publicMethods))
	for _, m := range publicMethods {
		public[m] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := public[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		logger := slog.With("request_id", uuid.NewString(), "method", info.FullMethod)

		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(authorizationKey); len(values) > 0 {
				header = values[0]
			}
		}

		token, err := security.ParseBearer(header)
		if err != nil {
			recorder.RecordTokenVerification(metrics.OutcomeMissing)
			logger.Warn("Call rejected.", "reason", err)
			return nil, status.Error(codes.Unauthenticated, message.InvalidToken)
		}

		subject, err := authenticateToken(tokens, recorder, token)
		if err != nil {
			logger.Warn("Call rejected.", "reason", err)
			return nil, status.Error(codes.Unauthenticated, message.InvalidToken)
		}

		return handler(ContextWithUser(ctx, subject), req)
	}
}
