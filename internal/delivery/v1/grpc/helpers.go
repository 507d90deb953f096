package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// GRPCErrorResponse переводит ошибку usecase в gRPC-статус.
func GRPCErrorResponse(err error) error {
	switch {
	case errors.Is(err, e.ErrQueryRequired):
		return status.Error(codes.InvalidArgument, e.ErrQueryRequired.Error())
	case errors.Is(err, e.ErrProductIDMissing):
		return status.Error(codes.InvalidArgument, e.ErrProductIDMissing.Error())
	case errors.Is(err, e.ErrStatusBadRequest):
		return status.Error(codes.InvalidArgument, e.ErrStatusBadRequest.Error())
	case errors.Is(err, e.ErrUnauthorized), errors.Is(err, e.ErrSessionExpired):
		return status.Error(codes.Unauthenticated, e.ErrUnauthorized.Error())
	case errors.Is(err, e.ErrForbidden):
		return status.Error(codes.PermissionDenied, e.ErrForbidden.Error())
	case errors.Is(err, e.ErrProductNotFound):
		return status.Error(codes.NotFound, e.ErrProductNotFound.Error())
	case errors.Is(err, e.ErrNoPriceData):
		return status.Error(codes.NotFound, e.ErrNoPriceData.Error())
	case errors.Is(err, e.ErrNotFound):
		return status.Error(codes.NotFound, e.ErrNotFound.Error())
	case errors.Is(err, e.ErrTooManyRequests):
		return status.Error(codes.ResourceExhausted, e.ErrTooManyRequests.Error())
	case errors.Is(err, e.ErrUpstreamUnavailable), errors.Is(err, e.ErrMalformedPayload):
		return status.Error(codes.Unavailable, e.ErrUpstreamUnavailable.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

// sessionFromContext достаёт bearer-токен из метаданных authorization. Без метаданных — гостевой режим.
func sessionFromContext(ctx context.Context) (*domain.Session, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, nil
	}

	values := md.Get("authorization")
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return nil, nil
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(values[0]), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
		return nil, e.ErrUnauthorized
	}

	return domain.NewSession(token, "", nil), nil
}
