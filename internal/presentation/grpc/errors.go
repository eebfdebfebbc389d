package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// toStatus maps domain errors onto gRPC status codes.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var code codes.Code
	switch {
	case errors.Is(err, valueobject.ErrInvalidArgument):
		code = codes.InvalidArgument
	case errors.Is(err, valueobject.ErrSessionNotFound):
		code = codes.NotFound
	case errors.Is(err, valueobject.ErrInvalidStatusTransition),
		errors.Is(err, valueobject.ErrNoOfferData):
		code = codes.FailedPrecondition
	case errors.Is(err, valueobject.ErrVersionConflict):
		code = codes.Aborted
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}
