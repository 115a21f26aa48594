package grpc

import (
	"errors"

	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrNotActiveShift, codes.PermissionDenied},
	{common.ErrValidation, codes.InvalidArgument},
	{common.ErrConfirmationRequired, codes.FailedPrecondition},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrorAlreadyExists, codes.AlreadyExists},
	{common.ErrorUnauthorized, codes.Unauthenticated},
	{common.ErrRefreshTokenExpired, codes.Unauthenticated},
	{common.ErrConnection, codes.Unavailable},
	{common.ErrPersistence, codes.Aborted},
}

// toStatus converts a service error to a gRPC status. Unknown errors become
// Internal without leaking their text.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return status.Error(ec.code, err.Error())
		}
	}
	return status.Error(codes.Internal, "internal error")
}
