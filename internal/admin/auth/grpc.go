package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// OutgoingContext copies the admin e-mail stored in ctx into outgoing gRPC
// metadata. Without one, ctx is returned unchanged.
func OutgoingContext(ctx context.Context) context.Context {
	email, ok := EmailFromContext(ctx)
	if !ok {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, MetadataKey, email)
}

// UnaryServerInterceptor guards every method of the services named in
// services (e.g. "phonestore.admin.v1.AdminService"). Other calls pass through.
// The e-mail in the metadata is taken as already verified by the gateway, so
// the server must only be reachable from the gateway.
func UnaryServerInterceptor(allow *Allowlist, services ...string) grpc.UnaryServerInterceptor {
	prefixes := make([]string, 0, len(services))
	for _, s := range services {
		prefixes = append(prefixes, "/"+s+"/")
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !guarded(info.FullMethod, prefixes) {
			return handler(ctx, req)
		}

		var email string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get(MetadataKey); len(vals) > 0 {
				email = vals[0]
			}
		}

		switch err := allow.Check(email); {
		case errors.Is(err, ErrUnauthenticated):
			return nil, status.Error(codes.Unauthenticated, "admin identity missing")
		case err != nil:
			return nil, status.Error(codes.PermissionDenied, "not an admin")
		}
		return handler(WithEmail(ctx, normalize(email)), req)
	}
}

func guarded(method string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(method, p) {
			return true
		}
	}
	return false
}
