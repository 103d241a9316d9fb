package grpcjson

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type echoRequest struct {
	Text string `json:"text"`
	Data []byte `json:"data,omitempty"`
}

type echoResponse struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
}

type echoServer interface {
	Echo(context.Context, *echoRequest) (*echoResponse, error)
}

type echoImpl struct{}

func (echoImpl) Echo(_ context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Text == "" {
		return nil, status.Error(codes.InvalidArgument, "empty")
	}
	return &echoResponse{Text: req.Text, Length: len(req.Text) + len(req.Data)}, nil
}

const echoService = "phonestore.test.v1.EchoService"

var echoDesc = grpc.ServiceDesc{
	ServiceName: echoService,
	HandlerType: (*echoServer)(nil),
	Methods: []grpc.MethodDesc{
		Method(echoService, "Echo", echoServer.Echo),
	},
}

func startEcho(t *testing.T, opts ...grpc.ServerOption) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(opts...)
	srv.RegisterService(&echoDesc, echoImpl{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRoundTrip(t *testing.T) {
	conn := startEcho(t)

	resp, err := Invoke[echoRequest, echoResponse](context.Background(), conn, "/"+echoService+"/Echo", &echoRequest{Text: "galaxy"})
	require.NoError(t, err)
	assert.Equal(t, "galaxy", resp.Text)
	assert.Equal(t, 6, resp.Length)
}

func TestStatusPropagates(t *testing.T) {
	conn := startEcho(t)

	_, err := Invoke[echoRequest, echoResponse](context.Background(), conn, "/"+echoService+"/Echo", &echoRequest{})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestInterceptorSeesFullMethod(t *testing.T) {
	var seen string
	conn := startEcho(t, grpc.UnaryInterceptor(func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}))

	_, err := Invoke[echoRequest, echoResponse](context.Background(), conn, "/"+echoService+"/Echo", &echoRequest{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "/"+echoService+"/Echo", seen)
}

func TestLargeBinaryPayload(t *testing.T) {
	// 8 MiB of bytes is close to 11 MiB once base64-encoded in JSON.
	in := &echoRequest{Text: "img", Data: bytes.Repeat([]byte{0xff}, 8<<20)}

	t.Run("default server limit rejects it", func(t *testing.T) {
		conn := startEcho(t)
		_, err := Invoke[echoRequest, echoResponse](context.Background(), conn, "/"+echoService+"/Echo", in)
		assert.Equal(t, codes.ResourceExhausted, status.Code(err))
	})

	t.Run("ServerOptions accepts it", func(t *testing.T) {
		conn := startEcho(t, ServerOptions()...)
		resp, err := Invoke[echoRequest, echoResponse](context.Background(), conn, "/"+echoService+"/Echo", in)
		require.NoError(t, err)
		assert.Equal(t, 3+8<<20, resp.Length)
	})
}
