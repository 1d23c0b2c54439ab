package statspb

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "synapse.v1.IngestStats"

const getStatsMethod = "/" + ServiceName + "/GetStats"

// IngestStatsServer is the server contract for the stats service.
type IngestStatsServer interface {
	GetStats(ctx context.Context, req *GetStatsRequest) (*StatsSnapshot, error)
}

// RegisterIngestStatsServer registers srv on s. The server must be created
// with grpc.ForceServerCodec(Codec{}).
func RegisterIngestStatsServer(s *grpc.Server, srv IngestStatsServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IngestStatsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetStats",
			Handler:    getStatsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/statspb/stats.proto",
}

func getStatsHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(GetStatsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IngestStatsServer).GetStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: getStatsMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IngestStatsServer).GetStats(ctx, req.(*GetStatsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// IngestStatsClient calls the stats service.
type IngestStatsClient struct {
	cc grpc.ClientConnInterface
}

// NewIngestStatsClient wraps an established connection.
func NewIngestStatsClient(cc grpc.ClientConnInterface) *IngestStatsClient {
	return &IngestStatsClient{cc: cc}
}

// GetStats fetches the current counters snapshot.
func (c *IngestStatsClient) GetStats(
	ctx context.Context,
	req *GetStatsRequest,
	opts ...grpc.CallOption,
) (*StatsSnapshot, error) {
	out := new(StatsSnapshot)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := c.cc.Invoke(ctx, getStatsMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
