// Package grpcserver adapts the ingest service to gRPC.
package grpcserver

import (
	"context"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"synapse/api/statspb"
	"synapse/service"
)

// Server serves the stats query surface over gRPC.
type Server struct {
	svc  *service.IngestService
	grpc *grpc.Server
	log  *zap.Logger
}

// New builds a server around the ingest service.
func New(svc *service.IngestService, log *zap.Logger) *Server {
	s := &Server{
		svc:  svc,
		grpc: grpc.NewServer(grpc.ForceServerCodec(statspb.Codec{})),
		log:  log,
	}
	statspb.RegisterIngestStatsServer(s.grpc, s)
	return s
}

// GetStats returns the fixed-layout counters snapshot.
func (s *Server) GetStats(
	ctx context.Context,
	req *statspb.GetStatsRequest,
) (*statspb.StatsSnapshot, error) {
	snap := s.svc.Stats()
	return &statspb.StatsSnapshot{
		MessagesReceived:  snap.MessagesReceived,
		BytesReceived:     snap.BytesReceived,
		ParseErrors:       snap.ParseErrors,
		MessagesDropped:   snap.MessagesDropped,
		LastSeq:           snap.LastSeq,
		ArenaUsed:         snap.ArenaUsed,
		ArenaCapacity:     snap.ArenaCapacity,
		MessagesPerSecond: snap.MessagesPerSecond,
	}, nil
}

// Serve blocks on the listener until Stop.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("grpc server listening", zap.String("addr", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

// Stop drains in-flight RPCs and shuts down.
func (s *Server) Stop() {
	s.grpc.GracefulStop()
}
