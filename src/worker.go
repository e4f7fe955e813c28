package mambo

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "cactus/mambo/src/protobuff"
)

// grpcWorker adapts the generated WorkerService client to the WorkerClient
// interface the core is written against.
type grpcWorker struct {
	node   NodeID
	conn   *grpc.ClientConn
	client pb.WorkerServiceClient
}

// DialWorker opens a gRPC connection to a slave. Weight payloads ride the
// zstd compressor registered in compression.go.
func DialWorker(node NodeID) (WorkerClient, error) {
	conn, err := grpc.NewClient(node.Addr(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.UseCompressor(zstdName)),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to worker %s: %w", node, err)
	}
	return &grpcWorker{
		node:   node,
		conn:   conn,
		client: pb.NewWorkerServiceClient(conn),
	}, nil
}

func rangeToProto(r Range) *pb.IndexRange {
	return &pb.IndexRange{From: int64(r.From), To: int64(r.To)}
}

func (w *grpcWorker) Forward(ctx context.Context, rng Range, weights Vec) ([]float64, error) {
	reply, err := w.client.Forward(ctx, &pb.ForwardRequest{
		Range:   rangeToProto(rng),
		Weights: weights.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("forward on %s: %w", w.node, err)
	}
	return reply.GetPredictions(), nil
}

func (w *grpcWorker) Gradient(ctx context.Context, weights Vec, rng Range) (GradientResult, error) {
	reply, err := w.client.Gradient(ctx, &pb.GradientRequest{
		Weights: weights.Values(),
		Range:   rangeToProto(rng),
	})
	if err != nil {
		return GradientResult{}, fmt.Errorf("gradient on %s: %w", w.node, err)
	}
	grad, err := NewVec(reply.GetGrad())
	if err != nil {
		return GradientResult{}, fmt.Errorf("gradient reply from %s: %w", w.node, err)
	}
	return GradientResult{
		Grad:         grad,
		StartedAt:    time.Unix(0, reply.GetStartedAt()),
		TerminatedAt: time.Unix(0, reply.GetTerminatedAt()),
	}, nil
}

func (w *grpcWorker) InitAsync(ctx context.Context, weights Vec, assignment Range, batchSize int) error {
	_, err := w.client.InitAsync(ctx, &pb.InitAsyncRequest{
		Weights:    weights.Values(),
		Assignment: rangeToProto(assignment),
		BatchSize:  int32(batchSize),
	})
	if err != nil {
		return fmt.Errorf("initAsync on %s: %w", w.node, err)
	}
	return nil
}

func (w *grpcWorker) StopAsync(ctx context.Context) error {
	if _, err := w.client.StopAsync(ctx, &pb.Empty{}); err != nil {
		return fmt.Errorf("stopAsync on %s: %w", w.node, err)
	}
	return nil
}

func (w *grpcWorker) NotifyRegister(ctx context.Context, node NodeID) error {
	_, err := w.client.RegisterSlave(ctx, &pb.NodeInfo{Host: node.Host, Port: int32(node.Port)})
	return err
}

func (w *grpcWorker) NotifyUnregister(ctx context.Context, node NodeID) error {
	_, err := w.client.UnregisterSlave(ctx, &pb.NodeInfo{Host: node.Host, Port: int32(node.Port)})
	return err
}

func (w *grpcWorker) Close() error {
	return w.conn.Close()
}
