// Example slave for exercising a running master end-to-end: it registers,
// serves the worker RPCs over a deterministic synthetic dataset, and in
// async mode streams gradient updates until told to stop.
package main

import (
	"context"
	"log"
	"math"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "cactus/mambo/src/protobuff"
)

// sampleAt derives sample i of the shared synthetic dataset: a linear
// target with a known weight vector, so any slave and the master agree on
// the data without shipping it.
func sampleAt(i int, dim int) ([]float64, float64) {
	x := make([]float64, dim)
	for j := range x {
		x[j] = math.Sin(float64(i*dim + j))
	}
	y := 0.0
	for j := range x {
		y += 0.5 * x[j]
	}
	return x, y
}

type slave struct {
	pb.UnimplementedWorkerServiceServer

	dim int

	mu         sync.Mutex
	assignment *pb.IndexRange
	weights    []float64
	batchSize  int
	running    bool
}

func (s *slave) Forward(ctx context.Context, req *pb.ForwardRequest) (*pb.ForwardReply, error) {
	w := req.GetWeights()
	preds := make([]float64, 0, req.GetRange().GetTo()-req.GetRange().GetFrom())
	for i := req.GetRange().GetFrom(); i < req.GetRange().GetTo(); i++ {
		x, _ := sampleAt(int(i), s.dim)
		pred := 0.0
		for j := range x {
			pred += w[j] * x[j]
		}
		preds = append(preds, pred)
	}
	return &pb.ForwardReply{Predictions: preds}, nil
}

func gradientOver(w []float64, from, to int64, dim int) []float64 {
	grad := make([]float64, dim)
	count := to - from
	if count <= 0 {
		return grad
	}
	for i := from; i < to; i++ {
		x, y := sampleAt(int(i), dim)
		pred := 0.0
		for j := range x {
			pred += w[j] * x[j]
		}
		for j := range x {
			grad[j] += 2 * (pred - y) * x[j] / float64(count)
		}
	}
	return grad
}

func (s *slave) Gradient(ctx context.Context, req *pb.GradientRequest) (*pb.GradientReply, error) {
	started := time.Now()
	grad := gradientOver(req.GetWeights(), req.GetRange().GetFrom(), req.GetRange().GetTo(), s.dim)
	return &pb.GradientReply{
		Grad:         grad,
		StartedAt:    started.UnixNano(),
		TerminatedAt: time.Now().UnixNano(),
	}, nil
}

func (s *slave) InitAsync(ctx context.Context, req *pb.InitAsyncRequest) (*pb.Ack, error) {
	s.mu.Lock()
	s.assignment = req.GetAssignment()
	s.weights = req.GetWeights()
	s.batchSize = int(req.GetBatchSize())
	s.running = true
	s.mu.Unlock()
	log.Printf("async init: range [%d,%d) batch %d", req.GetAssignment().GetFrom(), req.GetAssignment().GetTo(), req.GetBatchSize())
	return &pb.Ack{Ok: true, Message: "async initialized"}, nil
}

func (s *slave) StopAsync(ctx context.Context, req *pb.Empty) (*pb.Ack, error) {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	log.Printf("async stop received")
	return &pb.Ack{Ok: true, Message: "stopped"}, nil
}

func (s *slave) RegisterSlave(ctx context.Context, req *pb.NodeInfo) (*pb.Ack, error) {
	log.Printf("peer joined: %s:%d", req.GetHost(), req.GetPort())
	return &pb.Ack{Ok: true}, nil
}

func (s *slave) UnregisterSlave(ctx context.Context, req *pb.NodeInfo) (*pb.Ack, error) {
	log.Printf("peer left: %s:%d", req.GetHost(), req.GetPort())
	return &pb.Ack{Ok: true}, nil
}

// pushUpdates streams one gradient step per batch to the master while the
// async run is live.
func (s *slave) pushUpdates(master pb.MasterServiceClient) {
	for {
		time.Sleep(100 * time.Millisecond)
		s.mu.Lock()
		if !s.running || s.assignment == nil {
			s.mu.Unlock()
			continue
		}
		from := s.assignment.GetFrom()
		to := min64(from+int64(s.batchSize), s.assignment.GetTo())
		grad := gradientOver(s.weights, from, to, s.dim)
		for j := range grad {
			s.weights[j] -= grad[j]
		}
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := master.UpdateGrad(ctx, &pb.GradUpdate{GradUpdate: grad})
		cancel()
		if err != nil {
			log.Printf("update rejected: %v", err)
		}
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func main() {
	masterAddr := "localhost:50051"
	host := "localhost"
	port := 50061
	if len(os.Args) > 1 {
		masterAddr = os.Args[1]
	}
	if len(os.Args) > 2 {
		p, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("bad port: %v", err)
		}
		port = p
	}

	s := &slave{dim: 8}

	lis, err := net.Listen("tcp", host+":"+strconv.Itoa(port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	grpcServer := grpc.NewServer()
	pb.RegisterWorkerServiceServer(grpcServer, s)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("failed to serve: %v", err)
		}
	}()
	log.Printf("slave serving on %s:%d", host, port)

	conn, err := grpc.NewClient(masterAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("failed to connect to master: %v", err)
	}
	defer conn.Close()
	master := pb.NewMasterServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := master.RegisterSlave(ctx, &pb.NodeInfo{Host: host, Port: int32(port)}); err != nil {
		log.Fatalf("failed to register with master: %v", err)
	}
	log.Printf("registered with master at %s", masterAddr)

	s.pushUpdates(master)
}
