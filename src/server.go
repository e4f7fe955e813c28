package mambo

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	pb "cactus/mambo/src/protobuff"
)

// Master owns the worker registry, the training strategy and the gRPC
// server slaves talk to. One Master trains one model per process lifetime.
type Master struct {
	cfg     *Config
	node    NodeID
	log     hclog.Logger
	data    Dataset
	cluster *Cluster
	trainer Trainer

	server   *grpc.Server
	lis      net.Listener
	stopOnce sync.Once
}

// NewMaster wires a master from its configuration: the cluster registry,
// the run recorder, and the training strategy selected by
// training.mode. Worker stubs are dialed with DialWorker.
func NewMaster(cfg *Config, data Dataset, logger hclog.Logger) (*Master, error) {
	node := NodeID{Host: cfg.Server.Host, Port: cfg.Server.Port}
	cluster := NewCluster(cfg.Cluster.ExpectedNodes, DialWorker, logger)

	var recorder *RunRecorder
	if cfg.GCP.RecordsBucket != "" {
		recorder = NewRunRecorder(cfg.GCP.RecordsBucket, logger)
	}

	c := newCore(data, LinearModel, cluster, logger, recorder)

	dim := 0
	if data.Len() > 0 {
		dim = data[0].Features.Len()
	}

	var trainer Trainer
	switch cfg.Training.Mode {
	case "sync":
		trainer = newSyncTrainer(c, SyncConfig{
			Epochs:         cfg.Training.Epochs,
			BatchSize:      cfg.Training.BatchSize,
			InitialWeights: Zeros(dim),
			Stopping:       DeltaBelow(cfg.Training.ConvergenceEpsilon),
		})
	case "async":
		trainer = newAsyncTrainer(c, AsyncConfig{
			InitialWeights: Zeros(dim),
			MaxSteps:       cfg.Training.MaxSteps,
			Stopping:       DeltaBelow(cfg.Training.ConvergenceEpsilon),
			BatchSize:      cfg.Training.BatchSize,
			Split:          ContiguousSplit,
			CheckEvery:     cfg.Training.CheckEvery,
			LeakCoef:       cfg.Training.LeakCoef,
			Backoff:        monitorBackoff(cfg),
		})
	default:
		return nil, fmt.Errorf("unknown training mode %q", cfg.Training.Mode)
	}

	return &Master{
		cfg:     cfg,
		node:    node,
		log:     logger.Named("master"),
		data:    data,
		cluster: cluster,
		trainer: trainer,
	}, nil
}

// Cluster exposes the registry, mainly for readiness gating.
func (m *Master) Cluster() *Cluster { return m.cluster }

// Fit runs the configured training strategy and surfaces one terminal
// result.
func (m *Master) Fit(ctx context.Context) (GradState, error) {
	return m.trainer.Fit(ctx)
}

// Start binds the RPC server on the configured port. When security is
// enabled the listener speaks TLS with a keypair pulled from Secret Manager
// and every call must carry a valid token.
func (m *Master) Start() error {
	lis, err := net.Listen("tcp", m.node.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", m.node, err)
	}
	m.lis = lis

	var opts []grpc.ServerOption
	if m.cfg.Security.Enabled {
		crt, key, err := GetServerSecrets(m.cfg)
		if err != nil {
			lis.Close()
			return fmt.Errorf("fetching server secrets: %w", err)
		}
		cert, err := tls.X509KeyPair([]byte(crt), []byte(key))
		if err != nil {
			lis.Close()
			return fmt.Errorf("loading server key pair: %w", err)
		}
		creds := credentials.NewTLS(&tls.Config{Certificates: []tls.Certificate{cert}})
		opts = append(opts,
			grpc.Creds(creds),
			grpc.UnaryInterceptor(NewTokenInterceptor(m.cfg)),
		)
	}

	m.server = grpc.NewServer(opts...)
	pb.RegisterMasterServiceServer(m.server, &masterService{master: m})
	reflection.Register(m.server)

	m.log.Info("master listening", "addr", m.node.Addr(), "expected_nodes", m.cfg.Cluster.ExpectedNodes,
		"mode", m.cfg.Training.Mode, "tls", m.cfg.Security.Enabled)
	go func() {
		if err := m.server.Serve(lis); err != nil {
			m.log.Error("grpc server stopped", "error", err)
		}
	}()
	return nil
}

// Stop shuts the server down and releases every resource: in-flight RPCs
// drain, worker stubs close, the port frees. Safe to call more than once;
// main registers it as a shutdown hook.
func (m *Master) Stop() {
	m.stopOnce.Do(func() {
		m.log.Info("master stopping")
		if m.server != nil {
			m.server.GracefulStop()
		}
		m.cluster.Close()
	})
}

// masterService is the gRPC surface of the master.
type masterService struct {
	pb.UnimplementedMasterServiceServer
	master *Master
}

func (s *masterService) RegisterSlave(ctx context.Context, req *pb.NodeInfo) (*pb.Ack, error) {
	node := NodeID{Host: req.GetHost(), Port: int(req.GetPort())}
	if err := s.master.cluster.Register(node); err != nil {
		if errors.Is(err, ErrClusterOverflow) {
			return nil, status.Error(codes.ResourceExhausted, err.Error())
		}
		return nil, status.Error(codes.Unavailable, err.Error())
	}
	return &pb.Ack{Ok: true, Message: "registered"}, nil
}

func (s *masterService) UnregisterSlave(ctx context.Context, req *pb.NodeInfo) (*pb.Ack, error) {
	node := NodeID{Host: req.GetHost(), Port: int(req.GetPort())}
	s.master.cluster.Unregister(node)
	return &pb.Ack{Ok: true, Message: "unregistered"}, nil
}

// UpdateGrad applies one streamed gradient step. Late updates after
// termination still ack so stragglers drain quietly; a sync master rejects
// the call outright.
func (s *masterService) UpdateGrad(ctx context.Context, req *pb.GradUpdate) (*pb.Ack, error) {
	delta, err := NewVec(req.GetGradUpdate())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.master.trainer.HandleGradUpdate(delta); err != nil {
		if errors.Is(err, ErrUnsupportedOnSync) {
			return nil, status.Error(codes.Unimplemented, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &pb.Ack{Ok: true, Message: "update accepted"}, nil
}
