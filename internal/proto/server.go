package proto

import (
	"context"
	"encoding/json"
	"net"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Rogue-Bear-Innovations/brain-back/internal/config"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/models"
	"github.com/Rogue-Bear-Innovations/brain-back/internal/service"
)

// BrainServerImpl serves the public, token-addressed read path. It renders
// the same shapes as the HTTP API.
type BrainServerImpl struct {
	service *service.General
	logger  *zap.SugaredLogger
}

func NewBrainServer(svc *service.General, logger *zap.SugaredLogger) *BrainServerImpl {
	return &BrainServerImpl{
		service: svc,
		logger:  logger,
	}
}

func NewGRPCServer(lc fx.Lifecycle, cfg *config.Config, svc *service.General, logger *zap.SugaredLogger) *BrainServerImpl {
	instance := NewBrainServer(svc, logger)

	grpcServer := grpc.NewServer()
	RegisterSharedBrainServer(grpcServer, instance)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listen := cfg.GRPCListen()
			lis, err := net.Listen("tcp", listen)
			if err != nil {
				return errors.Wrapf(err, "listen %s", listen)
			}
			go func() {
				if err := grpcServer.Serve(lis); err != nil {
					logger.Errorw("failed to serve grpc", "error", err)
				}
			}()
			logger.Infow("GRPC server started", "listen", listen)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping GRPC server.")
			grpcServer.GracefulStop()
			return nil
		},
	})

	return instance
}

func (s *BrainServerImpl) GetSharedContent(ctx context.Context, token *wrapperspb.StringValue) (*structpb.ListValue, error) {
	contents, err := s.service.SharedContent(ctx, token.GetValue())
	if err != nil {
		return nil, s.toStatus("get shared content", err)
	}

	out := &structpb.ListValue{}
	if err := convert(models.NewContentResps(contents), out); err != nil {
		return nil, s.toStatus("convert contents", err)
	}
	return out, nil
}

func (s *BrainServerImpl) GetOwner(ctx context.Context, token *wrapperspb.StringValue) (*structpb.Struct, error) {
	owner, err := s.service.OwnerByToken(ctx, token.GetValue())
	if err != nil {
		return nil, s.toStatus("get owner", err)
	}

	out := &structpb.Struct{}
	if err := convert(models.NewUserResp(owner), out); err != nil {
		return nil, s.toStatus("convert owner", err)
	}
	return out, nil
}

func (s *BrainServerImpl) toStatus(op string, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return status.Error(codes.NotFound, "share link not found")
	}
	s.logger.Errorw(op, "error", err)
	return status.Error(codes.Internal, "internal error")
}

// convert goes through the JSON wire shape so gRPC and HTTP clients see the same fields.
func convert(v interface{}, out proto.Message) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	return protojson.Unmarshal(raw, out)
}
