package grpc

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/quentinrf/crate-monitor/internal/domain"
	"github.com/quentinrf/crate-monitor/internal/ports"
	"github.com/quentinrf/crate-monitor/pkg/cratepb"
)

// CrateServiceHandler implements the gRPC CrateService
type CrateServiceHandler struct {
	cratepb.UnimplementedCrateServiceServer
	rack ports.Rack
}

// NewCrateServiceHandler creates a new gRPC handler
func NewCrateServiceHandler(rack ports.Rack) *CrateServiceHandler {
	return &CrateServiceHandler{
		rack: rack,
	}
}

// GetTemperature reads the thermometer
func (h *CrateServiceHandler) GetTemperature(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.DoubleValue, error) {
	log.Debug().Msg("GetTemperature called")

	if !h.rack.HasTemperature() {
		return nil, status.Error(codes.NotFound, domain.ErrCapabilityAbsent.Error())
	}

	temp, err := h.rack.Temperature(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read temperature")
		return nil, toStatus(err, "failed to read temperature")
	}

	return wrapperspb.Double(temp.Celsius()), nil
}

// GetOccupancy reads all slots
func (h *CrateServiceHandler) GetOccupancy(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	log.Debug().Msg("GetOccupancy called")

	if !h.rack.HasOccupancy() {
		return nil, status.Error(codes.NotFound, domain.ErrCapabilityAbsent.Error())
	}

	grid, err := h.rack.Occupancy(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read occupancy")
		return nil, toStatus(err, "failed to read occupancy")
	}

	return wrapperspb.String(grid.String()), nil
}

// DaemonRunning is a liveness probe
func (h *CrateServiceHandler) DaemonRunning(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("running"), nil
}

// toStatus maps domain errors onto gRPC codes
func toStatus(err error, msg string) error {
	switch {
	case errors.Is(err, domain.ErrCapabilityAbsent):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrReleased):
		return status.Error(codes.Unavailable, msg)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, msg)
	}
}
