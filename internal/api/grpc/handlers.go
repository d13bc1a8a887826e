package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"netmonitor/internal/auth"
	"netmonitor/internal/domain"
	"netmonitor/internal/screen"
	"netmonitor/pkg/api"
)

// Handler implements api.ScreenServiceServer on top of the screen controller.
type Handler struct {
	api.UnimplementedScreenServiceServer

	screen   screen.Service
	verifier *auth.Verifier
}

// NewHandler creates a Handler. A nil verifier leaves PushTelemetry open.
func NewHandler(svc screen.Service, verifier *auth.Verifier) *Handler {
	if verifier == nil {
		verifier = auth.NewVerifier("")
	}
	return &Handler{screen: svc, verifier: verifier}
}

func (h *Handler) GetScreen(ctx context.Context, _ *api.ScreenRequest) (*api.ScreenView, error) {
	return h.view(ctx, h.screen.Snapshot)
}

func (h *Handler) GrantPermission(ctx context.Context, _ *api.ScreenRequest) (*api.ScreenView, error) {
	return h.view(ctx, h.screen.Grant)
}

func (h *Handler) Refresh(ctx context.Context, _ *api.ScreenRequest) (*api.ScreenView, error) {
	return h.view(ctx, h.screen.Refresh)
}

func (h *Handler) Pull(ctx context.Context, _ *api.ScreenRequest) (*api.ScreenView, error) {
	return h.view(ctx, h.screen.Pull)
}

func (h *Handler) Export(ctx context.Context, _ *api.ScreenRequest) (*api.ExportResponse, error) {
	text, err := h.screen.Export(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ExportResponse{Text: text}, nil
}

// PushTelemetry accepts a sample from a hardware bridge. When a token secret
// is configured the call must carry "authorization: Bearer <token>" metadata.
func (h *Handler) PushTelemetry(ctx context.Context, req *api.PushTelemetryRequest) (*api.ScreenView, error) {
	if h.verifier.Enabled() {
		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("authorization"); len(values) > 0 {
				header = values[0]
			}
		}
		if _, err := h.verifier.VerifyHeader(header); err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
	}
	if req.GetSample() == nil {
		return nil, status.Error(codes.InvalidArgument, domain.ErrInvalidPayload.Error())
	}

	view, err := h.screen.Ingest(ctx, toSample(req.GetSample()))
	if err != nil {
		return nil, toStatus(err)
	}
	return toView(view), nil
}

// Watch streams the current view followed by every change until the client
// goes away or the screen stops.
func (h *Handler) Watch(_ *api.ScreenRequest, stream api.ScreenService_WatchServer) error {
	ctx := stream.Context()

	views, cancel := h.screen.Subscribe()
	defer cancel()

	current, err := h.screen.Snapshot(ctx)
	if err != nil {
		return toStatus(err)
	}
	if err := stream.Send(toView(current)); err != nil {
		return err
	}

	lastSeq := current.Seq
	for {
		select {
		case <-ctx.Done():
			return nil
		case view, ok := <-views:
			if !ok {
				return status.Error(codes.Unavailable, domain.ErrStopped.Error())
			}
			if view.Seq < lastSeq {
				continue
			}
			lastSeq = view.Seq
			if err := stream.Send(toView(view)); err != nil {
				return err
			}
		}
	}
}

func (h *Handler) view(ctx context.Context, op func(context.Context) (screen.View, error)) (*api.ScreenView, error) {
	view, err := op(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return toView(view), nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrLocked):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrStopped):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, domain.ErrInvalidPayload):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Errorf(codes.Internal, "screen: %v", err)
	}
}

func toView(v screen.View) *api.ScreenView {
	out := &api.ScreenView{
		Mode:          v.Mode,
		Status:        v.Status,
		Refreshing:    v.Refreshing,
		HardwareMode:  v.HardwareMode,
		SignalPercent: int32(v.SignalPercent),
		Notice:        v.Notice,
		Seq:           v.Seq,
	}
	if v.Sample != nil {
		s := v.Sample
		out.Sample = &api.Sample{
			Operator:   s.Operator,
			Technology: s.Technology,
			CellId:     s.CellID,
			AreaCode:   s.AreaCode,
			Mcc:        s.MCC,
			Mnc:        s.MNC,
			Rssi:       int32(s.RSSI),
			Rsrp:       int32(s.RSRP),
			Rsrq:       int32(s.RSRQ),
			Band:       s.Band,
			Frequency:  s.Frequency,
			CapturedAt: timestamppb.New(s.CapturedAt),
			Origin:     string(s.Origin),
		}
	}
	return out
}

// toSample converts a pushed sample. The capture time is stamped on arrival.
func toSample(s *api.Sample) domain.Sample {
	return domain.Sample{
		Operator:   s.Operator,
		Technology: s.Technology,
		CellID:     s.CellId,
		AreaCode:   s.AreaCode,
		MCC:        s.Mcc,
		MNC:        s.Mnc,
		RSSI:       int(s.Rssi),
		RSRP:       int(s.Rsrp),
		RSRQ:       int(s.Rsrq),
		Band:       s.Band,
		Frequency:  s.Frequency,
	}
}

var _ api.ScreenServiceServer = (*Handler)(nil)
