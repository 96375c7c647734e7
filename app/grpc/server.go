package grpc

import (
	"context"
	"strings"

	"github.com/vibast-solutions/ms-go-club/app/access"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/service"
	"github.com/vibast-solutions/ms-go-club/app/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type expiryRunner interface {
	Run(ctx context.Context) (*service.ExpiryRunResult, error)
}

// Server answers internal calls from sibling services: access checks for a role and
// on-demand membership expiry runs.
type Server struct {
	expiry expiryRunner
}

func NewServer(expiry expiryRunner) *Server {
	return &Server{expiry: expiry}
}

// CheckAccess expects {"role": string, "allowed_roles": [string]}. A missing role is an
// anonymous caller, an unknown role is denied.
func (s *Server) CheckAccess(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	allowedValue, ok := fields["allowed_roles"]
	if ok && allowedValue.GetListValue() == nil {
		return nil, status.Error(codes.InvalidArgument, "allowed_roles must be a list")
	}
	names := make([]string, 0)
	for _, v := range allowedValue.GetListValue().GetValues() {
		names = append(names, v.GetStringValue())
	}

	decision := access.DecisionRedirectLogin
	if raw := strings.TrimSpace(fields["role"].GetStringValue()); raw != "" {
		role, err := entity.ParseRole(raw)
		if err != nil {
			loggerWithContext(ctx).WithField("role", raw).Debug("Unknown role denied")
			decision = access.DecisionForbidden
		} else {
			decision = access.Decide(&role, access.ResolveRoles(names...))
		}
	}

	return structpb.NewStruct(map[string]interface{}{
		"decision": decision.String(),
		"admitted": decision == access.DecisionAdmit,
	})
}

func (s *Server) RunMembershipExpiryNotifications(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	result, err := s.expiry.Run(ctx)
	if err != nil {
		loggerWithContext(ctx).WithError(err).Error("Membership expiry run failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return structpb.NewStruct(map[string]interface{}{
		"sent":         result.Sent,
		"skipped":      result.Skipped,
		"failed":       result.Failed,
		"window_start": result.WindowStart.Format(types.DateLayout),
		"window_end":   result.WindowEnd.Format(types.DateLayout),
	})
}
