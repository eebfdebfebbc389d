package grpc

// proto.go defines the gRPC server interface for bib/offer/v1/offer.proto.
// Messages are the application DTOs, carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/offer-engine/internal/application/dto"
)

const serviceName = "bib.offer.v1.OfferService"

// OfferServiceServer is the server API for OfferService.
type OfferServiceServer interface {
	OpenSession(context.Context, *dto.OpenSessionRequest) (*dto.SessionResponse, error)
	SelectTenure(context.Context, *dto.SelectTenureRequest) (*dto.SessionResponse, error)
	ReconcileSlider(context.Context, *dto.ReconcileSliderRequest) (*dto.ReconcileSliderResponse, error)
	GetSession(context.Context, *dto.GetSessionRequest) (*dto.SessionResponse, error)
	AcceptOffer(context.Context, *dto.AcceptOfferRequest) (*dto.AcceptOfferResponse, error)
	GetAcceptedOffer(context.Context, *dto.GetAcceptedOfferRequest) (*dto.AcceptedOfferResponse, error)
	QuoteInstallment(context.Context, *dto.QuoteInstallmentRequest) (*dto.QuoteInstallmentResponse, error)
	mustEmbedUnimplementedOfferServiceServer()
}

// UnimplementedOfferServiceServer provides forward-compatible default implementations.
type UnimplementedOfferServiceServer struct{}

func (UnimplementedOfferServiceServer) OpenSession(context.Context, *dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method OpenSession not implemented")
}
func (UnimplementedOfferServiceServer) SelectTenure(context.Context, *dto.SelectTenureRequest) (*dto.SessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SelectTenure not implemented")
}
func (UnimplementedOfferServiceServer) ReconcileSlider(context.Context, *dto.ReconcileSliderRequest) (*dto.ReconcileSliderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReconcileSlider not implemented")
}
func (UnimplementedOfferServiceServer) GetSession(context.Context, *dto.GetSessionRequest) (*dto.SessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSession not implemented")
}
func (UnimplementedOfferServiceServer) AcceptOffer(context.Context, *dto.AcceptOfferRequest) (*dto.AcceptOfferResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AcceptOffer not implemented")
}
func (UnimplementedOfferServiceServer) GetAcceptedOffer(context.Context, *dto.GetAcceptedOfferRequest) (*dto.AcceptedOfferResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAcceptedOffer not implemented")
}
func (UnimplementedOfferServiceServer) QuoteInstallment(context.Context, *dto.QuoteInstallmentRequest) (*dto.QuoteInstallmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method QuoteInstallment not implemented")
}
func (UnimplementedOfferServiceServer) mustEmbedUnimplementedOfferServiceServer() {}

// RegisterOfferServiceServer registers srv with the gRPC server.
func RegisterOfferServiceServer(s grpclib.ServiceRegistrar, srv OfferServiceServer) {
	s.RegisterService(&offerServiceDesc, srv)
}

// FullMethod returns the fully qualified name of an OfferService method.
func FullMethod(method string) string {
	return "/" + serviceName + "/" + method
}

var offerServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*OfferServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "OpenSession", Handler: unaryHandler("OpenSession", OfferServiceServer.OpenSession)},
		{MethodName: "SelectTenure", Handler: unaryHandler("SelectTenure", OfferServiceServer.SelectTenure)},
		{MethodName: "ReconcileSlider", Handler: unaryHandler("ReconcileSlider", OfferServiceServer.ReconcileSlider)},
		{MethodName: "GetSession", Handler: unaryHandler("GetSession", OfferServiceServer.GetSession)},
		{MethodName: "AcceptOffer", Handler: unaryHandler("AcceptOffer", OfferServiceServer.AcceptOffer)},
		{MethodName: "GetAcceptedOffer", Handler: unaryHandler("GetAcceptedOffer", OfferServiceServer.GetAcceptedOffer)},
		{MethodName: "QuoteInstallment", Handler: unaryHandler("QuoteInstallment", OfferServiceServer.QuoteInstallment)},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "bib/offer/v1/offer.proto",
}

// unaryHandler adapts a typed service method to grpc.MethodDesc.Handler.
func unaryHandler[Req, Resp any](
	method string,
	call func(OfferServiceServer, context.Context, *Req) (*Resp, error),
) grpclib.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(OfferServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(OfferServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
