package grpc

import (
	"context"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/pricing"
	"github.com/DRSN-tech/price-compare/internal/render"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ComparisonServiceName     = "pricecompare.v1.ComparisonService"
	CompareFullMethod         = "/" + ComparisonServiceName + "/Compare"
	ProductSeriesFullMethod   = "/" + ComparisonServiceName + "/ProductSeries"
	comparisonServiceMetadata = "pricecompare/v1/comparison.proto"
)

// ComparisonServiceServer — сервис сравнения цен. Сообщения передаются как google.protobuf.Struct.
type ComparisonServiceServer interface {
	Compare(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ProductSeries(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var comparisonServiceDesc = grpc.ServiceDesc{
	ServiceName: ComparisonServiceName,
	HandlerType: (*ComparisonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Compare", Handler: compareHandler},
		{MethodName: "ProductSeries", Handler: productSeriesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: comparisonServiceMetadata,
}

func RegisterComparisonServiceServer(s grpc.ServiceRegistrar, srv ComparisonServiceServer) {
	s.RegisterService(&comparisonServiceDesc, srv)
}

func compareHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return unaryHandler(srv, ctx, dec, interceptor, CompareFullMethod, ComparisonServiceServer.Compare)
}

func productSeriesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return unaryHandler(srv, ctx, dec, interceptor, ProductSeriesFullMethod, ComparisonServiceServer.ProductSeries)
}

func unaryHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
	fullMethod string,
	call func(ComparisonServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return call(srv.(ComparisonServiceServer), ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return call(srv.(ComparisonServiceServer), ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}

// ComparisonServiceClient — клиент сервиса сравнения цен.
type ComparisonServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewComparisonServiceClient(cc grpc.ClientConnInterface) *ComparisonServiceClient {
	return &ComparisonServiceClient{cc: cc}
}

func (c *ComparisonServiceClient) Compare(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CompareFullMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *ComparisonServiceClient) ProductSeries(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ProductSeriesFullMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

type ComparisonService struct {
	comparisonUC usecase.ComparisonUC
	logger       logger.Logger
}

func NewComparisonService(comparisonUC usecase.ComparisonUC, logger logger.Logger) *ComparisonService {
	return &ComparisonService{comparisonUC: comparisonUC, logger: logger}
}

// Compare принимает {query} и возвращает {query, guest, cached, products}.
func (g *ComparisonService) Compare(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.Compare"

	session, err := sessionFromContext(ctx)
	if err != nil {
		return nil, GRPCErrorResponse(err)
	}

	res, err := g.comparisonUC.Compare(ctx, usecase.NewCompareReq(session, stringField(req, "query")))
	if err != nil {
		g.logger.Warnf("%s: %v", op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	products := make([]any, 0, len(res.Views))
	for _, v := range res.Views {
		products = append(products, toGRPCProduct(v.Product, v.Lowest, v.Series))
	}

	out, err := structpb.NewStruct(map[string]any{
		"query":    res.Query,
		"guest":    res.Guest,
		"cached":   res.Cached,
		"products": products,
	})
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(err)
	}

	return out, nil
}

// ProductSeries принимает {query, product_id} и возвращает товар с рядом цен.
func (g *ComparisonService) ProductSeries(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.ProductSeries"

	session, err := sessionFromContext(ctx)
	if err != nil {
		return nil, GRPCErrorResponse(err)
	}

	res, err := g.comparisonUC.ProductSeries(ctx, usecase.NewProductSeriesReq(session, stringField(req, "query"), stringField(req, "product_id")))
	if err != nil {
		g.logger.Warnf("%s: %v", op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	out, err := structpb.NewStruct(toGRPCProduct(res.Product, &res.Lowest, &res.Series))
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(err)
	}

	return out, nil
}

func stringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}

	return s.GetFields()[key].GetStringValue()
}

func toGRPCPricePoint(store string, price domain.Money, cheapest bool) map[string]any {
	return map[string]any{
		"store":    store,
		"price":    render.FormatPrice(price),
		"pence":    int64(price),
		"cheapest": cheapest,
	}
}

// toGRPCProduct собирает товар для Struct. Отсутствие цен передаётся как null, а не как нулевая цена.
func toGRPCProduct(product domain.Product, lowest *domain.PriceObservation, series *pricing.Series) map[string]any {
	var lowestValue any
	if lowest != nil {
		lowestValue = toGRPCPricePoint(lowest.Store, lowest.Price, true)
	}

	points := []any{}
	if series != nil {
		for _, p := range series.Points {
			points = append(points, toGRPCPricePoint(p.Store, p.Price, p.Cheapest))
		}
	}

	return map[string]any{
		"id":       product.ID,
		"name":     product.Name,
		"category": product.Category,
		"lowest":   lowestValue,
		"series":   points,
	}
}
