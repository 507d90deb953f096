package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/DRSN-tech/price-compare/internal/cfg"
	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/pricing"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeComparisonUC struct {
	lastSession *domain.Session
	err         error
}

func (f *fakeComparisonUC) Compare(_ context.Context, req *usecase.CompareReq) (*usecase.CompareRes, error) {
	f.lastSession = req.Session
	if f.err != nil {
		return nil, f.err
	}

	set := domain.NewSearchResultSet(req.Query, []domain.Product{
		{ID: "p1", Name: "Milk 2L"},
		{ID: "p2", Name: "Bread"},
	}, map[string][]domain.PriceObservation{
		"p1": {
			domain.NewPriceObservation("p1", "Tesco", 150),
			domain.NewPriceObservation("p1", "Aldi", 130),
		},
	})

	return usecase.NewCompareRes(req.Query, pricing.BuildView(set), req.Session.IsGuest(), false), nil
}

func (f *fakeComparisonUC) ProductSeries(_ context.Context, req *usecase.ProductSeriesReq) (*usecase.ProductSeriesRes, error) {
	if f.err != nil {
		return nil, f.err
	}

	obs := []domain.PriceObservation{domain.NewPriceObservation(req.ProductID, "Lidl", 85)}
	series, _ := pricing.BuildSeries(obs)

	return &usecase.ProductSeriesRes{Product: domain.Product{ID: req.ProductID, Name: "Eggs"}, Lowest: obs[0], Series: series}, nil
}

func startTestServer(t *testing.T, uc usecase.ComparisonUC) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer(&cfg.GRPCConfig{Port: "0", NetworkMode: "tcp"}, logger.NewNopLogger())
	srv.RegisterServices(uc)

	go srv.Serve(lis)
	t.Cleanup(func() { srv.Stop(context.Background()) })

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufconn: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()

	s, err := structpb.NewStruct(m)
	if err != nil {
		t.Fatalf("failed to build struct: %v", err)
	}

	return s
}

func TestComparisonService_Compare(t *testing.T) {
	uc := &fakeComparisonUC{}
	client := NewComparisonServiceClient(startTestServer(t, uc))

	res, err := client.Compare(context.Background(), mustStruct(t, map[string]any{"query": "milk"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !uc.lastSession.IsGuest() {
		t.Error("call without metadata should be a guest search")
	}

	got := res.AsMap()
	if got["query"] != "milk" || got["guest"] != true {
		t.Errorf("unexpected response fields: %v", got)
	}

	products := got["products"].([]any)
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	milk := products[0].(map[string]any)
	lowest := milk["lowest"].(map[string]any)
	if lowest["store"] != "Aldi" || lowest["price"] != "£1.30" || lowest["pence"] != float64(130) {
		t.Errorf("unexpected lowest price: %v", lowest)
	}

	bread := products[1].(map[string]any)
	if bread["lowest"] != nil {
		t.Errorf("product without prices should have null lowest, got %v", bread["lowest"])
	}
	if series := bread["series"].([]any); len(series) != 0 {
		t.Errorf("product without prices should have empty series, got %v", series)
	}
}

func TestComparisonService_CompareWithToken(t *testing.T) {
	uc := &fakeComparisonUC{}
	client := NewComparisonServiceClient(startTestServer(t, uc))

	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer abc")
	if _, err := client.Compare(ctx, mustStruct(t, map[string]any{"query": "milk"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if uc.lastSession.IsGuest() || uc.lastSession.AccessToken != "abc" {
		t.Errorf("expected bearer session, got %+v", uc.lastSession)
	}
}

func TestComparisonService_Errors(t *testing.T) {
	tests := []struct {
		name     string
		auth     string
		ucErr    error
		wantCode codes.Code
	}{
		{name: "empty query", ucErr: e.Wrap("op", e.ErrQueryRequired), wantCode: codes.InvalidArgument},
		{name: "upstream rejects token", ucErr: e.Wrap("op", e.ErrUnauthorized), wantCode: codes.Unauthenticated},
		{name: "upstream down", ucErr: e.Wrap("op", e.ErrUpstreamUnavailable), wantCode: codes.Unavailable},
		{name: "unknown error", ucErr: context.DeadlineExceeded, wantCode: codes.Internal},
		{name: "malformed metadata", auth: "Token abc", wantCode: codes.Unauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewComparisonServiceClient(startTestServer(t, &fakeComparisonUC{err: tt.ucErr}))

			ctx := context.Background()
			if tt.auth != "" {
				ctx = metadata.AppendToOutgoingContext(ctx, "authorization", tt.auth)
			}

			_, err := client.Compare(ctx, mustStruct(t, map[string]any{"query": "milk"}))
			if status.Code(err) != tt.wantCode {
				t.Errorf("expected code %v, got %v (%v)", tt.wantCode, status.Code(err), err)
			}
		})
	}
}

func TestComparisonService_ProductSeries(t *testing.T) {
	client := NewComparisonServiceClient(startTestServer(t, &fakeComparisonUC{}))

	res, err := client.ProductSeries(context.Background(), mustStruct(t, map[string]any{"query": "eggs", "product_id": "p7"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := res.AsMap()
	if got["id"] != "p7" {
		t.Errorf("unexpected product id %v", got["id"])
	}
	if series := got["series"].([]any); len(series) != 1 {
		t.Errorf("expected one price point, got %v", series)
	}
}

func TestGRPCServer_Health(t *testing.T) {
	conn := startTestServer(t, &fakeComparisonUC{})

	res, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ComparisonServiceName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("expected SERVING, got %v", res.GetStatus())
	}
}
