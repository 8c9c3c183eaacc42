// Package feedgrpc streams decoded order book levels over gRPC. Rather
// than hand-writing and vendoring protoc-generated stubs for a schema
// this repo fully controls, every message on the wire is a
// google.golang.org/protobuf/types/known/structpb.Struct — itself a
// proto.Message, so it rides the standard gRPC proto codec without any
// generated code at all. This trades static field typing for the
// flexibility of field additions without a regeneration step, which
// fits a feed whose row shape is entirely internal.
package feedgrpc

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"itchbook/orderbook"
)

// Server streams ladder rows for a single OrderBook.
type Server struct {
	book *orderbook.OrderBook
}

// NewServer wraps book for streaming.
func NewServer(book *orderbook.OrderBook) *Server {
	return &Server{book: book}
}

// StreamLevels pushes one structpb.Struct per currently-live price
// level across both sides of cid, up to depth on each side, then
// closes the stream. A long-lived feed would instead push on every
// book mutation; this snapshot form is the shape a request/response
// depth query needs.
func (s *Server) StreamLevels(cid orderbook.CID, depth int, send func(*structpb.Struct) error) error {
	for _, side := range [2]orderbook.Side{orderbook.Bid, orderbook.Ask} {
		for n := 0; n < depth; n++ {
			lvl := s.book.NthLevel(cid, side, n)
			if lvl == nil {
				break
			}
			row, err := structpb.NewStruct(map[string]any{
				"cid":         float64(cid),
				"side":        side.String(),
				"rank":        float64(n),
				"price":       lvl.Price.Float64(),
				"total_shares": float64(lvl.TotalShares),
				"order_count": float64(lvl.OrderCount()),
			})
			if err != nil {
				return fmt.Errorf("feedgrpc: building row: %w", err)
			}
			if err := send(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// streamLevelsHandler adapts StreamLevels to a raw gRPC server-stream
// handler: it decodes one *structpb.Struct request naming {cid, depth}
// and streams *structpb.Struct rows back.
func streamLevelsHandler(srv any, stream grpc.ServerStream) error {
	s := srv.(*Server)

	req := &structpb.Struct{}
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	fields := req.GetFields()
	cid := orderbook.CID(fields["cid"].GetNumberValue())
	depth := int(fields["depth"].GetNumberValue())
	if depth <= 0 {
		depth = 5
	}

	return s.StreamLevels(cid, depth, func(row *structpb.Struct) error {
		return stream.SendMsg(row)
	})
}

// ServiceDesc is the hand-assembled gRPC service description: one
// server-streaming method, no generated registration code.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "itchbook.feed.FeedService",
	HandlerType: (*any)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamLevels",
			Handler:       streamLevelsHandler,
			ServerStreams: true,
			ClientStreams: false,
		},
	},
}

// Register attaches Server to gs under ServiceDesc.
func Register(gs *grpc.Server, s *Server) {
	gs.RegisterService(&ServiceDesc, s)
}
