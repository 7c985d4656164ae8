package vecstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/dgallion1/booktutor/internal/chunk"
)

// Qdrant backs a Store with a Qdrant server over gRPC. Qdrant owns the
// on-disk persistence; we own the deterministic collection naming.
type Qdrant struct {
	conn        *grpc.ClientConn
	points      qdrant.PointsClient
	collections qdrant.CollectionsClient
}

// ConnectQdrant dials the Qdrant gRPC port (6334 by default).
func ConnectQdrant(addr string) (*Qdrant, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial qdrant %s: %w", addr, err)
	}
	return &Qdrant{
		conn:        conn,
		points:      qdrant.NewPointsClient(conn),
		collections: qdrant.NewCollectionsClient(conn),
	}, nil
}

// Rebuild drops the collection if present and recreates it empty.
func (q *Qdrant) Rebuild(ctx context.Context, collection string, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("rebuild %s: invalid vector dimension %d", collection, dim)
	}
	if _, err := q.collections.Delete(ctx, &qdrant.DeleteCollection{CollectionName: collection}); err != nil {
		if status.Code(err) != codes.NotFound {
			return fmt.Errorf("delete collection %s: %w", collection, err)
		}
	}
	_, err := q.collections.Create(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     uint64(dim),
					Distance: qdrant.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create collection %s: %w", collection, err)
	}
	return nil
}

func (q *Qdrant) Upsert(ctx context.Context, collection string, points []Point) error {
	qdrantPoints := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(pointUUID(p.ID)),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: chunkPayload(p.Chunk),
		}
	}
	resp, err := q.points.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         qdrantPoints,
	})
	if err != nil {
		return fmt.Errorf("upsert %d points into %s: %w", len(points), collection, err)
	}
	st := resp.GetResult().GetStatus()
	if st != qdrant.UpdateStatus_Acknowledged && st != qdrant.UpdateStatus_Completed {
		return fmt.Errorf("upsert into %s: unexpected status %d", collection, st)
	}
	return nil
}

func (q *Qdrant) Query(ctx context.Context, collection string, vector []float32, limit int) ([]Hit, error) {
	resp, err := q.points.Search(ctx, &qdrant.SearchPoints{
		CollectionName: collection,
		Vector:         vector,
		Limit:          uint64(limit),
		WithPayload: &qdrant.WithPayloadSelector{
			SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}
	hits := make([]Hit, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		c, err := chunkFromPayload(point.Payload)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", collection, err)
		}
		hits = append(hits, Hit{Chunk: c, Score: float64(point.Score)})
	}
	return hits, nil
}

func (q *Qdrant) Close() error {
	return q.conn.Close()
}

// pointUUID derives a deterministic UUID from the chunk ID, since
// Qdrant point ids must be UUIDs or integers.
func pointUUID(chunkID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(chunkID)).String()
}

func chunkPayload(c chunk.TextChunk) map[string]*qdrant.Value {
	return map[string]*qdrant.Value{
		"content":     {Kind: &qdrant.Value_StringValue{StringValue: c.Content}},
		"book_title":  {Kind: &qdrant.Value_StringValue{StringValue: c.Metadata.BookTitle}},
		"chapter":     {Kind: &qdrant.Value_StringValue{StringValue: c.Metadata.Chapter}},
		"section":     {Kind: &qdrant.Value_StringValue{StringValue: c.Metadata.Section}},
		"page_number": {Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(c.Metadata.PageNumber)}},
		"source":      {Kind: &qdrant.Value_StringValue{StringValue: c.Metadata.Source}},
		"chunk_id":    {Kind: &qdrant.Value_StringValue{StringValue: c.Metadata.ChunkID}},
	}
}

func chunkFromPayload(payload map[string]*qdrant.Value) (chunk.TextChunk, error) {
	if payload == nil {
		return chunk.TextChunk{}, fmt.Errorf("point has no payload")
	}
	str := func(key string) string {
		if v, ok := payload[key]; ok {
			return v.GetStringValue()
		}
		return ""
	}
	var page int
	if v, ok := payload["page_number"]; ok {
		page = int(v.GetIntegerValue())
	}
	return chunk.TextChunk{
		Content: str("content"),
		Metadata: chunk.Metadata{
			BookTitle:  str("book_title"),
			Chapter:    str("chapter"),
			Section:    str("section"),
			PageNumber: page,
			Source:     str("source"),
			ChunkID:    str("chunk_id"),
		},
	}, nil
}
