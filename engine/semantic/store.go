// Package semantic owns all Qdrant operations for the product index. The
// index stores one point per product: the embedding of its rich text
// representation plus the full record as payload.
package semantic

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/PartDeskAI/partdesk-mvp/engine/catalog"
)

// VectorStore is the sole owner of all Qdrant operations.
type VectorStore struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
}

// New creates a VectorStore connected to Qdrant at the given gRPC address.
func New(addr string, collection string) (*VectorStore, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("semantic: dial qdrant %s: %w", addr, err)
	}
	return &VectorStore{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		collection:  collection,
	}, nil
}

// Close closes the underlying gRPC connection.
func (v *VectorStore) Close() error {
	return v.conn.Close()
}

// EnsureCollection creates the product collection if it doesn't exist.
func (v *VectorStore) EnsureCollection(ctx context.Context, dims int) error {
	list, err := v.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("semantic: list collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == v.collection {
			return nil
		}
	}

	d := uint64(dims)
	_, err = v.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: v.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     d,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("semantic: create collection %s: %w", v.collection, err)
	}
	return nil
}

// Upsert stores product points into Qdrant. Called by the indexer and the
// ingestion pipeline.
func (v *VectorStore) Upsert(ctx context.Context, points []ProductPoint) error {
	if len(points) == 0 {
		return nil
	}

	pts := make([]*pb.PointStruct, len(points))
	for i, p := range points {
		pts[i] = &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: p.ID},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: p.Embedding},
				},
			},
			Payload: productPayload(p.Product),
		}
	}

	wait := true
	_, err := v.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: v.collection,
		Wait:           &wait,
		Points:         pts,
	})
	if err != nil {
		return fmt.Errorf("semantic: upsert %d points: %w", len(points), err)
	}
	return nil
}

// DeleteByPartNumber removes the point for one part. Used for re-indexing.
func (v *VectorStore) DeleteByPartNumber(ctx context.Context, partNumber string) error {
	wait := true
	_, err := v.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: v.collection,
		Wait:           &wait,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{
				Filter: &pb.Filter{
					Must: []*pb.Condition{
						fieldMatch(fieldPartNumber, partNumber),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("semantic: delete part %s: %w", partNumber, err)
	}
	return nil
}

// DeleteAll removes every point in the collection. Used by the indexer
// before a full re-index.
func (v *VectorStore) DeleteAll(ctx context.Context) error {
	wait := true
	_, err := v.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: v.collection,
		Wait:           &wait,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{
				Filter: &pb.Filter{},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("semantic: delete all: %w", err)
	}
	return nil
}

// Search performs k-NN similarity search under the given filter. Results
// carry the decoded product record and its similarity score.
func (v *VectorStore) Search(ctx context.Context, embedding []float32, topK int, filter Filter) ([]Hit, error) {
	req := &pb.SearchPoints{
		CollectionName: v.collection,
		Vector:         embedding,
		Limit:          uint64(topK),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	}
	if cond := filterConditions(filter); len(cond) > 0 {
		req.Filter = &pb.Filter{Must: cond}
	}

	resp, err := v.points.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("semantic: search: %w: %v", catalog.ErrIndex, err)
	}

	hits := make([]Hit, len(resp.GetResult()))
	for i, r := range resp.GetResult() {
		id := r.GetId().GetUuid()
		hits[i] = Hit{
			ID:      id,
			Score:   r.GetScore(),
			Product: productFromPayload(id, r.GetPayload()),
		}
	}
	return hits, nil
}

// filterConditions translates a Filter into Qdrant match conditions. A
// keyword match against the array-valued compatible_models field holds when
// any element equals the keyword, which is exactly the membership semantics
// the retrieval engine needs.
func filterConditions(f Filter) []*pb.Condition {
	var must []*pb.Condition
	if f.Category != "" {
		must = append(must, fieldMatch(fieldCategory, f.Category))
	}
	if f.Brand != "" {
		must = append(must, fieldMatch(fieldBrand, f.Brand))
	}
	if f.PartNumber != "" {
		must = append(must, fieldMatch(fieldPartNumber, f.PartNumber))
	}
	if f.CompatibleModel != "" {
		must = append(must, fieldMatch(fieldCompatibleModels, f.CompatibleModel))
	}
	return must
}

func fieldMatch(key, value string) *pb.Condition {
	return &pb.Condition{
		ConditionOneOf: &pb.Condition_Field{
			Field: &pb.FieldCondition{
				Key: key,
				Match: &pb.Match{
					MatchValue: &pb.Match_Keyword{Keyword: value},
				},
			},
		},
	}
}
