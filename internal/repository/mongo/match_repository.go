package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/repository"
)

type matchDoc struct {
	ID          string    `bson:"_id"`
	ViewerID    string    `bson:"viewerId"`
	CandidateID string    `bson:"candidateId"`
	Score       int       `bson:"score"`
	Explanation *string   `bson:"explanation,omitempty"`
	CreatedAt   time.Time `bson:"createdAt"`
}

// matchDocID keys one record per ordered pair, like matches/{viewer}/matched_with/{candidate}.
func matchDocID(viewerID, candidateID string) string {
	return viewerID + "/" + candidateID
}

type matchRepository struct {
	coll *mongo.Collection
}

func NewMatchRepository(db *mongo.Database) repository.MatchRepository {
	return &matchRepository{coll: db.Collection(matchesCollection)}
}

func (r *matchRepository) Store(ctx context.Context, match *domain.MatchRecord) error {
	id := matchDocID(match.ViewerID, match.CandidateID)
	doc := matchDoc{
		ID:          id,
		ViewerID:    match.ViewerID,
		CandidateID: match.CandidateID,
		Score:       match.Score,
		Explanation: match.Explanation,
		CreatedAt:   match.Timestamp,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("failed to store match: %w", err)
	}
	return nil
}

func (r *matchRepository) Get(ctx context.Context, viewerID, candidateID string) (*domain.MatchRecord, error) {
	var doc matchDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": matchDocID(viewerID, candidateID)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *matchRepository) ListByViewer(ctx context.Context, viewerID string) ([]*domain.MatchRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "candidateId", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"viewerId": viewerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []matchDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}
	matches := make([]*domain.MatchRecord, 0, len(docs))
	for _, d := range docs {
		matches = append(matches, d.toDomain())
	}
	return matches, nil
}

func (d matchDoc) toDomain() *domain.MatchRecord {
	return &domain.MatchRecord{
		ViewerID:    d.ViewerID,
		CandidateID: d.CandidateID,
		Score:       d.Score,
		Explanation: d.Explanation,
		Timestamp:   d.CreatedAt,
	}
}
