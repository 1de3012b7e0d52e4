package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/explora/travel-booking/internal/core/domain"
)

type DestinationRepository struct {
	coll         *mongo.Collection
	reservations *mongo.Collection
	ids          *sequence
}

func NewDestinationRepository(db *mongo.Database) *DestinationRepository {
	return &DestinationRepository{
		coll:         db.Collection(destinationsCollection),
		reservations: db.Collection(reservationsCollection),
		ids:          newSequence(db, destinationsCollection),
	}
}

type destinationDoc struct {
	ID          int64    `bson:"_id"`
	Name        string   `bson:"name"`
	Description *string  `bson:"description,omitempty"`
	Region      *string  `bson:"region,omitempty"`
	Price       *float64 `bson:"price,omitempty"`
}

func (d destinationDoc) toDomain() domain.Destination {
	return domain.Destination{ID: d.ID, Name: d.Name, Description: d.Description, Region: d.Region, Price: d.Price}
}

// patchUpdate builds the $set document for the fields present in p.
func patchUpdate(p domain.DestinationPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Region != nil {
		set["region"] = *p.Region
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	return bson.M{"$set": set}
}

func (r *DestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}

	var docs []destinationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode destinations: %w", err)
	}

	out := make([]domain.Destination, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *DestinationRepository) Create(ctx context.Context, d *domain.Destination) (*domain.Destination, error) {
	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}

	doc := destinationDoc{ID: id, Name: d.Name, Description: d.Description, Region: d.Region, Price: d.Price}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert destination: %w", err)
	}
	created := doc.toDomain()
	return &created, nil
}

func (r *DestinationRepository) FindByID(ctx context.Context, id int64) (*domain.Destination, error) {
	var doc destinationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDestinationNotFound
		}
		return nil, fmt.Errorf("find destination: %w", err)
	}
	d := doc.toDomain()
	return &d, nil
}

func (r *DestinationRepository) Update(ctx context.Context, id int64, patch domain.DestinationPatch) (*domain.Destination, error) {
	if patch.Empty() {
		return r.FindByID(ctx, id)
	}

	var doc destinationDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, patchUpdate(patch),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDestinationNotFound
		}
		return nil, fmt.Errorf("update destination: %w", err)
	}
	d := doc.toDomain()
	return &d, nil
}

// Delete refuses to remove a destination that still has reservations, the
// same rule the relational foreign key enforces.
func (r *DestinationRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.reservations.CountDocuments(ctx, bson.M{"destination_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("count reservations: %w", err)
	}
	if n > 0 {
		return domain.ErrDestinationInUse
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete destination: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDestinationNotFound
	}
	return nil
}
