package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/explora/travel-booking/internal/core/domain"
)

type ReservationRepository struct {
	coll *mongo.Collection
	ids  *sequence
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{coll: db.Collection(reservationsCollection), ids: newSequence(db, reservationsCollection)}
}

type reservationDoc struct {
	ID            int64     `bson:"_id"`
	UserID        int64     `bson:"user_id"`
	DestinationID int64     `bson:"destination_id"`
	People        int       `bson:"people"`
	CheckIn       time.Time `bson:"check_in"`
	CheckOut      time.Time `bson:"check_out"`
	TotalPrice    float64   `bson:"total_price"`
	CreatedAt     time.Time `bson:"created_at"`
}

func newReservationDoc(id int64, r *domain.Reservation, now time.Time) reservationDoc {
	return reservationDoc{
		ID:            id,
		UserID:        r.UserID,
		DestinationID: r.DestinationID,
		People:        r.People,
		CheckIn:       r.CheckIn.Time,
		CheckOut:      r.CheckOut.Time,
		TotalPrice:    r.TotalPrice,
		CreatedAt:     now.UTC().Truncate(time.Millisecond),
	}
}

func (d reservationDoc) toDomain() domain.Reservation {
	return domain.Reservation{
		ID:            d.ID,
		UserID:        d.UserID,
		DestinationID: d.DestinationID,
		People:        d.People,
		CheckIn:       domain.DateOf(d.CheckIn.UTC()),
		CheckOut:      domain.DateOf(d.CheckOut.UTC()),
		TotalPrice:    d.TotalPrice,
		CreatedAt:     d.CreatedAt.UTC(),
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}

	doc := newReservationDoc(id, res, time.Now())
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}
	created := doc.toDomain()
	return &created, nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	var docs []reservationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}

	out := make([]domain.Reservation, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
