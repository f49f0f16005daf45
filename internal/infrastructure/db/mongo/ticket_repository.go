package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
	"github.com/nik0sc/esc-ticket-service/internal/core/ports"
)

const (
	collectionTickets  = "tickets"
	collectionCounters = "counters"
)

// TicketRepository persists tickets with sequential integer ids, allocated
// from an atomic counter document so ids stay compatible with the numeric
// ticket ids clients already hold.
type TicketRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{
		col:      db.Collection(collectionTickets),
		counters: db.Collection(collectionCounters),
	}
}

type ticketDoc struct {
	ID           int64      `bson:"_id"`
	Title        string     `bson:"title"`
	Message      string     `bson:"message"`
	Response     string     `bson:"response,omitempty"`
	OpenTime     time.Time  `bson:"open_time"`
	CloseTime    *time.Time `bson:"close_time,omitempty"`
	Priority     *int       `bson:"priority,omitempty"`
	Severity     *int       `bson:"severity,omitempty"`
	OpenerUser   string     `bson:"opener_user"`
	AssignedTeam *int64     `bson:"assigned_team,omitempty"`
	StatusFlag   int        `bson:"status_flag"`
}

func (d *ticketDoc) toDomain() *domain.Ticket {
	return &domain.Ticket{
		ID:           d.ID,
		Title:        d.Title,
		Message:      d.Message,
		Response:     d.Response,
		OpenTime:     d.OpenTime,
		CloseTime:    d.CloseTime,
		Priority:     d.Priority,
		Severity:     d.Severity,
		OpenerUserID: d.OpenerUser,
		AssignedTeam: d.AssignedTeam,
		StatusFlag:   d.StatusFlag,
	}
}

// Create inserts a new ticket document and returns its allocated id.
func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return 0, err
	}

	doc := ticketDoc{
		ID:           id,
		Title:        t.Title,
		Message:      t.Message,
		Response:     t.Response,
		OpenTime:     t.OpenTime,
		CloseTime:    t.CloseTime,
		Priority:     t.Priority,
		Severity:     t.Severity,
		OpenerUser:   t.OpenerUserID,
		AssignedTeam: t.AssignedTeam,
		StatusFlag:   t.StatusFlag,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return 0, err
	}
	return id, nil
}

// FindByID retrieves a ticket by id.
func (r *TicketRepository) FindByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc ticketDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// List returns tickets matching filter, most recently opened first.
func (r *TicketRepository) List(ctx context.Context, filter ports.TicketFilter) ([]*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OpenerUserID != "" {
		query["opener_user"] = filter.OpenerUserID
	}
	if filter.AssignedTeam != nil {
		query["assigned_team"] = *filter.AssignedTeam
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64(filter.Offset))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tickets []*domain.Ticket
	for cur.Next(ctx) {
		var doc ticketDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		tickets = append(tickets, doc.toDomain())
	}
	return tickets, cur.Err()
}

// Update applies the non-nil fields of update to the ticket.
func (r *TicketRepository) Update(ctx context.Context, id int64, update ports.TicketUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Message != nil {
		set["message"] = *update.Message
	}
	if update.Response != nil {
		set["response"] = *update.Response
	}
	if update.CloseTime != nil {
		set["close_time"] = *update.CloseTime
	}
	if update.Priority != nil {
		set["priority"] = *update.Priority
	}
	if update.Severity != nil {
		set["severity"] = *update.Severity
	}
	if update.AssignedTeam != nil {
		set["assigned_team"] = *update.AssignedTeam
	}
	if update.StatusFlag != nil {
		set["status_flag"] = *update.StatusFlag
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

// nextID atomically increments and returns the ticket id counter.
func (r *TicketRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": collectionTickets},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// EnsureIndexes creates the indexes the list queries depend on.
func (r *TicketRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "opener_user", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_team", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
