package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"doctor-booking/internal/domain/entity"
	domainRepo "doctor-booking/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type auditLogRepository struct {
	logs *mongo.Collection
}

func NewAuditLogRepository(db *mongo.Database) domainRepo.AuditLogRepository {
	return &auditLogRepository{logs: db.Collection(AuditLogsCollection)}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = time.Now().UTC()

	_, err := r.logs.InsertOne(ctx, auditLogDocument{
		ID:        log.ID.String(),
		Action:    log.Action,
		Entity:    log.Entity,
		EntityID:  log.EntityID,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	})
	return err
}

func (r *auditLogRepository) FindAll(ctx context.Context, filter entity.AuditLogFilter) ([]entity.AuditLog, error) {
	cursor, err := r.logs.Find(ctx, auditLogFilter(filter), options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var docs []auditLogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	logs := make([]entity.AuditLog, 0, len(docs))
	for _, doc := range docs {
		log, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		logs = append(logs, *log)
	}
	return logs, nil
}

func auditLogFilter(filter entity.AuditLogFilter) bson.D {
	query := bson.D{}
	if filter.Entity != "" {
		query = append(query, bson.E{Key: "entity", Value: filter.Entity})
	}
	if filter.EntityID != "" {
		query = append(query, bson.E{Key: "entity_id", Value: filter.EntityID})
	}
	if filter.Action != "" {
		query = append(query, bson.E{Key: "action", Value: filter.Action})
	}
	return query
}

func (r *auditLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AuditLog, error) {
	var doc auditLogDocument
	err := r.logs.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toEntity()
}

func (doc auditLogDocument) toEntity() (*entity.AuditLog, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parse audit log id %q: %w", doc.ID, err)
	}
	return &entity.AuditLog{
		ID:        id,
		Action:    doc.Action,
		Entity:    doc.Entity,
		EntityID:  doc.EntityID,
		Metadata:  entity.JSON(doc.Metadata),
		CreatedAt: doc.CreatedAt,
	}, nil
}
