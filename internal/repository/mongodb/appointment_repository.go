package mongodb

import (
	"context"
	"errors"
	"time"

	"doctor-booking/internal/domain/entity"
	domainRepo "doctor-booking/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type appointmentRepository struct {
	appointments *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) domainRepo.AppointmentRepository {
	return &appointmentRepository{appointments: db.Collection(AppointmentsCollection)}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	now := time.Now().UTC()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	_, err := r.appointments.InsertOne(ctx, newAppointmentDocument(appointment))
	return err
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var doc appointmentDocument
	err := r.appointments.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toEntity()
}

func (r *appointmentRepository) FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	cursor, err := r.appointments.Find(ctx, appointmentFilter(filter),
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []appointmentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	appointments := make([]entity.Appointment, 0, len(docs))
	for i := range docs {
		appointment, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *appointment)
	}
	return appointments, nil
}

func appointmentFilter(filter entity.AppointmentFilter) bson.D {
	query := bson.D{}
	if filter.DoctorID != uuid.Nil {
		query = append(query, bson.E{Key: "doctor_id", Value: filter.DoctorID.String()})
	}
	if filter.Date != nil {
		day := filter.Date.UTC().Truncate(24 * time.Hour)
		query = append(query, bson.E{Key: "date", Value: bson.D{
			{Key: "$gte", Value: day},
			{Key: "$lt", Value: day.AddDate(0, 0, 1)},
		}})
	}
	return query
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	appointment.UpdatedAt = time.Now().UTC()
	_, err := r.appointments.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: appointment.ID.String()}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "date", Value: appointment.Date},
			{Key: "start_time", Value: appointment.StartTime},
			{Key: "end_time", Value: appointment.EndTime},
			{Key: "updated_at", Value: appointment.UpdatedAt},
		}}},
	)
	return err
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := r.appointments.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
