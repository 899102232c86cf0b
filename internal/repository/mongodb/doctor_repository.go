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
)

type doctorRepository struct {
	doctors      *mongo.Collection
	appointments *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) domainRepo.DoctorRepository {
	return &doctorRepository{
		doctors:      db.Collection(DoctorsCollection),
		appointments: db.Collection(AppointmentsCollection),
	}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	now := time.Now().UTC()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	doc, err := newDoctorDocument(doctor)
	if err != nil {
		return err
	}
	if _, err := r.doctors.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainRepo.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *doctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	cursor, err := r.doctors.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	return decodeDoctors(ctx, cursor)
}

func (r *doctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (r *doctorRepository) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *doctorRepository) findOne(ctx context.Context, filter bson.D) (*entity.Doctor, error) {
	var doc doctorDocument
	err := r.doctors.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toEntity()
}

// Update saves profile fields. The password only changes through UpdatePassword.
func (r *doctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	doctor.UpdatedAt = time.Now().UTC()
	doc, err := newDoctorDocument(doctor)
	if err != nil {
		return err
	}

	set := bson.D{
		{Key: "name", Value: doc.Name},
		{Key: "phone", Value: doc.Phone},
		{Key: "email", Value: doc.Email},
		{Key: "about", Value: doc.About},
		{Key: "specialization", Value: doc.Specialization},
		{Key: "address", Value: doc.Address},
		{Key: "image", Value: doc.Image},
		{Key: "gender", Value: doc.Gender},
		{Key: "birthdate", Value: doc.Birthdate},
		{Key: "is_doctor", Value: doc.IsDoctor},
		{Key: "rating", Value: doc.Rating},
		{Key: "number_of_visitors", Value: doc.NumberOfVisitors},
		{Key: "clinic", Value: doc.Clinic},
		{Key: "fees", Value: doc.Fees},
		{Key: "waiting_time", Value: doc.WaitingTime},
		{Key: "contact_info", Value: doc.ContactInfo},
		{Key: "updated_at", Value: doc.UpdatedAt},
	}

	_, err = r.doctors.UpdateOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainRepo.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *doctorRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) (int64, error) {
	result, err := r.doctors.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "password", Value: hashedPassword},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// Delete removes the doctor together with the appointment slots referencing it
func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, err := r.appointments.DeleteMany(ctx, bson.D{{Key: "doctor_id", Value: id.String()}}); err != nil {
		return 0, err
	}
	result, err := r.doctors.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *doctorRepository) Search(ctx context.Context, criteria entity.DoctorSearchCriteria) ([]entity.Doctor, error) {
	cursor, err := r.doctors.Aggregate(ctx, searchPipeline(criteria))
	if err != nil {
		return nil, err
	}
	return decodeDoctors(ctx, cursor)
}

func decodeDoctors(ctx context.Context, cursor *mongo.Cursor) ([]entity.Doctor, error) {
	var docs []doctorDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	doctors := make([]entity.Doctor, 0, len(docs))
	for i := range docs {
		doctor, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, *doctor)
	}
	return doctors, nil
}
