package mongodb

import (
	"context"
	"testing"
	"time"

	"doctor-booking/internal/domain/entity"
	domainRepo "doctor-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type searchFixture struct {
	anna  *entity.Doctor
	diana *entity.Doctor
	bob   *entity.Doctor
}

func seedSearchFixture(t *testing.T, doctors domainRepo.DoctorRepository, appointments domainRepo.AppointmentRepository) searchFixture {
	t.Helper()
	ctx := context.Background()

	f := searchFixture{
		anna:  newDoctor("Anna Lee", "anna@example.com", "Cardiology", "Cairo"),
		diana: newDoctor("Diana Cruz", "diana@example.com", "Cardiology", "Giza"),
		bob:   newDoctor("Bob Smith", "bob@example.com", "Dermatology", "Cairo"),
	}
	for _, d := range []*entity.Doctor{f.anna, f.diana, f.bob} {
		require.NoError(t, doctors.Create(ctx, d))
	}

	// inserted out of order
	require.NoError(t, appointments.Create(ctx, newAppointment(f.anna.ID, "2026-10-21", "10:00", "10:30")))
	require.NoError(t, appointments.Create(ctx, newAppointment(f.anna.ID, "2026-10-20", "09:00", "09:30")))
	require.NoError(t, appointments.Create(ctx, newAppointment(f.diana.ID, "2026-10-20", "11:00", "11:30")))

	return f
}

func names(doctors []entity.Doctor) []string {
	out := make([]string, len(doctors))
	for i, d := range doctors {
		out[i] = d.Name
	}
	return out
}

func TestDoctorRepository_CreateAndFind(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewDoctorRepository(db)
	ctx := context.Background()

	doctor := newDoctor("Anna Lee", "anna@example.com", "Cardiology", "Cairo")
	doctor.Fees = decimal.RequireFromString("250.75")
	require.NoError(t, repo.Create(ctx, doctor))
	assert.NotEqual(t, uuid.Nil, doctor.ID)

	byID, err := repo.FindByID(ctx, doctor.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Anna Lee", byID.Name)
	assert.Equal(t, "Cairo", byID.Address.City)
	assert.Equal(t, "$2a$10$hash", byID.Password)
	assert.True(t, byID.Fees.Equal(decimal.RequireFromString("250.75")), byID.Fees.String())

	// ids are stored as strings, not ObjectIDs
	var raw bson.M
	require.NoError(t, db.Collection(DoctorsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: doctor.ID.String()}}).Decode(&raw))
	assert.Equal(t, doctor.ID.String(), raw["_id"])

	byEmail, err := repo.FindByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, doctor.ID, byEmail.ID)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDoctorRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewDoctorRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newDoctor("Anna Lee", "anna@example.com", "Cardiology", "Cairo")))

	err := repo.Create(ctx, newDoctor("Anna Other", "anna@example.com", "Cardiology", "Cairo"))
	assert.ErrorIs(t, err, domainRepo.ErrDuplicateKey)

	bob := newDoctor("Bob Smith", "bob@example.com", "Dermatology", "Cairo")
	require.NoError(t, repo.Create(ctx, bob))
	bob.Email = "anna@example.com"
	assert.ErrorIs(t, repo.Update(ctx, bob), domainRepo.ErrDuplicateKey)
}

func TestDoctorRepository_UpdateKeepsPassword(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewDoctorRepository(db)
	ctx := context.Background()

	doctor := newDoctor("Anna Lee", "anna@example.com", "Cardiology", "Cairo")
	require.NoError(t, repo.Create(ctx, doctor))

	doctor.Clinic = "Nile Clinic"
	doctor.Fees = decimal.RequireFromString("99.90")
	doctor.Password = "should-not-be-written"
	require.NoError(t, repo.Update(ctx, doctor))

	stored, err := repo.FindByID(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nile Clinic", stored.Clinic)
	assert.True(t, stored.Fees.Equal(decimal.RequireFromString("99.9")))
	assert.Equal(t, "$2a$10$hash", stored.Password)

	affected, err := repo.UpdatePassword(ctx, doctor.ID, "$2a$10$new")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	stored, err = repo.FindByID(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$new", stored.Password)

	affected, err = repo.UpdatePassword(ctx, uuid.New(), "$2a$10$new")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestDoctorRepository_DeleteRemovesAppointments(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewDoctorRepository(db)
	appointments := NewAppointmentRepository(db)
	ctx := context.Background()
	f := seedSearchFixture(t, repo, appointments)

	affected, err := repo.Delete(ctx, f.anna.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	left, err := appointments.FindAll(ctx, entity.AppointmentFilter{DoctorID: f.anna.ID})
	require.NoError(t, err)
	assert.Empty(t, left)

	others, err := appointments.FindAll(ctx, entity.AppointmentFilter{DoctorID: f.diana.ID})
	require.NoError(t, err)
	assert.Len(t, others, 1)

	affected, err = repo.Delete(ctx, f.anna.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestDoctorRepository_Search(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewDoctorRepository(db)
	f := seedSearchFixture(t, repo, NewAppointmentRepository(db))
	ctx := context.Background()

	tests := []struct {
		name     string
		criteria entity.DoctorSearchCriteria
		want     []string
	}{
		{"no criteria returns everyone", entity.NewDoctorSearchCriteria(), []string{"Anna Lee", "Diana Cruz", "Bob Smith"}},
		{"specialization exact", entity.NewDoctorSearchCriteria().WithSpecialization("Cardiology"), []string{"Anna Lee", "Diana Cruz"}},
		{"specialization is case sensitive", entity.NewDoctorSearchCriteria().WithSpecialization("cardiology"), []string{}},
		{"city", entity.NewDoctorSearchCriteria().WithCity("Cairo"), []string{"Anna Lee", "Bob Smith"}},
		{"name substring ignores case", entity.NewDoctorSearchCriteria().WithNameQuery("AN"), []string{"Anna Lee", "Diana Cruz"}},
		{"conjunction", entity.NewDoctorSearchCriteria().WithSpecialization("Cardiology").WithCity("Cairo"), []string{"Anna Lee"}},
		{"regex metacharacters are literal", entity.NewDoctorSearchCriteria().WithNameQuery(".*"), []string{}},
		{"no match", entity.NewDoctorSearchCriteria().WithCity("Alexandria"), []string{}},
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doctors, err := repo.Search(ctx, tt.criteria)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, names(doctors))

			// the store agrees with the in-memory predicate
			var expected []string
			for i := range all {
				if tt.criteria.Matches(&all[i]) {
					expected = append(expected, all[i].Name)
				}
			}
			assert.ElementsMatch(t, expected, names(doctors))
		})
	}

	t.Run("join attaches exactly the doctor's appointments in order", func(t *testing.T) {
		doctors, err := repo.Search(ctx, entity.NewDoctorSearchCriteria())
		require.NoError(t, err)
		require.Len(t, doctors, 3)

		for _, d := range doctors {
			for _, a := range d.Appointments {
				assert.Equal(t, d.ID, a.DoctorID)
			}
			switch d.ID {
			case f.anna.ID:
				require.Len(t, d.Appointments, 2)
				assert.Equal(t, "2026-10-20", d.Appointments[0].Date.Format(entity.DateLayout))
				assert.Equal(t, "2026-10-21", d.Appointments[1].Date.Format(entity.DateLayout))
			case f.diana.ID:
				assert.Len(t, d.Appointments, 1)
			case f.bob.ID:
				assert.NotNil(t, d.Appointments)
				assert.Empty(t, d.Appointments)
			}
		}
	})

	t.Run("password is never loaded", func(t *testing.T) {
		doctors, err := repo.Search(ctx, entity.NewDoctorSearchCriteria())
		require.NoError(t, err)
		for _, d := range doctors {
			assert.Empty(t, d.Password)
			assert.True(t, d.Fees.Equal(decimal.NewFromInt(300)))
		}
	})
}

func TestAppointmentRepository_FindAllFilters(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewAppointmentRepository(db)
	f := seedSearchFixture(t, NewDoctorRepository(db), repo)
	ctx := context.Background()

	all, err := repo.FindAll(ctx, entity.AppointmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	annas, err := repo.FindAll(ctx, entity.AppointmentFilter{DoctorID: f.anna.ID})
	require.NoError(t, err)
	require.Len(t, annas, 2)
	assert.Equal(t, "09:00", annas[0].StartTime)
	assert.Equal(t, "10:00", annas[1].StartTime)

	day, _ := time.Parse(entity.DateLayout, "2026-10-20")
	onDay, err := repo.FindAll(ctx, entity.AppointmentFilter{Date: &day})
	require.NoError(t, err)
	assert.Len(t, onDay, 2)

	annaOnDay, err := repo.FindAll(ctx, entity.AppointmentFilter{DoctorID: f.anna.ID, Date: &day})
	require.NoError(t, err)
	require.Len(t, annaOnDay, 1)
	assert.Equal(t, "09:00", annaOnDay[0].StartTime)

	nextDay := day.AddDate(0, 0, 2)
	none, err := repo.FindAll(ctx, entity.AppointmentFilter{Date: &nextDay})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAppointmentRepository_CRUD(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	appointment := newAppointment(uuid.New(), "2026-10-22", "08:00", "08:30")
	require.NoError(t, repo.Create(ctx, appointment))
	assert.NotEqual(t, uuid.Nil, appointment.ID)

	appointment.EndTime = "09:00"
	require.NoError(t, repo.Update(ctx, appointment))

	stored, err := repo.FindByID(ctx, appointment.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "09:00", stored.EndTime)
	assert.Equal(t, "2026-10-22", stored.Date.Format(entity.DateLayout))

	affected, err := repo.Delete(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	stored, err = repo.FindByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestAuditLogRepository_CreateAndFind(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	first := &entity.AuditLog{
		Action:   entity.AuditActionDoctorCreate,
		Entity:   "doctor",
		EntityID: "d1",
		Metadata: entity.JSON{"new_value": map[string]interface{}{"name": "Anna"}},
	}
	require.NoError(t, repo.Create(ctx, first))

	// created_at has millisecond precision in BSON
	time.Sleep(5 * time.Millisecond)
	second := &entity.AuditLog{Action: entity.AuditActionDoctorDelete, Entity: "doctor", EntityID: "d1"}
	require.NoError(t, repo.Create(ctx, second))

	time.Sleep(5 * time.Millisecond)
	other := &entity.AuditLog{Action: entity.AuditActionAppointmentCreate, Entity: "appointment", EntityID: "a1"}
	require.NoError(t, repo.Create(ctx, other))

	stored, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.AuditActionDoctorCreate, stored.Action)
	assert.Equal(t, "doctor", stored.Entity)
	assert.Equal(t, "d1", stored.EntityID)
	// nested documents decode as primitive.M
	assert.EqualValues(t, map[string]interface{}{"name": "Anna"}, stored.Metadata["new_value"])

	logs, err := repo.FindAll(ctx, entity.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, other.ID, logs[0].ID)

	doctorLogs, err := repo.FindAll(ctx, entity.AuditLogFilter{Entity: "doctor", EntityID: "d1"})
	require.NoError(t, err)
	require.Len(t, doctorLogs, 2)
	assert.Equal(t, second.ID, doctorLogs[0].ID)

	creates, err := repo.FindAll(ctx, entity.AuditLogFilter{Action: entity.AuditActionAppointmentCreate})
	require.NoError(t, err)
	require.Len(t, creates, 1)
	assert.Equal(t, other.ID, creates[0].ID)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
