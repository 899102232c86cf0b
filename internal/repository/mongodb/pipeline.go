package mongodb

import (
	"regexp"

	"doctor-booking/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// searchProjection is the public field set of a search result. Being an
// inclusion projection, anything not listed (password, about, timestamps) is dropped.
var searchProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "name", Value: 1},
	{Key: "phone", Value: 1},
	{Key: "email", Value: 1},
	{Key: "address", Value: 1},
	{Key: "image", Value: 1},
	{Key: "gender", Value: 1},
	{Key: "birthdate", Value: 1},
	{Key: "is_doctor", Value: 1},
	{Key: "specialization", Value: 1},
	{Key: "rating", Value: 1},
	{Key: "number_of_visitors", Value: 1},
	{Key: "clinic", Value: 1},
	{Key: "fees", Value: 1},
	{Key: "waiting_time", Value: 1},
	{Key: "contact_info", Value: 1},
	{Key: "appointments", Value: 1},
}

// searchFilter translates criteria into a $match document
func searchFilter(criteria entity.DoctorSearchCriteria) bson.D {
	filter := bson.D{}

	if specialization, ok := criteria.Specialization(); ok {
		filter = append(filter, bson.E{Key: "specialization", Value: specialization})
	}
	if city, ok := criteria.City(); ok {
		filter = append(filter, bson.E{Key: "address.city", Value: city})
	}
	if nameQuery, ok := criteria.NameQuery(); ok {
		// quoted: the query is a literal substring, not a pattern
		filter = append(filter, bson.E{Key: "name", Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(nameQuery)},
			{Key: "$options", Value: "i"},
		}})
	}

	return filter
}

// appointmentOrder sorts the joined slots; $lookup alone keeps no order.
// localField/foreignField combined with pipeline needs MongoDB 5.0+.
var appointmentOrder = mongo.Pipeline{
	{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}}},
}

// searchPipeline is $match -> $lookup appointments by doctor_id -> $project
func searchPipeline(criteria entity.DoctorSearchCriteria) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: searchFilter(criteria)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: AppointmentsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "doctor_id"},
			{Key: "pipeline", Value: appointmentOrder},
			{Key: "as", Value: "appointments"},
		}}},
		{{Key: "$project", Value: searchProjection}},
	}
}
