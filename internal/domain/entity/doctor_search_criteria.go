package entity

import "strings"

// DoctorSearchCriteria holds the optional constraints of a doctor search.
// The zero value matches every doctor. Values are immutable: every With*
// method returns a modified copy.
type DoctorSearchCriteria struct {
	specialization    string
	city              string
	nameQuery         string
	hasSpecialization bool
	hasCity           bool
	hasNameQuery      bool
}

func NewDoctorSearchCriteria() DoctorSearchCriteria {
	return DoctorSearchCriteria{}
}

// WithSpecialization requires an exact, case-sensitive specialization match
func (c DoctorSearchCriteria) WithSpecialization(specialization string) DoctorSearchCriteria {
	c.specialization = specialization
	c.hasSpecialization = true
	return c
}

// WithCity requires an exact match on the address city
func (c DoctorSearchCriteria) WithCity(city string) DoctorSearchCriteria {
	c.city = city
	c.hasCity = true
	return c
}

// WithNameQuery requires the doctor name to contain query, ignoring case
func (c DoctorSearchCriteria) WithNameQuery(query string) DoctorSearchCriteria {
	c.nameQuery = query
	c.hasNameQuery = true
	return c
}

func (c DoctorSearchCriteria) Specialization() (string, bool) {
	return c.specialization, c.hasSpecialization
}

func (c DoctorSearchCriteria) City() (string, bool) {
	return c.city, c.hasCity
}

func (c DoctorSearchCriteria) NameQuery() (string, bool) {
	return c.nameQuery, c.hasNameQuery
}

// IsEmpty reports whether no constraint is set
func (c DoctorSearchCriteria) IsEmpty() bool {
	return !c.hasSpecialization && !c.hasCity && !c.hasNameQuery
}

// Matches is the reference predicate for search: every DoctorRepository.Search
// must return exactly the doctors it accepts. The store tests of both backends
// check their result sets against it.
func (c DoctorSearchCriteria) Matches(d *Doctor) bool {
	if c.hasSpecialization && d.Specialization != c.specialization {
		return false
	}
	if c.hasCity && d.Address.City != c.city {
		return false
	}
	if c.hasNameQuery && !containsFold(d.Name, c.nameQuery) {
		return false
	}
	return true
}

// containsFold reports whether substr is within s, ignoring case
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
