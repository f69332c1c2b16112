package models

import (
	"fmt"
	"time"

	"github.com/finapp2p/backend/internal/domain/person"
)

const dateLayout = "2006-01-02"

// PersonModel is the persistence model for the person table
type PersonModel struct {
	BaseModel
	PersonType             string     `gorm:"type:varchar(10);not null"`
	Name                   string     `gorm:"type:text;not null"`
	Document               *string    `gorm:"type:varchar(20);uniqueIndex:idx_person_document,where:document IS NOT NULL"`
	Email                  *string    `gorm:"type:varchar(100)"`
	BirthDate              *time.Time `gorm:"type:date"`
	FoundationDate         *time.Time `gorm:"type:date"`
	IsActive               bool       `gorm:"not null"`
	RegistrationStatus     *string    `gorm:"type:varchar(10)"`
	RegistrationStatusDate *time.Time `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (PersonModel) TableName() string {
	return "person"
}

// ToDomain converts the row to its domain variant through the wire mapping
func (m *PersonModel) ToDomain() person.Person {
	created, updated := m.Timestamps()
	active := m.IsActive
	row := person.Row{
		ID:                     m.ID,
		PersonType:             m.PersonType,
		Name:                   m.Name,
		Document:               m.Document,
		Email:                  m.Email,
		BirthDate:              formatDate(m.BirthDate),
		FoundationDate:         formatDate(m.FoundationDate),
		IsActive:               &active,
		RegistrationStatus:     m.RegistrationStatus,
		RegistrationStatusDate: formatDate(m.RegistrationStatusDate),
		CreatedAt:              &created,
		UpdatedAt:              updated,
	}
	return row.ToPerson()
}

// FromDomain populates the model from p. Empty documents are stored as NULL so
// they never collide on the unique index.
func (m *PersonModel) FromDomain(p person.Person) error {
	row := person.RowFromPerson(p)
	base := p.Common()

	m.ID = row.ID
	m.PersonType = row.PersonType
	m.Name = row.Name
	m.Document = nil
	if base.Document != "" {
		m.Document = person.StringPtr(base.Document)
	}
	m.Email = row.Email
	m.IsActive = base.IsActive
	m.RegistrationStatus = row.RegistrationStatus
	m.SetTimestamps(base.CreatedAt, base.UpdatedAt)

	var err error
	if m.BirthDate, err = parseDate("birthDate", row.BirthDate); err != nil {
		return err
	}
	if m.FoundationDate, err = parseDate("foundationDate", row.FoundationDate); err != nil {
		return err
	}
	if m.RegistrationStatusDate, err = parseDate("registrationStatusDate", row.RegistrationStatusDate); err != nil {
		return err
	}
	return nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return person.StringPtr(t.Format(dateLayout))
}

// parseDate accepts YYYY-MM-DD and full RFC 3339 timestamps; blank means NULL
func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	v := *s
	if len(v) > len(dateLayout) {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, person.NewValidationError(field, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", v))
	}
	return &t, nil
}
