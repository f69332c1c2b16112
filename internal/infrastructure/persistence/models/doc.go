// Package models contains GORM persistence models that map to database tables.
// They are kept apart from the domain types so the domain stays free of ORM
// tags; ToDomain and FromDomain convert between the two.
package models
