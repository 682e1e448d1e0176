// Package models holds the GORM models behind the site's three submission
// tables. Domain types carry no ORM tags; each model converts with
// ToDomain and FromDomain.
package models
