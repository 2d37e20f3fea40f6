// Package identity derives the deterministic UUIDs the fee schema uses to
// reference classes and students. The fee tables never hold live foreign keys
// into the classes/students tables; instead every reference is a name-based
// UUID (version 5) recomputed from the stable business key on demand.
package identity

import "github.com/google/uuid"

// Distinct fixed namespaces keep class and student identifiers in separate
// UUID spaces, so a class name can never collide with a username.
var (
	classNamespace   = uuid.MustParse("8e7a4b2c-1f3d-4a6e-9c5b-2d8f0a713e46")
	studentNamespace = uuid.MustParse("3b9f6d81-5c2e-4f7a-8d1c-6e4a9b205f73")
)

// ClassUUID returns the reproducible identifier for a class within a campus.
// The campus id is part of the key: two campuses can both have a "Grade 5".
func ClassUUID(campusID, className string) uuid.UUID {
	return uuid.NewSHA1(classNamespace, []byte(campusID+"/"+className))
}

// StudentUUID returns the reproducible identifier for a student username.
func StudentUUID(username string) uuid.UUID {
	return uuid.NewSHA1(studentNamespace, []byte(username))
}

// IsUUID reports whether s parses as a UUID. Report filters use it to decide
// whether an incoming student identifier is already a ref or a username that
// still needs converting.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
