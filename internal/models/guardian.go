package models

// Guardian type ids from the reference catalog.
const (
	GuardianTypeMother        = 1
	GuardianTypeFather        = 2
	GuardianTypeGrandmother   = 5
	GuardianTypeGrandfather   = 6
	GuardianTypeAunt          = 7
	GuardianTypeUncle         = 8
	GuardianTypeLegalGuardian = 9
	GuardianTypeOther         = 10
)

// Guardian represents an adult responsible for one or more students.
type Guardian struct {
	ID        int    `db:"guardian_id" json:"guardian_id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone"`
}

// StudentGuardian links a student to a guardian. Siblings (same family id)
// share guardian rows rather than generating duplicates.
type StudentGuardian struct {
	StudentID      int    `db:"student_id" json:"student_id"`
	GuardianID     int    `db:"guardian_id" json:"guardian_id"`
	GuardianTypeID int    `db:"guardian_type_id" json:"guardian_type_id"`
	FamilyID       string `db:"family_id" json:"family_id"`
}
