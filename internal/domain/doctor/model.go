package doctor

import "strings"

// ProfileKey is the only key the doctor_profile table accepts.
const ProfileKey = "default"

// Profile maps to the doctor_profile table. There is at most one row.
type Profile struct {
	FirstName  string `db:"first_name" json:"first_name"`
	LastName   string `db:"last_name" json:"last_name"`
	Address    string `db:"address" json:"address"`
	Speciality string `db:"speciality" json:"speciality"`
	Telephone  string `db:"telephone" json:"telephone"`
}

func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
