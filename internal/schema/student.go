package schema

import "time"

// StudentInput is the validated payload for enrolling or updating a student.
type StudentInput struct {
	Name      string     `json:"name" validate:"required,min=2,max=120"`
	Email     string     `json:"email" validate:"required,email"`
	Phone     string     `json:"phone" validate:"omitempty,min=8,max=20"`
	BirthDate *time.Time `json:"birthDate"`
}

func ParseStudentInput(form map[string]string) (StudentInput, error) {
	in := StudentInput{
		Name:  form["name"],
		Email: form["email"],
		Phone: form["phone"],
	}
	fields := Errors{}

	if raw := form["birthDate"]; raw != "" {
		birth, err := time.Parse(dateLayout, raw)
		if err != nil {
			fields.Add("birthDate", "birthDate must be a date in YYYY-MM-DD format")
		} else {
			in.BirthDate = &birth
		}
	}

	if err := checkInto(fields, in); err != nil {
		return in, err
	}
	if len(fields) > 0 {
		return in, fields
	}
	return in, nil
}
