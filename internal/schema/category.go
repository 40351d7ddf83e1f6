package schema

// CategoryInput is the validated payload for creating or renaming a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,min=2,max=60"`
	Kind string `json:"kind" validate:"required,oneof=EXPENSE REVENUE"`
}

func ParseCategoryInput(form map[string]string) (CategoryInput, error) {
	in := CategoryInput{
		Name: form["name"],
		Kind: form["kind"],
	}
	if err := Check(in); err != nil {
		return in, err
	}
	return in, nil
}
