package enums

// BloodType is the target blood type for a campaign. BloodTypeAll ("Todos")
// marks campaigns open to every donor.
type BloodType string

const (
	BloodTypeAll        BloodType = "Todos"
	BloodTypeOPositive  BloodType = "O+"
	BloodTypeONegative  BloodType = "O-"
	BloodTypeAPositive  BloodType = "A+"
	BloodTypeANegative  BloodType = "A-"
	BloodTypeBPositive  BloodType = "B+"
	BloodTypeBNegative  BloodType = "B-"
	BloodTypeABPositive BloodType = "AB+"
	BloodTypeABNegative BloodType = "AB-"
)

var validBloodTypes = []BloodType{
	BloodTypeAll,
	BloodTypeOPositive,
	BloodTypeONegative,
	BloodTypeAPositive,
	BloodTypeANegative,
	BloodTypeBPositive,
	BloodTypeBNegative,
	BloodTypeABPositive,
	BloodTypeABNegative,
}

// String implements fmt.Stringer.
func (b BloodType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BloodType.
func (b BloodType) IsValid() bool {
	for _, candidate := range validBloodTypes {
		if candidate == b {
			return true
		}
	}
	return false
}
