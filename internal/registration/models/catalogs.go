package models

// TagOther marks the free-text "other" choice inside an array answer. The
// companion *Other field carries the text itself.
const TagOther = "other"

// MaxImportantFeatures caps how many important features a respondent may
// select. The cap is a product rule enforced by the intake form; the server
// accepts larger sets from older form variants.
const MaxImportantFeatures = 2

// Fixed answer catalogs shown by the intake form. Free-form tags outside
// these lists are still stored as-is.
var (
	PetTypes = []string{"Dog", "Cat"}

	SafetyWorries = []string{
		"Getting lost",
		"Stolen",
		"Injured while outside",
	}

	ImportantFeatures = []string{
		"GPS tracking accuracy",
		"Long battery life",
		"Geofencing alerts (when pet leaves safe zone)",
		"Small & comfortable device size",
		"Mobile app usability",
		"Price",
	}

	ExpectedChallenges = []string{
		"Complicated setup",
		"Battery charging too often",
		"Weak signal or GPS coverage",
		"Not comfortable for my pet",
	}
)
