package constants

// Fallback career triple, used when no grade data exists or the LLM is
// unavailable or errors. The values are fixed so repeated runs agree.
var (
	FallbackCareers      = []string{"Teacher", "Engineer", "Doctor"}
	FallbackStrengths    = []string{"Mathematics", "Science"}
	FallbackImprovements = []string{"Writing", "History"}
)

// Placeholder triple, returned when the LLM answered but its analysis could
// not be parsed into structured fields.
var (
	PlaceholderCareers      = []string{"Software Developer", "Data Analyst", "Teacher"}
	PlaceholderStrengths    = []string{"Mathematics", "Science"}
	PlaceholderImprovements = []string{"Writing", "Communication"}
)
