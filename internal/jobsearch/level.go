package jobsearch

// ExperienceLevel is a coarse seniority bucket understood by the job board.
type ExperienceLevel int

const (
	LevelEntry ExperienceLevel = iota + 1
	LevelAssociate
	LevelMidSenior
	LevelDirector
)

// LevelFromYears buckets years of experience into half-open intervals:
// [0,2) entry, [2,5) associate, [5,10) mid-senior, [10,inf) director.
func LevelFromYears(years float64) ExperienceLevel {
	switch {
	case years < 2:
		return LevelEntry
	case years < 5:
		return LevelAssociate
	case years < 10:
		return LevelMidSenior
	default:
		return LevelDirector
	}
}

// Code returns the value of the experience filter in the search URL.
func (l ExperienceLevel) Code() string {
	switch l {
	case LevelEntry:
		return "2"
	case LevelAssociate:
		return "3"
	case LevelMidSenior:
		return "4"
	case LevelDirector:
		return "5"
	default:
		return ""
	}
}

func (l ExperienceLevel) String() string {
	switch l {
	case LevelEntry:
		return "entry"
	case LevelAssociate:
		return "associate"
	case LevelMidSenior:
		return "mid-senior"
	case LevelDirector:
		return "director"
	default:
		return "unknown"
	}
}
