package models

// Questions where a lower mean value reflects a better health outcome.
var QuestionsBestIsMin = []string{
	"Percent of adults aged 18 years and older who have an overweight classification",
	"Percent of adults aged 18 years and older who have obesity",
	"Percent of adults who engage in no leisure-time physical activity",
	"Percent of adults who report consuming fruit less than one time daily",
	"Percent of adults who report consuming vegetables less than one time daily",
}

// Questions where a higher mean value reflects a better health outcome.
var QuestionsBestIsMax = []string{
	"Percent of adults who achieve at least 150 minutes a week of moderate-intensity " +
		"aerobic physical activity or 75 minutes a week of vigorous-intensity " +
		"aerobic activity (or an equivalent combination)",
	"Percent of adults who achieve at least 150 minutes a week of " +
		"moderate-intensity aerobic physical activity or 75 minutes a " +
		"week of vigorous-intensity aerobic physical activity and engage " +
		"in muscle-strengthening activities on 2 or more days a week",
	"Percent of adults who achieve at least 300 minutes a week of " +
		"moderate-intensity aerobic physical activity or 150 minutes a " +
		"week of vigorous-intensity aerobic activity (or an equivalent combination)",
	"Percent of adults who engage in muscle-strengthening activities on 2 or more days a week",
}

// BestIsMin reports whether lower values are better for the given question.
func BestIsMin(question string) bool {
	return containsString(QuestionsBestIsMin, question)
}

// BestIsMax reports whether higher values are better for the given question.
func BestIsMax(question string) bool {
	return containsString(QuestionsBestIsMax, question)
}

func containsString(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}
