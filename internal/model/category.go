package model

// Categories is the fixed set of trend categories, in carousel order.
var Categories = []string{
	"tv-shows",
	"movies",
	"cricket",
	"anime",
	"music",
}

// ValidCategories is the allowed category set for lookups and validation.
var ValidCategories = map[string]bool{
	"tv-shows": true,
	"movies":   true,
	"cricket":  true,
	"anime":    true,
	"music":    true,
}

// ImageCategories are the categories whose options map onto searchable media
// and are therefore eligible for image backfill.
var ImageCategories = []string{"movies", "tv-shows"}
