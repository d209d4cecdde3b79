package valuation

import "strings"

const unknownProductKey = "unknown"

// productKeywords are checked in this order, not by position in the title.
var productKeywords = []string{ //nolint:gochecknoglobals
	"iphone",
	"macbook",
	"ps5",
	"xbox",
	"ipad",
	"laptop",
	"tv",
	"camera",
	"switch",
	"airpods",
	"watch",
	"headphones",
}

// ExtractProductKey normalizes a listing title to the key used for reference lookups.
func ExtractProductKey(title string) string {
	lower := strings.ToLower(title)

	for _, keyword := range productKeywords {
		if strings.Contains(lower, keyword) {
			return keyword
		}
	}

	fields := strings.Fields(lower)
	if len(fields) == 0 {
		return unknownProductKey
	}

	return fields[0]
}
