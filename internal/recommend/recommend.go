// Package recommend provides static outfit guidance per wear context.
package recommend

import "github.com/jmylchreest/garb/internal/rules"

// DefaultContext is the guide used when a requested context is
// unknown or empty.
const DefaultContext = "casual"

// Guide describes the colours, garment styles and tips suggested for
// a wear context.
type Guide struct {
	Colors []string     `json:"color_suggestions"`
	Styles rules.Styles `json:"style_suggestions"`
	Tips   []string     `json:"recommendations"`
}

// contexts holds the known context names in display order.
var contexts = []string{"formal", "business", "work", "casual", "sport"}

var guides = map[string]Guide{
	"formal": {
		Colors: []string{"black", "white", "gray", "deep-blue", "charcoal"},
		Styles: rules.Styles{Top: "shirt", Bottom: "casual-pants", Shoes: "leather-shoes"},
		Tips: []string{
			"stick to a classic black, white and gray palette",
			"keep the styling formal rather than flashy",
			"leather shoes are the safest choice for formal occasions",
			"keep the overall look clean and understated",
		},
	},
	"business": {
		Colors: []string{"deep-blue", "charcoal", "white", "black"},
		Styles: rules.Styles{Top: "shirt", Bottom: "casual-pants", Shoes: "leather-shoes"},
		Tips: []string{
			"business settings call for a steady, composed look",
			"darker colours read as more professional",
			"keep the outfit neat and tidy",
			"avoid overly bright colours",
		},
	},
	"work": {
		Colors: []string{"white", "blue", "gray", "black"},
		Styles: rules.Styles{Top: "shirt", Bottom: "casual-pants", Shoes: "leather-shoes"},
		Tips: []string{
			"stay professional without losing all personality",
			"a bright accent colour or two works well",
			"comfort matters over a long day",
			"favour breathable fabrics",
		},
	},
	"casual": {
		Colors: []string{"white", "blue", "gray", "black", "brown"},
		Styles: rules.Styles{Top: "t-shirt", Bottom: "jeans", Shoes: "sneakers"},
		Tips: []string{
			"casual settings leave room to experiment",
			"pick pieces you are comfortable in",
			"a wider range of colours works here",
			"it only has to hang together",
		},
	},
	"sport": {
		Colors: []string{"black", "white", "gray", "blue", "red"},
		Styles: rules.Styles{Top: "t-shirt", Bottom: "casual-pants", Shoes: "sneakers"},
		Tips: []string{
			"comfort comes first when training",
			"favour breathable materials",
			"brighter colours are welcome",
			"sneakers are a must",
		},
	},
}

// Lookup returns the guide for a wear context, falling back to the
// casual guide when the context is unknown.
func Lookup(context string) Guide {
	if g, ok := guides[context]; ok {
		return g
	}
	return guides[DefaultContext]
}

// Contexts lists the context names a guide exists for.
func Contexts() []string {
	out := make([]string, len(contexts))
	copy(out, contexts)
	return out
}
