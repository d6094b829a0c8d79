package rfm

// SegmentDefinition is one entry of the static segment taxonomy. Segment
// identity, the score patterns that select it, the canonical follow-up
// action and the recommended campaign live together so they cannot drift
// apart.
type SegmentDefinition struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Code     string   `json:"code"`
	Patterns []string `json:"patterns"`
	Action   string   `json:"action"`
	Color    string   `json:"color"`

	// Recommendation bundle
	Priority string `json:"priority"`
	Campaign string `json:"campaign"`
	Offer    string `json:"offer"`
}

// Recommendation priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// segments is the reference taxonomy, scanned in declaration order. Pattern
// lists are disjoint; the sum fallback in Classify covers any score string
// missing from every list.
var segments = []SegmentDefinition{
	{
		Key:      "champions",
		Name:     "Champions",
		Code:     "CH",
		Patterns: []string{"555", "554", "545", "544", "455", "454", "445"},
		Action:   "Reward them. They buy often, spend the most and can become early adopters of new products.",
		Color:    "#1D6F42",
		Priority: PriorityHigh,
		Campaign: "VIP Exclusive",
		Offer:    "Early access and a loyalty reward on the next purchase",
	},
	{
		Key:      "loyal",
		Name:     "Loyal Customers",
		Code:     "LO",
		Patterns: []string{"543", "444", "435", "355", "354", "345", "344", "335"},
		Action:   "Upsell higher value products and ask for reviews.",
		Color:    "#2E8B57",
		Priority: PriorityMedium,
		Campaign: "Loyalty Program",
		Offer:    "Points multiplier on the next three orders",
	},
	{
		Key:  "potential_loyalists",
		Name: "Potential Loyalists",
		Code: "PL",
		Patterns: []string{
			"553", "551", "552", "541", "542", "533", "532", "531",
			"453", "452", "451", "442", "441", "433", "432", "431", "423",
			"353", "352", "351", "342", "341", "333", "323",
		},
		Action:   "Offer a membership or loyalty program and recommend related products.",
		Color:    "#3CB371",
		Priority: PriorityMedium,
		Campaign: "Membership Invite",
		Offer:    "Free membership trial",
	},
	{
		Key:      "new_customers",
		Name:     "New Customers",
		Code:     "NC",
		Patterns: []string{"512", "511", "422", "421", "412", "411", "311"},
		Action:   "Provide onboarding support and early success, start building the relationship.",
		Color:    "#4682B4",
		Priority: PriorityLow,
		Campaign: "Welcome Series",
		Offer:    "Discount on the second purchase",
	},
	{
		Key:  "promising",
		Name: "Promising",
		Code: "PR",
		Patterns: []string{
			"525", "524", "523", "522", "521", "515", "514", "513",
			"425", "424", "415", "414", "413", "315", "314", "313",
		},
		Action:   "Create brand awareness and offer free trials.",
		Color:    "#6495ED",
		Priority: PriorityLow,
		Campaign: "Brand Awareness",
		Offer:    "Free sample with the next order",
	},
	{
		Key:      "need_attention",
		Name:     "Need Attention",
		Code:     "NA",
		Patterns: []string{"535", "534", "443", "434", "343", "334", "325", "324"},
		Action:   "Make limited time offers and recommend based on past purchases to reactivate.",
		Color:    "#DAA520",
		Priority: PriorityMedium,
		Campaign: "Reactivation Push",
		Offer:    "Limited time bundle tailored to purchase history",
	},
	{
		Key:      "about_to_sleep",
		Name:     "About To Sleep",
		Code:     "AS",
		Patterns: []string{"331", "321", "312", "221", "213", "231", "241", "251"},
		Action:   "Share valuable resources and recommend popular products at a discount.",
		Color:    "#CD853F",
		Priority: PriorityLow,
		Campaign: "Wake Up Call",
		Offer:    "Discount on bestsellers",
	},
	{
		Key:  "at_risk",
		Name: "At Risk",
		Code: "AR",
		Patterns: []string{
			"255", "254", "253", "252", "245", "244", "243", "242",
			"235", "234", "225", "224", "153", "152", "145", "143",
			"142", "135", "134", "133", "125", "124",
		},
		Action:   "Send personalized reactivation emails, offer renewals and helpful resources.",
		Color:    "#E9712B",
		Priority: PriorityHigh,
		Campaign: "Win-Back",
		Offer:    "Personalized discount on previously bought items",
	},
	{
		Key:      "cant_lose",
		Name:     "Can't Lose Them",
		Code:     "CL",
		Patterns: []string{"155", "154", "144", "214", "215", "115", "114", "113"},
		Action:   "Win them back via renewals or newer products, talk to them directly.",
		Color:    "#C0392B",
		Priority: PriorityHigh,
		Campaign: "Direct Outreach",
		Offer:    "Exclusive comeback deal from an account manager",
	},
	{
		Key:  "hibernating",
		Name: "Hibernating",
		Code: "HI",
		Patterns: []string{
			"332", "322", "233", "232", "223", "222",
			"132", "123", "122", "212", "211",
		},
		Action:   "Offer other relevant products and special discounts, recreate brand value.",
		Color:    "#7F8C8D",
		Priority: PriorityLow,
		Campaign: "Re-Engagement",
		Offer:    "Seasonal discount",
	},
	{
		Key:      "lost",
		Name:     "Lost",
		Code:     "LS",
		Patterns: []string{"111", "112", "121", "131", "141", "151"},
		Action:   "Revive interest with a reach-out campaign, otherwise ignore.",
		Color:    "#95A5A6",
		Priority: PriorityLow,
		Campaign: "Last Chance",
		Offer:    "Deep discount reactivation coupon",
	},
}

// segmentsByKey is derived from segments at init for fallback lookups.
var segmentsByKey = func() map[string]*SegmentDefinition {
	m := make(map[string]*SegmentDefinition, len(segments))
	for i := range segments {
		m[segments[i].Key] = &segments[i]
	}
	return m
}()

// Classify resolves an RFM score string to its segment. The pattern table
// is scanned first, in declaration order; any score string missing from
// every pattern list falls back to banding by the score sum, so the result
// is never empty.
func Classify(rfmScore string, scoreTotal int) SegmentDefinition {
	for i := range segments {
		for _, p := range segments[i].Patterns {
			if p == rfmScore {
				return segments[i]
			}
		}
	}

	switch {
	case scoreTotal >= 12:
		return *segmentsByKey["champions"]
	case scoreTotal >= 9:
		return *segmentsByKey["loyal"]
	case scoreTotal >= 6:
		return *segmentsByKey["need_attention"]
	default:
		return *segmentsByKey["lost"]
	}
}

// Catalog returns a copy of the segment taxonomy for display and reporting
// collaborators.
func Catalog() []SegmentDefinition {
	out := make([]SegmentDefinition, len(segments))
	copy(out, segments)
	for i := range out {
		patterns := make([]string, len(out[i].Patterns))
		copy(patterns, out[i].Patterns)
		out[i].Patterns = patterns
	}
	return out
}
