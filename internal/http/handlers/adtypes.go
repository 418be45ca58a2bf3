package handlers

// AdTypeOption is one selectable transaction type on the post-ad wizard.
type AdTypeOption struct {
	Value    string
	Label    string
	Subtypes []string
}

// adTypesByCategory maps a category slug to the transaction types its wizard
// offers. Plain data, keyed by slug; unknown slugs fall back to "default".
var adTypesByCategory = map[string][]AdTypeOption{
	"vehicles": {
		{Value: "sell", Label: "بيع", Subtypes: []string{"سيارات", "دراجات نارية", "شاحنات", "قطع غيار"}},
		{Value: "buy", Label: "شراء", Subtypes: []string{"سيارات", "دراجات نارية"}},
		{Value: "rent", Label: "تأجير", Subtypes: []string{"سيارات", "باصات"}},
	},
	"real-estate": {
		{Value: "sell", Label: "بيع", Subtypes: []string{"شقق", "بيوت", "أراضي", "محلات تجارية"}},
		{Value: "rent", Label: "إيجار", Subtypes: []string{"شقق", "بيوت", "مكاتب", "مخازن"}},
		{Value: "buy", Label: "مطلوب", Subtypes: []string{"شقق", "أراضي"}},
	},
	"electronics": {
		{Value: "sell", Label: "بيع", Subtypes: []string{"هواتف", "حواسيب", "أجهزة منزلية", "ألعاب"}},
		{Value: "buy", Label: "شراء", Subtypes: []string{"هواتف", "حواسيب"}},
		{Value: "service", Label: "صيانة", Subtypes: []string{"صيانة هواتف", "صيانة حواسيب"}},
	},
	"fashion": {
		{Value: "sell", Label: "بيع", Subtypes: []string{"ملابس رجالية", "ملابس نسائية", "أطفال", "أحذية", "إكسسوارات"}},
	},
	"default": {
		{Value: "sell", Label: "بيع"},
		{Value: "buy", Label: "شراء"},
		{Value: "rent", Label: "تأجير"},
		{Value: "service", Label: "خدمة"},
		{Value: "job", Label: "وظيفة"},
	},
}

// AdTypesFor returns the wizard options for a category slug.
func AdTypesFor(slug string) []AdTypeOption {
	if opts, ok := adTypesByCategory[slug]; ok {
		return opts
	}
	return adTypesByCategory["default"]
}
