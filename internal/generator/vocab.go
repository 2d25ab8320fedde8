package generator

// Region is one wine region of a country. Code and Appellations are empty in
// vocabularies where appellations are not region-scoped.
type Region struct {
	Name         string
	Code         string
	Appellations []string
}

type Country struct {
	Name    string
	Regions []Region
}

// Vocabulary is the fixed set of categorical values a wine layout draws from.
type Vocabulary struct {
	Countries   []Country
	Colors      []string
	Sweetness   []string
	BottleSizes []float64
	Grapes      []string
	// FlatAppellations is used when regions carry no appellations of their own.
	FlatAppellations []string
}

func (v *Vocabulary) country(name string) *Country {
	for i := range v.Countries {
		if v.Countries[i].Name == name {
			return &v.Countries[i]
		}
	}
	return nil
}

// RegionsOf lists the region names of a country, or nil for an unknown one.
func (v *Vocabulary) RegionsOf(country string) []string {
	c := v.country(country)
	if c == nil {
		return nil
	}
	names := make([]string, len(c.Regions))
	for i, r := range c.Regions {
		names[i] = r.Name
	}
	return names
}

// AppellationsOf lists the appellations valid for a region. For a flat
// vocabulary every region accepts every appellation.
func (v *Vocabulary) AppellationsOf(country, region string) []string {
	c := v.country(country)
	if c == nil {
		return nil
	}
	for _, r := range c.Regions {
		if r.Name != region {
			continue
		}
		if len(r.Appellations) > 0 {
			return r.Appellations
		}
		return v.FlatAppellations
	}
	return nil
}

var catalogVocabulary = Vocabulary{
	Countries: []Country{
		{Name: "France", Regions: []Region{
			{"Rhone", "RHO", []string{"Crozes-Hermitage", "Hermitage", "Cote-Rotie", "Chateauneuf-du-Pape"}},
			{"Bordeaux", "BOR", []string{"Saint-Emilion", "Pomerol", "Graves", "Medoc", "Pauillac"}},
			{"Loire", "LOI", []string{"Vouvray", "Muscadet", "Sancerre", "Chinon"}},
			{"Alsace", "ALS", []string{"Alsace AOC"}},
			{"Provence", "PRO", []string{"Coteaux d'Aix", "Cotes de Provence"}},
			{"Jura", "JUR", []string{"Arbois"}},
			{"Champagne", "CHA", []string{"Champagne AOC"}},
			{"Languedoc", "LAN", []string{"Corbieres", "Minervois", "Faugeres"}},
			{"Beaujolais", "BEA", []string{"Fleurie", "Moulin-a-Vent", "Beaujolais-Villages"}},
			{"Burgundy", "BUR", []string{"Maconnais", "Cote de Beaune", "Cote de Nuits"}},
		}},
		{Name: "Georgia", Regions: []Region{
			{"Kakheti", "KAK", []string{"Kakheti PDO"}},
		}},
		{Name: "Italy", Regions: []Region{
			{"Tuscany", "TUS", []string{"Brunello di Montalcino", "Chianti Classico", "Bolgheri"}},
			{"Sicily", "SIC", []string{"Etna", "Nero d'Avola IGT"}},
			{"Piedmont", "PIE", []string{"Langhe", "Barbaresco", "Barolo"}},
			{"Veneto", "VEN", []string{"Prosecco", "Valpolicella", "Soave"}},
		}},
		{Name: "Spain", Regions: []Region{
			{"Rioja", "RIO", []string{"Rioja DOCa"}},
			{"Ribera del Duero", "RIB", []string{"Ribera del Duero DO"}},
			{"Rias Baixas", "RIA", []string{"Rias Baixas DO"}},
		}},
	},
	Colors:      []string{"white", "red", "orange"},
	Sweetness:   []string{"dry", "off-dry", "sweet"},
	BottleSizes: []float64{0.375, 0.75, 1.5},
	Grapes: []string{
		"Merlot", "Grenache", "Viognier", "Pinot Gris", "Tempranillo", "Albarino", "Chardonnay",
		"Semillon", "Riesling", "Pinot Noir", "Rkatsiteli", "Sangiovese", "Syrah", "Nebbiolo",
		"Chenin Blanc", "Gewurztraminer", "Sauvignon Blanc", "Cabernet Sauvignon", "Muscadet",
		"Zinfandel", "Malbec",
	},
}

var productVocabulary = Vocabulary{
	Countries: []Country{
		{Name: "France", Regions: regions("Bordeaux", "Burgundy", "Rhone", "Loire", "Champagne", "Provence", "Alsace", "Beaujolais", "Jura", "Languedoc")},
		{Name: "Italy", Regions: regions("Tuscany", "Piedmont", "Veneto", "Sicily", "Umbria")},
		{Name: "Spain", Regions: regions("Rioja", "Ribera del Duero", "Rias Baixas", "Priorat")},
		{Name: "USA", Regions: regions("Napa", "Sonoma", "Willamette Valley")},
		{Name: "Georgia", Regions: regions("Kakheti")},
	},
	Colors:           []string{"red", "white", "rosé", "sparkling"},
	Sweetness:        []string{"dry", "off-dry", "semi-sweet", "sweet"},
	BottleSizes:      []float64{0.375, 0.75, 1.5},
	FlatAppellations: []string{"AOC", "DOC", "DOCG", "IGP", "AVA"},
	Grapes: []string{
		"Cabernet Sauvignon", "Merlot", "Pinot Noir", "Syrah", "Grenache",
		"Chardonnay", "Sauvignon Blanc", "Riesling", "Sangiovese", "Tempranillo",
	},
}

func regions(names ...string) []Region {
	out := make([]Region, len(names))
	for i, n := range names {
		out[i] = Region{Name: n}
	}
	return out
}

var producerHouses = []string{"Maison", "Chateau", "Domaine", "Bodegas", "Cantina", "Winery", "Estate", "Marani"}

// levels renders 1..3 scores in the product layout.
var levels = []string{"low", "medium", "high"}

var shopCountries = []string{"France", "Italy", "Spain", "USA", "Portugal", "Germany", "Belgium"}

var (
	orderStatuses  = []string{"pending", "shipped", "delivered"}
	eventStatuses  = []string{"pending", "confirmed", "shipped", "delivered"}
	paymentMethods = []string{"card", "paypal", "bank_transfer"}
	salesChannels  = []string{"web", "mobile", "store"}
)

// French names for the fr locale; gofakeit only ships English data.
var (
	frenchFirstNames = []string{
		"Camille", "Léa", "Manon", "Chloé", "Inès", "Jade", "Louise", "Zoé", "Élodie", "Margaux",
		"Lucas", "Hugo", "Louis", "Gabriel", "Arthur", "Jules", "Théo", "Raphaël", "Noé", "Mathéo",
		"Anne-Sophie", "Jean-Pierre", "Marie-Claire", "François", "Hélène", "Benoît", "Céline", "Jérôme",
	}
	frenchLastNames = []string{
		"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau",
		"Simon", "Laurent", "Lefèvre", "Michel", "Garcia", "David", "Bertrand", "Roux", "Vincent", "Fournier",
		"D'Arcy", "De La Fontaine", "Lemaître", "Faure", "Girard", "Bonnet", "Mercier", "Chevalier",
	}
	frenchCities = []string{
		"Paris", "Lyon", "Marseille", "Bordeaux", "Toulouse", "Nantes", "Strasbourg", "Lille",
		"Montpellier", "Rennes", "Reims", "Dijon", "Angers", "Nîmes", "Aix-en-Provence", "Saint-Étienne",
	}
	frenchStreets = []string{"rue", "avenue", "boulevard", "chemin", "place", "impasse", "allée", "quai"}
)
