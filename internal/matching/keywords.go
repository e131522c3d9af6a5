// internal/matching/keywords.go
// Fixed keyword dictionaries and lookup tables used by the analyzers and scorers

package matching

// Trait is a personality trait inferred from profile text
type Trait string

const (
	TraitAdventurous  Trait = "adventurous"
	TraitHomebody     Trait = "homebody"
	TraitSocial       Trait = "social"
	TraitIntellectual Trait = "intellectual"
	TraitCreative     Trait = "creative"
	TraitEmpathetic   Trait = "empathetic"
	TraitAmbitious    Trait = "ambitious"
	TraitLaidBack     Trait = "laid_back"
)

// AllTraits lists every trait in declaration order
var AllTraits = []Trait{
	TraitAdventurous, TraitHomebody, TraitSocial, TraitIntellectual,
	TraitCreative, TraitEmpathetic, TraitAmbitious, TraitLaidBack,
}

var traitKeywords = map[Trait][]string{
	TraitAdventurous:  {"adventure", "travel", "explore", "hiking", "spontaneous", "new places"},
	TraitHomebody:     {"homebody", "cozy", "night in", "netflix", "stay in", "couch"},
	TraitSocial:       {"friends", "party", "social", "festival", "meet people", "going out"},
	TraitIntellectual: {"books", "reading", "philosophy", "science", "podcast", "curious"},
	TraitCreative:     {"artist", "painting", "music", "writing", "design", "creative"},
	TraitEmpathetic:   {"empath", "listen", "caring", "kind", "support", "compassion"},
	TraitAmbitious:    {"career", "ambitious", "goals", "driven", "entrepreneur", "hustle"},
	TraitLaidBack:     {"chill", "laid back", "easygoing", "relaxed", "go with the flow", "low-key"},
}

// Value is a relationship value inferred from profile text
type Value string

const (
	ValueHonesty       Value = "honesty"
	ValueCommunication Value = "communication"
	ValueConsent       Value = "consent"
	ValueGrowth        Value = "growth"
	ValueAutonomy      Value = "autonomy"
	ValueCommunity     Value = "community"
	ValueCompersion    Value = "compersion"
	ValueStability     Value = "stability"
)

// AllValues lists every value in declaration order
var AllValues = []Value{
	ValueHonesty, ValueCommunication, ValueConsent, ValueGrowth,
	ValueAutonomy, ValueCommunity, ValueCompersion, ValueStability,
}

var valueKeywords = map[Value][]string{
	ValueHonesty:       {"honest", "truth", "transparen", "authentic"},
	ValueCommunication: {"communicat", "talk openly", "check in", "check-in", "open dialogue"},
	ValueConsent:       {"consent", "enthusiastic yes", "ask first", "respect boundaries"},
	ValueGrowth:        {"growth", "grow", "self-work", "therapy", "learning"},
	ValueAutonomy:      {"autonomy", "independen", "freedom", "own space"},
	ValueCommunity:     {"community", "chosen family", "polycule", "friends"},
	ValueCompersion:    {"compersion", "happy for my partners", "frubble"},
	ValueStability:     {"stable", "stability", "commitment", "long-term", "reliable"},
}

// RelationshipStyle is an approach to non-monogamy signalled in profile text
type RelationshipStyle string

const (
	StyleHierarchical        RelationshipStyle = "hierarchical"
	StyleNonHierarchical     RelationshipStyle = "non_hierarchical"
	StyleRelationshipAnarchy RelationshipStyle = "relationship_anarchy"
	StyleKitchenTable        RelationshipStyle = "kitchen_table"
	StyleParallel            RelationshipStyle = "parallel"
	StyleSolo                RelationshipStyle = "solo"
)

// AllRelationshipStyles lists every style in declaration order
var AllRelationshipStyles = []RelationshipStyle{
	StyleHierarchical, StyleNonHierarchical, StyleRelationshipAnarchy,
	StyleKitchenTable, StyleParallel, StyleSolo,
}

var styleKeywords = map[RelationshipStyle][]string{
	StyleHierarchical:        {"primary", "nesting partner", "hierarchy", "hierarchical"},
	StyleNonHierarchical:     {"non-hierarchical", "no hierarchy", "equal partners", "egalitarian"},
	StyleRelationshipAnarchy: {"relationship anarch", "anarchy", "no labels", "no rules"},
	StyleKitchenTable:        {"kitchen table", "metamours", "meet my partners", "polycule"},
	StyleParallel:            {"parallel", "separate lives", "don't need to meet", "privacy"},
	StyleSolo:                {"solo poly", "solo", "my own person", "own home"},
}

var interestVocabulary = []string{
	"hiking", "camping", "cooking", "baking", "travel", "music", "concerts",
	"reading", "books", "yoga", "dancing", "gaming", "board games", "photography",
	"painting", "movies", "coffee", "wine", "running", "climbing", "cycling",
	"gardening", "festivals", "theater", "podcasts",
}

// markerRule maps a set of phrases to a label. Rules are evaluated in slice order.
type markerRule struct {
	label   string
	phrases []string
}

const (
	defaultTone               = "thoughtful"
	defaultCommunicationStyle = "casual"
)

var toneRules = []markerRule{
	{"playful", []string{"haha", "lol", "silly", "goofy", "banter", "puns", ";)"}},
	{"direct", []string{"looking for", "not looking", "dealbreaker", "deal breaker", "must be", "i want", "swipe left"}},
	{"warm", []string{"love", "heart", "warm", "gentle", "cuddle", "kindness"}},
}

var communicationStyleRules = []markerRule{
	{"communicative", []string{"communicat", "talk it through", "check in", "check-in", "texting"}},
	{"direct", []string{"straightforward", "blunt", "direct", "no games"}},
	{"empathetic", []string{"listen", "patient", "understanding", "empathy"}},
}

var greenFlagRules = []markerRule{
	{"Invests in personal growth", []string{"therapy", "therapist", "self-work"}},
	{"Values open communication", []string{"communicat"}},
	{"Talks about consent", []string{"consent"}},
	{"Respects boundaries", []string{"boundaries"}},
	{"Prioritizes sexual health", []string{"sti test", "get tested", "safer sex"}},
	{"Comfortable with metamours", []string{"compersion", "metamour"}},
}

var redFlagRules = []markerRule{
	{"Uses 'no drama' language", []string{"no drama"}},
	{"May be unicorn hunting", []string{"unicorn"}},
	{"Mentions veto power", []string{"veto"}},
	{"Discourages questions", []string{"don't ask", "dont ask"}},
	{"Possible undisclosed relationship", []string{"discreet", "doesn't know", "secret"}},
}

// complementaryTraitPairs are trait pairs that balance each other
var complementaryTraitPairs = [][2]Trait{
	{TraitAdventurous, TraitHomebody},
	{TraitSocial, TraitIntellectual},
	{TraitCreative, TraitAmbitious},
	{TraitEmpathetic, TraitLaidBack},
}

// intentCompatibility is a directed table: intent -> intents that pair well with it
var intentCompatibility = map[string][]string{
	"polyamory":            {"open", "solo_poly", "relationship_anarchy", "monogamish"},
	"open":                 {"polyamory", "swinging", "monogamish", "casual"},
	"swinging":             {"open", "play_partners", "casual"},
	"relationship_anarchy": {"polyamory", "solo_poly", "friendship"},
	"solo_poly":            {"polyamory", "relationship_anarchy", "casual"},
	"monogamish":           {"open", "polyamory", "long_term"},
	"casual":               {"open", "play_partners", "swinging", "solo_poly"},
	"long_term":            {"monogamish", "polyamory"},
	"friendship":           {"relationship_anarchy"},
	"play_partners":        {"casual", "swinging", "kink"},
	"kink":                 {"play_partners"},
}

// structureCompatibility is asymmetric: it is keyed by the user's structure
// and lists candidate structures that can work with it.
var structureCompatibility = map[RelationshipStructure][]RelationshipStructure{
	StructureHierarchical:        {StructureVee, StructureParallel, StructureOpenCouple, StructureKitchenTable},
	StructureNonHierarchical:     {StructureRelationshipAnarchy, StructureKitchenTable, StructureSoloPoly, StructureTriad},
	StructureRelationshipAnarchy: {StructureNonHierarchical, StructureSoloPoly},
	StructureSoloPoly:            {StructureRelationshipAnarchy, StructureNonHierarchical, StructureParallel},
	StructureKitchenTable:        {StructureNonHierarchical, StructureTriad, StructureQuad, StructureVee},
	StructureParallel:            {StructureHierarchical, StructureSoloPoly, StructureOpenCouple},
	StructureVee:                 {StructureHierarchical, StructureKitchenTable, StructureTriad},
	StructureTriad:               {StructureKitchenTable, StructureQuad},
	StructureQuad:                {StructureTriad, StructureKitchenTable},
	StructureOpenCouple:          {StructureHierarchical, StructureParallel},
}

// Dictionaries scanned over the bios of liked profiles
var (
	tasteValueKeywords = []string{
		"honest", "kind", "loyal", "curious", "growth", "community",
		"family", "consent", "communication", "independent",
	}
	tasteActivityKeywords = []string{
		"hiking", "travel", "cooking", "music", "reading", "yoga",
		"dancing", "gaming", "art", "coffee", "climbing", "camping",
	}
	tasteCommunicationKeywords = []string{
		"text", "call", "talk", "listen", "banter",
		"deep conversations", "check in", "voice notes",
	}
)

var genericStarters = []string{
	"What's something you're excited about this month?",
	"What does a perfect first date look like for you?",
	"What's the best advice a partner ever gave you?",
	"What are you currently learning about yourself?",
}
