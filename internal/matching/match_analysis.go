// internal/matching/match_analysis.go

package matching

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minStarters = 3
	maxStarters = 4
)

// MatchAnalysis compares the text analyses of two profiles
type MatchAnalysis struct {
	PersonalityMatch     int      `json:"personality_match"`
	SharedTraits         []Trait  `json:"shared_traits"`
	SharedValues         []Value  `json:"shared_values"`
	SharedInterests      []string `json:"shared_interests"`
	ComplementaryTraits  []string `json:"complementary_traits"`
	PotentialChallenges  []string `json:"potential_challenges"`
	ConversationStarters []string `json:"conversation_starters"`
}

// AnalyzeProfileCompatibility analyzes both profiles and composes the results
func AnalyzeProfileCompatibility(user, candidate Profile) MatchAnalysis {
	ua := AnalyzeProfile(user)
	ca := AnalyzeProfile(candidate)

	sharedTraits := sharedCategories(ua.Traits, ca.Traits)
	sharedValues := sharedCategories(ua.Values, ca.Values)
	sharedInterests := intersectStrings(ua.Interests, ca.Interests)

	personality := 50 + 10*len(sharedTraits) + 8*len(sharedValues)
	if personality > 100 {
		personality = 100
	}

	return MatchAnalysis{
		PersonalityMatch:     personality,
		SharedTraits:         sharedTraits,
		SharedValues:         sharedValues,
		SharedInterests:      sharedInterests,
		ComplementaryTraits:  complementaryTraits(ua.Traits, ca.Traits),
		PotentialChallenges:  analysisChallenges(ua, ca),
		ConversationStarters: analysisStarters(candidate, ca, sharedInterests, sharedValues),
	}
}

func sharedCategories[C ~string](a, b []Signal[C]) []C {
	inB := make(map[C]bool, len(b))
	for _, s := range b {
		inB[s.Category] = true
	}
	shared := make([]C, 0)
	for _, s := range a {
		if inB[s.Category] {
			shared = append(shared, s.Category)
		}
	}
	return shared
}

func intersectStrings(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	shared := make([]string, 0)
	for _, s := range a {
		if inB[s] {
			shared = append(shared, s)
		}
	}
	return shared
}

func complementaryTraits(user, candidate []Signal[Trait]) []string {
	has := func(signals []Signal[Trait], t Trait) bool {
		for _, s := range signals {
			if s.Category == t {
				return true
			}
		}
		return false
	}

	pairs := make([]string, 0)
	for _, pair := range complementaryTraitPairs {
		a, b := pair[0], pair[1]
		if (has(user, a) && has(candidate, b)) || (has(user, b) && has(candidate, a)) {
			pairs = append(pairs, fmt.Sprintf("%s + %s", titleCase(string(a)), titleCase(string(b))))
		}
	}
	return pairs
}

func analysisChallenges(user, candidate ProfileAnalysis) []string {
	challenges := make([]string, 0)

	if user.CommunicationStyle != candidate.CommunicationStyle {
		challenges = append(challenges, fmt.Sprintf(
			"Different communication styles (%s vs %s) may take some calibration",
			user.CommunicationStyle, candidate.CommunicationStyle,
		))
	}

	userStyle, ok1 := user.TopRelationshipStyle()
	candStyle, ok2 := candidate.TopRelationshipStyle()
	if ok1 && ok2 && userStyle != candStyle {
		challenges = append(challenges, fmt.Sprintf(
			"Different relationship approaches (%s vs %s); talk about expectations early",
			titleCase(string(userStyle)), titleCase(string(candStyle)),
		))
	}

	return challenges
}

func analysisStarters(candidate Profile, ca ProfileAnalysis, sharedInterests []string, sharedValues []Value) []string {
	starters := make([]string, 0, maxStarters)

	if len(sharedInterests) > 0 {
		starters = append(starters, fmt.Sprintf("You both mentioned %s. What got you into it?", sharedInterests[0]))
	}
	if len(sharedValues) > 0 {
		starters = append(starters, fmt.Sprintf("You both care about %s. What does that look like in your relationships?", sharedValues[0]))
	}
	if len(ca.GreenFlags) > 0 {
		starters = append(starters, fmt.Sprintf("Your profile stood out for this: %s. What shaped that for you?", strings.ToLower(ca.GreenFlags[0])))
	}
	if s, ok := promptStarter(candidate); ok {
		starters = append(starters, s)
	}

	return padStarters(starters)
}

// promptStarter references the candidate's first prompt response
func promptStarter(candidate Profile) (string, bool) {
	if len(candidate.Prompts) == 0 {
		return "", false
	}
	first := candidate.Prompts[0]
	if strings.TrimSpace(first.Response) == "" {
		return "", false
	}
	return fmt.Sprintf("I loved your answer to %q. What's the story behind it?", first.Prompt), true
}

// padStarters fills up to minStarters with generic starters and caps at maxStarters
func padStarters(starters []string) []string {
	for _, g := range genericStarters {
		if len(starters) >= minStarters {
			break
		}
		if !containsString(starters, g) {
			starters = append(starters, g)
		}
	}
	if len(starters) > maxStarters {
		starters = starters[:maxStarters]
	}
	return starters
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// titleCase turns "kitchen_table" into "Kitchen Table"
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
