// internal/matching/taste.go
// Attraction patterns learned from the profiles a user has liked

package matching

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	minLikesForPatterns = 5
	minAge              = 18
	agePadding          = 2
	maxPreferredStructs = 3
	maxPreferredIntents = 4
	maxTasteKeywords    = 5
)

// DefaultTasteProfile returns a fresh copy of the neutral taste profile used
// whenever there is not enough history to learn from.
func DefaultTasteProfile() UserTasteProfile {
	return UserTasteProfile{
		AttractionPatterns: defaultAttractionPatterns(),
		BehavioralPatterns: defaultBehavioralPatterns(),
	}
}

func defaultAttractionPatterns() AttractionPatterns {
	return AttractionPatterns{
		PreferredAgeRange:      AgeRange{Min: 18, Max: 99},
		AverageLikedAge:        0,
		BioLengthPreference:    BioMedium,
		AveragePhotoCount:      0,
		PrefersVoiceIntro:      false,
		PreferredStructures:    []RelationshipStructure{},
		PreferredIntents:       []string{},
		ValueKeywords:          []string{},
		ActivityKeywords:       []string{},
		CommunicationKeywords:  []string{},
		PreferredPace:          PaceMedium,
		PreferredResponseStyle: ResponseRelaxed,
	}
}

func defaultBehavioralPatterns() BehavioralPatterns {
	return BehavioralPatterns{
		ActiveHours:           []int{},
		MessageInitiationRate: 0.5,
		MessageLengthStyle:    MessageLengthBalanced,
		ResponseSpeed:         ResponseSpeedModerate,
	}
}

// AnalyzeAttractionPatterns learns what the viewer tends to like. Fewer than
// five liked views yields the default patterns unchanged.
func AnalyzeAttractionPatterns(views []ProfileView, profilesByID map[int64]Profile) AttractionPatterns {
	liked := likedSnapshots(views, profilesByID)
	if countLikes(views) < minLikesForPatterns || len(liked) == 0 {
		return defaultAttractionPatterns()
	}

	ap := defaultAttractionPatterns()
	n := float64(len(liked))

	ageCount, ageSum := 0, 0
	youngest, oldest := math.MaxInt, 0
	bioTotal, photoTotal, voiceCount := 0, 0, 0
	structures := newFrequency[RelationshipStructure]()
	intents := newFrequency[string]()
	paces := newFrequency[Pace]()
	responses := newFrequency[ResponseStyle]()
	bios := make([]string, 0, len(liked))

	for _, s := range liked {
		if s.Age > 0 {
			ageCount++
			ageSum += s.Age
			youngest = min(youngest, s.Age)
			oldest = max(oldest, s.Age)
		}
		bioTotal += utf8.RuneCountInString(s.Bio)
		photoTotal += s.PhotoCount
		if s.HasVoiceIntro {
			voiceCount++
		}
		if s.RelationshipStructure != "" {
			structures.add(s.RelationshipStructure)
		}
		for _, intent := range dedupe(s.IntentIDs) {
			intents.add(intent)
		}
		if s.Pace != "" {
			paces.add(s.Pace)
		}
		if s.ResponseStyle != "" {
			responses.add(s.ResponseStyle)
		}
		bios = append(bios, s.Bio)
	}

	if ageCount > 0 {
		ap.PreferredAgeRange = AgeRange{Min: max(minAge, youngest-agePadding), Max: oldest + agePadding}
		ap.AverageLikedAge = int(math.Round(float64(ageSum) / float64(ageCount)))
	}

	ap.BioLengthPreference = bioBucket(float64(bioTotal) / n)
	ap.AveragePhotoCount = int(math.Round(float64(photoTotal) / n))
	ap.PrefersVoiceIntro = float64(voiceCount) > n/2
	ap.PreferredStructures = structures.top(maxPreferredStructs)
	ap.PreferredIntents = intents.top(maxPreferredIntents)

	text := strings.ToLower(strings.Join(bios, " "))
	ap.ValueKeywords = firstN(containedTerms(text, tasteValueKeywords), maxTasteKeywords)
	ap.ActivityKeywords = firstN(containedTerms(text, tasteActivityKeywords), maxTasteKeywords)
	ap.CommunicationKeywords = firstN(containedTerms(text, tasteCommunicationKeywords), maxTasteKeywords)

	if p, ok := paces.majority(); ok {
		ap.PreferredPace = p
	}
	if r, ok := responses.majority(); ok {
		ap.PreferredResponseStyle = r
	}

	return ap
}

// likedSnapshots resolves every liked view to a snapshot, preferring the copy
// taken at view time over the current profile. Unresolvable likes are skipped.
func likedSnapshots(views []ProfileView, profilesByID map[int64]Profile) []ProfileSnapshot {
	liked := make([]ProfileSnapshot, 0)
	for _, v := range views {
		if !v.Action.IsLike() {
			continue
		}
		if v.Snapshot != nil {
			liked = append(liked, *v.Snapshot)
			continue
		}
		if p, ok := profilesByID[v.ViewedProfileID]; ok {
			liked = append(liked, SnapshotOf(p))
		}
	}
	return liked
}

func countLikes(views []ProfileView) int {
	n := 0
	for _, v := range views {
		if v.Action.IsLike() {
			n++
		}
	}
	return n
}

func bioBucket(meanLength float64) BioLength {
	switch {
	case meanLength < 100:
		return BioShort
	case meanLength < 300:
		return BioMedium
	default:
		return BioLong
	}
}

var bioMidpoints = map[BioLength]int{
	BioShort:  100,
	BioMedium: 200,
	BioLong:   400,
}

func firstN(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

// frequency counts occurrences and remembers first-seen order for tie-breaks
type frequency[K comparable] struct {
	counts map[K]int
	order  []K
}

func newFrequency[K comparable]() *frequency[K] {
	return &frequency[K]{counts: make(map[K]int)}
}

func (f *frequency[K]) add(k K) {
	if _, seen := f.counts[k]; !seen {
		f.order = append(f.order, k)
	}
	f.counts[k]++
}

// top returns up to n keys by descending count, ties in first-seen order
func (f *frequency[K]) top(n int) []K {
	keys := make([]K, len(f.order))
	copy(keys, f.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return f.counts[keys[i]] > f.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// majority returns the single most frequent key. A tie for first place or no
// data reports false.
func (f *frequency[K]) majority() (K, bool) {
	var zero K
	ranked := f.top(2)
	switch {
	case len(ranked) == 0:
		return zero, false
	case len(ranked) == 2 && f.counts[ranked[0]] == f.counts[ranked[1]]:
		return zero, false
	}
	return ranked[0], true
}
