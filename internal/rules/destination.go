package rules

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type Classification int

const (
	Unknown Classification = iota
	Flexible
	FourByFourRequired
)

func (c Classification) String() string {
	switch c {
	case Flexible:
		return "flexible"
	case FourByFourRequired:
		return "4x4-required"
	default:
		return "unknown"
	}
}

// UnknownDestinationPolicy decides how names outside both sets are treated.
type UnknownDestinationPolicy string

const (
	// UnknownUnconstrained treats an unknown destination like a flexible one.
	UnknownUnconstrained UnknownDestinationPolicy = "unconstrained"
	// UnknownRejected makes an unknown destination invalid: Validate fails and
	// no vehicle is eligible for it.
	UnknownRejected UnknownDestinationPolicy = "reject"
)

func ParseUnknownDestinationPolicy(value string) (UnknownDestinationPolicy, error) {
	switch UnknownDestinationPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", UnknownUnconstrained:
		return UnknownUnconstrained, nil
	case UnknownRejected:
		return UnknownRejected, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownDestinationPolicy, value)
}

var (
	DefaultFlexibleDestinations = []string{
		"Kribi",
		"Douala",
		"Edéa",
		"Yaoundé",
	}

	DefaultFourByFourDestinations = []string{
		"Bafoussam",
		"Bamenda",
		"Bertoua",
		"Buea",
		"Limbé",
		"Ebolowa",
		"Kumba",
		"Foumban",
	}
)

// DestinationSet holds the two disjoint sets of known destinations. It is
// immutable once built and safe for concurrent use.
type DestinationSet struct {
	classes map[string]Classification
	names   map[string]string
	policy  UnknownDestinationPolicy
}

func NewDestinationSet(flexible, fourByFour []string, policy UnknownDestinationPolicy) (*DestinationSet, error) {
	if policy == "" {
		policy = UnknownUnconstrained
	}
	if policy != UnknownUnconstrained && policy != UnknownRejected {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDestinationPolicy, policy)
	}

	set := &DestinationSet{
		classes: make(map[string]Classification, len(flexible)+len(fourByFour)),
		names:   make(map[string]string, len(flexible)+len(fourByFour)),
		policy:  policy,
	}

	add := func(name string, class Classification) error {
		key := normalizeName(name)
		if key == "" {
			return fmt.Errorf("%w: empty destination name", ErrInvalidInput)
		}
		if existing, ok := set.classes[key]; ok && existing != class {
			return fmt.Errorf("%w: %s", ErrOverlappingDestination, name)
		}
		set.classes[key] = class
		set.names[key] = strings.TrimSpace(name)
		return nil
	}

	for _, name := range flexible {
		if err := add(name, Flexible); err != nil {
			return nil, err
		}
	}
	for _, name := range fourByFour {
		if err := add(name, FourByFourRequired); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// DefaultDestinationSet returns the built-in Cameroon destinations.
func DefaultDestinationSet(policy UnknownDestinationPolicy) *DestinationSet {
	set, err := NewDestinationSet(DefaultFlexibleDestinations, DefaultFourByFourDestinations, policy)
	if err != nil {
		panic(err)
	}

	return set
}

func (s *DestinationSet) Policy() UnknownDestinationPolicy {
	return s.policy
}

func (s *DestinationSet) Classify(destination string) Classification {
	return s.classes[normalizeName(destination)]
}

func (s *DestinationSet) RequiresFourByFour(destination string) bool {
	return s.Classify(destination) == FourByFourRequired
}

func (s *DestinationSet) IsVehicleEligibleForDestination(vehicle Vehicle, destination string) bool {
	if normalizeName(destination) == "" {
		return true
	}

	switch s.Classify(destination) {
	case FourByFourRequired:
		return vehicle.Is4x4
	case Flexible:
		return true
	default:
		return s.policy != UnknownRejected
	}
}

// Validate reports ErrUnknownDestination for names outside both sets when the
// policy rejects them. An empty destination is always valid.
func (s *DestinationSet) Validate(destination string) error {
	if normalizeName(destination) == "" || s.policy != UnknownRejected {
		return nil
	}
	if s.Classify(destination) == Unknown {
		return fmt.Errorf("%w: %s", ErrUnknownDestination, strings.TrimSpace(destination))
	}

	return nil
}

func (s *DestinationSet) Flexible() []string {
	return s.namesOf(Flexible)
}

func (s *DestinationSet) FourByFour() []string {
	return s.namesOf(FourByFourRequired)
}

func (s *DestinationSet) namesOf(class Classification) []string {
	names := []string{}
	for key, c := range s.classes {
		if c == class {
			names = append(names, s.names[key])
		}
	}
	sort.Strings(names)

	return names
}

// normalizeName makes "Yaoundé", " yaoundé" and a decomposed "Yaoundé" equal.
// Casers are stateful, so one is created per call.
func normalizeName(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}
