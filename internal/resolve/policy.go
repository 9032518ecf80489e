package resolve

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel configuration errors. Either aborts a run before any row is
// processed; everything past policy validation is row-level data.
var (
	// ErrNoIdentities is returned when both rosters are empty. Running
	// anyway would classify every column as data and reject every row,
	// which is never what the caller meant.
	ErrNoIdentities = errors.New("resolve: no identities supplied in either roster")

	// ErrBadCountSpec is returned for malformed expected-count specifiers.
	ErrBadCountSpec = errors.New("resolve: malformed expected-count specifier")
)

// CountMode selects how a roster's per-row expected count is checked.
type CountMode string

const (
	// CountAny accepts any number of matches, including zero.
	CountAny CountMode = "any"
	// CountAtLeastOne accepts one or more matches.
	CountAtLeastOne CountMode = "at-least-one"
	// CountAuto derives the expected count from the table itself: the
	// rounded mean match count over rows with at least one match in either
	// roster.
	CountAuto CountMode = "auto"
	// CountExact accepts exactly N matches.
	CountExact CountMode = "exact"
)

// unreachableCount is the resolved value when auto derivation had no matched
// rows to average over. No row can satisfy it, so every row is rejected
// instead of the derivation crashing.
const unreachableCount = -1

// CountSpec is a roster's expected-count policy. N is meaningful only for
// CountExact.
type CountSpec struct {
	Mode CountMode `json:"mode"`
	N    int       `json:"n,omitempty"`
}

// ParseCountSpec reads a specifier as written in config or on the command
// line: "any", "at-least-one", "auto", or a non-negative integer.
func ParseCountSpec(value string) (CountSpec, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case string(CountAny):
		return CountSpec{Mode: CountAny}, nil
	case string(CountAtLeastOne):
		return CountSpec{Mode: CountAtLeastOne}, nil
	case string(CountAuto), "":
		return CountSpec{Mode: CountAuto}, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 0 {
		return CountSpec{}, fmt.Errorf("%w: %q", ErrBadCountSpec, value)
	}
	return CountSpec{Mode: CountExact, N: n}, nil
}

// String renders the spec the way ParseCountSpec reads it.
func (c CountSpec) String() string {
	if c.Mode == CountExact {
		return strconv.Itoa(c.N)
	}
	return string(c.Mode)
}

func (c CountSpec) validate() error {
	switch c.Mode {
	case CountAny, CountAtLeastOne, CountAuto:
		return nil
	case CountExact:
		if c.N < 0 && c.N != unreachableCount {
			return fmt.Errorf("%w: negative count %d", ErrBadCountSpec, c.N)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown mode %q", ErrBadCountSpec, string(c.Mode))
}

// satisfied checks a row's match count against a resolved spec. CountAuto
// must be resolved to CountExact before rows are checked.
func (c CountSpec) satisfied(count int) bool {
	switch c.Mode {
	case CountAny:
		return true
	case CountAtLeastOne:
		return count > 0
	case CountExact:
		return c.N >= 0 && count == c.N
	}
	return false
}

// RosterPolicy is the caller-supplied policy for one roster.
type RosterPolicy struct {
	// Expected is the per-row expected match count.
	Expected CountSpec
	// UniqueOnce disqualifies, table-wide, any identity matched by more
	// than one row. Disqualification is retroactive: the first occurrence
	// is rejected along with the rest.
	UniqueOnce bool
}

// Policy holds both rosters' policies.
type Policy struct {
	Primary   RosterPolicy
	Secondary RosterPolicy
}

func (p Policy) validate() error {
	if err := p.Primary.Expected.validate(); err != nil {
		return fmt.Errorf("primary: %w", err)
	}
	if err := p.Secondary.Expected.validate(); err != nil {
		return fmt.Errorf("secondary: %w", err)
	}
	return nil
}
