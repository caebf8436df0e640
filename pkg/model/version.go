package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a `<major>.<minor>` file version number.
//
// Versions are immutable value types with a total order:
// majors compare first, then minors.
type Version struct {
	Major uint64
	Minor uint64
}

// NewVersion builds a version from its parts
func NewVersion(major, minor uint64) Version {
	return Version{Major: major, Minor: minor}
}

// ParseVersion parses a `<major>.<minor>` string.
//
// Anything but two base-10 non-negative integers separated by a single
// dot fails with ErrVersionFormat.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return Version{}, ErrVersionFormat.WrapMessage(nil, fmt.Sprintf("%q", s))
	}
	major, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Version{}, ErrVersionFormat.WrapMessage(err, fmt.Sprintf("%q", s))
	}
	minor, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return Version{}, ErrVersionFormat.WrapMessage(err, fmt.Sprintf("%q", s))
	}
	return Version{Major: major, Minor: minor}, nil
}

func (v Version) String() string {
	return strconv.FormatUint(v.Major, 10) + "." + strconv.FormatUint(v.Minor, 10)
}

// Compare returns -1, 0 or 1 when v sorts before, equal to or after o
func (v Version) Compare(o Version) int {
	switch {
	case v.Major < o.Major:
		return -1
	case v.Major > o.Major:
		return 1
	case v.Minor < o.Minor:
		return -1
	case v.Minor > o.Minor:
		return 1
	default:
		return 0
	}
}

// Less reports whether v sorts strictly before o
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// Next yields the version following v.
//
// Without an override this bumps the minor. An override must sort
// strictly after v or the call fails with ErrVersionOutOfOrder.
func (v Version) Next(override *Version) (Version, error) {
	if override == nil {
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	}
	if !v.Less(*override) {
		return Version{}, ErrVersionOutOfOrder.WrapMessage(nil,
			fmt.Sprintf("%s does not follow %s", override, v))
	}
	return *override, nil
}

// MarshalYAML renders versions as their string form
func (v Version) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}

// UnmarshalYAML parses versions from their string form
func (v *Version) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON renders versions as their string form
func (v Version) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(v.String())), nil
}

// UnmarshalJSON parses versions from their string form
func (v *Version) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return ErrVersionFormat.Wrap(err)
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
