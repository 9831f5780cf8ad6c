package datatype

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/enola-dev/enola-sub007/vocabulary"
	"github.com/google/uuid"
	"golang.org/x/mod/semver"
)

// Semver is a semantic version without the leading "v", e.g. "1.2.3-rc.1".
type Semver string

// Compare orders two versions by semantic version precedence.
func (v Semver) Compare(other Semver) int {
	return semver.Compare("v"+string(v), "v"+string(other))
}

// ParseSemver validates text as a full MAJOR.MINOR.PATCH semantic version.
func ParseSemver(text string) (Semver, error) {
	core, _, _ := strings.Cut(text, "+")
	core, _, _ = strings.Cut(core, "-")
	if strings.Count(core, ".") != 2 || !semver.IsValid("v"+text) {
		return "", fmt.Errorf("not a semantic version: %q", text)
	}
	return Semver(text), nil
}

// Extension datatypes under https://enola.dev/.
var (
	UUID = New(vocabulary.EnolaBase+"uuid",
		`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
		uuid.UUID.String, uuid.Parse)

	IPAddress = New(vocabulary.EnolaBase+"ipAddress",
		`(\d{1,3}\.){3}\d{1,3}|([0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}|[0-9a-fA-F:]*::[0-9a-fA-F:.]*`,
		netip.Addr.String, netip.ParseAddr)

	SemanticVersion = New(vocabulary.EnolaBase+"semver",
		`\d+\.\d+\.\d+(-[0-9A-Za-z.\-]+)?(\+[0-9A-Za-z.\-]+)?`,
		func(v Semver) string { return string(v) },
		ParseSemver)
)

// Enola returns the extension vocabulary in matching priority.
func Enola() []Codec {
	return []Codec{UUID, IPAddress, SemanticVersion}
}
