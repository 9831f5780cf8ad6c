package datatype

import (
	"github.com/enola-dev/enola-sub007/errors"
)

// Vocabulary names accepted by Builtin.
const (
	VocabularyXSD      = "xsd"
	VocabularyEnola    = "enola"
	VocabularyProtobuf = "protobuf"
)

// DefaultVocabularies is the concatenation order of the built-in datatypes.
// The order is part of the matching contract: the base vocabulary first,
// then the extension vocabulary, then the third-party vocabulary.
var DefaultVocabularies = []string{VocabularyXSD, VocabularyEnola, VocabularyProtobuf}

var vocabularies = map[string]func() []Codec{
	VocabularyXSD:      XSD,
	VocabularyEnola:    Enola,
	VocabularyProtobuf: Protobuf,
}

// Builtin returns a fresh repository with the named vocabularies registered,
// in the fixed order of DefaultVocabularies regardless of how names are
// ordered. No names means all of them.
func Builtin(names ...string) (*Repository, error) {
	if len(names) == 0 {
		names = DefaultVocabularies
	}
	enabled := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := vocabularies[n]; !ok {
			return nil, errors.Invalidf(errors.ErrInvalidConfig, "datatype", "Builtin", "unknown vocabulary %q", n)
		}
		enabled[n] = true
	}

	repo := &Repository{}
	for _, n := range DefaultVocabularies {
		if !enabled[n] {
			continue
		}
		for _, c := range vocabularies[n]() {
			if err := repo.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return repo, nil
}

// MustBuiltin is Builtin with every vocabulary; it panics on error.
func MustBuiltin() *Repository {
	repo, err := Builtin()
	if err != nil {
		panic(err)
	}
	return repo
}
