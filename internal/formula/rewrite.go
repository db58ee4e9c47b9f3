package formula

import (
	"slices"
	"sort"
)

// RenameReferences rewrites references in src whose name is a key of rename
// to the mapped item ID. The rest of the source, spacing included, is kept.
func RenameReferences(src string, rename map[string]string) (string, error) {
	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		return "", err
	}

	var hits []Token
	for _, tok := range tokens {
		if tok.Type != TokenReference {
			continue
		}
		if _, ok := rename[tok.Value]; ok {
			hits = append(hits, tok)
		}
	}
	if len(hits) == 0 {
		return src, nil
	}

	// splice from the end so earlier offsets stay valid
	sort.Slice(hits, func(i, j int) bool { return hits[i].Pos > hits[j].Pos })
	runes := []rune(src)
	for _, tok := range hits {
		replacement := []rune(FormatReference(rename[tok.Value]))
		tail := append(replacement, runes[tok.Pos+tok.Len:]...)
		runes = append(runes[:tok.Pos], tail...)
	}
	return string(runes), nil
}

// PinReferences rewrites every reference in src that resolve maps to id,
// alone or among other candidates, so that it names id directly.
func PinReferences(src string, resolve Resolver, id string) (string, error) {
	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		return "", err
	}

	rename := make(map[string]string)
	for _, tok := range tokens {
		if tok.Type == TokenReference && slices.Contains(resolve(tok.Value), id) {
			rename[tok.Value] = id
		}
	}
	if len(rename) == 0 {
		return src, nil
	}
	return RenameReferences(src, rename)
}
