package validate

import "synapse/wire"

// Symbols enforces the symbol policy: a charset rule always, plus an exact
// whitelist when configured.
type Symbols struct {
	known        map[[8]byte]struct{}
	allowUnknown bool
}

// Whitelist builds a validator accepting exactly the given symbols, each
// zero-padded to the 8-byte wire form.
func Whitelist(symbols []string) *Symbols {
	known := make(map[[8]byte]struct{}, len(symbols))
	for _, s := range symbols {
		known[wire.MakeSymbol(s)] = struct{}{}
	}
	return &Symbols{known: known}
}

// Permissive builds a validator applying only the charset rule.
func Permissive() *Symbols {
	return &Symbols{allowUnknown: true}
}

// Validate checks that every non-zero byte is ASCII alphanumeric, hyphen or
// underscore, and in whitelist mode that the symbol is a known key.
func (s *Symbols) Validate(symbol [8]byte) error {
	for _, b := range symbol {
		if b == 0 {
			continue
		}
		if !symbolByteOK(b) {
			return &SymbolError{
				Symbol: wire.SymbolString(symbol),
				Reason: "disallowed character",
			}
		}
	}
	if !s.allowUnknown {
		if _, ok := s.known[symbol]; !ok {
			return &SymbolError{
				Symbol: wire.SymbolString(symbol),
				Reason: "not in whitelist",
			}
		}
	}
	return nil
}

func symbolByteOK(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_':
		return true
	}
	return false
}
