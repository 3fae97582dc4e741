package dialect

import "github.com/yaklabco/confdiff/pkg/ir"

// IOSXE returns the Cisco IOS XE-oriented profile. It shares the
// IOS-family tokenizer and key hints with the EOS profile; the two differ
// only in name today and exist separately so vendor-specific divergence
// stays a leaf change.
func IOSXE() ir.Profile {
	return ir.Profile{
		Name:           "iosxe",
		CommentMarkers: []string{"!", "#"},
		Tokenize:       tokenizeIOSFamily,
		KeyHint:        iosFamilyKeyHint,
	}
}
