package ui

import "testing"

func TestHelpSectionsCoverFullHelp(t *testing.T) {
	k := DefaultKeyMap()
	left, right := k.helpSections()

	shown := map[string]bool{}
	for _, section := range append(left, right...) {
		for _, b := range section.bindings {
			shown[b.Help().Key] = true
		}
	}
	for _, group := range k.FullHelp() {
		for _, b := range group {
			if !shown[b.Help().Key] {
				t.Fatalf("binding %q (%s) missing from help overlay", b.Help().Key, b.Help().Desc)
			}
		}
	}
}

func TestKeyMapHasNoDuplicateKeys(t *testing.T) {
	k := DefaultKeyMap()
	// Bindings that are only active in different contexts may share keys;
	// everything reachable from the main screen must not.
	owner := map[string]string{}
	for _, group := range k.FullHelp() {
		for _, b := range group {
			for _, key := range b.Keys() {
				if prev, ok := owner[key]; ok && prev != b.Help().Desc {
					t.Fatalf("key %q bound to both %q and %q", key, prev, b.Help().Desc)
				}
				owner[key] = b.Help().Desc
			}
		}
	}
}
