package config

// trie answers "does any stored word prefix s" in one pass over s.
type trie struct {
	children map[byte]*trie
	terminal bool
}

func newTrie(words []string) *trie {
	t := &trie{}
	for _, w := range words {
		t.insert(w)
	}
	return t
}

func (t *trie) insert(w string) {
	n := t
	for i := 0; i < len(w); i++ {
		if n.children == nil {
			n.children = make(map[byte]*trie)
		}
		next, ok := n.children[w[i]]
		if !ok {
			next = &trie{}
			n.children[w[i]] = next
		}
		n = next
	}
	n.terminal = true
}

// hasPrefixOf reports whether a stored word is a prefix of s.
func (t *trie) hasPrefixOf(s string) bool {
	n := t
	for i := 0; ; i++ {
		if n.terminal {
			return true
		}
		if i == len(s) {
			return false
		}
		next, ok := n.children[s[i]]
		if !ok {
			return false
		}
		n = next
	}
}

func reverse(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[len(s)-1-i] = s[i]
	}
	return string(b)
}
