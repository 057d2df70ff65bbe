package species

import "strings"

// Syllable pools for procedural binomial-style names. Two-part names
// read like field notes without any real taxonomy behind them.
var (
	nameOnsets  = []string{"vel", "mor", "tha", "gru", "lyn", "ser", "kal", "dro", "nym", "pha", "rok", "ul", "bre", "zan", "ith", "quo"}
	nameMiddles = []string{"a", "o", "i", "e", "u", "ar", "or", "il", "en", "ys"}
	nameCodas   = []string{"don", "rax", "mis", "tor", "lus", "nis", "pod", "vex", "gon", "tis", "rus", "mur"}
)

// generateName builds a two-word procedural species name.
func (m *Manager) generateName() string {
	word := func() string {
		var b strings.Builder
		b.WriteString(nameOnsets[m.rng.Intn(len(nameOnsets))])
		if m.rng.Float32() < 0.6 {
			b.WriteString(nameMiddles[m.rng.Intn(len(nameMiddles))])
		}
		b.WriteString(nameCodas[m.rng.Intn(len(nameCodas))])
		return b.String()
	}

	genus := word()
	return strings.ToUpper(genus[:1]) + genus[1:] + " " + word()
}
