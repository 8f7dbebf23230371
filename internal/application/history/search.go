package history

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// fold normaliza para comparar sin mayúsculas ni tildes ("Código" == "codigo").
// Los transformers de x/text tienen estado: se crean en cada llamada.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// matcher filtra registros por tipo y por texto en producto, código o ubicación.
type matcher struct {
	typ  string
	term string
}

func newMatcher(typ, search string) matcher {
	return matcher{typ: typ, term: fold(strings.TrimSpace(search))}
}

func (m matcher) match(e *entity.MovementHistory) bool {
	if m.typ != "" && e.Type != m.typ {
		return false
	}
	if m.term == "" {
		return true
	}
	return strings.Contains(fold(e.ProductName), m.term) ||
		strings.Contains(fold(e.ProductCode), m.term) ||
		strings.Contains(fold(e.Location), m.term)
}
