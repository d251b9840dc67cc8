package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// CategoryPrefix extrait le préfixe d'ID d'une catégorie :
// texte avant le premier '-' ("solar-kits" → "solar"), "p" par défaut
func CategoryPrefix(category string) string {
	prefix := strings.SplitN(category, "-", 2)[0]
	if prefix == "" {
		return "p"
	}
	return prefix
}

// NextSequenceID scanne les ids existants partageant le préfixe, prend le
// suffixe numérique maximum et renvoie "<prefix>-<max+1>" paddé à 3 chiffres.
// Max+1, pas count+1 : les trous laissés par des suppressions ne sont pas réutilisés.
func NextSequenceID(prefix string, ids []string) string {
	max := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix+"-") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix+"-"))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}

// MaxSequence renvoie le plus grand suffixe numérique après le premier '-',
// tous préfixes confondus (numérotation globale des posts de blog)
func MaxSequence(ids []string) int {
	max := 0
	for _, id := range ids {
		parts := strings.SplitN(id, "-", 2)
		if len(parts) != 2 {
			continue
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}
